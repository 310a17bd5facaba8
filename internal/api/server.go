// Package api HTTP API для мини-приложения записи и его админки.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/auth"
	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Deps зависимости API
type Deps struct {
	Slots       *service.SlotService
	Bookings    *service.BookingService
	Gate        *auth.Gate
	Tokens      *auth.Tokens
	CORSOrigins []string
	Logger      *zap.Logger
}

type Server struct {
	slots       *service.SlotService
	bookings    *service.BookingService
	gate        *auth.Gate
	tokens      *auth.Tokens
	corsOrigins []string
	loginLimit  *RateLimiter
	logger      *zap.Logger
}

func NewServer(deps Deps) *Server {
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		slots:       deps.Slots,
		bookings:    deps.Bookings,
		gate:        deps.Gate,
		tokens:      deps.Tokens,
		corsOrigins: origins,
		// 5 попыток входа подряд, дальше одна раз в 12 секунд
		loginLimit: NewRateLimiter(12*time.Second, 5),
		logger:     deps.Logger,
	}
}

// Router собирает маршруты
func (s *Server) Router() *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", s.health)

	router.GET("/api/slots/:key/dates", s.listDates)
	router.GET("/api/slots/:key/dates/:date", s.listSlotsOnDate)
	router.POST("/api/cities/lookup", s.lookupCity)
	router.POST("/api/bookings", s.createBooking)

	router.POST("/api/admin/login", s.loginLimit.Limit(s.login))
	router.GET("/api/admin/slots", s.authenticate(s.adminSlots))
	router.POST("/api/admin/grids", s.authenticate(s.generateGrid))
	router.DELETE("/api/admin/slots/:key", s.authenticate(s.deleteSlots))

	return router
}

// Handler роутер с CORS, заголовками безопасности и логированием
func (s *Server) Handler() http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	}).Handler(s.Router())

	return s.logging(securityHeaders(corsHandler))
}

// Run слушает addr до отмены ctx, затем корректно завершает запросы
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      45 * time.Second, // запись ждёт бэкенд до 30 секунд
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP API listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
