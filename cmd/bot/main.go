package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/Freeeeeet/citybooking_bot/internal/api"
	"github.com/Freeeeeet/citybooking_bot/internal/app"
	"github.com/Freeeeeet/citybooking_bot/internal/auth"
	"github.com/Freeeeeet/citybooking_bot/internal/config"
	"github.com/Freeeeeet/citybooking_bot/internal/controller"
	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)

	defer logger.Sync()

	logger.Sugar().Infow("Starting city booking bot",
		"environment", cfg.Environment,
		"backend", cfg.Backend,
		"timezone", cfg.Timezone.String(),
		"token_length", len(cfg.TelegramToken))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := app.OpenBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open backend", zap.Error(err))
	}
	defer closeBackend()

	slotService := service.NewSlotService(backend, cfg.Timezone, cfg.BackendTimeout, logger)
	bookingService := service.NewBookingService(backend, slotService, cfg.BackendTimeout, logger)
	gate := auth.NewGate(cfg.AdminSecretHash, cfg.AdminIDs)

	if !gate.Enabled() {
		logger.Warn("ADMIN_SECRET_HASH is empty, admin mode is disabled")
	}

	// Слоты обновляются сразу и затем периодически
	scheduler := app.NewScheduler(slotService, cfg.RefreshInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	apiDone := make(chan struct{})
	if cfg.APIEnabled() {
		// Без JWT_SECRET админские эндпоинты отвечают ошибкой
		tokens := auth.NewTokens(cfg.JWTSecret, cfg.AdminTokenTTL)

		server := api.NewServer(api.Deps{
			Slots:       slotService,
			Bookings:    bookingService,
			Gate:        gate,
			Tokens:      tokens,
			CORSOrigins: cfg.CORSOrigins,
			Logger:      logger,
		})

		go func() {
			defer close(apiDone)
			if err := server.Run(ctx, cfg.HTTPAddr); err != nil {
				logger.Error("HTTP API stopped with error", zap.Error(err))
				stop()
			}
		}()
	} else {
		close(apiDone)
	}

	if cfg.TelegramToken == "" {
		if !cfg.APIEnabled() {
			logger.Fatal("TELEGRAM_TOKEN is required when HTTP API is disabled")
		}
		logger.Info("TELEGRAM_TOKEN is empty, running HTTP API only")
		<-ctx.Done()
		<-apiDone
		return
	}

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, slotService, bookingService, gate, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Failed to register bot commands menu", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	<-apiDone
	logger.Info("Shutdown complete")
}
