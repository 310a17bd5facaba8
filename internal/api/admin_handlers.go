package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/auth"
	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"github.com/Freeeeeet/citybooking_bot/internal/slotgrid"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

type loginRequest struct {
	Secret string `json:"secret"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type gridRequest struct {
	Type       model.SessionType `json:"type"`
	City       string            `json:"city"`
	DailyStart string            `json:"daily_start"`
	DailyEnd   string            `json:"daily_end"`
	Interval   int               `json:"interval"`
	StartDate  string            `json:"start_date"`
	EndDate    string            `json:"end_date"`
}

type gridResponse struct {
	Location string `json:"location"`
	Added    int    `json:"added"`
}

type adminSlotsResponse struct {
	Slots map[string]map[string][]string `json:"slots"`
	Total int                            `json:"total"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !s.gate.Enabled() {
		respondError(w, http.StatusForbidden, "admin is disabled")
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !s.gate.CheckSecret(req.Secret) {
		s.logger.Warn("Admin login failed", zap.String("remote", clientIP(r)))
		respondError(w, http.StatusUnauthorized, "invalid secret")
		return
	}

	token, expires, err := s.tokens.Issue(auth.AdminSubject)
	if err != nil {
		s.logger.Error("Failed to issue admin token", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info("Admin logged in", zap.String("remote", clientIP(r)))
	respondJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires})
}

func (s *Server) adminSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snapshot := s.slots.Snapshot()
	total := 0
	for _, key := range snapshot.Keys() {
		total += snapshot.Count(key)
	}
	respondJSON(w, http.StatusOK, adminSlotsResponse{
		Slots: slotstore.GroupByDateThenSort(snapshot, s.slots.Location()),
		Total: total,
	})
}

func (s *Server) generateGrid(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req gridRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg := gridConfig(req)
	rng, err := s.gridRange(req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	added, err := s.slots.GenerateGrid(r.Context(), cfg, rng)
	switch {
	case errors.Is(err, service.ErrPersistFailed):
		respondError(w, http.StatusBadGateway, "slots were not saved")
		return
	case errors.Is(err, service.ErrNothingGenerated):
		respondError(w, http.StatusUnprocessableEntity, "grid produced no slots")
		return
	case err != nil:
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, gridResponse{Location: cfg.Key(), Added: added})
}

func (s *Server) deleteSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key := ps.ByName("key")
	slot := strings.TrimSpace(r.URL.Query().Get("slot"))

	var err error
	if slot != "" {
		err = s.slots.RemoveSlot(r.Context(), key, slot)
	} else {
		err = s.slots.RemoveLocation(r.Context(), key)
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, "slots were not saved")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// gridConfig заполняет пропущенные поля значениями по умолчанию
func gridConfig(req gridRequest) slotgrid.Config {
	cfg := slotgrid.DefaultConfig()
	if req.Type != "" {
		cfg.Kind = req.Type
	}
	cfg.City = req.City
	if req.DailyStart != "" {
		cfg.DailyStart = req.DailyStart
	}
	if req.DailyEnd != "" {
		cfg.DailyEnd = req.DailyEnd
	}
	if req.Interval != 0 {
		cfg.Interval = req.Interval
	}
	return cfg
}

func (s *Server) gridRange(start, end string) (slotgrid.Range, error) {
	var rng slotgrid.Range
	for _, value := range []string{start, end} {
		if value == "" {
			continue
		}
		d, err := time.ParseInLocation(slotstore.DateLayout, value, s.slots.Location())
		if err != nil {
			return slotgrid.Range{}, errors.New("dates must be YYYY-MM-DD")
		}
		rng = rng.Click(d)
	}
	// Одна дата означает однодневный диапазон
	if rng.Start != nil && rng.End == nil {
		rng = rng.Click(*rng.Start)
	}
	return rng, nil
}
