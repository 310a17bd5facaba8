package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// bookingFailedMessage текст ошибки записи для клиента
const bookingFailedMessage = "Ошибка записи. Пожалуйста, попробуйте еще раз."

type datesResponse struct {
	Location string   `json:"location"`
	Dates    []string `json:"dates"`
}

type slotsResponse struct {
	Location string   `json:"location"`
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
}

type lookupRequest struct {
	City string `json:"city"`
}

type lookupResponse struct {
	Found     bool   `json:"found"`
	City      string `json:"city,omitempty"`
	Available bool   `json:"available"`
}

type bookingRequest struct {
	Type       model.SessionType `json:"type"`
	City       string            `json:"city"`
	Slot       string            `json:"slot"`
	FullName   string            `json:"full_name"`
	Phone      string            `json:"phone"`
	ExternalID string            `json:"external_id"`
}

type bookingResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) listDates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key := ps.ByName("key")
	dates := s.slots.AvailableDates(key)
	if dates == nil {
		dates = []string{}
	}
	respondJSON(w, http.StatusOK, datesResponse{Location: key, Dates: dates})
}

func (s *Server) listSlotsOnDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key, date := ps.ByName("key"), ps.ByName("date")
	slots := s.slots.SlotsOnDate(key, date)
	if slots == nil {
		slots = []string{}
	}
	respondJSON(w, http.StatusOK, slotsResponse{Location: key, Date: date, Slots: slots})
}

func (s *Server) lookupCity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req lookupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	found := s.slots.LookupCity(req.City)
	respondJSON(w, http.StatusOK, lookupResponse{
		Found:     found.Found,
		City:      found.City,
		Available: found.Available,
	})
}

// createBooking проводит заявку через тот же сценарий, что и бот
func (s *Server) createBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req bookingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := s.bookingSession(req)
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrOfflineUnavailable):
			respondError(w, http.StatusUnprocessableEntity, "offline sessions are not available in this city")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	callerKey := req.ExternalID
	if callerKey == "" {
		callerKey = "slot:" + session.LocationKey + "|" + session.SelectedSlot
	}

	result, err := s.bookings.Submit(r.Context(), callerKey, session, req.FullName, req.Phone, req.ExternalID)
	switch {
	case errors.Is(err, service.ErrRequestInFlight):
		respondError(w, http.StatusConflict, "booking is already in progress")
		return
	case errors.Is(err, service.ErrSlotUnavailable):
		respondError(w, http.StatusConflict, "slot is no longer available")
		return
	case errors.Is(err, wizard.ErrContactRequired):
		respondError(w, http.StatusBadRequest, "full_name and phone are required")
		return
	case err != nil:
		s.logger.Error("Booking submit failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if result.Screen != wizard.ScreenSucceeded {
		respondJSON(w, http.StatusBadGateway, bookingResponse{Success: false, Error: bookingFailedMessage})
		return
	}
	respondJSON(w, http.StatusOK, bookingResponse{Success: true})
}

// bookingSession собирает сессию сценария из полей заявки
func (s *Server) bookingSession(req bookingRequest) (wizard.Session, error) {
	slot := strings.TrimSpace(req.Slot)
	date, ok := slotstore.SlotDate(slot, s.slots.Location())
	if !ok {
		return wizard.Session{}, errors.New("invalid slot")
	}

	events := []wizard.Event{
		wizard.CitySubmitted{Input: req.City, Slots: s.slots.Snapshot()},
		wizard.SessionTypeChosen{Type: req.Type},
		wizard.DateSelected{Date: date},
		wizard.SlotSelected{Slot: slot},
		wizard.Proceed{},
	}

	session := wizard.New()
	for _, ev := range events {
		next, err := wizard.Transition(session, ev)
		if err != nil {
			return wizard.Session{}, err
		}
		session = next
	}
	return session, nil
}
