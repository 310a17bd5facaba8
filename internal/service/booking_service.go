package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
	"go.uber.org/zap"
)

type BookingService struct {
	backend Backend
	slots   *SlotService
	guard   *inflightGuard
	// slotGuard не даёт двум клиентам одновременно бронировать один слот
	slotGuard *inflightGuard
	timeout   time.Duration
	logger    *zap.Logger
}

func NewBookingService(backend Backend, slots *SlotService, timeout time.Duration, logger *zap.Logger) *BookingService {
	return &BookingService{
		backend:   backend,
		slots:     slots,
		guard:     newInflightGuard(),
		slotGuard: newInflightGuard(),
		timeout:   timeout,
		logger:    logger,
	}
}

// Submit отправляет форму записи.
//
// callerKey идентифицирует клиента: пока его запрос в работе, повторная отправка
// отклоняется с ErrRequestInFlight. Пока слот бронирует другой клиент,
// отправка отклоняется с ErrSlotUnavailable. Если бэкенд принял запись, слот убирается
// из SlotMap ровно один раз. Если не принял, SlotMap не трогается, а сессия
// возвращается к форме с LastError.
func (s *BookingService) Submit(ctx context.Context, callerKey string, session wizard.Session, name, phone, externalID string) (wizard.Session, error) {
	token, ok := s.guard.acquire(callerKey)
	if !ok {
		s.logger.Warn("Duplicate booking submit rejected",
			zap.String("caller", callerKey))
		return session, ErrRequestInFlight
	}
	defer s.guard.release(callerKey, token)

	submitting, err := wizard.Transition(session, wizard.FormSubmitted{Name: name, Phone: phone})
	if err != nil {
		return session, err
	}

	slotKey := submitting.LocationKey + "|" + submitting.SelectedSlot
	slotToken, ok := s.slotGuard.acquire(slotKey)
	if !ok {
		s.logger.Info("Slot is being booked by another client",
			zap.String("location", submitting.LocationKey),
			zap.String("slot", submitting.SelectedSlot))
		return session, ErrSlotUnavailable
	}
	defer s.slotGuard.release(slotKey, slotToken)

	if !s.slots.HasSlot(submitting.LocationKey, submitting.SelectedSlot) {
		s.logger.Info("Slot taken before submit",
			zap.String("location", submitting.LocationKey),
			zap.String("slot", submitting.SelectedSlot))
		return session, ErrSlotUnavailable
	}

	req, err := submitting.Request(s.slots.Location(), externalID)
	if err != nil {
		return session, err
	}
	req.RequestID = token.String()

	accepted := s.create(ctx, req)
	if accepted {
		s.slots.ConsumeSlot(ctx, submitting.LocationKey, submitting.SelectedSlot)
	}

	finished, err := wizard.Transition(submitting, wizard.SubmitFinished{OK: accepted})
	if err != nil {
		return session, err
	}

	s.logger.Info("Booking submitted",
		zap.String("request_id", req.RequestID),
		zap.String("type", string(req.Type)),
		zap.String("city", req.City),
		zap.String("slot", req.Slot),
		zap.Bool("accepted", accepted))

	return finished, nil
}

// InFlight сообщает, есть ли у клиента незавершённая отправка
func (s *BookingService) InFlight(callerKey string) bool {
	return s.guard.busy(callerKey)
}

func (s *BookingService) create(ctx context.Context, req model.BookingRequest) bool {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	ok, err := s.backend.CreateBooking(ctx, req)
	if err != nil {
		s.logger.Error("Failed to create booking",
			zap.String("request_id", req.RequestID),
			zap.Error(err))
		return false
	}
	if !ok {
		s.logger.Warn("Backend rejected booking",
			zap.String("request_id", req.RequestID))
	}
	return ok
}
