package handlers

import (
	"github.com/Freeeeeet/citybooking_bot/internal/auth"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/state"
	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	slotService    *service.SlotService
	bookingService *service.BookingService
	gate           *auth.Gate
	stateManager   *state.Manager
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	slotService *service.SlotService,
	bookingService *service.BookingService,
	gate *auth.Gate,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		slotService:    slotService,
		bookingService: bookingService,
		gate:           gate,
		stateManager:   stateManager,
		logger:         logger,
	}
}
