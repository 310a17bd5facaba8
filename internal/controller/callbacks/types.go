package callbacks

import (
	"context"

	"github.com/Freeeeeet/citybooking_bot/internal/auth"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Handler with Dependencies
// ========================

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	slotService *service.SlotService,
	bookingService *service.BookingService,
	gate *auth.Gate,
	stateManager callbacktypes.StateManager,
	logger *zap.Logger,
	submitForm func(ctx context.Context, b *bot.Bot, telegramID, chatID int64),
) *Handler {
	inner := &callbacktypes.Handler{
		Slots:        slotService,
		Bookings:     bookingService,
		Gate:         gate,
		StateManager: stateManager,
		Logger:       logger,
		SubmitForm:   submitForm,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
