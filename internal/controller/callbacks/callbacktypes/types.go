package callbacktypes

import (
	"context"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/auth"
	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"github.com/Freeeeeet/citybooking_bot/internal/slotgrid"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	GetSession(telegramID int64) wizard.Session
	SetSession(telegramID int64, session wizard.Session)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	DeleteData(telegramID int64, key string)
}

// AdminDraft форма генерации сетки, которую заполняет администратор
type AdminDraft struct {
	Config slotgrid.Config
	Range  slotgrid.Range
	Month  time.Time // месяц, открытый в календаре формы
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Slots        *service.SlotService
	Bookings     *service.BookingService
	Gate         *auth.Gate
	StateManager StateManager
	Logger       *zap.Logger

	// Функции-хэндлеры из основного контроллера
	SubmitForm func(ctx context.Context, b *bot.Bot, telegramID, chatID int64)
}
