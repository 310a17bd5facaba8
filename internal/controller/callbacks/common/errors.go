package common

import (
	"errors"

	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"github.com/Freeeeeet/citybooking_bot/internal/slotgrid"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage      = errors.New("no message in callback")
	ErrInvalidFormat  = errors.New("invalid callback format")
	ErrNotAdmin       = errors.New("admin mode is not active")
	ErrSessionExpired = errors.New("session screen does not match")
)

// BookingFailedMessage текст при неудачной записи
const BookingFailedMessage = "Ошибка записи. Пожалуйста, попробуйте еще раз."

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrNotAdmin):
		return "❌ Нет доступа"
	case errors.Is(err, ErrSessionExpired), errors.Is(err, wizard.ErrInvalidTransition):
		return "⚠️ Этот экран устарел. Начните заново: /start"
	case errors.Is(err, wizard.ErrOfflineUnavailable):
		return "❌ В этом городе нет оффлайн сессий"
	case errors.Is(err, wizard.ErrNoDateSelected):
		return "📅 Сначала выберите дату"
	case errors.Is(err, wizard.ErrNoSlotSelected):
		return "🕐 Сначала выберите время"
	case errors.Is(err, wizard.ErrContactRequired):
		return "❌ Укажите имя и телефон"
	case errors.Is(err, wizard.ErrSubmitFailed):
		return "❌ " + BookingFailedMessage
	case errors.Is(err, service.ErrRequestInFlight):
		return "⏳ Запись уже отправляется, подождите"
	case errors.Is(err, service.ErrSlotUnavailable):
		return "❌ Это время уже занято, выберите другое"
	case errors.Is(err, service.ErrPersistFailed):
		return "❌ Не удалось сохранить изменения. Попробуйте ещё раз"
	case errors.Is(err, service.ErrNothingGenerated):
		return "❌ Сетка пустая: проверьте время и интервал"
	case errors.Is(err, slotgrid.ErrRangeIncomplete):
		return "📅 Выберите начало и конец периода"
	case errors.Is(err, slotgrid.ErrCityRequired):
		return "🏙 Укажите город"
	case errors.Is(err, slotgrid.ErrInvalidInterval):
		return "⏱ Интервал должен быть больше нуля"
	case errors.Is(err, slotgrid.ErrInvalidTime):
		return "🕐 Время в формате ЧЧ:ММ"
	case errors.Is(err, slotgrid.ErrInvalidRange):
		return "📅 Начало периода позже конца"
	default:
		return "❌ Произошла ошибка"
	}
}
