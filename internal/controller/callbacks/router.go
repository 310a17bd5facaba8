package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/booking"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	case data == keyboard.Noop:
		// Заголовки и пустые клетки календаря
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Booking: City Result =====
	case data == common.CityChange:
		booking.HandleCityChange(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ChooseType):
		booking.HandleChooseType(ctx, b, callback, h)

	// ===== Booking: Calendar =====
	case strings.HasPrefix(data, common.CalendarMonth):
		booking.HandleCalendarMonth(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CalendarDay):
		booking.HandleCalendarDay(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CalendarSlot):
		booking.HandleCalendarSlot(ctx, b, callback, h)
	case data == common.CalendarNext:
		booking.HandleCalendarNext(ctx, b, callback, h)
	case data == common.CalendarBack:
		booking.HandleCalendarBack(ctx, b, callback, h)

	// ===== Booking: Contact Form =====
	case data == common.FormBack:
		booking.HandleFormBack(ctx, b, callback, h)
	case data == common.FormEdit:
		booking.HandleFormEdit(ctx, b, callback, h)
	case data == common.FormRetry:
		booking.HandleFormRetry(ctx, b, callback, h)

	// ===== Admin: Menu =====
	case data == common.AdminMenu:
		admin.HandleMenu(ctx, b, callback, h)
	case data == common.AdminExit:
		admin.HandleExit(ctx, b, callback, h)

	// ===== Admin: Grid Generation =====
	case data == common.AdminCreate:
		admin.HandleCreate(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminKind):
		admin.HandleKind(ctx, b, callback, h)
	case data == common.AdminCity:
		admin.HandleCity(ctx, b, callback, h)
	case data == common.AdminStart:
		admin.HandleStart(ctx, b, callback, h)
	case data == common.AdminEnd:
		admin.HandleEnd(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminInterval):
		admin.HandleInterval(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminMonth):
		admin.HandleMonth(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminDay):
		admin.HandleDay(ctx, b, callback, h)
	case data == common.AdminGenerate:
		admin.HandleGenerate(ctx, b, callback, h)

	// ===== Admin: Slot List =====
	case data == common.AdminList:
		admin.HandleList(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminLocation):
		admin.HandleLocation(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminDate):
		admin.HandleDate(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminDeleteAllConfirm):
		admin.HandleDeleteAllConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminDeleteAll):
		admin.HandleDeleteAll(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminDelete):
		admin.HandleDelete(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback data", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "❓ Неизвестная команда")
	}
}
