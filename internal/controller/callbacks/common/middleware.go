package common

import (
	"context"

	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithScreen создаёт HandlerContext и проверяет, что сессия на одном из экранов.
// Нажатия на кнопки старых сообщений отклоняются.
func WithScreen(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	screens []wizard.Screen,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	for _, screen := range screens {
		if hc.Session.Screen == screen {
			handler(hc)
			return
		}
	}

	h.Logger.Info("Callback for stale screen",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("screen", string(hc.Session.Screen)),
		zap.String("data", callback.Data))
	hc.AnswerAlert(ErrorMessage(ErrSessionExpired))
}

// WithAdmin создаёт HandlerContext и проверяет, что пользователь вошёл в админку
func WithAdmin(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if hc.Session.Screen != wizard.ScreenAdmin || !h.Gate.Allowed(hc.TelegramID) {
		h.Logger.Warn("Admin callback rejected",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("data", callback.Data))
		hc.AnswerAlert(ErrorMessage(ErrNotAdmin))
		return
	}

	handler(hc)
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// RenderScreen редактирует сообщение и отвечает на callback
func RenderScreen(hc *HandlerContext, text string, keyboard *models.InlineKeyboardMarkup) {
	if err := hc.EditMessage(text, keyboard); err != nil {
		HandleError(hc, err, "edit_message")
		return
	}
	hc.Answer("")
}
