// Package admin обработчики кнопок админки: генерация сетки и удаление слотов.
package admin

import (
	"context"

	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/state"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleMenu главное меню админки
func HandleMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.SetState(callbacktypes.UserState(state.StateNone))

		text, kb := common.BuildAdminMenuScreen(h.Slots.Snapshot())
		common.RenderScreen(hc, text, kb)
	})
}

// HandleExit выход из админки к вводу города
func HandleExit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := hc.Apply(wizard.Back{}); err != nil {
			common.HandleError(hc, err, "admin_exit")
			return
		}

		session := hc.Session
		hc.ClearState()
		hc.SetSession(session)
		hc.SetState(callbacktypes.UserState(state.StateEnteringCity))

		h.Logger.Info("Admin mode left", zap.Int64("telegram_id", hc.TelegramID))

		common.RenderScreen(hc, common.BuildCityPromptScreen(), nil)
	})
}
