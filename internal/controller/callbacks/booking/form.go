package booking

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

var formScreens = []wizard.Screen{wizard.ScreenFillingForm}

// HandleCityChange возврат к вводу города
func HandleCityChange(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	screens := []wizard.Screen{wizard.ScreenAwaitingCityResult}
	common.WithScreen(ctx, b, callback, h, screens, func(hc *common.HandlerContext) {
		if err := hc.Apply(wizard.Back{}); err != nil {
			common.HandleError(hc, err, "city_change")
			return
		}

		hc.SetState(callbacktypes.UserState(state.StateEnteringCity))
		common.RenderScreen(hc, common.BuildCityPromptScreen(), nil)
	})
}

// HandleFormBack возврат из формы в календарь
func HandleFormBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithScreen(ctx, b, callback, h, formScreens, func(hc *common.HandlerContext) {
		if err := hc.Apply(wizard.Back{}); err != nil {
			common.HandleError(hc, err, "form_back")
			return
		}

		hc.SetState(callbacktypes.UserState(state.StateNone))
		h.StateManager.DeleteData(hc.TelegramID, common.DataFormName)

		ShowCalendar(hc, currentMonth(hc))
	})
}

// HandleFormEdit повторный ввод имени и телефона
func HandleFormEdit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithScreen(ctx, b, callback, h, formScreens, editForm)
}

// editForm сбрасывает введённое имя и просит ввести контакты заново
func editForm(hc *common.HandlerContext) {
	hc.SetState(callbacktypes.UserState(state.StateEnteringName))
	hc.Handler.StateManager.DeleteData(hc.TelegramID, common.DataFormName)

	text, kb := common.BuildFormScreen(hc.Session, hc.Handler.Slots.Location())
	common.RenderScreen(hc, text, kb)
}

// HandleFormRetry повторная отправка формы с уже введёнными данными
func HandleFormRetry(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithScreen(ctx, b, callback, h, formScreens, func(hc *common.HandlerContext) {
		if hc.Session.Name == "" || hc.Session.Phone == "" {
			editForm(hc)
			return
		}

		h.Logger.Info("Retrying booking submit", zap.Int64("telegram_id", hc.TelegramID))

		hc.Answer("")
		if err := hc.DeleteMessage(); err != nil {
			h.Logger.Warn("Failed to delete failed-submit message", zap.Error(err))
		}

		h.SubmitForm(ctx, b, hc.TelegramID, hc.ChatID)
	})
}
