package admin

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/state"
	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"github.com/Freeeeeet/citybooking_bot/internal/slotgrid"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Grid Generation Form
// ========================

// HandleCreate открывает форму генерации сетки
func HandleCreate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.SetState(callbacktypes.UserState(state.StateNone))
		renderDraft(hc, loadDraft(hc))
	})
}

// HandleKind переключает онлайн/оффлайн
func HandleKind(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		kind := model.SessionType(strings.TrimPrefix(callback.Data, common.AdminKind))
		if kind != model.SessionOnline && kind != model.SessionOffline {
			common.HandleError(hc, common.ErrInvalidFormat, "admin_kind")
			return
		}

		draft := loadDraft(hc)
		draft.Config.Kind = kind
		saveDraft(hc, draft)
		renderDraft(hc, draft)
	})
}

// HandleCity запрашивает название города
func HandleCity(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	promptField(ctx, b, callback, h, state.StateAdminCity, "🏙 Введите название города:")
}

// HandleStart запрашивает время начала дня
func HandleStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	promptField(ctx, b, callback, h, state.StateAdminStartTime, "🕙 Введите время начала в формате ЧЧ:ММ (например, 10:00):")
}

// HandleEnd запрашивает время конца дня
func HandleEnd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	promptField(ctx, b, callback, h, state.StateAdminEndTime, "🕕 Введите время окончания в формате ЧЧ:ММ (например, 18:00):")
}

// HandleInterval выбор интервала: пресет или ручной ввод
func HandleInterval(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	value := strings.TrimPrefix(callback.Data, common.AdminInterval)
	if value == common.AdminIntervalCustom {
		promptField(ctx, b, callback, h, state.StateAdminInterval, "⏱ Введите интервал в минутах:")
		return
	}

	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		minutes, err := strconv.Atoi(value)
		if err != nil || minutes <= 0 {
			common.HandleError(hc, common.ErrInvalidFormat, "admin_interval")
			return
		}

		draft := loadDraft(hc)
		draft.Config.Interval = minutes
		saveDraft(hc, draft)
		renderDraft(hc, draft)
	})
}

// HandleMonth листание календаря формы
func HandleMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		month, err := formatting.ParseMonth(strings.TrimPrefix(callback.Data, common.AdminMonth), h.Slots.Location())
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "admin_month")
			return
		}

		draft := loadDraft(hc)
		draft.Month = month
		saveDraft(hc, draft)
		renderDraft(hc, draft)
	})
}

// HandleDay клик по дню: первый задаёт начало периода, второй конец
func HandleDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		day, err := time.ParseInLocation(slotstore.DateLayout, strings.TrimPrefix(callback.Data, common.AdminDay), h.Slots.Location())
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "admin_day")
			return
		}

		draft := loadDraft(hc)
		draft.Range = draft.Range.Click(day)
		saveDraft(hc, draft)
		renderDraft(hc, draft)
	})
}

// HandleGenerate генерирует сетку и сохраняет её в бэкенд
func HandleGenerate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		draft := loadDraft(hc)

		added, err := h.Slots.GenerateGrid(ctx, draft.Config, draft.Range)
		if err != nil {
			if errors.Is(err, service.ErrPersistFailed) {
				common.HandleError(hc, err, "generate_grid")
				return
			}
			// Ошибки заполнения формы не логируем как сбой
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		key := draft.Config.Key()
		h.Logger.Info("Slot grid generated",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("location", key),
			zap.Int("added", added))

		// Настройки формы остаются для следующей сетки, период сбрасывается
		draft.Range = slotgrid.Range{}
		saveDraft(hc, draft)

		text, kb := common.BuildAdminGeneratedScreen(key, added)
		common.RenderScreen(hc, text, kb)
	})
}

// promptField просит ввести значение поля формы текстом
func promptField(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	field state.UserState,
	prompt string,
) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.SetState(callbacktypes.UserState(field))

		kb := keyboard.NewBuilder().
			Row(keyboard.CancelButton(common.AdminCreate))
		common.RenderScreen(hc, prompt, kb.Build())
	})
}

func loadDraft(hc *common.HandlerContext) callbacktypes.AdminDraft {
	return common.LoadDraft(hc.Handler.StateManager, hc.TelegramID, hc.Handler.Slots.Location())
}

func saveDraft(hc *common.HandlerContext, draft callbacktypes.AdminDraft) {
	common.SaveDraft(hc.Handler.StateManager, hc.TelegramID, draft)
}

func renderDraft(hc *common.HandlerContext, draft callbacktypes.AdminDraft) {
	text, kb := common.BuildAdminCreateScreen(draft)
	common.RenderScreen(hc, text, kb)
}
