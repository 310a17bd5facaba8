package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/state"
	"github.com/Freeeeeet/citybooking_bot/internal/slotgrid"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// handleAdminField текстовый ввод полей формы генерации сетки
func (h *Handlers) handleAdminField(ctx context.Context, b *bot.Bot, update *models.Update, field state.UserState) {
	msg := update.Message
	telegramID := msg.From.ID

	if h.stateManager.GetSession(telegramID).Screen != wizard.ScreenAdmin || !h.gate.Allowed(telegramID) {
		h.stateManager.SetState(telegramID, state.StateNone)
		h.sendError(ctx, b, msg.Chat.ID, common.ErrorMessage(common.ErrNotAdmin))
		return
	}

	value := strings.TrimSpace(msg.Text)
	draft := common.LoadDraft(h.stateManager, telegramID, h.slotService.Location())

	switch field {
	case state.StateAdminCity:
		if value == "" {
			h.sendError(ctx, b, msg.Chat.ID, common.ErrorMessage(slotgrid.ErrCityRequired))
			return
		}
		draft.Config.City = value

	case state.StateAdminStartTime, state.StateAdminEndTime:
		if _, _, err := slotgrid.ParseClock(value); err != nil {
			h.sendError(ctx, b, msg.Chat.ID, common.ErrorMessage(err)+". Попробуйте ещё раз:")
			return
		}
		if field == state.StateAdminStartTime {
			draft.Config.DailyStart = value
		} else {
			draft.Config.DailyEnd = value
		}

	case state.StateAdminInterval:
		minutes, err := strconv.Atoi(value)
		if err != nil || minutes <= 0 {
			h.sendError(ctx, b, msg.Chat.ID, common.ErrorMessage(slotgrid.ErrInvalidInterval)+". Попробуйте ещё раз:")
			return
		}
		draft.Config.Interval = minutes
	}

	common.SaveDraft(h.stateManager, telegramID, draft)
	h.stateManager.SetState(telegramID, state.StateNone)

	h.logger.Info("Admin draft updated",
		zap.Int64("telegram_id", telegramID),
		zap.String("field", string(field)))

	text, kb := common.BuildAdminCreateScreen(draft)
	h.sendScreen(ctx, b, msg.Chat.ID, text, kb)
}
