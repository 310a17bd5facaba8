package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/state"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start: новый проход сценария записи
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetSession(telegramID, wizard.New())
	h.stateManager.SetState(telegramID, state.StateEnteringCity)

	h.logger.Info("Booking started",
		zap.Int64("telegram_id", telegramID),
		zap.String("username", update.Message.From.Username))

	// Свежий список слотов к моменту ввода города
	go func() {
		if err := h.slotService.Refresh(context.WithoutCancel(ctx)); err != nil {
			h.logger.Warn("Slot refresh on start failed", zap.Error(err))
		}
	}()

	h.sendScreen(ctx, b, update.Message.Chat.ID, common.BuildCityPromptScreen(), nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка\n\n" +
		"/start - Записаться на сессию\n" +
		"/cancel - Отменить текущую запись\n" +
		"/help - Показать эту справку\n\n" +
		"Введите город, выберите онлайн или оффлайн формат, " +
		"дату и время в календаре, затем оставьте имя и телефон."

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего прохода
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	if !h.stateManager.HasSession(telegramID) {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	h.stateManager.ClearState(telegramID)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"✅ Операция отменена.\n\nНачать заново: /start")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateEnteringCity:
		h.handleCityStep(ctx, b, update)
	case state.StateEnteringName:
		h.handleNameStep(ctx, b, update)
	case state.StateEnteringPhone:
		h.handlePhoneStep(ctx, b, update)
	case state.StateAwaitingDone:
		h.handleDoneStep(ctx, b, update)
	case state.StateAdminCity, state.StateAdminStartTime, state.StateAdminEndTime, state.StateAdminInterval:
		h.handleAdminField(ctx, b, update, currentState)
	case state.StateNone:
		// Без /start первое сообщение считаем городом
		if h.stateManager.GetSession(telegramID).Screen == wizard.ScreenSelectingCity {
			h.handleCityStep(ctx, b, update)
			return
		}
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Используйте кнопки выше или начните заново: /start")
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
