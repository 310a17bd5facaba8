package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/state"
	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Booking Dialog
// ========================

// handleCityStep ввод города. Секрет администратора открывает админку.
func (h *Handlers) handleCityStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	telegramID := msg.From.ID
	input := strings.TrimSpace(msg.Text)

	if input == "" {
		h.sendError(ctx, b, msg.Chat.ID, "❌ Введите название города.")
		return
	}

	session := h.stateManager.GetSession(telegramID)
	if session.Screen != wizard.ScreenSelectingCity {
		session = wizard.New()
	}

	if h.gate.Check(telegramID, input) {
		h.deleteMessage(ctx, b, msg)

		next, err := wizard.Transition(session, wizard.CitySubmitted{Input: input, Admin: true})
		if err != nil {
			h.logger.Error("Failed to enter admin mode", zap.Error(err))
			h.sendError(ctx, b, msg.Chat.ID, common.ErrorMessage(err))
			return
		}
		h.stateManager.SetSession(telegramID, next)
		h.stateManager.SetState(telegramID, state.StateNone)

		h.logger.Info("Admin mode entered", zap.Int64("telegram_id", telegramID))

		text, kb := common.BuildAdminMenuScreen(h.slotService.Snapshot())
		h.sendScreen(ctx, b, msg.Chat.ID, text, kb)
		return
	}

	next, err := wizard.Transition(session, wizard.CitySubmitted{Input: input, Slots: h.slotService.Snapshot()})
	if err != nil {
		h.logger.Error("Failed to submit city", zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.stateManager.SetSession(telegramID, next)
	h.stateManager.SetState(telegramID, state.StateNone)

	h.logger.Info("City submitted",
		zap.Int64("telegram_id", telegramID),
		zap.String("city", next.City),
		zap.Bool("offline_available", next.OfflineAvailable))

	text, kb := common.BuildCityResultScreen(next)
	h.sendScreen(ctx, b, msg.Chat.ID, text, kb)
}

// handleNameStep ввод имени
func (h *Handlers) handleNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	telegramID := msg.From.ID

	if !h.requireScreen(ctx, b, msg, wizard.ScreenFillingForm) {
		return
	}

	name := strings.TrimSpace(msg.Text)
	if name == "" {
		h.sendError(ctx, b, msg.Chat.ID, "❌ Имя не может быть пустым. Попробуйте ещё раз:")
		return
	}

	h.stateManager.SetData(telegramID, common.DataFormName, name)
	h.stateManager.SetState(telegramID, state.StateEnteringPhone)

	h.sendScreen(ctx, b, msg.Chat.ID, common.BuildPhonePrompt(name), nil)
}

// handlePhoneStep ввод телефона и отправка формы
func (h *Handlers) handlePhoneStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	telegramID := msg.From.ID

	if !h.requireScreen(ctx, b, msg, wizard.ScreenFillingForm) {
		return
	}

	phone := strings.TrimSpace(msg.Text)
	if phone == "" {
		h.sendError(ctx, b, msg.Chat.ID, "❌ Телефон не может быть пустым. Попробуйте ещё раз:")
		return
	}

	var name string
	if v, ok := h.stateManager.GetData(telegramID, common.DataFormName); ok {
		name, _ = v.(string)
	}
	if name == "" {
		h.stateManager.SetState(telegramID, state.StateEnteringName)
		h.sendError(ctx, b, msg.Chat.ID, "❌ Сначала введите имя и фамилию:")
		return
	}

	h.submit(ctx, b, telegramID, msg.Chat.ID, name, phone)
}

// handleDoneStep ожидание слова «Готово» после успешной записи
func (h *Handlers) handleDoneStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	telegramID := msg.From.ID

	if !strings.EqualFold(strings.TrimSpace(msg.Text), common.DoneKeyword) {
		h.sendMessage(ctx, b, msg.Chat.ID, "Чтобы завершить, отправьте слово «"+common.DoneKeyword+"».")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.logger.Info("Booking flow completed", zap.Int64("telegram_id", telegramID))

	h.sendMessage(ctx, b, msg.Chat.ID, "🙌 Спасибо! До встречи.\n\nНовая запись: /start")
}

// SubmitForm повторно отправляет форму с сохранёнными именем и телефоном
func (h *Handlers) SubmitForm(ctx context.Context, b *bot.Bot, telegramID, chatID int64) {
	session := h.stateManager.GetSession(telegramID)
	h.submit(ctx, b, telegramID, chatID, session.Name, session.Phone)
}

func (h *Handlers) submit(ctx context.Context, b *bot.Bot, telegramID, chatID int64, name, phone string) {
	session := h.stateManager.GetSession(telegramID)
	if session.Screen != wizard.ScreenFillingForm {
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrSessionExpired))
		return
	}

	callerKey := strconv.FormatInt(telegramID, 10)
	if h.bookingService.InFlight(callerKey) {
		h.sendError(ctx, b, chatID, common.ErrorMessage(service.ErrRequestInFlight))
		return
	}

	h.sendMessage(ctx, b, chatID, common.BuildSubmittingScreen())

	next, err := h.bookingService.Submit(ctx, callerKey, session, name, phone, callerKey)
	switch {
	case errors.Is(err, service.ErrRequestInFlight):
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return

	case errors.Is(err, service.ErrSlotUnavailable):
		// Слот заняли: назад в календарь на ту же дату
		h.showCalendarAgain(ctx, b, telegramID, chatID, session)
		return

	case errors.Is(err, wizard.ErrContactRequired):
		h.stateManager.SetState(telegramID, state.StateEnteringName)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nВведите имя и фамилию:")
		return

	case err != nil:
		h.logger.Error("Failed to submit booking",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.SetSession(telegramID, next)
	h.stateManager.DeleteData(telegramID, common.DataFormName)

	if next.Screen == wizard.ScreenSucceeded {
		h.stateManager.SetState(telegramID, state.StateAwaitingDone)
		h.sendScreen(ctx, b, chatID, common.BuildSuccessScreen(next, h.slotService.Location()), nil)
		return
	}

	h.stateManager.SetState(telegramID, state.StateNone)
	text, kb := common.BuildSubmitFailedScreen()
	h.sendScreen(ctx, b, chatID, text, kb)
}

func (h *Handlers) showCalendarAgain(ctx context.Context, b *bot.Bot, telegramID, chatID int64, session wizard.Session) {
	back, err := wizard.Transition(session, wizard.Back{})
	if err == nil {
		back, err = wizard.Transition(back, wizard.DateSelected{Date: session.SelectedDate})
	}
	if err != nil {
		h.logger.Error("Failed to return to calendar", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.SetSession(telegramID, back)
	h.stateManager.SetState(telegramID, state.StateNone)
	h.stateManager.DeleteData(telegramID, common.DataFormName)

	loc := h.slotService.Location()
	dates := h.slotService.AvailableDates(back.LocationKey)
	month, ok := common.LoadMonth(h.stateManager, telegramID)
	if !ok {
		month = common.InitialMonth(back.SelectedDate, dates, loc)
	}

	text, kb := common.BuildCalendarScreen(back, month, dates, h.slotService.SlotsOnDate(back.LocationKey, back.SelectedDate), loc)
	h.sendError(ctx, b, chatID, common.ErrorMessage(service.ErrSlotUnavailable))
	h.sendScreen(ctx, b, chatID, text, kb)
}

// requireScreen проверяет что сессия на нужном экране
func (h *Handlers) requireScreen(ctx context.Context, b *bot.Bot, msg *models.Message, screen wizard.Screen) bool {
	if h.stateManager.GetSession(msg.From.ID).Screen == screen {
		return true
	}

	h.stateManager.SetState(msg.From.ID, state.StateNone)
	h.sendError(ctx, b, msg.Chat.ID, common.ErrorMessage(common.ErrSessionExpired))
	return false
}
