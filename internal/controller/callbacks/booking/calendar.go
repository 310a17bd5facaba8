package booking

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/state"
	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Calendar Handlers
// ========================

var calendarScreens = []wizard.Screen{wizard.ScreenBrowsingCalendar}

// HandleChooseType выбор онлайн или оффлайн формата
func HandleChooseType(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	screens := []wizard.Screen{wizard.ScreenAwaitingCityResult}
	common.WithScreen(ctx, b, callback, h, screens, func(hc *common.HandlerContext) {
		sessionType := model.SessionType(strings.TrimPrefix(callback.Data, common.ChooseType))

		if err := hc.Apply(wizard.SessionTypeChosen{Type: sessionType}); err != nil {
			common.HandleError(hc, err, "choose_session_type")
			return
		}

		loc := h.Slots.Location()
		dates := h.Slots.AvailableDates(hc.Session.LocationKey)
		month := common.InitialMonth("", dates, loc)
		hc.SetData(common.DataMonth, month)

		h.Logger.Info("Session type chosen",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("location", hc.Session.LocationKey),
			zap.Int("dates", len(dates)))

		ShowCalendar(hc, month)
	})
}

// HandleCalendarMonth листание месяцев
func HandleCalendarMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithScreen(ctx, b, callback, h, calendarScreens, func(hc *common.HandlerContext) {
		month, err := formatting.ParseMonth(strings.TrimPrefix(callback.Data, common.CalendarMonth), h.Slots.Location())
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "calendar_month")
			return
		}

		hc.SetData(common.DataMonth, month)
		ShowCalendar(hc, month)
	})
}

// HandleCalendarDay выбор даты
func HandleCalendarDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithScreen(ctx, b, callback, h, calendarScreens, func(hc *common.HandlerContext) {
		date := strings.TrimPrefix(callback.Data, common.CalendarDay)
		day, err := time.ParseInLocation(slotstore.DateLayout, date, h.Slots.Location())
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "calendar_day")
			return
		}

		if err := hc.Apply(wizard.DateSelected{Date: date}); err != nil {
			common.HandleError(hc, err, "calendar_day")
			return
		}

		month := formatting.MonthOf(day)
		hc.SetData(common.DataMonth, month)
		ShowCalendar(hc, month)
	})
}

// HandleCalendarSlot выбор времени
func HandleCalendarSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithScreen(ctx, b, callback, h, calendarScreens, func(hc *common.HandlerContext) {
		slot := strings.TrimPrefix(callback.Data, common.CalendarSlot)

		// Слот мог исчезнуть после обновления списка из бэкенда
		if !h.Slots.HasSlot(hc.Session.LocationKey, slot) {
			hc.AnswerAlert(common.ErrorMessage(service.ErrSlotUnavailable))
			renderCalendar(hc, currentMonth(hc))
			return
		}

		if err := hc.Apply(wizard.SlotSelected{Slot: slot}); err != nil {
			common.HandleError(hc, err, "calendar_slot")
			return
		}

		ShowCalendar(hc, currentMonth(hc))
	})
}

// HandleCalendarNext переход к форме контактов
func HandleCalendarNext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithScreen(ctx, b, callback, h, calendarScreens, func(hc *common.HandlerContext) {
		if err := hc.Apply(wizard.Proceed{}); err != nil {
			common.HandleError(hc, err, "calendar_next")
			return
		}

		hc.SetState(callbacktypes.UserState(state.StateEnteringName))

		text, kb := common.BuildFormScreen(hc.Session, h.Slots.Location())
		common.RenderScreen(hc, text, kb)
	})
}

// HandleCalendarBack возврат к выбору формата
func HandleCalendarBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithScreen(ctx, b, callback, h, calendarScreens, func(hc *common.HandlerContext) {
		if err := hc.Apply(wizard.Back{}); err != nil {
			common.HandleError(hc, err, "calendar_back")
			return
		}
		hc.Handler.StateManager.DeleteData(hc.TelegramID, common.DataMonth)

		text, kb := common.BuildCityResultScreen(hc.Session)
		common.RenderScreen(hc, text, kb)
	})
}

// ShowCalendar перерисовывает календарь и отвечает на callback
func ShowCalendar(hc *common.HandlerContext, month time.Time) {
	if renderCalendar(hc, month) {
		hc.Answer("")
	}
}

func renderCalendar(hc *common.HandlerContext, month time.Time) bool {
	slots := hc.Handler.Slots
	key := hc.Session.LocationKey

	var daySlots []string
	if hc.Session.SelectedDate != "" {
		daySlots = slots.SlotsOnDate(key, hc.Session.SelectedDate)
	}

	text, kb := common.BuildCalendarScreen(hc.Session, month, slots.AvailableDates(key), daySlots, slots.Location())
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "render_calendar")
		return false
	}
	return true
}

func currentMonth(hc *common.HandlerContext) time.Time {
	if month, ok := common.LoadMonth(hc.Handler.StateManager, hc.TelegramID); ok {
		return month
	}
	loc := hc.Handler.Slots.Location()
	return common.InitialMonth(hc.Session.SelectedDate, hc.Handler.Slots.AvailableDates(hc.Session.LocationKey), loc)
}
