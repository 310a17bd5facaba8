// Package wizard описывает сценарий записи как явный конечный автомат.
//
// Session это неизменяемое значение: Transition принимает текущую сессию
// и событие и возвращает следующую сессию. Недопустимые переходы
// отклоняются с ErrInvalidTransition, исходная сессия при этом не меняется.
package wizard

import (
	"strings"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
)

// Screen текущий экран сценария
type Screen string

const (
	ScreenSelectingCity      Screen = "selecting_city"
	ScreenAwaitingCityResult Screen = "awaiting_city_result"
	ScreenBrowsingCalendar   Screen = "browsing_calendar"
	ScreenFillingForm        Screen = "filling_form"
	ScreenSubmitting         Screen = "submitting"
	ScreenSucceeded          Screen = "succeeded"
	ScreenAdmin              Screen = "admin"
)

// Session состояние одного прохода по сценарию записи
type Session struct {
	Screen Screen

	CityInput        string
	City             string // найденный город в каноническом написании
	OfflineAvailable bool

	LocationKey  string // "online" или город, выбранный для записи
	SelectedDate string // YYYY-MM-DD
	SelectedSlot string // ISO-таймстемп

	Name  string
	Phone string

	LastError error // ошибка последней отправки формы
}

// New возвращает сессию на экране выбора города
func New() Session {
	return Session{Screen: ScreenSelectingCity}
}

// SessionType возвращает формат выбранной сессии
func (s Session) SessionType() model.SessionType {
	if s.LocationKey == slotstore.OnlineKey {
		return model.SessionOnline
	}
	return model.SessionOffline
}

// LocationLabel подпись локации для записи
func (s Session) LocationLabel() string {
	if s.LocationKey == slotstore.OnlineKey {
		return model.OnlineCityLabel
	}
	return s.LocationKey
}

// Request собирает заявку на запись из данных сессии
func (s Session) Request(loc *time.Location, externalID string) (model.BookingRequest, error) {
	if s.SelectedSlot == "" {
		return model.BookingRequest{}, ErrNoSlotSelected
	}
	if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Phone) == "" {
		return model.BookingRequest{}, ErrContactRequired
	}

	slotTime, err := slotstore.ParseSlot(s.SelectedSlot)
	if err != nil {
		return model.BookingRequest{}, err
	}

	return model.BookingRequest{
		Type:       s.SessionType(),
		City:       s.LocationLabel(),
		Slot:       model.FormatSlot(slotTime, loc),
		FullName:   strings.TrimSpace(s.Name),
		Phone:      strings.TrimSpace(s.Phone),
		ExternalID: externalID,
	}, nil
}
