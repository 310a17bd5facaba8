package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
)

var (
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrOfflineUnavailable = errors.New("offline sessions are not available in this city")
	ErrNoDateSelected     = errors.New("no date selected")
	ErrNoSlotSelected     = errors.New("no slot selected")
	ErrContactRequired    = errors.New("name and phone are required")
	ErrSubmitFailed       = errors.New("booking was not accepted")
)

// Event событие, переводящее сессию в следующее состояние
type Event interface {
	eventName() string
}

// CitySubmitted пользователь ввёл город. Admin выставляет проверка доступа.
type CitySubmitted struct {
	Input string
	Slots slotstore.SlotMap
	Admin bool
}

// SessionTypeChosen пользователь выбрал онлайн или оффлайн
type SessionTypeChosen struct {
	Type model.SessionType
}

// DateSelected выбрана дата в календаре
type DateSelected struct {
	Date string
}

// SlotSelected выбрано время
type SlotSelected struct {
	Slot string
}

// Proceed переход от календаря к форме
type Proceed struct{}

// FormSubmitted форма отправлена
type FormSubmitted struct {
	Name  string
	Phone string
}

// SubmitFinished бэкенд ответил на заявку
type SubmitFinished struct {
	OK bool
}

// Back кнопка «назад»
type Back struct{}

func (CitySubmitted) eventName() string     { return "city_submitted" }
func (SessionTypeChosen) eventName() string { return "session_type_chosen" }
func (DateSelected) eventName() string      { return "date_selected" }
func (SlotSelected) eventName() string      { return "slot_selected" }
func (Proceed) eventName() string           { return "proceed" }
func (FormSubmitted) eventName() string     { return "form_submitted" }
func (SubmitFinished) eventName() string    { return "submit_finished" }
func (Back) eventName() string              { return "back" }

// Transition применяет событие к сессии
func Transition(s Session, ev Event) (Session, error) {
	switch s.Screen {
	case ScreenSelectingCity:
		if e, ok := ev.(CitySubmitted); ok {
			return submitCity(s, e), nil
		}

	case ScreenAwaitingCityResult:
		switch e := ev.(type) {
		case SessionTypeChosen:
			return chooseSessionType(s, e)
		case Back:
			return Session{Screen: ScreenSelectingCity, CityInput: s.CityInput}, nil
		}

	case ScreenBrowsingCalendar:
		switch e := ev.(type) {
		case DateSelected:
			next := s
			next.SelectedDate = e.Date
			next.SelectedSlot = ""
			return next, nil
		case SlotSelected:
			if s.SelectedDate == "" {
				return s, ErrNoDateSelected
			}
			next := s
			next.SelectedSlot = e.Slot
			return next, nil
		case Proceed:
			if s.SelectedSlot == "" {
				return s, ErrNoSlotSelected
			}
			next := s
			next.Screen = ScreenFillingForm
			return next, nil
		case Back:
			next := s
			next.Screen = ScreenAwaitingCityResult
			next.LocationKey = ""
			next.SelectedDate = ""
			next.SelectedSlot = ""
			return next, nil
		}

	case ScreenFillingForm:
		switch e := ev.(type) {
		case FormSubmitted:
			name := strings.TrimSpace(e.Name)
			phone := strings.TrimSpace(e.Phone)
			if name == "" || phone == "" {
				return s, ErrContactRequired
			}
			next := s
			next.Name = name
			next.Phone = phone
			next.LastError = nil
			next.Screen = ScreenSubmitting
			return next, nil
		case Back:
			next := s
			next.Screen = ScreenBrowsingCalendar
			next.LastError = nil
			return next, nil
		}

	case ScreenSubmitting:
		if e, ok := ev.(SubmitFinished); ok {
			next := s
			if e.OK {
				next.Screen = ScreenSucceeded
				next.LastError = nil
				return next, nil
			}
			next.Screen = ScreenFillingForm
			next.LastError = ErrSubmitFailed
			return next, nil
		}

	case ScreenAdmin:
		if _, ok := ev.(Back); ok {
			return New(), nil
		}
	}

	return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, ev.eventName(), s.Screen)
}

func submitCity(s Session, e CitySubmitted) Session {
	input := strings.TrimSpace(e.Input)
	if e.Admin {
		return Session{Screen: ScreenAdmin}
	}

	found := slotstore.LookupCity(e.Slots, input)
	next := Session{
		Screen:           ScreenAwaitingCityResult,
		CityInput:        input,
		OfflineAvailable: found.Available,
	}
	if found.Available {
		next.City = found.City
	}
	return next
}

func chooseSessionType(s Session, e SessionTypeChosen) (Session, error) {
	next := s
	next.SelectedDate = ""
	next.SelectedSlot = ""

	switch e.Type {
	case model.SessionOnline:
		next.LocationKey = slotstore.OnlineKey
	case model.SessionOffline:
		if !s.OfflineAvailable || s.City == "" {
			return s, ErrOfflineUnavailable
		}
		next.LocationKey = s.City
	default:
		return s, fmt.Errorf("%w: unknown session type %q", ErrInvalidTransition, e.Type)
	}

	next.Screen = ScreenBrowsingCalendar
	return next, nil
}
