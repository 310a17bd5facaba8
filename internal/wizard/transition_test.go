package wizard

import (
	"testing"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slots = slotstore.SlotMap{
	"Moscow":            {"2024-06-01T10:00:00.000Z"},
	"Тула":              {},
	slotstore.OnlineKey: {"2024-06-02T09:00:00.000Z"},
}

func step(t *testing.T, s Session, ev Event) Session {
	t.Helper()
	next, err := Transition(s, ev)
	require.NoError(t, err)
	return next
}

func TestCitySubmitted_CaseInsensitive(t *testing.T) {
	s := step(t, New(), CitySubmitted{Input: "moscow", Slots: slots})

	assert.Equal(t, ScreenAwaitingCityResult, s.Screen)
	assert.Equal(t, "Moscow", s.City)
	assert.True(t, s.OfflineAvailable)
}

func TestCitySubmitted_NoSlots(t *testing.T) {
	for _, input := range []string{"тула", "Париж", "online"} {
		s := step(t, New(), CitySubmitted{Input: input, Slots: slots})

		assert.Equal(t, ScreenAwaitingCityResult, s.Screen, input)
		assert.False(t, s.OfflineAvailable, input)
		assert.Empty(t, s.City, input)
	}
}

func TestCitySubmitted_Admin(t *testing.T) {
	s := step(t, New(), CitySubmitted{Input: "whatever", Slots: slots, Admin: true})
	assert.Equal(t, ScreenAdmin, s.Screen)

	s = step(t, s, Back{})
	assert.Equal(t, ScreenSelectingCity, s.Screen)
}

func TestHappyPath(t *testing.T) {
	s := step(t, New(), CitySubmitted{Input: "Moscow", Slots: slots})
	s = step(t, s, SessionTypeChosen{Type: model.SessionOffline})
	assert.Equal(t, ScreenBrowsingCalendar, s.Screen)
	assert.Equal(t, "Moscow", s.LocationKey)

	s = step(t, s, DateSelected{Date: "2024-06-01"})
	s = step(t, s, SlotSelected{Slot: "2024-06-01T10:00:00.000Z"})
	s = step(t, s, Proceed{})
	assert.Equal(t, ScreenFillingForm, s.Screen)

	s = step(t, s, FormSubmitted{Name: " Иван Петров ", Phone: "+79990000000"})
	assert.Equal(t, ScreenSubmitting, s.Screen)
	assert.Equal(t, "Иван Петров", s.Name)

	s = step(t, s, SubmitFinished{OK: true})
	assert.Equal(t, ScreenSucceeded, s.Screen)

	_, err := Transition(s, Back{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitFailed_ReturnsToForm(t *testing.T) {
	s := Session{Screen: ScreenSubmitting, LocationKey: "Moscow", SelectedSlot: "x", Name: "a", Phone: "b"}

	s = step(t, s, SubmitFinished{OK: false})

	assert.Equal(t, ScreenFillingForm, s.Screen)
	assert.ErrorIs(t, s.LastError, ErrSubmitFailed)
	assert.Equal(t, "x", s.SelectedSlot)
}

func TestOnlineWhenOfflineUnavailable(t *testing.T) {
	s := step(t, New(), CitySubmitted{Input: "Париж", Slots: slots})

	_, err := Transition(s, SessionTypeChosen{Type: model.SessionOffline})
	assert.ErrorIs(t, err, ErrOfflineUnavailable)

	s = step(t, s, SessionTypeChosen{Type: model.SessionOnline})
	assert.Equal(t, slotstore.OnlineKey, s.LocationKey)
}

func TestDateSelectionClearsSlot(t *testing.T) {
	s := Session{Screen: ScreenBrowsingCalendar, LocationKey: "Moscow", SelectedDate: "2024-06-01", SelectedSlot: "x"}

	s = step(t, s, DateSelected{Date: "2024-06-02"})

	assert.Equal(t, ScreenBrowsingCalendar, s.Screen)
	assert.Empty(t, s.SelectedSlot)
}

func TestGuards(t *testing.T) {
	calendar := Session{Screen: ScreenBrowsingCalendar, LocationKey: "Moscow"}

	_, err := Transition(calendar, Proceed{})
	assert.ErrorIs(t, err, ErrNoSlotSelected)

	_, err = Transition(calendar, SlotSelected{Slot: "x"})
	assert.ErrorIs(t, err, ErrNoDateSelected)

	form := Session{Screen: ScreenFillingForm, SelectedSlot: "x"}
	_, err = Transition(form, FormSubmitted{Name: "Иван", Phone: "  "})
	assert.ErrorIs(t, err, ErrContactRequired)

	_, err = Transition(New(), FormSubmitted{Name: "a", Phone: "b"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Transition(New(), SubmitFinished{OK: true})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBackNavigation(t *testing.T) {
	form := Session{Screen: ScreenFillingForm, LocationKey: "Moscow", SelectedDate: "d", SelectedSlot: "s"}

	calendar := step(t, form, Back{})
	assert.Equal(t, ScreenBrowsingCalendar, calendar.Screen)
	assert.Equal(t, "s", calendar.SelectedSlot)

	result := step(t, calendar, Back{})
	assert.Equal(t, ScreenAwaitingCityResult, result.Screen)
	assert.Empty(t, result.LocationKey)

	city := step(t, result, Back{})
	assert.Equal(t, ScreenSelectingCity, city.Screen)
}

func TestRequest(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)

	s := Session{LocationKey: slotstore.OnlineKey, SelectedSlot: "2024-06-01T07:00:00.000Z", Name: "Иван", Phone: "123"}
	req, err := s.Request(msk, "42")
	require.NoError(t, err)

	assert.Equal(t, model.SessionOnline, req.Type)
	assert.Equal(t, model.OnlineCityLabel, req.City)
	assert.Equal(t, "01.06.2024 10:00", req.Slot)
	assert.Equal(t, "42", req.ExternalID)

	s.LocationKey = "Moscow"
	req, err = s.Request(msk, "")
	require.NoError(t, err)
	assert.Equal(t, model.SessionOffline, req.Type)
	assert.Equal(t, "Moscow", req.City)

	_, err = Session{}.Request(msk, "")
	assert.ErrorIs(t, err, ErrNoSlotSelected)
}
