package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSlot = "2024-06-01T10:00:00.000Z"

func newBookingFixture(t *testing.T) (*fakeBackend, *SlotService, *BookingService) {
	t.Helper()
	backend := newFakeBackend(slotstore.SlotMap{
		"Moscow": {testSlot, "2024-06-01T11:00:00.000Z"},
	})
	slots := newSlotService(t, backend)
	return backend, slots, NewBookingService(backend, slots, time.Second, zap.NewNop())
}

func formSession() wizard.Session {
	return wizard.Session{
		Screen:       wizard.ScreenFillingForm,
		City:         "Moscow",
		LocationKey:  "Moscow",
		SelectedDate: "2024-06-01",
		SelectedSlot: testSlot,
	}
}

func TestSubmit_Accepted(t *testing.T) {
	backend, slots, bookings := newBookingFixture(t)

	got, err := bookings.Submit(context.Background(), "42", formSession(), "Иван", "+7999", "42")

	require.NoError(t, err)
	assert.Equal(t, wizard.ScreenSucceeded, got.Screen)
	assert.False(t, slots.HasSlot("Moscow", testSlot))
	assert.Equal(t, []string{"2024-06-01T11:00:00.000Z"}, backend.stored["Moscow"])

	require.Len(t, backend.bookings, 1)
	req := backend.bookings[0]
	assert.Equal(t, model.SessionOffline, req.Type)
	assert.Equal(t, "Moscow", req.City)
	assert.Equal(t, "01.06.2024 10:00", req.Slot)
	assert.Equal(t, "Иван", req.FullName)
	assert.Equal(t, "42", req.ExternalID)
	_, err = uuid.Parse(req.RequestID)
	assert.NoError(t, err)
}

func TestSubmit_RejectedLeavesStoreUntouched(t *testing.T) {
	backend, slots, bookings := newBookingFixture(t)
	backend.bookingOK = false

	got, err := bookings.Submit(context.Background(), "42", formSession(), "Иван", "+7999", "")

	require.NoError(t, err)
	assert.Equal(t, wizard.ScreenFillingForm, got.Screen)
	assert.ErrorIs(t, got.LastError, wizard.ErrSubmitFailed)
	assert.True(t, slots.HasSlot("Moscow", testSlot))
	assert.Zero(t, backend.saveCalls)
}

func TestSubmit_NetworkErrorIsRejection(t *testing.T) {
	backend, slots, bookings := newBookingFixture(t)
	backend.bookingErr = errNetwork

	got, err := bookings.Submit(context.Background(), "42", formSession(), "Иван", "+7999", "")

	require.NoError(t, err)
	assert.Equal(t, wizard.ScreenFillingForm, got.Screen)
	assert.True(t, slots.HasSlot("Moscow", testSlot))
}

func TestSubmit_Validation(t *testing.T) {
	backend, _, bookings := newBookingFixture(t)

	_, err := bookings.Submit(context.Background(), "42", formSession(), "", "+7999", "")
	assert.ErrorIs(t, err, wizard.ErrContactRequired)

	_, err = bookings.Submit(context.Background(), "42", wizard.New(), "Иван", "+7999", "")
	assert.ErrorIs(t, err, wizard.ErrInvalidTransition)

	assert.Zero(t, backend.createCalls)
}

func TestSubmit_SlotAlreadyTaken(t *testing.T) {
	backend, slots, bookings := newBookingFixture(t)
	slots.ConsumeSlot(context.Background(), "Moscow", testSlot)

	got, err := bookings.Submit(context.Background(), "42", formSession(), "Иван", "+7999", "")

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, wizard.ScreenFillingForm, got.Screen)
	assert.Zero(t, backend.createCalls)
}

func TestSubmit_InFlightGuard(t *testing.T) {
	backend, _, bookings := newBookingFixture(t)
	backend.block = make(chan struct{})
	backend.entered = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	var first wizard.Session
	var firstErr error
	go func() {
		defer wg.Done()
		first, firstErr = bookings.Submit(context.Background(), "42", formSession(), "Иван", "+7999", "")
	}()

	<-backend.entered
	assert.True(t, bookings.InFlight("42"))

	_, err := bookings.Submit(context.Background(), "42", formSession(), "Иван", "+7999", "")
	assert.ErrorIs(t, err, ErrRequestInFlight)

	close(backend.block)
	wg.Wait()

	require.NoError(t, firstErr)
	assert.Equal(t, wizard.ScreenSucceeded, first.Screen)
	assert.Equal(t, 1, backend.createCalls)
	assert.False(t, bookings.InFlight("42"))
}

func TestSubmit_SameSlotByAnotherClientWhileInFlight(t *testing.T) {
	backend, slots, bookings := newBookingFixture(t)
	backend.block = make(chan struct{})
	backend.entered = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = bookings.Submit(context.Background(), "42", formSession(), "Иван", "+7999", "")
	}()

	<-backend.entered

	got, err := bookings.Submit(context.Background(), "43", formSession(), "Пётр", "+7888", "")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, wizard.ScreenFillingForm, got.Screen)

	close(backend.block)
	wg.Wait()

	require.NoError(t, firstErr)
	assert.Equal(t, 1, backend.createCalls)
	assert.False(t, slots.HasSlot("Moscow", testSlot))
}

func TestSubmit_OtherSlotNotBlocked(t *testing.T) {
	backend, _, bookings := newBookingFixture(t)

	other := formSession()
	other.SelectedSlot = "2024-06-01T11:00:00.000Z"

	_, err := bookings.Submit(context.Background(), "42", formSession(), "Иван", "+7999", "")
	require.NoError(t, err)
	_, err = bookings.Submit(context.Background(), "43", other, "Пётр", "+7888", "")
	require.NoError(t, err)

	assert.Equal(t, 2, backend.createCalls)
	assert.Empty(t, backend.stored["Moscow"])
}

func TestSubmit_RefreshDuringBookingDoesNotReviveSlot(t *testing.T) {
	backend, slots, bookings := newBookingFixture(t)

	entered, release := backend.holdFetch()
	done := make(chan error, 1)
	go func() { done <- slots.Refresh(context.Background()) }()
	<-entered

	got, err := bookings.Submit(context.Background(), "42", formSession(), "Иван", "+7999", "")
	require.NoError(t, err)
	require.Equal(t, wizard.ScreenSucceeded, got.Screen)

	release()
	require.NoError(t, <-done)

	assert.False(t, slots.HasSlot("Moscow", testSlot))

	_, err = bookings.Submit(context.Background(), "43", formSession(), "Пётр", "+7888", "")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, 1, backend.createCalls)
}
