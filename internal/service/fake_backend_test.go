package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
)

// fakeBackend бэкенд в памяти для тестов
type fakeBackend struct {
	mu sync.Mutex

	stored   slotstore.SlotMap
	bookings []model.BookingRequest

	fetchErr    error
	saveOK      bool
	saveErr     error
	bookingOK   bool
	bookingErr  error
	saveCalls   int
	createCalls int

	// fetchBlock, если задан, держит FetchSlots до закрытия канала.
	// Возвращается SlotMap, сохранённый на момент вызова.
	fetchBlock chan struct{}
	// fetchEntered закрывается, когда FetchSlots прочитал данные
	fetchEntered chan struct{}

	// block, если задан, держит CreateBooking до закрытия канала
	block chan struct{}
	// entered сигналит, что CreateBooking начал выполняться
	entered chan struct{}
}

func newFakeBackend(stored slotstore.SlotMap) *fakeBackend {
	return &fakeBackend{stored: stored, saveOK: true, bookingOK: true}
}

func (f *fakeBackend) FetchSlots(ctx context.Context) (slotstore.SlotMap, error) {
	f.mu.Lock()
	if f.fetchErr != nil {
		f.mu.Unlock()
		return nil, f.fetchErr
	}
	data := f.stored.Clone()
	block, entered := f.fetchBlock, f.fetchEntered
	f.fetchBlock, f.fetchEntered = nil, nil
	f.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return data, nil
}

// holdFetch заставляет следующий FetchSlots ждать release
func (f *fakeBackend) holdFetch() (entered <-chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchBlock = make(chan struct{})
	f.fetchEntered = make(chan struct{})
	block := f.fetchBlock
	return f.fetchEntered, func() { close(block) }
}

func (f *fakeBackend) SaveSlots(ctx context.Context, slots slotstore.SlotMap) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.saveErr != nil {
		return false, f.saveErr
	}
	if f.saveOK {
		f.stored = slots.Clone()
	}
	return f.saveOK, nil
}

func (f *fakeBackend) CreateBooking(ctx context.Context, req model.BookingRequest) (bool, error) {
	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.bookingErr != nil {
		return false, f.bookingErr
	}
	if f.bookingOK {
		f.bookings = append(f.bookings, req)
	}
	return f.bookingOK, nil
}

var errNetwork = errors.New("network down")
