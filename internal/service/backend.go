package service

import (
	"context"
	"errors"

	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
)

// Backend внешнее хранилище слотов и записей
type Backend interface {
	// FetchSlots возвращает весь SlotMap. Ошибка при неуспешном ответе или битых данных.
	FetchSlots(ctx context.Context) (slotstore.SlotMap, error)
	// SaveSlots целиком перезаписывает SlotMap. true только если бэкенд подтвердил сохранение.
	SaveSlots(ctx context.Context, slots slotstore.SlotMap) (bool, error)
	// CreateBooking записывает заявку. true если бэкенд принял запись.
	CreateBooking(ctx context.Context, req model.BookingRequest) (bool, error)
}

var (
	ErrPersistFailed    = errors.New("slots were not saved")
	ErrRequestInFlight  = errors.New("request is already in progress")
	ErrSlotUnavailable  = errors.New("slot is no longer available")
	ErrNothingGenerated = errors.New("grid produced no slots")
)
