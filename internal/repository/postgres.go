package repository

import (
	"context"

	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres бэкенд слотов и записей поверх PostgreSQL
type Postgres struct {
	slots    *SlotRepository
	bookings *BookingRepository
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{
		slots:    NewSlotRepository(pool),
		bookings: NewBookingRepository(pool),
	}
}

func (p *Postgres) FetchSlots(ctx context.Context) (slotstore.SlotMap, error) {
	return p.slots.Load(ctx)
}

func (p *Postgres) SaveSlots(ctx context.Context, slots slotstore.SlotMap) (bool, error) {
	if err := p.slots.Save(ctx, slots); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Postgres) CreateBooking(ctx context.Context, req model.BookingRequest) (bool, error) {
	booking := &model.Booking{
		Type:       req.Type,
		City:       req.City,
		Slot:       req.Slot,
		FullName:   req.FullName,
		Phone:      req.Phone,
		ExternalID: req.ExternalID,
	}
	if err := p.bookings.Create(ctx, booking); err != nil {
		return false, err
	}
	return true, nil
}
