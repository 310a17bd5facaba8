package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Freeeeeet/citybooking_bot/internal/repository/base"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"github.com/jackc/pgx/v5/pgxpool"
)

// slotStoreRowID SlotMap хранится одним документом, как в ячейке таблицы
const slotStoreRowID = 1

type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

// Load читает SlotMap. Если документа ещё нет, возвращает пустой SlotMap.
func (r *SlotRepository) Load(ctx context.Context) (slotstore.SlotMap, error) {
	query := `
		SELECT payload
		FROM slot_store
		WHERE id = $1
	`

	var payload []byte
	err := r.QueryRow(ctx, query, slotStoreRowID).Scan(&payload)
	if err != nil {
		if base.IsNotFound(err) {
			return slotstore.SlotMap{}, nil
		}
		return nil, fmt.Errorf("load slots: %w", err)
	}

	slots := slotstore.SlotMap{}
	if err := json.Unmarshal(payload, &slots); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	return slots, nil
}

// Save целиком перезаписывает SlotMap
func (r *SlotRepository) Save(ctx context.Context, slots slotstore.SlotMap) error {
	if slots == nil {
		slots = slotstore.SlotMap{}
	}
	payload, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("encode slots: %w", err)
	}

	query := `
		INSERT INTO slot_store (id, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = NOW()
	`

	affected, err := r.ExecAffected(ctx, query, slotStoreRowID, payload)
	if err != nil {
		return fmt.Errorf("save slots: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("save slots: no rows written")
	}

	return nil
}
