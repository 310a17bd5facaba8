package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/slotgrid"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"go.uber.org/zap"
)

// SlotService держит актуальный SlotMap в памяти и синхронизирует его с бэкендом
type SlotService struct {
	backend Backend
	loc     *time.Location
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.RWMutex
	slots slotstore.SlotMap
	// gen растёт с каждым принятым локальным изменением
	gen uint64

	// writeMu сериализует цепочки «прочитать - изменить - сохранить»
	writeMu sync.Mutex
}

func NewSlotService(backend Backend, loc *time.Location, timeout time.Duration, logger *zap.Logger) *SlotService {
	if loc == nil {
		loc = time.Local
	}
	return &SlotService{
		backend: backend,
		loc:     loc,
		timeout: timeout,
		logger:  logger,
		slots:   slotstore.SlotMap{},
	}
}

// Location возвращает часовой пояс клиентов
func (s *SlotService) Location() *time.Location {
	return s.loc
}

// Refresh перечитывает SlotMap из бэкенда.
// При ошибке остаётся последнее известное состояние (пустое при первом запуске).
// Ответ, запрошенный до локального изменения, отбрасывается: иначе
// забронированный или удалённый слот вернулся бы в SlotMap.
func (s *SlotService) Refresh(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	startGen := s.generation()

	data, err := s.backend.FetchSlots(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch slots", zap.Error(err))
		return fmt.Errorf("fetch slots: %w", err)
	}
	if data == nil {
		data = slotstore.SlotMap{}
	}

	if !s.adoptFetched(data, startGen) {
		s.logger.Info("Stale slots fetch discarded",
			zap.Int("locations", len(data)))
		return nil
	}

	s.logger.Info("Slots refreshed",
		zap.Int("locations", len(data)))

	return nil
}

// Snapshot возвращает копию текущего SlotMap
func (s *SlotService) Snapshot() slotstore.SlotMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots.Clone()
}

// LookupCity ищет город среди локаций со слотами
func (s *SlotService) LookupCity(input string) slotstore.CityLookup {
	return slotstore.LookupCity(s.Snapshot(), input)
}

// AvailableDates даты, на которые у локации есть слоты
func (s *SlotService) AvailableDates(key string) []string {
	return slotstore.AvailableDates(s.Snapshot(), key, s.loc)
}

// SlotsOnDate слоты локации на дату
func (s *SlotService) SlotsOnDate(key, date string) []string {
	return slotstore.SlotsOnDate(s.Snapshot(), key, date, s.loc)
}

// Grouped слоты всех локаций по датам (для админки)
func (s *SlotService) Grouped() map[string]map[string][]string {
	return slotstore.GroupByDateThenSort(s.Snapshot(), s.loc)
}

// HasSlot проверяет что слот ещё доступен
func (s *SlotService) HasSlot(key, slot string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots.Contains(key, slot)
}

// GenerateGrid генерирует сетку и добавляет её к локации.
// Новое состояние принимается только после успешного сохранения.
func (s *SlotService) GenerateGrid(ctx context.Context, cfg slotgrid.Config, r slotgrid.Range) (int, error) {
	generated, err := cfg.Generate(r, s.loc)
	if err != nil {
		return 0, err
	}
	if len(generated) == 0 {
		return 0, ErrNothingGenerated
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := s.Snapshot()
	key := cfg.Key()
	updated := slotstore.MergeAppend(current, key, generated)
	added := updated.Count(key) - current.Count(key)

	if !s.persist(ctx, updated) {
		return 0, ErrPersistFailed
	}
	s.adopt(updated)

	s.logger.Info("Slot grid generated",
		zap.String("location", key),
		zap.Int("generated", len(generated)),
		zap.Int("added", added))

	return added, nil
}

// RemoveSlot удаляет один слот вручную (админка)
func (s *SlotService) RemoveSlot(ctx context.Context, key, slot string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	updated := slotstore.RemoveOne(s.Snapshot(), key, slot)
	if !s.persist(ctx, updated) {
		return ErrPersistFailed
	}
	s.adopt(updated)

	s.logger.Info("Slot removed",
		zap.String("location", key),
		zap.String("slot", slot))

	return nil
}

// RemoveLocation удаляет все слоты локации (админка)
func (s *SlotService) RemoveLocation(ctx context.Context, key string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	updated := slotstore.RemoveAll(s.Snapshot(), key)
	if !s.persist(ctx, updated) {
		return ErrPersistFailed
	}
	s.adopt(updated)

	s.logger.Info("Location removed",
		zap.String("location", key))

	return nil
}

// ConsumeSlot убирает забронированный слот.
// Локальное состояние обновляется сразу, неудачное сохранение только логируется.
func (s *SlotService) ConsumeSlot(ctx context.Context, key, slot string) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	updated := slotstore.RemoveOne(s.Snapshot(), key, slot)
	s.adopt(updated)

	ok := s.persist(ctx, updated)
	// Запрос, начатый во время сохранения, мог прочитать слот из бэкенда
	s.bump()
	if !ok {
		s.logger.Warn("Booked slot removed locally but not saved",
			zap.String("location", key),
			zap.String("slot", slot))
	}
	return ok
}

// persist сохраняет SlotMap, любые ошибки превращаются в false
func (s *SlotService) persist(ctx context.Context, slots slotstore.SlotMap) bool {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.backend.SaveSlots(ctx, slots)
	if err != nil {
		s.logger.Error("Failed to save slots", zap.Error(err))
		return false
	}
	if !ok {
		s.logger.Error("Backend rejected slots save")
	}
	return ok
}

// adopt принимает локально изменённый SlotMap
func (s *SlotService) adopt(slots slotstore.SlotMap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = slots
	s.gen++
}

// adoptFetched принимает SlotMap из бэкенда, если с начала запроса
// не было локальных изменений
func (s *SlotService) adoptFetched(slots slotstore.SlotMap, startGen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != startGen {
		return false
	}
	s.slots = slots
	return true
}

func (s *SlotService) bump() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
}

func (s *SlotService) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

func (s *SlotService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
