package slotgrid

import (
	"strings"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
)

// Значения по умолчанию для формы генерации
const (
	DefaultDailyStart = "10:00"
	DefaultDailyEnd   = "18:00"
	DefaultInterval   = 60
)

// Config параметры генерации сетки
type Config struct {
	Kind       model.SessionType
	City       string
	DailyStart string
	DailyEnd   string
	Interval   int // минуты
}

// DefaultConfig возвращает конфиг с настройками по умолчанию
func DefaultConfig() Config {
	return Config{
		Kind:       model.SessionOffline,
		DailyStart: DefaultDailyStart,
		DailyEnd:   DefaultDailyEnd,
		Interval:   DefaultInterval,
	}
}

// Key возвращает ключ локации, под которым сохраняются слоты
func (c Config) Key() string {
	if c.Kind == model.SessionOnline {
		return slotstore.OnlineKey
	}
	return strings.TrimSpace(c.City)
}

// Validate проверяет конфиг вместе с выбранным диапазоном
func (c Config) Validate(r Range) error {
	if !r.Complete() {
		return ErrRangeIncomplete
	}
	if c.Kind != model.SessionOnline && c.Key() == "" {
		return ErrCityRequired
	}
	if c.Interval <= 0 {
		return ErrInvalidInterval
	}
	if _, _, err := ParseClock(c.DailyStart); err != nil {
		return err
	}
	if _, _, err := ParseClock(c.DailyEnd); err != nil {
		return err
	}
	return nil
}

// Generate проверяет конфиг и генерирует сетку
func (c Config) Generate(r Range, loc *time.Location) ([]string, error) {
	if err := c.Validate(r); err != nil {
		return nil, err
	}
	return Generate(r, c.DailyStart, c.DailyEnd, c.Interval, loc)
}
