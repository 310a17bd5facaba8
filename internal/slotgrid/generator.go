// Package slotgrid генерирует сетку слотов для одной локации.
package slotgrid

import (
	"errors"
	"fmt"
	"time"
)

// TimestampLayout формат, в котором слоты хранятся в бэкенде
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var (
	ErrRangeIncomplete = errors.New("date range is not complete")
	ErrInvalidRange    = errors.New("range start is after range end")
	ErrInvalidInterval = errors.New("interval must be positive")
	ErrInvalidTime     = errors.New("invalid time of day")
	ErrCityRequired    = errors.New("city is required for offline sessions")
)

// ParseClock разбирает время дня "HH:MM" (24 часа)
func ParseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("%w %q", ErrInvalidTime, value)
	}
	return t.Hour(), t.Minute(), nil
}

// Generate возвращает таймстемпы слотов за каждый день диапазона включительно.
// В пределах дня слоты идут от dailyStart с шагом intervalMinutes строго до dailyEnd.
// Если dailyStart не раньше dailyEnd, день не даёт ни одного слота.
func Generate(r Range, dailyStart, dailyEnd string, intervalMinutes int, loc *time.Location) ([]string, error) {
	if !r.Complete() {
		return nil, ErrRangeIncomplete
	}
	if intervalMinutes <= 0 {
		return nil, ErrInvalidInterval
	}

	sh, sm, err := ParseClock(dailyStart)
	if err != nil {
		return nil, err
	}
	eh, em, err := ParseClock(dailyEnd)
	if err != nil {
		return nil, err
	}

	if loc == nil {
		loc = time.Local
	}

	day := midnight(*r.Start, loc)
	lastDay := midnight(*r.End, loc)
	if day.After(lastDay) {
		return nil, ErrInvalidRange
	}

	step := time.Duration(intervalMinutes) * time.Minute
	var generated []string

	for !day.After(lastDay) {
		current := time.Date(day.Year(), day.Month(), day.Day(), sh, sm, 0, 0, loc)
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), eh, em, 0, 0, loc)

		for current.Before(dayEnd) {
			generated = append(generated, current.UTC().Format(TimestampLayout))
			current = current.Add(step)
		}

		day = day.AddDate(0, 0, 1)
	}

	return generated, nil
}

// midnight отбрасывает время дня, сохраняя календарную дату
func midnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
