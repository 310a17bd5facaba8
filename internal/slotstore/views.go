package slotstore

import (
	"sort"
	"time"
)

// DateLayout формат календарной даты в группировках
const DateLayout = "2006-01-02"

// ParseSlot разбирает ISO-таймстемп слота
func ParseSlot(slot string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, slot)
}

// SlotDate возвращает календарную дату слота в зоне loc
func SlotDate(slot string, loc *time.Location) (string, bool) {
	t, err := ParseSlot(slot)
	if err != nil {
		return "", false
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout), true
}

// GroupByDateThenSort раскладывает слоты каждой локации по датам.
// Внутри даты слоты отсортированы. Локации без слотов пропускаются,
// нераспознанные таймстемпы тоже.
func GroupByDateThenSort(store SlotMap, loc *time.Location) map[string]map[string][]string {
	grouped := make(map[string]map[string][]string, len(store))
	for key, slots := range store {
		if len(slots) == 0 {
			continue
		}
		byDate := make(map[string][]string)
		for _, slot := range slots {
			date, ok := SlotDate(slot, loc)
			if !ok {
				continue
			}
			byDate[date] = append(byDate[date], slot)
		}
		for date := range byDate {
			sort.Strings(byDate[date])
		}
		grouped[key] = byDate
	}
	return grouped
}

// SlotsOnDate возвращает отсортированные слоты локации на дату (YYYY-MM-DD)
func SlotsOnDate(store SlotMap, key, date string, loc *time.Location) []string {
	var out []string
	for _, slot := range store[key] {
		if d, ok := SlotDate(slot, loc); ok && d == date {
			out = append(out, slot)
		}
	}
	sort.Strings(out)
	return out
}

// AvailableDates возвращает отсортированные даты, на которые у локации есть слоты
func AvailableDates(store SlotMap, key string, loc *time.Location) []string {
	seen := make(map[string]struct{})
	for _, slot := range store[key] {
		if d, ok := SlotDate(slot, loc); ok {
			seen[d] = struct{}{}
		}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// SortedDates возвращает даты группы по возрастанию
func SortedDates(byDate map[string][]string) []string {
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
