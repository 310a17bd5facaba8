package slotgrid

import "time"

// Range диапазон дат, который администратор выбирает двумя кликами
type Range struct {
	Start *time.Time
	End   *time.Time
}

// Click применяет выбор даты к диапазону.
// Первый клик (или клик после завершённого диапазона) начинает новый диапазон,
// второй закрывает его. Более ранняя дата всегда становится началом.
func (r Range) Click(date time.Time) Range {
	d := midnight(date, date.Location())

	if r.Start == nil || r.End != nil {
		return Range{Start: &d}
	}

	start := *r.Start
	if d.Before(start) {
		return Range{Start: &d, End: &start}
	}
	return Range{Start: &start, End: &d}
}

// Complete сообщает что выбраны обе даты
func (r Range) Complete() bool {
	return r.Start != nil && r.End != nil
}

// Includes проверяет попадание даты в диапазон (для подсветки календаря)
func (r Range) Includes(date time.Time) bool {
	if r.Start == nil {
		return false
	}
	d := midnight(date, r.Start.Location())
	if r.End == nil {
		return d.Equal(*r.Start)
	}
	return !d.Before(*r.Start) && !d.After(*r.End)
}

// Days возвращает количество дней в завершённом диапазоне
func (r Range) Days() int {
	if !r.Complete() {
		return 0
	}
	days := 0
	for d := *r.Start; !d.After(*r.End); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}
