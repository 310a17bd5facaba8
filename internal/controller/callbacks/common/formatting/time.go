package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
)

// MonthLayout формат месяца в callback data
const MonthLayout = "2006-01"

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatSlotTime время слота в часовом поясе клиентов.
// Нечитаемый таймстемп возвращается как есть.
func FormatSlotTime(slot string, loc *time.Location) string {
	t, err := slotstore.ParseSlot(slot)
	if err != nil {
		return slot
	}
	return FormatTime(t.In(loc))
}

// FormatDateKey форматирует дату вида YYYY-MM-DD с днём недели: "01.06.2024 (Сб)"
func FormatDateKey(date string) string {
	t, err := time.Parse(slotstore.DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s (%s)", FormatDate(t), GetWeekdayShort(int(t.Weekday())))
}

// FormatMonthTitle заголовок календаря: "Июнь 2024"
func FormatMonthTitle(t time.Time) string {
	return fmt.Sprintf("%s %d", GetMonthName(t.Month()), t.Year())
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// GetWeekdayShort возвращает короткое название дня недели
func GetWeekdayShort(weekday int) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}

// GetMonthName возвращает название месяца на русском
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return names[month]
}

// ParseMonth разбирает месяц из callback data
func ParseMonth(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(MonthLayout, value, loc)
}

// MonthOf первое число месяца, в который попадает t
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
