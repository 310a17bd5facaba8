package keyboard

import (
	"fmt"
	"time"

	"github.com/go-telegram/bot/models"
)

var weekdayHeader = []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// DayFunc решает, как показать день месяца: подпись и callback data.
// Пустой callback делает день неактивным.
type DayFunc func(day time.Time) (label, callbackData string)

// Month описание календаря на месяц
type Month struct {
	First     time.Time // первое число месяца
	Title     string
	NavPrefix string // callback data переключения месяца, к ней добавляется YYYY-MM
	Day       DayFunc
}

// MonthNavigation ряд переключения месяцев
func MonthNavigation(prefix, title string, first time.Time) []models.InlineKeyboardButton {
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)
	return []models.InlineKeyboardButton{
		Button("◀️", prefix+prev.Format("2006-01")),
		NoopButton(title),
		Button("▶️", prefix+next.Format("2006-01")),
	}
}

// Rows строит сетку месяца: навигация, дни недели, недели с понедельника
func (m Month) Rows() [][]models.InlineKeyboardButton {
	first := time.Date(m.First.Year(), m.First.Month(), 1, 0, 0, 0, 0, m.First.Location())

	rows := [][]models.InlineKeyboardButton{
		MonthNavigation(m.NavPrefix, m.Title, first),
	}

	header := make([]models.InlineKeyboardButton, 0, len(weekdayHeader))
	for _, name := range weekdayHeader {
		header = append(header, NoopButton(name))
	}
	rows = append(rows, header)

	// Понедельник = 0
	offset := (int(first.Weekday()) + 6) % 7
	cells := make([]models.InlineKeyboardButton, 0, 42)
	for i := 0; i < offset; i++ {
		cells = append(cells, NoopButton(" "))
	}

	for day := first; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		label, data := fmt.Sprintf("%d", day.Day()), ""
		if m.Day != nil {
			label, data = m.Day(day)
		}
		if data == "" {
			data = Noop
		}
		cells = append(cells, Button(label, data))
	}

	for len(cells)%7 != 0 {
		cells = append(cells, NoopButton(" "))
	}

	return append(rows, Chunk(cells, 7)...)
}
