package model

import "time"

// SessionType формат сессии
type SessionType string

const (
	SessionOnline  SessionType = "Online"  // Удалённая сессия
	SessionOffline SessionType = "Offline" // Очная сессия в городе
)

// OnlineCityLabel подпись города для онлайн-записи в таблице записей
const OnlineCityLabel = "Онлайн"

// SlotDisplayLayout формат слота, который уходит в запись
const SlotDisplayLayout = "02.01.2006 15:04"

// BookingRequest заявка на запись. Создаётся один раз при отправке формы
// и больше не меняется.
type BookingRequest struct {
	RequestID  string      `json:"request_id"`
	Type       SessionType `json:"type"`
	City       string      `json:"city"`
	Slot       string      `json:"slot"` // отформатированная дата, не ISO-строка
	FullName   string      `json:"full_name"`
	Phone      string      `json:"phone"`
	ExternalID string      `json:"external_id,omitempty"` // Telegram ID клиента
}

// Booking запись, сохранённая бэкендом
type Booking struct {
	ID         int64       `json:"id"`
	Type       SessionType `json:"type"`
	City       string      `json:"city"`
	Slot       string      `json:"slot"`
	FullName   string      `json:"full_name"`
	Phone      string      `json:"phone"`
	ExternalID string      `json:"external_id"`
	CreatedAt  time.Time   `json:"created_at"`
}

// FormatSlot переводит ISO-таймстемп слота в отображаемый формат
func FormatSlot(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(SlotDisplayLayout)
}
