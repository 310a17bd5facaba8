package common

import (
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/citybooking_bot/internal/slotgrid"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
)

// DataStore временные данные пользователя.
// Ему удовлетворяют и state.Manager, и адаптер для callbacks.
type DataStore interface {
	GetData(telegramID int64, key string) (interface{}, bool)
	SetData(telegramID int64, key string, value interface{})
}

// LoadDraft возвращает форму генерации сетки или новую с настройками по умолчанию
func LoadDraft(store DataStore, telegramID int64, loc *time.Location) callbacktypes.AdminDraft {
	if v, ok := store.GetData(telegramID, DataAdminDraft); ok {
		if draft, ok := v.(callbacktypes.AdminDraft); ok {
			return draft
		}
	}

	return callbacktypes.AdminDraft{
		Config: slotgrid.DefaultConfig(),
		Month:  formatting.MonthOf(time.Now().In(loc)),
	}
}

// SaveDraft сохраняет форму генерации сетки
func SaveDraft(store DataStore, telegramID int64, draft callbacktypes.AdminDraft) {
	store.SetData(telegramID, DataAdminDraft, draft)
}

// LoadMonth месяц, открытый в календаре записи
func LoadMonth(store DataStore, telegramID int64) (time.Time, bool) {
	v, ok := store.GetData(telegramID, DataMonth)
	if !ok {
		return time.Time{}, false
	}
	month, ok := v.(time.Time)
	return month, ok
}

// InitialMonth месяц, с которого открывается календарь:
// месяц выбранной даты, иначе первой доступной, иначе текущий
func InitialMonth(selectedDate string, dates []string, loc *time.Location) time.Time {
	for _, value := range append([]string{selectedDate}, dates...) {
		if value == "" {
			continue
		}
		if d, err := time.ParseInLocation(slotstore.DateLayout, value, loc); err == nil {
			return formatting.MonthOf(d)
		}
	}
	return formatting.MonthOf(time.Now().In(loc))
}
