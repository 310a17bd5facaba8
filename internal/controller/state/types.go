package state

import "github.com/Freeeeeet/citybooking_bot/internal/wizard"

// UserState какой текстовый ввод бот ждёт от пользователя
type UserState string

const (
	StateNone UserState = "" // Нет активного ввода

	// Сценарий записи
	StateEnteringCity  UserState = "entering_city"
	StateEnteringName  UserState = "entering_name"
	StateEnteringPhone UserState = "entering_phone"
	StateAwaitingDone  UserState = "awaiting_done"

	// Админка: поля формы генерации
	StateAdminCity      UserState = "admin_city"
	StateAdminStartTime UserState = "admin_start_time"
	StateAdminEndTime   UserState = "admin_end_time"
	StateAdminInterval  UserState = "admin_interval"
)

// UserData хранит состояние пользователя между сообщениями
type UserData struct {
	State   UserState
	Session wizard.Session
	Data    map[string]interface{} // Временные данные текущего экрана
}
