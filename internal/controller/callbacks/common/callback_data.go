package common

// ========================
// Callback Data Patterns
// ========================
// Telegram ограничивает callback data 64 байтами: ISO-таймстемп помещается,
// название города нет, поэтому локации в админке адресуются индексом.

// Сценарий записи
const (
	CityChange    = "city_change"
	ChooseType    = "type:" // type:Online
	CalendarMonth = "cal:"  // cal:2024-06
	CalendarDay   = "day:"  // day:2024-06-01
	CalendarSlot  = "slot:" // slot:2024-06-01T07:00:00.000Z
	CalendarBack  = "cal_back"
	CalendarNext  = "next"
	FormBack      = "form_back"
	FormRetry     = "form_retry"
	FormEdit      = "form_edit"
)

// Админка
const (
	AdminMenu             = "adm:menu"
	AdminCreate           = "adm:create"
	AdminList             = "adm:list"
	AdminExit             = "adm:exit"
	AdminKind             = "adm:kind:" // adm:kind:Offline
	AdminCity             = "adm:city"
	AdminStart            = "adm:start"
	AdminEnd              = "adm:end"
	AdminInterval         = "adm:iv:"  // adm:iv:30 или adm:iv:custom
	AdminMonth            = "adm:cal:" // adm:cal:2024-06
	AdminDay              = "adm:day:" // adm:day:2024-06-01
	AdminGenerate         = "adm:gen"
	AdminLocation         = "adm:loc:"       // adm:loc:0
	AdminDate             = "adm:date:"      // adm:date:0:2024-06-01
	AdminDelete           = "adm:del:"       // adm:del:0:2024-06-01T07:00:00.000Z
	AdminDeleteAll        = "adm:delall:"    // adm:delall:0
	AdminDeleteAllConfirm = "adm:delall_ok:" // adm:delall_ok:0
)

// AdminIntervalCustom ввод интервала вручную
const AdminIntervalCustom = "custom"

// Ключи временных данных в StateManager
const (
	DataMonth      = "month"       // time.Time, месяц календаря записи
	DataAdminDraft = "admin_draft" // callbacktypes.AdminDraft
	DataAdminKeys  = "admin_keys"  // []string, локации в порядке списка
	DataFormName   = "form_name"   // string, имя до ввода телефона
)

// DoneKeyword слово, которым клиент завершает запись
const DoneKeyword = "Готово"
