package common

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/slotgrid"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
	"github.com/go-telegram/bot/models"
)

// Интервалы, которые предлагаются кнопками в форме генерации
var intervalPresets = []int{30, 45, 60, 90}

// LocationTitle подпись локации с иконкой
func LocationTitle(key string) string {
	if key == slotstore.OnlineKey {
		return "🌐 Онлайн"
	}
	return "📍 " + html.EscapeString(key)
}

// SessionSummary краткое описание выбранной записи
func SessionSummary(s wizard.Session, loc *time.Location) string {
	var sb strings.Builder

	if s.SessionType() == model.SessionOnline {
		sb.WriteString("🌐 Формат: онлайн\n")
	} else {
		sb.WriteString("📍 Формат: оффлайн\n")
		fmt.Fprintf(&sb, "🏙 Город: %s\n", html.EscapeString(s.LocationLabel()))
	}

	if t, err := slotstore.ParseSlot(s.SelectedSlot); err == nil {
		fmt.Fprintf(&sb, "📅 Дата и время: %s", model.FormatSlot(t, loc))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// BuildCityPromptScreen первый экран: вопрос о городе
func BuildCityPromptScreen() string {
	return "📍 <b>Ваш город?</b>\n\n" +
		"Напишите название города, чтобы увидеть доступные сессии."
}

// BuildCityResultScreen результат поиска города
func BuildCityResultScreen(s wizard.Session) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()

	var text string
	if s.OfflineAvailable {
		text = fmt.Sprintf(
			"🏙 <b>%s</b>\n\n"+
				"В вашем городе проходят оффлайн сессии. Также можно записаться онлайн.",
			html.EscapeString(s.City),
		)
		kb.Row(keyboard.Button("📍 Оффлайн сессия", ChooseType+string(model.SessionOffline)))
	} else {
		text = fmt.Sprintf(
			"🏙 <b>%s</b>\n\n"+
				"В этом городе пока нет оффлайн сессий, но можно записаться онлайн.",
			html.EscapeString(s.CityInput),
		)
	}

	kb.Row(keyboard.Button("🌐 Онлайн сессия", ChooseType+string(model.SessionOnline)))
	kb.Row(keyboard.Button("Изменить город", CityChange))

	return text, kb.Build()
}

// BuildCalendarScreen календарь с доступными датами и временем выбранного дня
func BuildCalendarScreen(
	s wizard.Session,
	month time.Time,
	dates []string,
	slots []string,
	loc *time.Location,
) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	if s.SessionType() == model.SessionOnline {
		sb.WriteString("🌐 <b>Онлайн сессия</b>")
	} else {
		fmt.Fprintf(&sb, "📍 <b>Оффлайн сессия</b> · %s", html.EscapeString(s.LocationLabel()))
	}

	kb := keyboard.NewBuilder()

	if len(dates) == 0 {
		sb.WriteString("\n\nНет свободных дат. Попробуйте позже или выберите другой формат.")
		kb.AddBackButton(CalendarBack)
		return sb.String(), kb.Build()
	}

	available := make(map[string]bool, len(dates))
	for _, d := range dates {
		available[d] = true
	}

	sb.WriteString("\n\nВыберите дату (• есть свободное время)")
	if s.SelectedDate != "" {
		fmt.Fprintf(&sb, "\n\n📅 %s", formatting.FormatDateKey(s.SelectedDate))
		if len(slots) == 0 {
			sb.WriteString("\nНа этот день свободного времени нет.")
		} else if s.SelectedSlot == "" {
			sb.WriteString("\nВыберите время:")
		}
	}
	if s.SelectedSlot != "" {
		fmt.Fprintf(&sb, "\n🕐 %s", formatting.FormatSlotTime(s.SelectedSlot, loc))
	}

	grid := keyboard.Month{
		First:     month,
		Title:     formatting.FormatMonthTitle(month),
		NavPrefix: CalendarMonth,
		Day: func(day time.Time) (string, string) {
			key := day.Format(slotstore.DateLayout)
			label := fmt.Sprintf("%d", day.Day())
			switch {
			case key == s.SelectedDate:
				return "[" + label + "]", CalendarDay + key
			case available[key]:
				return label + "•", CalendarDay + key
			default:
				return label, ""
			}
		},
	}
	kb.AddRows(grid.Rows())

	slotButtons := make([]models.InlineKeyboardButton, 0, len(slots))
	for _, slot := range slots {
		label := formatting.FormatSlotTime(slot, loc)
		if slot == s.SelectedSlot {
			label = "✅ " + label
		}
		slotButtons = append(slotButtons, keyboard.Button(label, CalendarSlot+slot))
	}
	kb.AddRows(keyboard.Chunk(slotButtons, 4))

	if s.SelectedSlot != "" {
		kb.Row(keyboard.Button("Далее ➡️", CalendarNext))
	}
	kb.AddBackButton(CalendarBack)

	return sb.String(), kb.Build()
}

// BuildFormScreen экран формы: сводка и просьба ввести имя
func BuildFormScreen(s wizard.Session, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	text := "📝 <b>Данные для записи</b>\n\n" +
		SessionSummary(s, loc) + "\n\n" +
		"Введите имя и фамилию:"

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("⬅️ Изменить время", FormBack))

	return text, kb.Build()
}

// BuildPhonePrompt просьба ввести телефон
func BuildPhonePrompt(name string) string {
	return fmt.Sprintf("👤 %s\n\n📞 Введите номер телефона:", html.EscapeString(name))
}

// BuildSubmittingScreen сообщение на время отправки
func BuildSubmittingScreen() string {
	return "⏳ Отправляем запись..."
}

// BuildSuccessScreen подтверждение записи
func BuildSuccessScreen(s wizard.Session, loc *time.Location) string {
	return "✅ <b>Вы записаны!</b>\n\n" +
		SessionSummary(s, loc) + "\n\n" +
		fmt.Sprintf("Чтобы завершить, отправьте слово «%s».", DoneKeyword)
}

// BuildSubmitFailedScreen ошибка записи с повтором
func BuildSubmitFailedScreen() (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔁 Повторить", FormRetry)).
		Row(keyboard.Button("✏️ Изменить данные", FormEdit)).
		Row(keyboard.Button("⬅️ Изменить время", FormBack))

	return "❌ " + BookingFailedMessage, kb.Build()
}

// BuildAdminMenuScreen главное меню админки
func BuildAdminMenuScreen(snapshot slotstore.SlotMap) (string, *models.InlineKeyboardMarkup) {
	total := 0
	for _, key := range snapshot.Keys() {
		total += snapshot.Count(key)
	}

	text := fmt.Sprintf(
		"🛠 <b>Админ: Управление</b>\n\n"+
			"Локаций: %d\n"+
			"Свободно: %d %s",
		len(snapshot.Keys()),
		total,
		formatting.PluralizeSlots(total),
	)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("➕ Создать", AdminCreate),
			keyboard.Button("📋 Список", AdminList),
		).
		Row(keyboard.Button("🚪 Выйти", AdminExit))

	return text, kb.Build()
}

// BuildAdminCreateScreen форма генерации сетки
func BuildAdminCreateScreen(d callbacktypes.AdminDraft) (string, *models.InlineKeyboardMarkup) {
	cfg := d.Config

	var sb strings.Builder
	sb.WriteString("➕ <b>Сгенерировать сетку</b>\n\n")

	if cfg.Kind == model.SessionOnline {
		sb.WriteString("Формат: 🌐 онлайн\n")
	} else {
		sb.WriteString("Формат: 📍 оффлайн\n")
		city := strings.TrimSpace(cfg.City)
		if city == "" {
			city = "не указан"
		}
		fmt.Fprintf(&sb, "Город: %s\n", html.EscapeString(city))
	}

	fmt.Fprintf(&sb, "Время: %s–%s\n", cfg.DailyStart, cfg.DailyEnd)
	fmt.Fprintf(&sb, "Интервал: %s\n", formatting.FormatDuration(cfg.Interval))
	fmt.Fprintf(&sb, "Период: %s\n\n", describeRange(d.Range))
	sb.WriteString("Выберите в календаре первый и последний день.")

	kb := keyboard.NewBuilder()

	offline, online := "📍 Оффлайн", "🌐 Онлайн"
	if cfg.Kind == model.SessionOnline {
		online = "✅ " + online
	} else {
		offline = "✅ " + offline
	}
	kb.Row(
		keyboard.Button(offline, AdminKind+string(model.SessionOffline)),
		keyboard.Button(online, AdminKind+string(model.SessionOnline)),
	)

	if cfg.Kind != model.SessionOnline {
		kb.Row(keyboard.Button("🏙 Город", AdminCity))
	}

	kb.Row(
		keyboard.Button("🕙 Начало: "+cfg.DailyStart, AdminStart),
		keyboard.Button("🕕 Конец: "+cfg.DailyEnd, AdminEnd),
	)

	intervals := make([]models.InlineKeyboardButton, 0, len(intervalPresets)+1)
	for _, minutes := range intervalPresets {
		label := fmt.Sprintf("%d", minutes)
		if minutes == cfg.Interval {
			label = "✅ " + label
		}
		intervals = append(intervals, keyboard.Button(label, fmt.Sprintf("%s%d", AdminInterval, minutes)))
	}
	intervals = append(intervals, keyboard.Button("✏️", AdminInterval+AdminIntervalCustom))
	kb.Row(intervals...)

	grid := keyboard.Month{
		First:     d.Month,
		Title:     formatting.FormatMonthTitle(d.Month),
		NavPrefix: AdminMonth,
		Day: func(day time.Time) (string, string) {
			label := fmt.Sprintf("%d", day.Day())
			if d.Range.Includes(day) {
				label = "[" + label + "]"
			}
			return label, AdminDay + day.Format(slotstore.DateLayout)
		},
	}
	kb.AddRows(grid.Rows())

	kb.Row(keyboard.Button("⚙️ Сгенерировать сетку", AdminGenerate))
	kb.AddBackButton(AdminMenu)

	return sb.String(), kb.Build()
}

func describeRange(r slotgrid.Range) string {
	switch {
	case r.Start == nil:
		return "выберите начало"
	case r.End == nil:
		return formatting.FormatDate(*r.Start) + " – выберите конец"
	default:
		days := r.Days()
		return fmt.Sprintf("%s – %s (%d %s)",
			formatting.FormatDate(*r.Start),
			formatting.FormatDate(*r.End),
			days,
			formatting.PluralizeDays(days),
		)
	}
}

// BuildAdminGeneratedScreen итог генерации
func BuildAdminGeneratedScreen(key string, added int) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("✅ %s: добавлено %d %s", LocationTitle(key), added, formatting.PluralizeSlots(added))
	if added == 0 {
		text = fmt.Sprintf("ℹ️ %s: все слоты уже были в списке", LocationTitle(key))
	}

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("➕ Создать ещё", AdminCreate),
			keyboard.Button("📋 Список", AdminList),
		).
		AddBackButton(AdminMenu)

	return text, kb.Build()
}

// BuildAdminListScreen список локаций со слотами
func BuildAdminListScreen(keys []string, snapshot slotstore.SlotMap) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()

	if len(keys) == 0 {
		kb.AddBackButton(AdminMenu)
		return "📋 <b>Список</b>\n\nНет активных сессий", kb.Build()
	}

	for i, key := range keys {
		count := snapshot.Count(key)
		kb.Row(keyboard.Button(
			fmt.Sprintf("%s · %d %s", LocationTitle(key), count, formatting.PluralizeSlots(count)),
			fmt.Sprintf("%s%d", AdminLocation, i),
		))
	}
	kb.AddBackButton(AdminMenu)

	return "📋 <b>Список</b>\n\nВыберите локацию:", kb.Build()
}

// BuildAdminLocationScreen даты локации
func BuildAdminLocationScreen(idx int, key string, byDate map[string][]string) (string, *models.InlineKeyboardMarkup) {
	dates := slotstore.SortedDates(byDate)

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b>\n", LocationTitle(key))
	if len(dates) == 0 {
		sb.WriteString("\nНет активных сессий")
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(dates))
	for _, date := range dates {
		count := len(byDate[date])
		fmt.Fprintf(&sb, "\n%s: %d %s", formatting.FormatDateKey(date), count, formatting.PluralizeSlots(count))
		buttons = append(buttons, keyboard.Button(
			formatting.FormatDateKey(date),
			fmt.Sprintf("%s%d:%s", AdminDate, idx, date),
		))
	}

	kb := keyboard.NewBuilder()
	kb.AddRows(keyboard.Chunk(buttons, 2))
	if len(dates) > 0 {
		kb.Row(keyboard.Button("🗑 Удалить все", fmt.Sprintf("%s%d", AdminDeleteAll, idx)))
	}
	kb.AddBackButton(AdminList)

	return sb.String(), kb.Build()
}

// BuildAdminDateScreen слоты локации на дату, нажатие удаляет слот
func BuildAdminDateScreen(idx int, key, date string, slots []string, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("<b>%s</b> · %s\n\nНажмите на время, чтобы удалить слот.",
		LocationTitle(key), formatting.FormatDateKey(date))
	if len(slots) == 0 {
		text = fmt.Sprintf("<b>%s</b> · %s\n\nНет активных сессий", LocationTitle(key), formatting.FormatDateKey(date))
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(slots))
	for _, slot := range slots {
		buttons = append(buttons, keyboard.Button(
			"❌ "+formatting.FormatSlotTime(slot, loc),
			fmt.Sprintf("%s%d:%s", AdminDelete, idx, slot),
		))
	}

	kb := keyboard.NewBuilder()
	kb.AddRows(keyboard.Chunk(buttons, 3))
	kb.AddBackButton(fmt.Sprintf("%s%d", AdminLocation, idx))

	return text, kb.Build()
}

// BuildAdminDeleteAllScreen подтверждение удаления всех слотов локации
func BuildAdminDeleteAllScreen(idx int, key string, count int) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("⚠️ Удалить все %d %s локации %s?",
		count, formatting.PluralizeSlots(count), LocationTitle(key))

	kb := keyboard.NewBuilder().
		AddRows(keyboard.ConfirmCancelButtons(
			fmt.Sprintf("%s%d", AdminDeleteAllConfirm, idx),
			fmt.Sprintf("%s%d", AdminLocation, idx),
		))

	return text, kb.Build()
}
