package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/MrJinPro/SVOD/pkg/models"
)

const (
	dateTimeLayout = "02.01.2006 15:04:05"
	dateLayout     = "02.01.2006"
	placeholder    = "—"
)

var SeverityLabels = map[models.EventSeverity]string{
	models.SeverityCritical: "Критический",
	models.SeverityWarning:  "Внимание",
	models.SeverityInfo:     "Информация",
	models.SeveritySuccess:  "Норма",
}

var StatusLabels = map[models.EventStatus]string{
	models.StatusActive:   "Активно",
	models.StatusPending:  "В обработке",
	models.StatusResolved: "Завершено",
}

var TypeLabels = map[models.EventType]string{
	models.TypeIntrusion:   "Проникновение",
	models.TypeAlarm:       "Тревога",
	models.TypeAccess:      "Доступ",
	models.TypePatrol:      "Обход",
	models.TypeIncident:    "Инцидент",
	models.TypeMaintenance: "ТО",
}

var ReportTypeLabels = map[models.ReportType]string{
	models.ReportDaily:   "Суточный",
	models.ReportWeekly:  "Недельный",
	models.ReportMonthly: "Месячный",
}

var ReportStatusLabels = map[models.ReportStatus]string{
	models.ReportGenerated: "Сформирован",
	models.ReportSent:      "Отправлен",
	models.ReportPending:   "Ожидает",
	models.ReportFailed:    "Ошибка",
}

var RoleLabels = map[models.UserRole]string{
	models.RoleAdmin:    "Администратор",
	models.RoleOperator: "Оператор",
	models.RoleAnalyst:  "Аналитик",
}

// label looks a value up and falls back to the raw value.
func label[K ~string](labels map[K]string, k K) string {
	if l, ok := labels[k]; ok {
		return l
	}
	if k == "" {
		return placeholder
	}
	return string(k)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func optional(s *string) string {
	if s == nil {
		return placeholder
	}
	return orDash(*s)
}

// Timestamp shows an ISO 8601 instant in local time. Unparseable input is
// shown as is.
func Timestamp(iso string) string {
	return formatTime(iso, dateTimeLayout)
}

func Date(iso string) string {
	return formatTime(iso, dateLayout)
}

func formatTime(iso, layout string) string {
	if iso == "" {
		return placeholder
	}
	for _, l := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(l, iso); err == nil {
			return t.Local().Format(layout)
		}
	}
	return iso
}

// SeverityColor is the color of a severity badge.
func SeverityColor(s models.EventSeverity) *color.Color {
	switch s {
	case models.SeverityCritical:
		return color.New(color.FgRed, color.Bold)
	case models.SeverityWarning:
		return color.New(color.FgYellow)
	case models.SeveritySuccess:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgBlue)
	}
}

func Severity(s models.EventSeverity) string {
	return SeverityColor(s).Sprint(label(SeverityLabels, s))
}

var EventHeaders = []string{"ВРЕМЯ", "ТИП", "КОД", "ОБЪЕКТ", "КЛИЕНТ", "ОПИСАНИЕ", "ВАЖНОСТЬ", "СТАТУС"}

func EventRows(events []models.Event) [][]string {
	rows := make([][]string, len(events))
	for i, e := range events {
		code := orDash(e.Code)
		if e.CodeText != "" {
			code = fmt.Sprintf("%s %s", code, e.CodeText)
		}
		rows[i] = []string{
			Timestamp(e.Timestamp),
			label(TypeLabels, e.Type),
			code,
			orDash(e.ObjectName),
			orDash(e.ClientName),
			orDash(e.Description),
			label(SeverityLabels, e.Severity),
			label(StatusLabels, e.Status),
		}
	}
	return rows
}

var ObjectHeaders = []string{"ID", "НАЗВАНИЕ", "АДРЕС", "КЛИЕНТ", "СОБЫТИЙ СЕГОДНЯ", "ПОСЛЕДНЕЕ", "СОСТОЯНИЕ"}

func ObjectRows(objects []models.ObjectListItem) [][]string {
	rows := make([][]string, len(objects))
	for i, o := range objects {
		today := placeholder
		if o.EventsToday != nil {
			today = strconv.Itoa(*o.EventsToday)
		}
		last := placeholder
		if o.LastEventAt != nil {
			last = Timestamp(*o.LastEventAt)
		}
		state := "Активен"
		if o.Disabled {
			state = "Отключён"
		}
		rows[i] = []string{o.ID, orDash(o.Name), orDash(o.Address), orDash(o.ClientName), today, last, state}
	}
	return rows
}

var ReportHeaders = []string{"ID", "ТИП", "ПЕРИОД", "СФОРМИРОВАН", "СОБЫТИЙ", "КРИТИЧЕСКИХ", "СТАТУС"}

func ReportRows(reports []models.Report) [][]string {
	rows := make([][]string, len(reports))
	for i, r := range reports {
		period := Date(r.PeriodStart)
		if r.PeriodEnd != "" && r.PeriodEnd != r.PeriodStart {
			period += " – " + Date(r.PeriodEnd)
		}
		rows[i] = []string{
			r.ID,
			label(ReportTypeLabels, r.Type),
			period,
			Timestamp(r.GeneratedAt),
			strconv.Itoa(r.EventsCount),
			strconv.Itoa(r.CriticalCount),
			label(ReportStatusLabels, r.Status),
		}
	}
	return rows
}

var UserHeaders = []string{"ID", "ЛОГИН", "EMAIL", "РОЛЬ", "АКТИВЕН", "ПОСЛЕДНИЙ ВХОД"}

func UserRows(users []models.User) [][]string {
	rows := make([][]string, len(users))
	for i, u := range users {
		active := "да"
		if !u.IsActive {
			active = "нет"
		}
		last := "Никогда"
		if u.LastLogin != nil && *u.LastLogin != "" {
			last = Timestamp(*u.LastLogin)
		}
		rows[i] = []string{u.ID, u.Username, optional(u.Email), label(RoleLabels, u.Role), active, last}
	}
	return rows
}

var NotificationHeaders = []string{"", "ВРЕМЯ", "ЗАГОЛОВОК", "СООБЩЕНИЕ", "ВАЖНОСТЬ"}

func NotificationRows(items []models.Notification) [][]string {
	rows := make([][]string, len(items))
	for i, n := range items {
		mark := " "
		if !n.Read {
			mark = "●"
		}
		rows[i] = []string{mark, Timestamp(n.Timestamp), n.Title, n.Message, label(SeverityLabels, n.Severity)}
	}
	return rows
}

var ResponsibleHeaders = []string{"#", "ИМЯ", "АДРЕС", "ТЕЛЕФОНЫ"}

func ResponsibleRows(items []models.ObjectResponsible) [][]string {
	rows := make([][]string, len(items))
	for i, r := range items {
		order := placeholder
		if r.Order != nil {
			order = strconv.Itoa(*r.Order)
		}
		phones := placeholder
		if len(r.Phones) > 0 {
			phones = strings.Join(r.Phones, ", ")
		}
		rows[i] = []string{order, orDash(r.Name), orDash(r.Address), phones}
	}
	return rows
}

var GroupHeaders = []string{"ГРУППА", "НАЗВАНИЕ", "СОСТОЯНИЕ", "ПОСЛЕДНЕЕ СОБЫТИЕ"}

func GroupRows(groups []models.ObjectGroup) [][]string {
	rows := make([][]string, len(groups))
	for i, g := range groups {
		state := placeholder
		if g.IsOpen != nil {
			state = "Под охраной"
			if *g.IsOpen {
				state = "Снята с охраны"
			}
		}
		rows[i] = []string{strconv.Itoa(g.Group), orDash(g.Name), state, optional(g.TimeEvent)}
	}
	return rows
}

// Trend renders the day-over-day change of the dashboard.
func Trend(pct float64) string {
	switch {
	case pct > 0:
		return color.New(color.FgRed).Sprintf("▲ %.1f%%", pct)
	case pct < 0:
		return color.New(color.FgGreen).Sprintf("▼ %.1f%%", -pct)
	default:
		return "0%"
	}
}

// Bar draws a proportional bar for chart-like output.
func Bar(value, maxValue, width int) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := value * width / maxValue
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// PagerLine is the footer of a listing. Unavailable directions are dimmed.
func PagerLine(summary string, page, totalPages int, hasPrev, hasNext bool) string {
	dim := color.New(color.Faint)
	prev, next := "← Назад", "Вперёд →"
	if !hasPrev {
		prev = dim.Sprint(prev)
	}
	if !hasNext {
		next = dim.Sprint(next)
	}
	return fmt.Sprintf("%s   стр. %d/%d   %s   %s", summary, page, max(totalPages, 1), prev, next)
}
