package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJinPro/SVOD/internal/output"
	"github.com/MrJinPro/SVOD/internal/pages"
	"github.com/MrJinPro/SVOD/pkg/models"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	sidebarStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).PaddingRight(1).MarginRight(1)
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("25"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	badgeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	statStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginRight(1)
)

func (m Model) View() string {
	header := titleStyle.Render("S.V.O.D · Командный центр")
	if n := m.badge.Unread(); n > 0 {
		header += "  " + badgeStyle.Render(fmt.Sprintf("🔔 %d", n))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), m.content())

	var footer []string
	if m.editing {
		footer = append(footer, m.input.View())
	}
	if m.status != "" {
		if m.statusErr {
			footer = append(footer, errorStyle.Render(m.status))
		} else {
			footer = append(footer, okStyle.Render(m.status))
		}
	}
	footer = append(footer, dimStyle.Render(m.help()))

	return strings.Join([]string{header, "", body, "", strings.Join(footer, "\n")}, "\n")
}

func (m Model) sidebar() string {
	lines := make([]string, 0, sectionCount)
	for s := section(0); s < sectionCount; s++ {
		label := fmt.Sprintf("%d %s", s+1, sectionTitles[s])
		if m.collapsed {
			label = fmt.Sprintf("%d", s+1)
		}
		if s == sectionNotifications {
			if n := m.badge.Unread(); n > 0 {
				label += fmt.Sprintf(" (%d)", n)
			}
		}
		if s == m.section {
			lines = append(lines, activeStyle.Render(label))
		} else {
			lines = append(lines, inactiveStyle.Render(label))
		}
	}
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) content() string {
	switch m.section {
	case sectionDashboard:
		return m.dashboardView()
	case sectionEvents:
		return m.eventsView()
	case sectionObjects:
		return m.objectsView()
	case sectionReports:
		st := m.reports.State()
		return listing(st.IsLoading, st.Err, output.FormatTable(output.ReportHeaders, output.ReportRows(st.Data)), "")
	case sectionNotifications:
		st := m.notifications.State()
		if !st.IsLoading && st.Err == nil && len(st.Data) == 0 {
			return dimStyle.Render("Нет уведомлений")
		}
		return listing(st.IsLoading, st.Err, output.FormatTable(output.NotificationHeaders, output.NotificationRows(st.Data)), "")
	case sectionSearch:
		return m.searchView()
	case sectionUsers:
		return m.usersView()
	case sectionIntegration:
		return m.integrationView()
	}
	return ""
}

// listing puts the loading/error line above a table and the pager below it.
// An error keeps the last rows visible.
func listing(loading bool, err error, table, pager string) string {
	var parts []string
	switch {
	case err != nil:
		parts = append(parts, errorStyle.Render(pages.ErrorText(err)))
	case loading:
		parts = append(parts, dimStyle.Render("Загрузка…"))
	}
	parts = append(parts, strings.TrimRight(table, "\n"))
	if pager != "" {
		parts = append(parts, pager)
	}
	return strings.Join(parts, "\n")
}

func pagerLine(p pages.Pager, loading bool) string {
	return fmt.Sprintf("%s   стр. %d/%d   [p] назад%s   [n] вперёд%s",
		p.Summary(loading), p.Page, max(p.TotalPages, 1), disabled(!p.HasPrev), disabled(!p.HasNext))
}

func disabled(off bool) string {
	if off {
		return " (нет)"
	}
	return ""
}

func (m Model) eventsView() string {
	st := m.events.State()
	f := m.events.Applied
	filters := fmt.Sprintf("Поиск: %q   Важность: %s   Только сегодня: %s", f.Search, f.Severity, yesNo(f.TodayOnly))
	return dimStyle.Render(filters) + "\n" +
		listing(st.IsLoading, st.Err, output.FormatTable(output.EventHeaders, output.EventRows(st.Data.Data)), pagerLine(m.events.Pager(), st.IsLoading))
}

func (m Model) objectsView() string {
	st := m.objects.State()
	f := m.objects.Applied
	filters := fmt.Sprintf("Поиск: %q   Отключённые: %s", f.Search, yesNo(f.IncludeDisabled))
	return dimStyle.Render(filters) + "\n" +
		listing(st.IsLoading, st.Err, output.FormatTable(output.ObjectHeaders, output.ObjectRows(st.Data.Data)), pagerLine(m.objects.Pager(), st.IsLoading))
}

func (m Model) searchView() string {
	if !m.search.Searched {
		return dimStyle.Render("Нажмите / и введите запрос")
	}
	st := m.search.State()
	if !st.IsLoading && st.Err == nil && len(st.Data) == 0 {
		return dimStyle.Render(fmt.Sprintf("По запросу %q ничего не найдено", m.search.Query))
	}
	return listing(st.IsLoading, st.Err, output.FormatTable(output.EventHeaders, output.EventRows(st.Data)), "")
}

func (m Model) usersView() string {
	st := m.users.State()
	rows := output.UserRows(st.Data)
	selected := min(max(m.userCursor, 0), len(rows)-1)
	for i, row := range rows {
		mark := " "
		if i == selected {
			mark = "›"
		}
		rows[i] = append([]string{mark}, row...)
	}
	headers := append([]string{""}, output.UserHeaders...)
	return listing(st.IsLoading, st.Err, output.FormatTable(headers, rows), "")
}

func (m Model) integrationView() string {
	objects, events := m.integration.Busy()
	running := func(busy bool) string {
		if busy {
			return "  " + dimStyle.Render("выполняется…")
		}
		return ""
	}
	parts := []string{
		titleStyle.Render("Объекты, группы и ответственные") + running(objects),
		"[o] синхронизировать из базы агентства",
		"",
		titleStyle.Render("Архив событий") + running(events),
		fmt.Sprintf("Лимит: %d   [/] изменить   [v] импортировать", pages.ParseLimit(m.integration.EventsLimit)),
		"",
		titleStyle.Render("Последний результат"),
	}
	if res := m.integration.LastResultJSON(); res != "" {
		parts = append(parts, res)
	} else {
		parts = append(parts, dimStyle.Render("Синхронизация ещё не выполнялась"))
	}
	return strings.Join(parts, "\n")
}

func (m Model) dashboardView() string {
	stats := m.dashboard.Stats()
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Событий сегодня", fmt.Sprint(stats.Data.TotalEvents)),
		statCard("Критических", fmt.Sprint(stats.Data.CriticalEvents)),
		statCard("Объектов", fmt.Sprint(stats.Data.ActiveObjects)),
		statCard("Отчётов", fmt.Sprint(stats.Data.ReportsGenerated)),
		statCard("Динамика", fmt.Sprintf("%+.1f%%", stats.Data.EventsTrend)),
	)

	parts := []string{cards}
	for _, err := range []error{stats.Err, m.dashboard.Timeline().Err, m.dashboard.ByType().Err, m.dashboard.Recent().Err} {
		if err != nil {
			parts = append(parts, errorStyle.Render(pages.ErrorText(err)))
		}
	}

	parts = append(parts, titleStyle.Render("События за сегодня"), timelineChart(m.dashboard.Timeline().Data))
	parts = append(parts, titleStyle.Render("По типам за 24 часа"), typeChart(m.dashboard.ByType().Data))

	recent := m.dashboard.Recent().Data.Data
	parts = append(parts, titleStyle.Render("Последние события"))
	if len(recent) == 0 {
		parts = append(parts, dimStyle.Render("Нет событий"))
	} else {
		parts = append(parts, strings.TrimRight(output.FormatTable(output.EventHeaders, output.EventRows(recent)), "\n"))
	}
	return strings.Join(parts, "\n")
}

func statCard(label, value string) string {
	return statStyle.Render(dimStyle.Render(label) + "\n" + titleStyle.Render(value))
}

func timelineChart(points []models.TimelinePoint) string {
	if len(points) == 0 {
		return dimStyle.Render("Нет данных")
	}
	top := 0
	for _, p := range points {
		top = max(top, p.Events)
	}
	lines := make([]string, len(points))
	for i, p := range points {
		lines[i] = fmt.Sprintf("%5s %-30s %d (%d крит.)", p.Time, output.Bar(p.Events, top, 30), p.Events, p.Critical)
	}
	return strings.Join(lines, "\n")
}

func typeChart(slices []models.TypeSlice) string {
	if len(slices) == 0 {
		return dimStyle.Render("Нет данных")
	}
	top, width := 0, 0
	for _, s := range slices {
		top = max(top, s.Value)
		width = max(width, len([]rune(s.Name)))
	}
	lines := make([]string, len(slices))
	for i, s := range slices {
		name := s.Name + strings.Repeat(" ", width-len([]rune(s.Name)))
		bar := output.Bar(s.Value, top, 30)
		if s.Color != "" {
			bar = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render(bar)
		}
		lines[i] = fmt.Sprintf("%s %s %d", name, bar, s.Value)
	}
	return strings.Join(lines, "\n")
}

func (m Model) help() string {
	keys := []string{"1-8/tab раздел", "b панель", "r обновить", "q выход"}
	switch m.section {
	case sectionEvents:
		keys = append(keys, "/ поиск", "s важность", "t сегодня", "x сброс", "n/p страницы")
	case sectionObjects:
		keys = append(keys, "/ поиск", "d отключённые", "n/p страницы")
	case sectionNotifications:
		keys = append(keys, "a прочитать все")
	case sectionSearch:
		keys = append(keys, "/ запрос", "x очистить")
	case sectionUsers:
		keys = append(keys, "↑/↓ выбор", "e вкл/выкл")
	case sectionIntegration:
		keys = append(keys, "o объекты", "v события", "/ лимит")
	}
	if m.editing {
		keys = []string{"enter применить", "esc отмена"}
	}
	return strings.Join(keys, " · ")
}

func yesNo(v bool) string {
	if v {
		return "да"
	}
	return "нет"
}
