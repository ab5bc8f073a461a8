// Package tui is the interactive console: a sidebar of sections, live
// listings that refetch in the background and an unread notifications badge.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/internal/config"
	"github.com/MrJinPro/SVOD/internal/fetch"
	"github.com/MrJinPro/SVOD/internal/jobs"
	"github.com/MrJinPro/SVOD/internal/pages"
	"github.com/MrJinPro/SVOD/pkg/models"
)

type section int

const (
	sectionDashboard section = iota
	sectionEvents
	sectionObjects
	sectionReports
	sectionNotifications
	sectionSearch
	sectionUsers
	sectionIntegration
	sectionCount
)

var sectionTitles = [sectionCount]string{
	"Панель",
	"События",
	"Объекты",
	"Отчёты",
	"Уведомления",
	"Поиск",
	"Пользователи",
	"Интеграция",
}

type (
	// changedMsg is sent after any fetch resource applied new state.
	changedMsg struct{}
	tickMsg    time.Time
	actionMsg  struct {
		text string
		err  error
	}
)

// Options wires the console to the API and client-local storage.
type Options struct {
	Client   *client.SvodClient
	Storage  *config.LocalStorage
	Settings config.Settings
}

type Model struct {
	ctx     context.Context
	storage *config.LocalStorage
	refresh time.Duration
	changes chan struct{}

	section   section
	collapsed bool
	editing   bool
	input     textinput.Model
	status    string
	statusErr bool
	width     int
	height    int

	dashboard     *pages.DashboardPage
	events        *pages.EventsPage
	objects       *pages.ObjectsPage
	reports       *pages.ReportsPage
	notifications *pages.NotificationsPage
	search        *pages.SearchPage
	users         *pages.UsersPage
	integration   *pages.IntegrationPage
	userCursor    int
	// badge is independent of the notifications section.
	badge *pages.NotificationsPage
}

func New(ctx context.Context, opts Options) Model {
	changes := make(chan struct{}, 1)
	fo := []fetch.Option{
		fetch.OnChange(func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		}),
		fetch.WithLogger(logrus.WithField("component", "console")),
	}

	in := textinput.New()
	in.Prompt = "Поиск: "
	in.CharLimit = 200

	c := opts.Client
	return Model{
		ctx:           ctx,
		storage:       opts.Storage,
		refresh:       opts.Settings.RefreshEvery(),
		changes:       changes,
		collapsed:     config.SidebarCollapsed(opts.Storage),
		input:         in,
		dashboard:     pages.NewDashboardPage(ctx, c, fo...),
		events:        pages.NewEventsPage(ctx, c, fo...),
		objects:       pages.NewObjectsPage(ctx, c, fo...),
		reports:       pages.NewReportsPage(ctx, c, fo...),
		notifications: pages.NewNotificationsPage(ctx, c, fo...),
		search:        pages.NewSearchPage(ctx, c, fo...),
		users:         pages.NewUsersPage(ctx, c, fo...),
		integration:   pages.NewIntegrationPage(jobs.NewPoller(c)),
		badge:         pages.NewNotificationsPage(ctx, c, fo...),
	}
}

// Run starts the console and blocks until the operator quits.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Close stops every resource; late results are dropped.
func (m Model) Close() {
	m.dashboard.Close()
	m.events.Close()
	m.objects.Close()
	m.reports.Close()
	m.notifications.Close()
	m.search.Close()
	m.users.Close()
	m.badge.Close()
}

// wait blocks until all in-flight fetches finished.
func (m Model) wait() {
	m.dashboard.Wait()
	m.events.Wait()
	m.objects.Wait()
	m.reports.Wait()
	m.notifications.Wait()
	m.search.Wait()
	m.users.Wait()
	m.badge.Wait()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForChange(), m.tick())
}

func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changes:
			return changedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) tick() tea.Cmd {
	if m.refresh <= 0 {
		return nil
	}
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case changedMsg:
		return m, m.waitForChange()

	case tickMsg:
		m.refetchCurrent()
		m.badge.Refetch()
		return m, m.tick()

	case actionMsg:
		m.setStatus(msg.text, msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		m.submit(m.input.Value())
		return m, nil
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "right":
		m.section = (m.section + 1) % sectionCount
	case "shift+tab", "left":
		m.section = (m.section + sectionCount - 1) % sectionCount
	case "1", "2", "3", "4", "5", "6", "7", "8":
		m.section = section(key[0] - '1')
	case "b":
		m.collapsed = !m.collapsed
		config.SetSidebarCollapsed(m.storage, m.collapsed)
	case "r":
		m.refetchCurrent()
		m.badge.Refetch()
	case "n":
		m.pageNext()
	case "p":
		m.pagePrev()
	case "/":
		if draft, ok := m.draft(); ok {
			m.editing = true
			m.input.Prompt = "Поиск: "
			if m.section == sectionIntegration {
				m.input.Prompt = "Лимит событий: "
			}
			m.input.SetValue(draft)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}
	case "t":
		if m.section == sectionEvents {
			m.events.ToggleToday()
		}
	case "s":
		if m.section == sectionEvents {
			m.events.Draft.Severity = cycle(m.events.Draft.Severity, models.Severities)
			m.events.Apply()
		}
	case "d":
		if m.section == sectionObjects {
			m.objects.ToggleDisabled()
		}
	case "x":
		switch m.section {
		case sectionEvents:
			m.events.Reset()
		case sectionSearch:
			m.search.Clear()
		}
	case "a":
		if m.section == sectionNotifications {
			return m, m.markAllRead()
		}
	case "up", "k":
		if m.section == sectionUsers && m.userCursor > 0 {
			m.userCursor--
		}
	case "down", "j":
		if m.section == sectionUsers && m.userCursor < len(m.users.State().Data)-1 {
			m.userCursor++
		}
	case "e":
		if m.section == sectionUsers {
			return m, m.toggleUser()
		}
	case "o":
		if objects, _ := m.integration.Busy(); m.section == sectionIntegration && !objects {
			m.setStatus("Синхронизация объектов…", nil)
			return m, m.syncObjects()
		}
	case "v":
		if _, events := m.integration.Busy(); m.section == sectionIntegration && !events {
			m.setStatus("Импорт событий…", nil)
			return m, m.syncEvents()
		}
	}
	return m, nil
}

// selectedUser is the row under the cursor in the last fetched list.
func (m Model) selectedUser() (models.User, bool) {
	users := m.users.State().Data
	if len(users) == 0 {
		return models.User{}, false
	}
	return users[min(max(m.userCursor, 0), len(users)-1)], true
}

func (m Model) toggleUser() tea.Cmd {
	u, ok := m.selectedUser()
	if !ok {
		return nil
	}
	ctx, page := m.ctx, m.users
	return func() tea.Msg {
		updated, err := page.ToggleActive(ctx, u)
		if err != nil {
			return actionMsg{err: err}
		}
		state := "активирован"
		if !updated.IsActive {
			state = "деактивирован"
		}
		return actionMsg{text: fmt.Sprintf("Пользователь %s %s", updated.Username, state)}
	}
}

func (m Model) syncObjects() tea.Cmd {
	ctx, page := m.ctx, m.integration
	return func() tea.Msg {
		text, err := page.SyncObjects(ctx, nil)
		return actionMsg{text: text, err: err}
	}
}

func (m Model) syncEvents() tea.Cmd {
	ctx, page := m.ctx, m.integration
	return func() tea.Msg {
		text, err := page.SyncEvents(ctx)
		return actionMsg{text: text, err: err}
	}
}

func (m *Model) setStatus(text string, err error) {
	if err != nil {
		m.status, m.statusErr = pages.ErrorText(err), true
		return
	}
	m.status, m.statusErr = text, false
}

func (m Model) markAllRead() tea.Cmd {
	ctx, page, badge := m.ctx, m.notifications, m.badge
	return func() tea.Msg {
		res, err := page.MarkAllRead(ctx)
		if err != nil {
			return actionMsg{err: err}
		}
		badge.Refetch()
		return actionMsg{text: "Отмечено прочитанными: " + strconv.Itoa(res.Marked)}
	}
}

// draft returns the text filter of the current section, if it has one.
func (m Model) draft() (string, bool) {
	switch m.section {
	case sectionEvents:
		return m.events.Draft.Search, true
	case sectionObjects:
		return m.objects.Draft.Search, true
	case sectionSearch:
		return m.search.Draft, true
	case sectionIntegration:
		return m.integration.EventsLimit, true
	}
	return "", false
}

func (m Model) submit(text string) {
	switch m.section {
	case sectionEvents:
		m.events.Draft.Search = text
		m.events.Apply()
	case sectionObjects:
		m.objects.Draft.Search = text
		m.objects.Apply()
	case sectionSearch:
		m.search.Draft = text
		m.search.Submit()
	case sectionIntegration:
		m.integration.EventsLimit = text
	}
}

func (m Model) refetchCurrent() {
	switch m.section {
	case sectionDashboard:
		m.dashboard.Refetch()
	case sectionEvents:
		m.events.Refetch()
	case sectionObjects:
		m.objects.Refetch()
	case sectionReports:
		m.reports.Refetch()
	case sectionNotifications:
		m.notifications.Refetch()
	case sectionSearch:
		if m.search.Searched {
			m.search.Submit()
		}
	case sectionUsers:
		m.users.Refetch()
	}
}

func (m Model) pageNext() {
	switch m.section {
	case sectionEvents:
		m.events.Next()
	case sectionObjects:
		m.objects.Next()
	}
}

func (m Model) pagePrev() {
	switch m.section {
	case sectionEvents:
		m.events.Prev()
	case sectionObjects:
		m.objects.Prev()
	}
}

// cycle moves a select value through "all" and then each option.
func cycle[T ~string](current string, options []T) string {
	if current == pages.FilterAll || current == "" {
		return string(options[0])
	}
	for i, o := range options {
		if string(o) == current && i+1 < len(options) {
			return string(options[i+1])
		}
	}
	return pages.FilterAll
}
