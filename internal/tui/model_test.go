package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJinPro/SVOD/internal/auth"
	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/internal/config"
	"github.com/MrJinPro/SVOD/pkg/models"
)

type recorder struct {
	mu          sync.Mutex
	events      []url.Values
	marked      int
	deactivated bool
	syncLimit   string
}

func newConsole(t *testing.T, settings config.Settings) (Model, *recorder, *config.LocalStorage) {
	t.Helper()
	rec := &recorder{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalEvents":120,"criticalEvents":4,"activeObjects":37,"reportsGenerated":2,"eventsTrend":5}`))
	})
	mux.HandleFunc("GET /api/v1/dashboard/charts/timeline", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"time":"00:00","events":3,"critical":1}]`))
	})
	mux.HandleFunc("GET /api/v1/dashboard/charts/by-type", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Тревога","value":2}]`))
	})
	mux.HandleFunc("GET /api/v1/events", func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.events = append(rec.events, r.URL.Query())
		rec.mu.Unlock()
		_, _ = w.Write([]byte(`{"data":[{"id":"e1","type":"alarm","objectName":"Склад 4","severity":"critical","status":"active","description":"Тревога"}],"total":1,"page":1,"pageSize":50,"totalPages":1}`))
	})
	mux.HandleFunc("GET /api/v1/objects", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[],"total":0,"page":1,"pageSize":50,"totalPages":1}`))
	})
	mux.HandleFunc("GET /api/v1/reports", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("GET /api/v1/notifications", func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		read := rec.marked > 0
		rec.mu.Unlock()
		if read {
			_, _ = w.Write([]byte(`[{"id":"n1","title":"Тревога","read":true}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"n1","title":"Тревога","read":false}]`))
	})
	mux.HandleFunc("POST /api/v1/notifications/mark-all-read", func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.marked++
		rec.mu.Unlock()
		_, _ = w.Write([]byte(`{"status":"ok","marked":1}`))
	})
	mux.HandleFunc("GET /api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		active := !rec.deactivated
		rec.mu.Unlock()
		_, _ = fmt.Fprintf(w, `[{"id":"1","username":"admin","role":"admin","isActive":true},{"id":"2","username":"op1","role":"operator","isActive":%t}]`, active)
	})
	mux.HandleFunc("PATCH /api/v1/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body models.UpdateUserRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "2", r.PathValue("id"))
		if !assert.NotNil(t, body.IsActive) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		rec.mu.Lock()
		rec.deactivated = !*body.IsActive
		rec.mu.Unlock()
		_, _ = fmt.Fprintf(w, `{"id":"2","username":"op1","role":"operator","isActive":%t}`, *body.IsActive)
	})
	mux.HandleFunc("POST /api/v1/db/sync/objects/start", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"queued","jobId":"j1"}`))
	})
	mux.HandleFunc("GET /api/v1/db/jobs/j1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"j1","status":"done","result":{"objects":42,"groups":7}}`))
	})
	mux.HandleFunc("POST /api/v1/db/sync/events", func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.syncLimit = r.URL.Query().Get("limit")
		rec.mu.Unlock()
		_, _ = w.Write([]byte(`{"processed":9}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	storage := config.NewLocalStorage(t.TempDir())
	c := client.New(client.ClientConfig{BaseURL: srv.URL + client.APIRoot, Tokens: auth.NewMemoryStore("tok")})
	m := New(context.Background(), Options{Client: c, Storage: storage, Settings: settings})
	t.Cleanup(m.Close)
	m.wait()
	return m, rec, storage
}

func (r *recorder) lastEvents() url.Values {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Get("pageSize") == "50" {
			return r.events[i]
		}
	}
	return nil
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	m.wait()
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConsole_DashboardAndBadge(t *testing.T) {
	m, _, _ := newConsole(t, config.DefaultSettings())

	view := m.View()
	assert.Contains(t, view, "Панель")
	assert.Contains(t, view, "🔔 1")
	assert.Contains(t, view, "Событий сегодня")
	assert.Contains(t, view, "Склад 4")
}

func TestConsole_SectionsAndSidebar(t *testing.T) {
	m, _, storage := newConsole(t, config.DefaultSettings())

	m, _ = press(t, m, runes("2"))
	assert.Equal(t, sectionEvents, m.section)
	assert.Contains(t, m.View(), "Показано 1 из 1")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, sectionDashboard, m.section)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, sectionIntegration, m.section)

	assert.False(t, config.SidebarCollapsed(storage))
	m, _ = press(t, m, runes("b"))
	assert.True(t, m.collapsed)
	assert.True(t, config.SidebarCollapsed(storage), "collapsed flag is persisted")

	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestConsole_SidebarFlagRestored(t *testing.T) {
	m, _, storage := newConsole(t, config.DefaultSettings())
	config.SetSidebarCollapsed(storage, true)

	offline := client.New(client.ClientConfig{BaseURL: "http://127.0.0.1:1" + client.APIRoot})
	again := New(context.Background(), Options{Client: offline, Storage: storage})
	defer again.Close()
	again.wait()
	assert.True(t, again.collapsed)
	assert.False(t, m.collapsed)
}

func TestConsole_SearchDraftAppliesOnEnter(t *testing.T) {
	m, rec, _ := newConsole(t, config.DefaultSettings())

	m, _ = press(t, m, runes("2"), runes("/"))
	require.True(t, m.editing)

	m, _ = press(t, m, runes("склад"))
	assert.Empty(t, rec.lastEvents().Get("search"), "typing does not refetch")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.editing)
	q := rec.lastEvents()
	assert.Equal(t, "склад", q.Get("search"))
	assert.Equal(t, "1", q.Get("page"))

	m, _ = press(t, m, runes("s"))
	assert.Equal(t, string(models.SeverityCritical), rec.lastEvents().Get("severity"))

	_, _ = press(t, m, runes("x"))
	assert.Empty(t, rec.lastEvents().Get("search"))
}

func TestConsole_MarkAllRead(t *testing.T) {
	m, rec, _ := newConsole(t, config.DefaultSettings())

	m, cmd := press(t, m, runes("5"), runes("a"))
	require.NotNil(t, cmd)
	msg := cmd()
	next, _ := m.Update(msg)
	m = next.(Model)
	m.wait()

	assert.Equal(t, "Отмечено прочитанными: 1", m.status)
	assert.Equal(t, 1, rec.marked)
	assert.Equal(t, 0, m.badge.Unread())
	assert.NotContains(t, m.View(), "🔔")
}

func TestConsole_RefreshTick(t *testing.T) {
	settings := config.DefaultSettings()
	settings.AutoRefresh = false
	m, _, _ := newConsole(t, settings)
	assert.Nil(t, m.tick())

	m, _, _ = newConsole(t, config.DefaultSettings())
	assert.NotNil(t, m.tick())

	next, cmd := m.Update(changedMsg{})
	assert.NotNil(t, cmd, "keeps listening for changes")
	_ = next
}

// run executes an action command and feeds its message back.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	m = next.(Model)
	m.wait()
	return m
}

func TestConsole_UsersToggle(t *testing.T) {
	m, rec, _ := newConsole(t, config.DefaultSettings())

	m, _ = press(t, m, runes("7"))
	assert.Equal(t, sectionUsers, m.section)
	assert.Contains(t, m.View(), "op1")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.userCursor, "cursor stops at the last row")
	u, ok := m.selectedUser()
	require.True(t, ok)
	assert.Equal(t, "op1", u.Username)

	m, cmd := press(t, m, runes("e"))
	m = run(t, m, cmd)
	assert.Equal(t, "Пользователь op1 деактивирован", m.status)
	assert.True(t, rec.deactivated)
	assert.False(t, m.users.State().Data[1].IsActive, "list is refetched after the change")

	m, _ = press(t, m, runes("k"))
	assert.Equal(t, 0, m.userCursor)
}

func TestConsole_Integration(t *testing.T) {
	m, rec, _ := newConsole(t, config.DefaultSettings())

	m, _ = press(t, m, runes("8"))
	assert.Contains(t, m.View(), "Синхронизация ещё не выполнялась")
	assert.Contains(t, m.View(), "Лимит: 500")

	m, _ = press(t, m, runes("/"))
	require.True(t, m.editing)
	assert.Equal(t, "500", m.input.Value())
	m.input.SetValue("9000")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "9000", m.integration.EventsLimit)
	assert.Contains(t, m.View(), "Лимит: 5000")

	m, cmd := press(t, m, runes("v"))
	assert.Equal(t, "Импорт событий…", m.status)
	m = run(t, m, cmd)
	assert.Equal(t, "Готово: 9 событий", m.status)
	assert.Equal(t, "5000", rec.syncLimit)

	m, cmd = press(t, m, runes("o"))
	m = run(t, m, cmd)
	assert.Equal(t, "Готово: 42 объектов", m.status)
	assert.Contains(t, m.View(), `"objects": 42`)
}

func TestCycle(t *testing.T) {
	assert.Equal(t, "critical", cycle("all", models.Severities))
	assert.Equal(t, "warning", cycle("critical", models.Severities))
	assert.Equal(t, "all", cycle("success", models.Severities))
}
