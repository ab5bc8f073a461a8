package pages

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJinPro/SVOD/internal/auth"
	"github.com/MrJinPro/SVOD/internal/jobs"
	"github.com/MrJinPro/SVOD/pkg/models"
)

func TestLoginPage_WrongPassword(t *testing.T) {
	tokens := auth.NewMemoryStore("")
	api, c := newFakeAPIWith(t, tokens)
	api.mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	p := NewLoginPage(c, tokens)
	p.Username, p.Password = "op1", "wrong"

	_, err := p.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", ErrorText(err))
	assert.Equal(t, "Ошибка входа", p.Title(true))

	_, ok := tokens.Get()
	assert.False(t, ok, "failed login stores nothing")
}

func TestLoginPage_StoresTokenAndUsesItNext(t *testing.T) {
	tokens := auth.NewMemoryStore("")
	api, c := newFakeAPIWith(t, tokens)
	api.mux.HandleFunc("POST /api/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body models.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "op2", body.Username)
		assert.Equal(t, "op2@svod.local", body.Email)
		_, _ = w.Write([]byte(`{"accessToken":"tok-op2","tokenType":"bearer","user":{"id":"2","username":"op2","role":"operator","isActive":true}}`))
	})
	var authHeader atomic.Value
	api.mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		authHeader.Store(r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"2","username":"op2","role":"operator","isActive":true}`))
	})

	p := NewLoginPage(c, tokens)
	p.ToggleMode()
	p.Username, p.Password, p.Email = " op2 ", "pw", " op2@svod.local "

	res, err := p.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "op2", res.User.Username)
	assert.Equal(t, "Регистрация выполнена", p.Title(false))

	_, err = c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-op2", authHeader.Load())

	Logout(tokens)
	_, ok := tokens.Get()
	assert.False(t, ok)
}

func TestLoginPage_MissingCredentials(t *testing.T) {
	tokens := auth.NewMemoryStore("")
	api, c := newFakeAPIWith(t, tokens)
	p := NewLoginPage(c, tokens)
	p.Username = "   "
	p.Password = "x"

	_, err := p.Submit(context.Background())
	assert.ErrorIs(t, err, ErrMissingCredentials)
	api.mu.Lock()
	assert.Empty(t, api.requests)
	api.mu.Unlock()
}

func TestUsersPage_MutationsRefetch(t *testing.T) {
	api, c := newFakeAPI(t)
	api.handle("GET /api/v1/users", `[{"id":"1","username":"admin","role":"admin","isActive":true},{"id":"2","username":"op1","role":"operator","isActive":true}]`)
	api.mux.HandleFunc("POST /api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		var body models.CreateUserRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Username == "admin" {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"detail":{"code":"CONFLICT","message":"Username already exists"}}`))
			return
		}
		assert.Equal(t, models.RoleOperator, body.Role)
		_, _ = w.Write([]byte(`{"id":"3","username":"op3","role":"operator","isActive":true}`))
	})
	var patched atomic.Value
	api.mux.HandleFunc("PATCH /api/v1/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		patched.Store(body)
		_, _ = w.Write([]byte(`{"id":"2","username":"op1","role":"operator","isActive":false}`))
	})
	api.handle("POST /api/v1/users/{id}/password", `{"status":"ok"}`)

	p := NewUsersPage(context.Background(), c)
	defer p.Close()
	p.Wait()
	require.Len(t, p.State().Data, 2)

	ctx := context.Background()

	_, err := p.Create(ctx, models.CreateUserRequest{Username: "admin", Password: "x", IsActive: true})
	assert.Equal(t, "Username already exists", ErrorText(err))
	p.Wait()
	assert.Equal(t, 1, api.count(http.MethodGet, "/api/v1/users"), "failed mutation does not refetch")

	_, err = p.Create(ctx, models.CreateUserRequest{Username: "op3", Password: "x", IsActive: true})
	require.NoError(t, err)
	p.Wait()
	assert.Equal(t, 2, api.count(http.MethodGet, "/api/v1/users"))

	u, ok := p.Find("op1")
	require.True(t, ok)
	_, err = p.ToggleActive(ctx, u)
	require.NoError(t, err)
	p.Wait()
	assert.Equal(t, map[string]any{"isActive": false}, patched.Load())
	assert.Equal(t, 3, api.count(http.MethodGet, "/api/v1/users"))

	require.NoError(t, p.SetPassword(ctx, "2", "new-secret"))
	p.Wait()
	assert.Equal(t, 4, api.count(http.MethodGet, "/api/v1/users"))

	assert.ErrorIs(t, p.SetPassword(ctx, "2", ""), ErrPasswordRequired)
	_, err = p.Create(ctx, models.CreateUserRequest{Password: "x"})
	assert.ErrorIs(t, err, ErrUsernameRequired)
	bad := models.UserRole("root")
	_, err = p.Update(ctx, "2", models.UpdateUserRequest{Role: &bad})
	assert.Error(t, err)
}

func TestNotificationsPage(t *testing.T) {
	api, c := newFakeAPI(t)
	var cleared atomic.Bool
	api.mux.HandleFunc("GET /api/v1/notifications", func(w http.ResponseWriter, r *http.Request) {
		if cleared.Load() {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"n1","title":"Критическое событие","message":"Склад 4: Тревога","severity":"critical","timestamp":"2024-05-01T10:00:00Z","read":false},{"id":"n2","title":"Предупреждение","message":"Офис","severity":"warning","timestamp":"2024-05-01T09:00:00Z","read":true}]`))
	})
	api.handle("POST /api/v1/notifications/mark-all-read", `{"status":"ok","marked":1}`)
	api.mux.HandleFunc("DELETE /api/v1/notifications/clear", func(w http.ResponseWriter, r *http.Request) {
		cleared.Store(true)
		w.WriteHeader(http.StatusOK)
	})

	p := NewNotificationsPage(context.Background(), c)
	defer p.Close()
	p.Wait()
	assert.Equal(t, 1, p.Unread())

	res, err := p.MarkAllRead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Marked)
	p.Wait()

	require.NoError(t, p.Clear(context.Background()))
	p.Wait()
	assert.Empty(t, p.State().Data)
	assert.Equal(t, 3, api.count(http.MethodGet, "/api/v1/notifications"))
}

func TestSearchPage(t *testing.T) {
	api, c := newFakeAPI(t)
	api.mux.HandleFunc("GET /api/v1/search/events", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "boom" {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"message":"search backend down"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"e1","description":"Тревога"}]`))
	})

	p := NewSearchPage(context.Background(), c)
	defer p.Close()

	p.Draft = "   "
	p.Submit()
	p.Wait()
	assert.False(t, p.Searched)
	assert.Zero(t, api.count(http.MethodGet, "/api/v1/search/events"))

	p.Draft = " тревога "
	p.Submit()
	p.Wait()
	assert.True(t, p.Searched)
	assert.Len(t, p.State().Data, 1)
	assert.Equal(t, "тревога", api.last("/api/v1/search/events").Get("q"))

	// same query again searches again
	p.Submit()
	p.Wait()
	assert.Equal(t, 2, api.count(http.MethodGet, "/api/v1/search/events"))

	p.Draft = "boom"
	p.Submit()
	p.Wait()
	st := p.State()
	assert.Equal(t, "search backend down", ErrorText(st.Err))
	assert.Empty(t, st.Data, "failed search clears results")

	p.Clear()
	assert.False(t, p.Searched)
	assert.Empty(t, p.State().Data)
}

func TestReportsPage(t *testing.T) {
	api, c := newFakeAPI(t)
	api.handle("GET /api/v1/reports", `[{"id":"r1","type":"daily","periodStart":"2024-04-30","periodEnd":"2024-04-30","generatedAt":"2024-05-01T00:05:00Z","status":"generated","eventsCount":312,"criticalCount":4}]`)

	p := NewReportsPage(context.Background(), c)
	defer p.Close()
	p.Now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	p.Wait()
	assert.Len(t, p.State().Data, 1)

	p.SetFilters(ReportFilters{Type: "weekly", Status: FilterAll})
	p.Wait()
	q := api.last("/api/v1/reports")
	assert.Equal(t, "weekly", q.Get("type"))
	assert.Empty(t, q.Get("status"))

	assert.Equal(t, "/reports/export/daily?date=2024-05-01", p.DailyExportPath(""))
	assert.Equal(t, "/reports/export/daily?date=2024-04-28", p.DailyExportPath("2024-04-28"))
	assert.Equal(t, "/reports/export/phrase-counts?dateFrom=2024-04-01&dateTo=2024-04-30", p.PhrasesExportPath("2024-04-01", "2024-04-30"))
}

func TestIntegrationPage(t *testing.T) {
	api, c := newFakeAPI(t)
	api.handle("POST /api/v1/db/sync/objects/start", `{"status":"queued","jobId":"j1"}`)
	api.handle("GET /api/v1/db/jobs/j1", `{"id":"j1","status":"done","result":{"objects":42,"groups":7}}`)
	api.handle("POST /api/v1/db/sync/events", `{"processed":9}`)

	poller := jobs.NewPoller(c)
	poller.Interval = 10 * time.Millisecond
	p := NewIntegrationPage(poller)
	assert.Equal(t, "500", p.EventsLimit)
	assert.Empty(t, p.LastResultJSON())

	msg, err := p.SyncObjects(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Готово: 42 объектов", msg)
	assert.Contains(t, p.LastResultJSON(), `"objects": 42`)

	p.EventsLimit = "9000"
	msg, err = p.SyncEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Готово: 9 событий", msg)
	assert.Equal(t, "5000", api.last("/api/v1/db/sync/events").Get("limit"))

	objects, events := p.Busy()
	assert.False(t, objects)
	assert.False(t, events)
}
