package pages

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJinPro/SVOD/internal/auth"
	"github.com/MrJinPro/SVOD/internal/client"
)

// fakeAPI records every request it serves.
type fakeAPI struct {
	mux *http.ServeMux

	mu       sync.Mutex
	requests []request
}

type request struct {
	method string
	url    *url.URL
}

func newFakeAPI(t *testing.T) (*fakeAPI, *client.SvodClient) {
	t.Helper()
	return newFakeAPIWith(t, auth.NewMemoryStore(""))
}

func newFakeAPIWith(t *testing.T, tokens auth.TokenStore) (*fakeAPI, *client.SvodClient) {
	t.Helper()
	api := &fakeAPI{mux: http.NewServeMux()}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.requests = append(api.requests, request{method: r.Method, url: r.URL})
		api.mu.Unlock()
		api.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return api, client.New(client.ClientConfig{BaseURL: srv.URL + client.APIRoot, Tokens: tokens})
}

func (a *fakeAPI) handle(pattern, body string) {
	a.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})
}

func (a *fakeAPI) count(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, r := range a.requests {
		if r.method == method && r.url.Path == path {
			n++
		}
	}
	return n
}

func (a *fakeAPI) last(path string) url.Values {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := len(a.requests) - 1; i >= 0; i-- {
		if a.requests[i].url.Path == path {
			return a.requests[i].url.Query()
		}
	}
	return nil
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "", ErrorText(nil))
	assert.Equal(t, "Not Found", ErrorText(fmt.Errorf("failed to get object 7: %w", &client.APIError{StatusCode: 404, Message: "Not Found"})))
	assert.Equal(t, "boom", ErrorText(errors.New("boom")))
	assert.Equal(t, DefaultErrorText, ErrorText(errors.New("")))
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	from, to := DayBounds(time.Date(2024, 5, 1, 0, 30, 0, 0, loc))
	assert.Equal(t, "2024-05-01T00:00:00.000+03:00", from.Format(TimestampLayout))
	assert.Equal(t, "2024-05-01T23:59:59.999+03:00", to.Format(TimestampLayout))
}

func TestPager(t *testing.T) {
	p := Pager{Shown: 3, Total: 3}
	assert.Equal(t, "Показано 3 из 3", p.Summary(false))
	assert.Equal(t, "Загрузка…", p.Summary(true))

	assert.Equal(t, 2, nextPage(1, 4))
	assert.Equal(t, 4, nextPage(4, 4))
	assert.Equal(t, 1, prevPage(1))
}

func TestLoadDashboard_KeepsPartialResults(t *testing.T) {
	api, c := newFakeAPI(t)
	api.handle("GET /api/v1/dashboard/stats", `{"totalEvents":120,"criticalEvents":4,"activeObjects":37,"reportsGenerated":2,"eventsTrend":-12.5}`)
	api.handle("GET /api/v1/dashboard/charts/timeline", `[{"time":"00:00","events":3,"critical":1}]`)
	api.mux.HandleFunc("GET /api/v1/dashboard/charts/by-type", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"chart unavailable"}`))
	})
	api.handle("GET /api/v1/events", `{"data":[{"id":"e1"},{"id":"e2"}],"total":2,"page":1,"pageSize":5,"totalPages":1}`)

	snap, err := LoadDashboard(context.Background(), c)
	require.Error(t, err)
	assert.Equal(t, "chart unavailable", ErrorText(err))
	assert.Equal(t, 120, snap.Stats.TotalEvents)
	assert.Len(t, snap.Timeline, 1)
	assert.Empty(t, snap.ByType)
	assert.Len(t, snap.Recent, 2)

	q := api.last("/api/v1/events")
	assert.Equal(t, "5", q.Get("pageSize"))
}

func TestDashboardPage(t *testing.T) {
	api, c := newFakeAPI(t)
	api.handle("GET /api/v1/dashboard/stats", `{"totalEvents":1}`)
	api.handle("GET /api/v1/dashboard/charts/timeline", `[]`)
	api.handle("GET /api/v1/dashboard/charts/by-type", `[{"name":"Тревога","value":2}]`)
	api.handle("GET /api/v1/events", `{"data":[],"total":0,"page":1,"pageSize":5,"totalPages":1}`)

	p := NewDashboardPage(context.Background(), c)
	defer p.Close()
	p.Wait()

	assert.Equal(t, 1, p.Stats().Data.TotalEvents)
	assert.Len(t, p.ByType().Data, 1)
	assert.NoError(t, p.Timeline().Err)
	assert.Equal(t, 5, p.Recent().Data.PageSize)
}

func TestIntegration_ParseLimit(t *testing.T) {
	tests := map[string]int{
		"":       500,
		"abc":    500,
		"0":      500,
		"-3":     1,
		" 250 ":  250,
		"100000": 5000,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLimit(in), "input %q", in)
	}
}
