// Package pages holds one controller per screen of the command center. A
// controller turns its applied filters and page cursor into a request path,
// drives a fetch.Resource for it and runs the screen's mutations.
package pages

import (
	"errors"
	"fmt"
	"time"

	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/pkg/models"
)

const (
	// PageSize is the fixed page size of every listing screen.
	PageSize = 50
	// RecentPageSize is the size of the dashboard's recent events strip.
	RecentPageSize = 5

	// FilterAll is the select value meaning "no filter".
	FilterAll = "all"

	// TimestampLayout renders local wall-clock time with milliseconds and
	// the zone offset, so the server never has to guess the client's zone.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// DefaultErrorText is shown when a failure carries no message.
const DefaultErrorText = "Ошибка запроса"

// ErrorText is the inline message for err, or "" when err is nil. API
// failures show the server's own message without the operation prefix.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultErrorText
}

// DayBounds returns the first and last millisecond of now's calendar day in
// now's own location.
func DayBounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	loc := now.Location()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}

// Pager is the state of a listing's pagination controls.
type Pager struct {
	Page       int
	TotalPages int
	Shown      int
	Total      int
	HasPrev    bool
	HasNext    bool
}

// PagerFor derives the controls from the cursor and the last envelope.
// Nothing is recomputed from the rows beyond counting what is shown.
func PagerFor[T any](page int, env models.PaginatedResponse[T]) Pager {
	return Pager{
		Page:       page,
		TotalPages: env.TotalPages,
		Shown:      len(env.Data),
		Total:      env.Total,
		HasPrev:    models.HasPrev(page),
		HasNext:    models.HasNext(page, env.TotalPages),
	}
}

// Summary is the status line under a table.
func (p Pager) Summary(loading bool) string {
	if loading {
		return "Загрузка…"
	}
	return fmt.Sprintf("Показано %d из %d", p.Shown, p.Total)
}

func nextPage(page, totalPages int) int {
	return max(1, min(totalPages, page+1))
}

func prevPage(page int) int {
	return max(1, page-1)
}
