package pages

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/internal/fetch"
	"github.com/MrJinPro/SVOD/pkg/models"
)

type EventFilters struct {
	Search    string
	Type      string
	Severity  string
	Status    string
	TodayOnly bool
}

func DefaultEventFilters() EventFilters {
	return EventFilters{Type: FilterAll, Severity: FilterAll, Status: FilterAll}
}

// Values encodes the non-default filters. "Today only" becomes an explicit
// dateFrom/dateTo pair for now's local day.
func (f EventFilters) Values(now time.Time) url.Values {
	q := url.Values{}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", s)
	}
	setSelect(q, "type", f.Type)
	setSelect(q, "severity", f.Severity)
	setSelect(q, "status", f.Status)
	if f.TodayOnly {
		from, to := DayBounds(now)
		q.Set("dateFrom", from.Format(TimestampLayout))
		q.Set("dateTo", to.Format(TimestampLayout))
	}
	return q
}

func setSelect(q url.Values, key, value string) {
	if value != "" && value != FilterAll {
		q.Set(key, value)
	}
}

func pageQuery(q url.Values, page, size int) url.Values {
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(size))
	return q
}

// EventsPage is the event journal: filters, paging and CSV export.
type EventsPage struct {
	Draft   EventFilters
	Applied EventFilters
	Page    int

	// Now is the clock used for "today only"; tests pin it.
	Now func() time.Time

	res *fetch.Resource[models.PaginatedResponse[models.Event]]
}

func NewEventsPage(ctx context.Context, c *client.SvodClient, opts ...fetch.Option) *EventsPage {
	return newEventsPage(ctx, c, time.Now, opts...)
}

func newEventsPage(ctx context.Context, c *client.SvodClient, now func() time.Time, opts ...fetch.Option) *EventsPage {
	p := &EventsPage{
		Draft:   DefaultEventFilters(),
		Applied: DefaultEventFilters(),
		Page:    1,
		Now:     now,
	}
	p.res = fetch.Use(ctx, c.ListEvents, p.Path(), models.Empty[models.Event](PageSize), opts...)
	return p
}

func (p *EventsPage) Path() string {
	return EventsPath(p.Applied, p.Page, p.Now())
}

// EventsPath is the list query for one page of the journal.
func EventsPath(f EventFilters, page int, now time.Time) string {
	return client.WithQuery(client.PathEvents, pageQuery(f.Values(now), page, PageSize))
}

// ExportPath is the CSV export for the applied filters, without paging.
func (p *EventsPage) ExportPath() string {
	return EventsExportPath(p.Applied, p.Now())
}

func EventsExportPath(f EventFilters, now time.Time) string {
	return client.EventsExportPath(f.Values(now))
}

// Apply commits the draft filters and goes back to the first page.
func (p *EventsPage) Apply() {
	p.Applied = p.Draft
	p.Page = 1
	p.res.SetPath(p.Path())
}

// ToggleToday flips "today only" in the draft and applies it at once.
func (p *EventsPage) ToggleToday() {
	p.Draft.TodayOnly = !p.Draft.TodayOnly
	p.Apply()
}

func (p *EventsPage) Reset() {
	p.Draft = DefaultEventFilters()
	p.Apply()
}

func (p *EventsPage) Next() {
	if p.Pager().HasNext {
		p.Page = nextPage(p.Page, p.State().Data.TotalPages)
		p.res.SetPath(p.Path())
	}
}

func (p *EventsPage) Prev() {
	if p.Page > 1 {
		p.Page = prevPage(p.Page)
		p.res.SetPath(p.Path())
	}
}

func (p *EventsPage) Refetch() { p.res.Refetch() }

func (p *EventsPage) State() fetch.State[models.PaginatedResponse[models.Event]] {
	return p.res.Snapshot()
}

func (p *EventsPage) Pager() Pager {
	return PagerFor(p.Page, p.State().Data)
}

// Wait blocks until the current fetch has finished.
func (p *EventsPage) Wait() { p.res.Wait() }

func (p *EventsPage) Close() { p.res.Close() }
