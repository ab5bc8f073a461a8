package pages

import (
	"context"
	"strings"

	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/internal/fetch"
	"github.com/MrJinPro/SVOD/pkg/models"
)

// SearchPage runs the full-text event search. Unlike the listings a failed
// search clears the previous results.
type SearchPage struct {
	Draft    string
	Query    string
	Searched bool

	res *fetch.Resource[[]models.Event]
}

func NewSearchPage(ctx context.Context, c *client.SvodClient, opts ...fetch.Option) *SearchPage {
	return &SearchPage{res: fetch.Use(ctx, c.SearchEvents, "", []models.Event{}, opts...)}
}

// Submit searches for the draft text. An empty query does nothing.
func (p *SearchPage) Submit() {
	q := strings.TrimSpace(p.Draft)
	if q == "" {
		return
	}
	p.Query = q
	p.Searched = true
	if path := p.Path(); path == p.res.Path() {
		p.res.Refetch()
	} else {
		p.res.SetPath(path)
	}
}

func (p *SearchPage) Path() string {
	if p.Query == "" {
		return ""
	}
	return client.SearchPath(p.Query)
}

// Clear resets the query and drops the results.
func (p *SearchPage) Clear() {
	p.Draft, p.Query, p.Searched = "", "", false
	p.res.SetPath("")
}

// State reports the results. After a failure Data is empty, not stale.
func (p *SearchPage) State() fetch.State[[]models.Event] {
	st := p.res.Snapshot()
	if st.Err != nil || p.Query == "" {
		st.Data = []models.Event{}
	}
	return st
}

func (p *SearchPage) Wait()  { p.res.Wait() }
func (p *SearchPage) Close() { p.res.Close() }
