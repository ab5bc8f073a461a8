package pages

import (
	"context"
	"net/url"
	"strings"

	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/internal/fetch"
	"github.com/MrJinPro/SVOD/pkg/models"
)

type ObjectFilters struct {
	Search          string
	IncludeDisabled bool
}

func (f ObjectFilters) Values() url.Values {
	q := url.Values{}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", s)
	}
	if f.IncludeDisabled {
		q.Set("includeDisabled", "true")
	}
	return q
}

// ObjectsPage is the guarded objects directory.
type ObjectsPage struct {
	Draft   ObjectFilters
	Applied ObjectFilters
	Page    int

	res *fetch.Resource[models.PaginatedResponse[models.ObjectListItem]]
}

func NewObjectsPage(ctx context.Context, c *client.SvodClient, opts ...fetch.Option) *ObjectsPage {
	p := &ObjectsPage{Page: 1}
	p.res = fetch.Use(ctx, c.ListObjects, p.Path(), models.Empty[models.ObjectListItem](PageSize), opts...)
	return p
}

func (p *ObjectsPage) Path() string {
	return ObjectsPath(p.Applied, p.Page)
}

func ObjectsPath(f ObjectFilters, page int) string {
	return client.WithQuery(client.PathObjects, pageQuery(f.Values(), page, PageSize))
}

func (p *ObjectsPage) Apply() {
	p.Applied = p.Draft
	p.Page = 1
	p.res.SetPath(p.Path())
}

func (p *ObjectsPage) ToggleDisabled() {
	p.Draft.IncludeDisabled = !p.Draft.IncludeDisabled
	p.Apply()
}

func (p *ObjectsPage) Reset() {
	p.Draft = ObjectFilters{}
	p.Apply()
}

func (p *ObjectsPage) Next() {
	if p.Pager().HasNext {
		p.Page = nextPage(p.Page, p.State().Data.TotalPages)
		p.res.SetPath(p.Path())
	}
}

func (p *ObjectsPage) Prev() {
	if p.Page > 1 {
		p.Page = prevPage(p.Page)
		p.res.SetPath(p.Path())
	}
}

func (p *ObjectsPage) Refetch() { p.res.Refetch() }

func (p *ObjectsPage) State() fetch.State[models.PaginatedResponse[models.ObjectListItem]] {
	return p.res.Snapshot()
}

func (p *ObjectsPage) Pager() Pager {
	return PagerFor(p.Page, p.State().Data)
}

func (p *ObjectsPage) Wait()  { p.res.Wait() }
func (p *ObjectsPage) Close() { p.res.Close() }
