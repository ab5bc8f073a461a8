package pages

import (
	"context"
	"net/url"

	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/internal/fetch"
	"github.com/MrJinPro/SVOD/pkg/models"
)

// MaxResponsibles caps the responsibles listed on an object card.
const MaxResponsibles = 100

// ObjectDetailsPage shows one object card and a paginated list of its events.
// The two resources are independent and may complete in any order.
type ObjectDetailsPage struct {
	ID         string
	EventsPage int

	object *fetch.Resource[models.ObjectDetails]
	events *fetch.Resource[models.PaginatedResponse[models.Event]]
}

func NewObjectDetailsPage(ctx context.Context, c *client.SvodClient, id string, opts ...fetch.Option) *ObjectDetailsPage {
	p := &ObjectDetailsPage{ID: id, EventsPage: 1}
	p.object = fetch.Use(ctx, c.GetObject, p.objectPath(), models.ObjectDetails{}, opts...)
	p.events = fetch.Use(ctx, c.ListEvents, p.EventsPath(), models.Empty[models.Event](PageSize), opts...)
	return p
}

// objectPath is what the object resource is keyed on. GetObject takes the
// raw id, so the "path" here is the id itself.
func (p *ObjectDetailsPage) objectPath() string {
	return p.ID
}

func (p *ObjectDetailsPage) EventsPath() string {
	return ObjectEventsPath(p.ID, p.EventsPage)
}

// ObjectEventsPath is one page of an object's events, "" without an id.
func ObjectEventsPath(id string, page int) string {
	if id == "" {
		return ""
	}
	return client.WithQuery(client.ObjectEventsPath(id), pageQuery(url.Values{}, page, PageSize))
}

// Title is the object name, falling back to the id.
func (p *ObjectDetailsPage) Title() string {
	if name := p.Object().Data.Name; name != "" {
		return name
	}
	if p.ID != "" {
		return p.ID
	}
	return "Объект"
}

func (p *ObjectDetailsPage) Object() fetch.State[models.ObjectDetails] {
	return p.object.Snapshot()
}

func (p *ObjectDetailsPage) Events() fetch.State[models.PaginatedResponse[models.Event]] {
	return p.events.Snapshot()
}

// Responsibles returns at most MaxResponsibles entries and how many were left out.
func (p *ObjectDetailsPage) Responsibles() ([]models.ObjectResponsible, int) {
	all := p.Object().Data.Responsibles
	if len(all) <= MaxResponsibles {
		return all, 0
	}
	return all[:MaxResponsibles], len(all) - MaxResponsibles
}

func (p *ObjectDetailsPage) EventsPager() Pager {
	return PagerFor(p.EventsPage, p.Events().Data)
}

func (p *ObjectDetailsPage) NextEvents() {
	if p.EventsPager().HasNext {
		p.EventsPage = nextPage(p.EventsPage, p.Events().Data.TotalPages)
		p.events.SetPath(p.EventsPath())
	}
}

func (p *ObjectDetailsPage) PrevEvents() {
	if p.EventsPage > 1 {
		p.EventsPage = prevPage(p.EventsPage)
		p.events.SetPath(p.EventsPath())
	}
}

// Refetch reloads the card and the current events page.
func (p *ObjectDetailsPage) Refetch() {
	p.object.Refetch()
	p.events.Refetch()
}

func (p *ObjectDetailsPage) Wait() {
	p.object.Wait()
	p.events.Wait()
}

func (p *ObjectDetailsPage) Close() {
	p.object.Close()
	p.events.Close()
}
