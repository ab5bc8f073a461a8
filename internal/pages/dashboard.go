package pages

import (
	"context"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/internal/fetch"
	"github.com/MrJinPro/SVOD/pkg/models"
)

// RecentEventsPath is the dashboard's latest events strip.
var RecentEventsPath = client.WithQuery(client.PathEvents, pageQuery(url.Values{}, 1, RecentPageSize))

// DashboardPage holds four independent resources. Each one renders on its
// own; a slow or failing widget never blanks the others.
type DashboardPage struct {
	stats    *fetch.Resource[models.DashboardStats]
	timeline *fetch.Resource[[]models.TimelinePoint]
	byType   *fetch.Resource[[]models.TypeSlice]
	recent   *fetch.Resource[models.PaginatedResponse[models.Event]]
}

func NewDashboardPage(ctx context.Context, c *client.SvodClient, opts ...fetch.Option) *DashboardPage {
	return &DashboardPage{
		stats: fetch.Use(ctx, func(ctx context.Context, _ string) (models.DashboardStats, error) {
			return c.GetDashboardStats(ctx)
		}, client.PathDashboardStats, models.DashboardStats{}, opts...),
		timeline: fetch.Use(ctx, func(ctx context.Context, _ string) ([]models.TimelinePoint, error) {
			return c.GetTimeline(ctx)
		}, client.PathDashboardTimeline, []models.TimelinePoint{}, opts...),
		byType: fetch.Use(ctx, func(ctx context.Context, _ string) ([]models.TypeSlice, error) {
			return c.GetTypeDistribution(ctx)
		}, client.PathDashboardByType, []models.TypeSlice{}, opts...),
		recent: fetch.Use(ctx, c.ListEvents, RecentEventsPath, models.Empty[models.Event](RecentPageSize), opts...),
	}
}

func (p *DashboardPage) Stats() fetch.State[models.DashboardStats] { return p.stats.Snapshot() }

func (p *DashboardPage) Timeline() fetch.State[[]models.TimelinePoint] { return p.timeline.Snapshot() }

func (p *DashboardPage) ByType() fetch.State[[]models.TypeSlice] { return p.byType.Snapshot() }

func (p *DashboardPage) Recent() fetch.State[models.PaginatedResponse[models.Event]] {
	return p.recent.Snapshot()
}

func (p *DashboardPage) Refetch() {
	p.stats.Refetch()
	p.timeline.Refetch()
	p.byType.Refetch()
	p.recent.Refetch()
}

func (p *DashboardPage) Wait() {
	p.stats.Wait()
	p.timeline.Wait()
	p.byType.Wait()
	p.recent.Wait()
}

func (p *DashboardPage) Close() {
	p.stats.Close()
	p.timeline.Close()
	p.byType.Close()
	p.recent.Close()
}

// DashboardSnapshot is a one-shot copy of every dashboard widget.
type DashboardSnapshot struct {
	Stats    models.DashboardStats  `json:"stats"`
	Timeline []models.TimelinePoint `json:"timeline"`
	ByType   []models.TypeSlice     `json:"byType"`
	Recent   []models.Event         `json:"recent"`
}

// LoadDashboard fetches all widgets concurrently. Widgets that loaded are
// returned even when another one failed; the error is the first failure.
func LoadDashboard(ctx context.Context, c *client.SvodClient) (DashboardSnapshot, error) {
	snap := DashboardSnapshot{
		Timeline: []models.TimelinePoint{},
		ByType:   []models.TypeSlice{},
		Recent:   []models.Event{},
	}

	var g errgroup.Group
	g.Go(func() error {
		stats, err := c.GetDashboardStats(ctx)
		if err == nil {
			snap.Stats = stats
		}
		return err
	})
	g.Go(func() error {
		points, err := c.GetTimeline(ctx)
		if err == nil {
			snap.Timeline = points
		}
		return err
	})
	g.Go(func() error {
		slices, err := c.GetTypeDistribution(ctx)
		if err == nil {
			snap.ByType = slices
		}
		return err
	})
	g.Go(func() error {
		page, err := c.ListEvents(ctx, RecentEventsPath)
		if err == nil {
			snap.Recent = page.Data
		}
		return err
	})

	err := g.Wait()
	return snap, err
}
