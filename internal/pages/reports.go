package pages

import (
	"context"
	"net/url"
	"time"

	"github.com/MrJinPro/SVOD/internal/client"
	"github.com/MrJinPro/SVOD/internal/fetch"
	"github.com/MrJinPro/SVOD/pkg/models"
)

type ReportFilters struct {
	Type   string
	Status string
}

func DefaultReportFilters() ReportFilters {
	return ReportFilters{Type: FilterAll, Status: FilterAll}
}

func (f ReportFilters) Values() url.Values {
	q := url.Values{}
	setSelect(q, "type", f.Type)
	setSelect(q, "status", f.Status)
	return q
}

// ReportsPage lists reports and builds their CSV download paths. Selecting a
// filter applies it immediately.
type ReportsPage struct {
	Applied ReportFilters
	Now     func() time.Time

	res *fetch.Resource[[]models.Report]
}

func NewReportsPage(ctx context.Context, c *client.SvodClient, opts ...fetch.Option) *ReportsPage {
	p := &ReportsPage{Applied: DefaultReportFilters(), Now: time.Now}
	p.res = fetch.Use(ctx, c.ListReports, p.Path(), []models.Report{}, opts...)
	return p
}

func (p *ReportsPage) Path() string {
	return ReportsPath(p.Applied)
}

func ReportsPath(f ReportFilters) string {
	return client.WithQuery(client.PathReports, f.Values())
}

func (p *ReportsPage) SetFilters(f ReportFilters) {
	p.Applied = f
	p.res.SetPath(p.Path())
}

// DailyExportPath addresses the daily CSV; an empty date means today.
func (p *ReportsPage) DailyExportPath(date string) string {
	if date == "" {
		date = p.Now().Format(client.DateLayout)
	}
	return client.DailyReportPath(date)
}

func (p *ReportsPage) PhrasesExportPath(dateFrom, dateTo string) string {
	return client.PhraseCountsPath(dateFrom, dateTo)
}

func (p *ReportsPage) Refetch() { p.res.Refetch() }

func (p *ReportsPage) State() fetch.State[[]models.Report] {
	return p.res.Snapshot()
}

func (p *ReportsPage) Wait()  { p.res.Wait() }
func (p *ReportsPage) Close() { p.res.Close() }
