package models

type ReportType string

const (
	ReportDaily   ReportType = "daily"
	ReportWeekly  ReportType = "weekly"
	ReportMonthly ReportType = "monthly"
)

type ReportStatus string

const (
	ReportGenerated ReportStatus = "generated"
	ReportSent      ReportStatus = "sent"
	ReportPending   ReportStatus = "pending"
	ReportFailed    ReportStatus = "failed"
)

// Report is read-only; exporting one is a file download, not a mutation.
type Report struct {
	ID            string       `json:"id"`
	Type          ReportType   `json:"type"`
	PeriodStart   string       `json:"periodStart"`
	PeriodEnd     string       `json:"periodEnd"`
	GeneratedAt   string       `json:"generatedAt"`
	Status        ReportStatus `json:"status"`
	EventsCount   int          `json:"eventsCount"`
	CriticalCount int          `json:"criticalCount"`
}
