package client

import (
	"net/url"
)

// DateLayout is the calendar-day format the report exports expect.
const DateLayout = "2006-01-02"

// EventsExportPath turns a list query into the CSV export query. The export
// endpoint takes the same filters but no paging.
func EventsExportPath(listQuery url.Values) string {
	q := url.Values{}
	for k, v := range listQuery {
		if k == "page" || k == "pageSize" {
			continue
		}
		q[k] = v
	}
	return WithQuery(PathEventsExport, q)
}

// DailyReportPath addresses the CSV of one calendar day (YYYY-MM-DD).
func DailyReportPath(date string) string {
	return WithQuery(PathReportsDaily, url.Values{"date": {date}})
}

// PhraseCountsPath addresses the phrase frequency CSV for a date range.
// Empty bounds are omitted and left to the server's defaults.
func PhraseCountsPath(dateFrom, dateTo string) string {
	q := url.Values{}
	if dateFrom != "" {
		q.Set("dateFrom", dateFrom)
	}
	if dateTo != "" {
		q.Set("dateTo", dateTo)
	}
	return WithQuery(PathReportsPhrases, q)
}
