package client

import "net/url"

// Resource paths relative to APIRoot.
const (
	PathEvents            = "/events"
	PathEventsExport      = "/events/export"
	PathObjects           = "/objects"
	PathReports           = "/reports"
	PathReportsDaily      = "/reports/export/daily"
	PathReportsPhrases    = "/reports/export/phrase-counts"
	PathUsers             = "/users"
	PathNotifications     = "/notifications"
	PathNotificationsRead = "/notifications/mark-all-read"
	PathNotificationsWipe = "/notifications/clear"
	PathDashboardStats    = "/dashboard/stats"
	PathDashboardTimeline = "/dashboard/charts/timeline"
	PathDashboardByType   = "/dashboard/charts/by-type"
	PathSearchEvents      = "/search/events"
	PathAuthLogin         = "/auth/login"
	PathAuthRegister      = "/auth/register"
	PathAuthMe            = "/auth/me"
	PathSyncObjects       = "/db/sync/objects"
	PathSyncObjectsStart  = "/db/sync/objects/start"
	PathSyncEvents        = "/db/sync/events"
	PathJobs              = "/db/jobs"
)

func EventPath(id string) string {
	return PathEvents + "/" + url.PathEscape(id)
}

func ObjectPath(id string) string {
	return PathObjects + "/" + url.PathEscape(id)
}

func ObjectEventsPath(id string) string {
	return ObjectPath(id) + "/events"
}

func UserPath(id string) string {
	return PathUsers + "/" + url.PathEscape(id)
}

func UserPasswordPath(id string) string {
	return UserPath(id) + "/password"
}

func JobPath(id string) string {
	return PathJobs + "/" + url.PathEscape(id)
}

// WithQuery appends encoded query parameters to path, if any.
func WithQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
