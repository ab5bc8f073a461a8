package models

type DashboardStats struct {
	TotalEvents      int     `json:"totalEvents"`
	CriticalEvents   int     `json:"criticalEvents"`
	ActiveObjects    int     `json:"activeObjects"`
	ReportsGenerated int     `json:"reportsGenerated"`
	EventsTrend      float64 `json:"eventsTrend"` // percentage change vs yesterday
}

// TimelinePoint is one 2-hour bucket of today's events.
type TimelinePoint struct {
	Time     string `json:"time"`
	Events   int    `json:"events"`
	Critical int    `json:"critical"`
}

// TypeSlice is one segment of the 24h by-type distribution.
type TypeSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color,omitempty"`
}
