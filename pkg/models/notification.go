package models

// Notification is derived server-side from critical/warning events.
type Notification struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Severity  EventSeverity `json:"severity"`
	Timestamp string        `json:"timestamp"`
	Read      bool          `json:"read"`
	EventID   string        `json:"eventId,omitempty"`
}

// MarkReadResult is returned by POST /notifications/mark-all-read.
type MarkReadResult struct {
	Status string `json:"status"`
	Marked int    `json:"marked"`
}

// UnreadCount counts notifications not yet marked as read.
func UnreadCount(items []Notification) int {
	n := 0
	for _, item := range items {
		if !item.Read {
			n++
		}
	}
	return n
}
