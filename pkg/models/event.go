package models

// EventSeverity is shared by events and notifications.
type EventSeverity string

const (
	SeverityCritical EventSeverity = "critical"
	SeverityWarning  EventSeverity = "warning"
	SeverityInfo     EventSeverity = "info"
	SeveritySuccess  EventSeverity = "success"
)

type EventStatus string

const (
	StatusActive   EventStatus = "active"
	StatusPending  EventStatus = "pending"
	StatusResolved EventStatus = "resolved"
)

type EventType string

const (
	TypeIntrusion   EventType = "intrusion"
	TypeAlarm       EventType = "alarm"
	TypeAccess      EventType = "access"
	TypePatrol      EventType = "patrol"
	TypeIncident    EventType = "incident"
	TypeMaintenance EventType = "maintenance"
)

// EventTypes lists the fixed event type enum in display order.
var EventTypes = []EventType{TypeIntrusion, TypeAlarm, TypeAccess, TypePatrol, TypeIncident, TypeMaintenance}

var Severities = []EventSeverity{SeverityCritical, SeverityWarning, SeverityInfo, SeveritySuccess}

var EventStatuses = []EventStatus{StatusActive, StatusPending, StatusResolved}

// Event is a single journal entry as returned by GET /events.
// Events are read-only from the client's point of view.
type Event struct {
	ID          string        `json:"id"`
	Timestamp   string        `json:"timestamp"` // ISO 8601
	Type        EventType     `json:"type"`
	ObjectID    string        `json:"objectId,omitempty"`
	ObjectName  string        `json:"objectName"`
	ClientName  string        `json:"clientName"`
	Severity    EventSeverity `json:"severity"`
	Status      EventStatus   `json:"status"`
	Description string        `json:"description"`
	Location    string        `json:"location,omitempty"`
	OperatorID  string        `json:"operatorId,omitempty"`
	Code        string        `json:"code,omitempty"`
	CodeText    string        `json:"codeText,omitempty"`
	StateName   string        `json:"stateName,omitempty"`
}
