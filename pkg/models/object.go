package models

// ObjectListItem is a row of GET /objects.
type ObjectListItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address,omitempty"`
	ClientName  string  `json:"clientName,omitempty"`
	Disabled    bool    `json:"disabled"`
	LastEventAt *string `json:"lastEventAt,omitempty"`
	EventsToday *int    `json:"eventsToday,omitempty"`
}

type ObjectGroup struct {
	Group     int     `json:"group"`
	Name      string  `json:"name,omitempty"`
	IsOpen    *bool   `json:"isOpen,omitempty"`
	TimeEvent *string `json:"timeEvent,omitempty"`
}

type ObjectResponsible struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address,omitempty"`
	Group   *int     `json:"group,omitempty"`
	Order   *int     `json:"order,omitempty"`
	Phones  []string `json:"phones"`
}

type ObjectStats struct {
	EventsTotal int     `json:"eventsTotal"`
	EventsToday int     `json:"eventsToday"`
	LastEventAt *string `json:"lastEventAt,omitempty"`
}

// ObjectDetails is the card returned by GET /objects/:id.
type ObjectDetails struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Address        string              `json:"address,omitempty"`
	ClientName     string              `json:"clientName,omitempty"`
	Disabled       bool                `json:"disabled"`
	Remarks        *string             `json:"remarks,omitempty"`
	AdditionalInfo *string             `json:"additionalInfo,omitempty"`
	Latitude       *float64            `json:"latitude,omitempty"`
	Longitude      *float64            `json:"longitude,omitempty"`
	CreatedAt      *string             `json:"createdAt,omitempty"`
	UpdatedAt      *string             `json:"updatedAt,omitempty"`
	Groups         []ObjectGroup       `json:"groups"`
	Responsibles   []ObjectResponsible `json:"responsibles"`
	Stats          *ObjectStats        `json:"stats,omitempty"`
}
