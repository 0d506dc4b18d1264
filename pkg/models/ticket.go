package models

import "time"

type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketResolved   TicketStatus = "RESOLVED"
	TicketClosed     TicketStatus = "CLOSED"
)

type TicketSource string

const (
	TicketSourceWaze   TicketSource = "WAZE"
	TicketSourceManual TicketSource = "MANUAL"
	TicketSourceOther  TicketSource = "OTHER"
)

const (
	TicketPriorityMin     = 1
	TicketPriorityMax     = 5
	TicketPriorityDefault = 3
)

// Ticket is the current-state projection of an operational ticket. A ticket
// may reference the incident that originated it; the incident UUID is the
// preferred reference, the numeric id is kept for backward compatibility.
type Ticket struct {
	ID               int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	IncidentID       *int64       `json:"incident_id,omitempty"`
	IncidentUUID     *string      `json:"incident_uuid,omitempty"`
	Source           TicketSource `json:"source"`
	IncidentType     *string      `json:"incident_type,omitempty"`
	Title            string       `json:"title"`
	Description      *string      `json:"description,omitempty"`
	Status           TicketStatus `json:"status"`
	Priority         int          `json:"priority"`
	CreatedByUserID  int64        `json:"created_by_user_id"`
	AssignedToUserID *int64       `json:"assigned_to_user_id,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// TicketWithEvents joins the projection with its most recent events, newest
// first, plus a summary of the referenced incident when it can be resolved.
type TicketWithEvents struct {
	Ticket
	Incident     *IncidentSummary `json:"incident,omitempty"`
	RecentEvents []TicketEvent    `json:"recent_events"`
}
