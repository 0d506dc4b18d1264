package models

import "time"

type TicketEventType string

const (
	TicketEventTypeCreated       TicketEventType = "CREATED"
	TicketEventTypeUpdated       TicketEventType = "UPDATED"
	TicketEventTypeStatusChanged TicketEventType = "STATUS_CHANGED"
	TicketEventTypeAssigned      TicketEventType = "ASSIGNED"
	TicketEventTypeUnassigned    TicketEventType = "UNASSIGNED"
	TicketEventTypeComment       TicketEventType = "COMMENT"
)

// TicketEvent is an immutable, append-only record on a ticket's history.
type TicketEvent struct {
	ID              int64               `json:"id" gorm:"primaryKey;autoIncrement"`
	TicketID        int64               `json:"ticket_id" gorm:"index"`
	Type            TicketEventType     `json:"event_type"`
	FromStatus      *TicketStatus       `json:"from_status,omitempty"`
	ToStatus        *TicketStatus       `json:"to_status,omitempty"`
	Message         *string             `json:"message,omitempty"`
	Payload         *TicketEventPayload `json:"payload,omitempty" gorm:"serializer:json"`
	CreatedByUserID int64               `json:"created_by_user_id"`
	CreatedAt       time.Time           `json:"created_at" gorm:"index"`
}

func (TicketEvent) TableName() string {
	return "ticket_events"
}

// TicketEventPayload is a tagged union keyed by the event type: CREATED
// events carry a snapshot of the normalized creation request, UPDATED events
// a field-level diff, ASSIGNED/UNASSIGNED the assignment target. Only one
// variant is set per event.
type TicketEventPayload struct {
	Snapshot   *TicketSnapshot        `json:"snapshot,omitempty"`
	Diff       map[string]FieldChange `json:"diff,omitempty"`
	Assignment *AssignmentChange      `json:"assignment,omitempty"`
}

// TicketSnapshot mirrors the creation input after normalization.
type TicketSnapshot struct {
	IncidentID       *int64       `json:"incident_id,omitempty"`
	IncidentUUID     *string      `json:"incident_uuid,omitempty"`
	Source           TicketSource `json:"source"`
	IncidentType     *string      `json:"incident_type,omitempty"`
	Title            string       `json:"title"`
	Description      *string      `json:"description,omitempty"`
	Priority         int          `json:"priority"`
	AssignedToUserID *int64       `json:"assigned_to_user_id,omitempty"`
}

// AssignmentChange records the target of an ASSIGNED event. A nil user id
// marks an UNASSIGNED event.
type AssignmentChange struct {
	AssignedToUserID *int64 `json:"assigned_to_user_id"`
}
