package models

import "time"

type DeviceEventType string

const (
	DeviceEventTypeCreated       DeviceEventType = "CREATED"
	DeviceEventTypeUpdated       DeviceEventType = "UPDATED"
	DeviceEventTypeStatusChanged DeviceEventType = "STATUS_CHANGED"
)

// DeviceEvent is an immutable, append-only record of something that happened
// to a device. Events for a device are totally ordered by creation time, ties
// broken by the autoincremented primary key.
type DeviceEvent struct {
	ID              int64               `json:"id" gorm:"primaryKey;autoIncrement"`
	DeviceID        int64               `json:"device_id" gorm:"index"`
	Type            DeviceEventType     `json:"event_type"`
	FromStatus      *DeviceStatus       `json:"from_status,omitempty"`
	ToStatus        *DeviceStatus       `json:"to_status,omitempty"`
	Description     string              `json:"description"`
	Payload         *DeviceEventPayload `json:"payload,omitempty" gorm:"serializer:json"`
	CreatedByUserID int64               `json:"created_by_user_id"`
	CreatedAt       time.Time           `json:"created_at" gorm:"index"`
}

func (DeviceEvent) TableName() string {
	return "device_events"
}

// DeviceEventPayload is a tagged union keyed by the event type: CREATED events
// carry a snapshot of the normalized creation request, UPDATED events carry a
// field-level diff. Only one variant is set per event.
type DeviceEventPayload struct {
	Snapshot *DeviceSnapshot        `json:"snapshot,omitempty"`
	Diff     map[string]FieldChange `json:"diff,omitempty"`
}

// DeviceSnapshot mirrors the creation input, minus credentials.
type DeviceSnapshot struct {
	Name                string       `json:"name"`
	Type                DeviceType   `json:"type"`
	Brand               *string      `json:"brand,omitempty"`
	Model               *string      `json:"model,omitempty"`
	SerialNumber        *string      `json:"serial_number,omitempty"`
	InstallationYear    *int         `json:"installation_year,omitempty"`
	ManufactureYear     *int         `json:"manufacture_year,omitempty"`
	Latitude            *float64     `json:"latitude,omitempty"`
	Longitude           *float64     `json:"longitude,omitempty"`
	Address             *string      `json:"address,omitempty"`
	Status              DeviceStatus `json:"status"`
	LastMaintenanceDate *time.Time   `json:"last_maintenance_date,omitempty"`
	Notes               *string      `json:"notes,omitempty"`
}

// FieldChange records one entry of an UPDATED event diff.
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}
