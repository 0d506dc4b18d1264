package models

import (
	"time"
)

type DeviceType string

const (
	DeviceTypeCamera       DeviceType = "CAMERA"
	DeviceTypeSensor       DeviceType = "SENSOR"
	DeviceTypeTrafficLight DeviceType = "TRAFFIC_LIGHT"
	DeviceTypePanel        DeviceType = "PANEL"
	DeviceTypeOther        DeviceType = "OTHER"
)

type DeviceStatus string

const (
	DeviceActive         DeviceStatus = "ACTIVE"
	DeviceInactive       DeviceStatus = "INACTIVE"
	DeviceMaintenance    DeviceStatus = "MAINTENANCE"
	DeviceDecommissioned DeviceStatus = "DECOMMISSIONED"
)

// Device is the current-state projection of a monitoring device. Its full
// history lives in the device_events table and is never updated in place.
type Device struct {
	ID                  int64        `json:"id" gorm:"primaryKey;autoIncrement"`
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
	IPAddress           *string      `json:"ip_address,omitempty"`
	Username            *string      `json:"username,omitempty"`
	Password            *string      `json:"-"`
	Status              DeviceStatus `json:"status"`
	LastMaintenanceDate *time.Time   `json:"last_maintenance_date,omitempty"`
	Notes               *string      `json:"notes,omitempty"`
	CreatedByUserID     int64        `json:"created_by_user_id"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

func (Device) TableName() string {
	return "devices"
}

// DeviceWithEvents joins the projection with a bounded slice of its most
// recent events, newest first.
type DeviceWithEvents struct {
	Device
	RecentEvents []DeviceEvent `json:"recent_events"`
}
