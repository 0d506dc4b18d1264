package services

import (
	"context"
	"time"

	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/resources"
)

type DeviceManagerService interface {
	CreateDevice(ctx context.Context, input CreateDeviceInput) (*models.Device, error)
	GetDevices(ctx context.Context, input GetDevicesInput) ([]models.Device, error)
	GetDeviceByID(ctx context.Context, input GetDeviceByIDInput) (*models.DeviceWithEvents, error)
	UpdateDevice(ctx context.Context, input UpdateDeviceInput) (*models.Device, error)
	UpdateDeviceStatus(ctx context.Context, input UpdateDeviceStatusInput) (*models.Device, error)
	DeleteDevice(ctx context.Context, input DeleteDeviceInput) error
	GetDeviceEvents(ctx context.Context, input GetDeviceEventsInput) ([]models.DeviceEvent, error)
}

type CreateDeviceInput struct {
	Name                string            `validate:"required"`
	Type                models.DeviceType `validate:"required,oneof=CAMERA SENSOR TRAFFIC_LIGHT PANEL OTHER"`
	Brand               *string
	Model               *string
	SerialNumber        *string
	InstallationYear    *int `validate:"omitempty,gte=1900,lte=2100"`
	ManufactureYear     *int `validate:"omitempty,gte=1900,lte=2100"`
	Latitude            *float64
	Longitude           *float64
	Address             *string
	IPAddress           *string `validate:"omitempty,ip"`
	Username            *string
	Password            *string
	Status              *models.DeviceStatus `validate:"omitempty,oneof=ACTIVE INACTIVE MAINTENANCE DECOMMISSIONED"`
	LastMaintenanceDate *time.Time
	Notes               *string
	ActorID             int64 `validate:"required,gt=0"`
}

type GetDevicesInput struct {
	QueryParameters *resources.QueryParameters
}

type GetDeviceByIDInput struct {
	ID int64 `validate:"required,gt=0"`
}

type UpdateDeviceInput struct {
	ID                  int64 `validate:"required,gt=0"`
	Name                *string
	Type                *models.DeviceType `validate:"omitempty,oneof=CAMERA SENSOR TRAFFIC_LIGHT PANEL OTHER"`
	Brand               *string
	Model               *string
	SerialNumber        *string
	InstallationYear    *int `validate:"omitempty,gte=1900,lte=2100"`
	ManufactureYear     *int `validate:"omitempty,gte=1900,lte=2100"`
	Latitude            *float64
	Longitude           *float64
	Address             *string
	IPAddress           *string `validate:"omitempty,ip"`
	Username            *string
	Password            *string
	LastMaintenanceDate *time.Time
	Notes               *string
	ActorID             int64 `validate:"required,gt=0"`
}

type UpdateDeviceStatusInput struct {
	ID        int64               `validate:"required,gt=0"`
	NewStatus models.DeviceStatus `validate:"required,oneof=ACTIVE INACTIVE MAINTENANCE DECOMMISSIONED"`
	Message   *string
	ActorID   int64 `validate:"required,gt=0"`
}

type DeleteDeviceInput struct {
	ID      int64 `validate:"required,gt=0"`
	ActorID int64 `validate:"required,gt=0"`
}

type GetDeviceEventsInput struct {
	ID    int64 `validate:"required,gt=0"`
	Limit int
}
