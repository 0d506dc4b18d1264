package storage

import (
	"context"

	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/resources"
)

type DeviceManagerRepo interface {
	Count(ctx context.Context, queryParams *resources.QueryParameters) (int, error)
	SelectAll(ctx context.Context, queryParams *resources.QueryParameters) ([]models.Device, error)
	SelectExists(ctx context.Context, id int64) (bool, *models.Device, error)
	Insert(ctx context.Context, device *models.Device) (*models.Device, error)
	Update(ctx context.Context, device *models.Device) (*models.Device, error)
	Delete(ctx context.Context, id int64) error

	Events() DeviceEventsRepo

	// Transaction runs fn against a repo bound to a single database
	// transaction. Projection writes and event appends inside fn commit
	// or roll back together.
	Transaction(ctx context.Context, fn func(repo DeviceManagerRepo) error) error
}

type DeviceEventsRepo interface {
	Insert(ctx context.Context, event *models.DeviceEvent) (*models.DeviceEvent, error)
	SelectByDevice(ctx context.Context, deviceID int64, limit int) ([]models.DeviceEvent, error)
	CountByDevice(ctx context.Context, deviceID int64) (int, error)
	DeleteByDevice(ctx context.Context, deviceID int64) error
}
