package postgres

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/resources"
	"github.com/alaines/alertas-api/pkg/storage"
)

type DeviceManagerStore struct {
	db      *gorm.DB
	logger  *logrus.Entry
	querier gormDBQuerier[models.Device]
	events  storage.DeviceEventsRepo
}

func NewDeviceManagerRepository(logger *logrus.Entry, db *gorm.DB) (storage.DeviceManagerRepo, error) {
	events, err := NewDeviceEventsRepository(logger, db)
	if err != nil {
		return nil, err
	}

	return &DeviceManagerStore{
		db:      db,
		logger:  logger,
		querier: newGormDBQuerier[models.Device](db, "devices", "id"),
		events:  events,
	}, nil
}

func (s *DeviceManagerStore) Count(ctx context.Context, queryParams *resources.QueryParameters) (int, error) {
	filters := []resources.FilterOption{}
	if queryParams != nil {
		filters = queryParams.Filters
	}
	return s.querier.CountFiltered(ctx, filters, []gormExtraOps{})
}

func (s *DeviceManagerStore) SelectAll(ctx context.Context, queryParams *resources.QueryParameters) ([]models.Device, error) {
	return s.querier.SelectAll(ctx, queryParams, []gormExtraOps{})
}

func (s *DeviceManagerStore) SelectExists(ctx context.Context, id int64) (bool, *models.Device, error) {
	return s.querier.SelectExists(ctx, id, nil)
}

func (s *DeviceManagerStore) Insert(ctx context.Context, device *models.Device) (*models.Device, error) {
	return s.querier.Insert(ctx, device)
}

func (s *DeviceManagerStore) Update(ctx context.Context, device *models.Device) (*models.Device, error) {
	return s.querier.Update(ctx, device, device.ID)
}

func (s *DeviceManagerStore) Delete(ctx context.Context, id int64) error {
	return s.querier.Delete(ctx, id)
}

func (s *DeviceManagerStore) Events() storage.DeviceEventsRepo {
	return s.events
}

func (s *DeviceManagerStore) Transaction(ctx context.Context, fn func(repo storage.DeviceManagerRepo) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo, err := NewDeviceManagerRepository(s.logger, tx)
		if err != nil {
			return err
		}

		return fn(txRepo)
	})
}
