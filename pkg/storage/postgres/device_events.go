package postgres

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/storage"
)

type DeviceEventsStore struct {
	db      *gorm.DB
	querier gormDBQuerier[models.DeviceEvent]
}

func NewDeviceEventsRepository(logger *logrus.Entry, db *gorm.DB) (storage.DeviceEventsRepo, error) {
	return &DeviceEventsStore{
		db:      db,
		querier: newGormDBQuerier[models.DeviceEvent](db, "device_events", "id"),
	}, nil
}

func (s *DeviceEventsStore) Insert(ctx context.Context, event *models.DeviceEvent) (*models.DeviceEvent, error) {
	return s.querier.Insert(ctx, event)
}

func (s *DeviceEventsStore) SelectByDevice(ctx context.Context, deviceID int64, limit int) ([]models.DeviceEvent, error) {
	var events []models.DeviceEvent
	tx := s.db.Table("device_events").WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&events)
	if tx.Error != nil {
		return nil, tx.Error
	}

	return events, nil
}

func (s *DeviceEventsStore) CountByDevice(ctx context.Context, deviceID int64) (int, error) {
	opts := []gormExtraOps{
		{query: "device_id = ?", additionalWhere: []any{deviceID}},
	}
	return s.querier.Count(ctx, opts)
}

func (s *DeviceEventsStore) DeleteByDevice(ctx context.Context, deviceID int64) error {
	tx := s.db.Table("device_events").WithContext(ctx).
		Where("device_id = ?", deviceID).
		Delete(&models.DeviceEvent{})
	return tx.Error
}
