package postgres

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/resources"
	"github.com/alaines/alertas-api/pkg/storage"
)

type IncidentsStore struct {
	db      *gorm.DB
	querier gormDBQuerier[models.Incident]
}

func NewIncidentsRepository(logger *logrus.Entry, db *gorm.DB) (storage.IncidentsRepo, error) {
	return &IncidentsStore{
		db:      db,
		querier: newGormDBQuerier[models.Incident](db, "waze_incidents", "id"),
	}, nil
}

func (s *IncidentsStore) Count(ctx context.Context, queryParams *resources.QueryParameters) (int, error) {
	filters := []resources.FilterOption{}
	if queryParams != nil {
		filters = queryParams.Filters
	}
	return s.querier.CountFiltered(ctx, filters, []gormExtraOps{})
}

func (s *IncidentsStore) SelectAll(ctx context.Context, queryParams *resources.QueryParameters) ([]models.Incident, error) {
	return s.querier.SelectAll(ctx, queryParams, []gormExtraOps{})
}

func (s *IncidentsStore) SelectExists(ctx context.Context, id int64) (bool, *models.Incident, error) {
	return s.querier.SelectExists(ctx, id, nil)
}

func (s *IncidentsStore) SelectExistsByUUID(ctx context.Context, uuid string) (bool, *models.Incident, error) {
	col := "uuid"
	return s.querier.SelectExists(ctx, uuid, &col)
}

func (s *IncidentsStore) SelectNearCandidates(ctx context.Context, minLat, maxLat, minLon, maxLon float64, filters []resources.FilterOption) ([]models.Incident, error) {
	var incidents []models.Incident
	tx := s.db.Table("waze_incidents").WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", minLat, maxLat).
		Where("longitude BETWEEN ? AND ?", minLon, maxLon)

	for _, filter := range filters {
		tx = FilterOperandToWhereClause(filter, tx)
	}

	if rs := tx.Find(&incidents); rs.Error != nil {
		return nil, rs.Error
	}

	return incidents, nil
}
