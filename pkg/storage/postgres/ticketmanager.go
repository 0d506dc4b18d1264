package postgres

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/resources"
	"github.com/alaines/alertas-api/pkg/storage"
)

type TicketManagerStore struct {
	db      *gorm.DB
	logger  *logrus.Entry
	querier gormDBQuerier[models.Ticket]
	events  storage.TicketEventsRepo
}

func NewTicketManagerRepository(logger *logrus.Entry, db *gorm.DB) (storage.TicketManagerRepo, error) {
	events, err := NewTicketEventsRepository(logger, db)
	if err != nil {
		return nil, err
	}

	return &TicketManagerStore{
		db:      db,
		logger:  logger,
		querier: newGormDBQuerier[models.Ticket](db, "tickets", "id"),
		events:  events,
	}, nil
}

func (s *TicketManagerStore) Count(ctx context.Context, queryParams *resources.QueryParameters) (int, error) {
	filters := []resources.FilterOption{}
	if queryParams != nil {
		filters = queryParams.Filters
	}
	return s.querier.CountFiltered(ctx, filters, []gormExtraOps{})
}

func (s *TicketManagerStore) SelectAll(ctx context.Context, queryParams *resources.QueryParameters) ([]models.Ticket, error) {
	return s.querier.SelectAll(ctx, queryParams, []gormExtraOps{})
}

func (s *TicketManagerStore) SelectExists(ctx context.Context, id int64) (bool, *models.Ticket, error) {
	return s.querier.SelectExists(ctx, id, nil)
}

func (s *TicketManagerStore) Insert(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error) {
	return s.querier.Insert(ctx, ticket)
}

func (s *TicketManagerStore) Update(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error) {
	return s.querier.Update(ctx, ticket, ticket.ID)
}

func (s *TicketManagerStore) Delete(ctx context.Context, id int64) error {
	return s.querier.Delete(ctx, id)
}

func (s *TicketManagerStore) Events() storage.TicketEventsRepo {
	return s.events
}

func (s *TicketManagerStore) Transaction(ctx context.Context, fn func(repo storage.TicketManagerRepo) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo, err := NewTicketManagerRepository(s.logger, tx)
		if err != nil {
			return err
		}

		return fn(txRepo)
	})
}
