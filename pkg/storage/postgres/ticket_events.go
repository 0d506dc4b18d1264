package postgres

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/storage"
)

type TicketEventsStore struct {
	db      *gorm.DB
	querier gormDBQuerier[models.TicketEvent]
}

func NewTicketEventsRepository(logger *logrus.Entry, db *gorm.DB) (storage.TicketEventsRepo, error) {
	return &TicketEventsStore{
		db:      db,
		querier: newGormDBQuerier[models.TicketEvent](db, "ticket_events", "id"),
	}, nil
}

func (s *TicketEventsStore) Insert(ctx context.Context, event *models.TicketEvent) (*models.TicketEvent, error) {
	return s.querier.Insert(ctx, event)
}

func (s *TicketEventsStore) SelectByTicket(ctx context.Context, ticketID int64, limit int) ([]models.TicketEvent, error) {
	var events []models.TicketEvent
	tx := s.db.Table("ticket_events").WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&events)
	if tx.Error != nil {
		return nil, tx.Error
	}

	return events, nil
}

func (s *TicketEventsStore) CountByTicket(ctx context.Context, ticketID int64) (int, error) {
	opts := []gormExtraOps{
		{query: "ticket_id = ?", additionalWhere: []any{ticketID}},
	}
	return s.querier.Count(ctx, opts)
}

func (s *TicketEventsStore) DeleteByTicket(ctx context.Context, ticketID int64) error {
	tx := s.db.Table("ticket_events").WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Delete(&models.TicketEvent{})
	return tx.Error
}
