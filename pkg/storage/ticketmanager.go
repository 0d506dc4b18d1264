package storage

import (
	"context"

	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/resources"
)

type TicketManagerRepo interface {
	Count(ctx context.Context, queryParams *resources.QueryParameters) (int, error)
	SelectAll(ctx context.Context, queryParams *resources.QueryParameters) ([]models.Ticket, error)
	SelectExists(ctx context.Context, id int64) (bool, *models.Ticket, error)
	Insert(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error)
	Update(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error)
	Delete(ctx context.Context, id int64) error

	Events() TicketEventsRepo

	Transaction(ctx context.Context, fn func(repo TicketManagerRepo) error) error
}

type TicketEventsRepo interface {
	Insert(ctx context.Context, event *models.TicketEvent) (*models.TicketEvent, error)
	SelectByTicket(ctx context.Context, ticketID int64, limit int) ([]models.TicketEvent, error)
	CountByTicket(ctx context.Context, ticketID int64) (int, error)
	DeleteByTicket(ctx context.Context, ticketID int64) error
}
