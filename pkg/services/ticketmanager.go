package services

import (
	"context"

	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/resources"
)

type TicketManagerService interface {
	CreateTicket(ctx context.Context, input CreateTicketInput) (*models.Ticket, error)
	GetTickets(ctx context.Context, input GetTicketsInput) ([]models.Ticket, error)
	GetTicketByID(ctx context.Context, input GetTicketByIDInput) (*models.TicketWithEvents, error)
	UpdateTicket(ctx context.Context, input UpdateTicketInput) (*models.Ticket, error)
	UpdateTicketStatus(ctx context.Context, input UpdateTicketStatusInput) (*models.Ticket, error)
	AddTicketComment(ctx context.Context, input AddTicketCommentInput) (*models.TicketEvent, error)
	DeleteTicket(ctx context.Context, input DeleteTicketInput) error
	GetTicketEvents(ctx context.Context, input GetTicketEventsInput) ([]models.TicketEvent, error)
}

type CreateTicketInput struct {
	IncidentID       *int64
	IncidentUUID     *string
	Source           models.TicketSource `validate:"required,oneof=WAZE MANUAL OTHER"`
	IncidentType     *string
	Title            string `validate:"required"`
	Description      *string
	Priority         *int `validate:"omitempty,gte=1,lte=5"`
	AssignedToUserID *int64
	ActorID          int64 `validate:"required,gt=0"`
}

type GetTicketsInput struct {
	QueryParameters *resources.QueryParameters
}

type GetTicketByIDInput struct {
	ID int64 `validate:"required,gt=0"`
}

// AssigneeUpdate distinguishes "leave assignment untouched" (field absent)
// from "unassign" (present with nil UserID).
type AssigneeUpdate struct {
	UserID *int64
}

type UpdateTicketInput struct {
	ID          int64 `validate:"required,gt=0"`
	Title       *string
	Description *string
	Priority    *int `validate:"omitempty,gte=1,lte=5"`
	Assignee    *AssigneeUpdate
	ActorID     int64 `validate:"required,gt=0"`
}

type UpdateTicketStatusInput struct {
	ID        int64               `validate:"required,gt=0"`
	NewStatus models.TicketStatus `validate:"required,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
	Message   *string
	ActorID   int64 `validate:"required,gt=0"`
}

type AddTicketCommentInput struct {
	ID      int64  `validate:"required,gt=0"`
	Message string `validate:"required"`
	ActorID int64  `validate:"required,gt=0"`
}

type DeleteTicketInput struct {
	ID      int64 `validate:"required,gt=0"`
	ActorID int64 `validate:"required,gt=0"`
}

type GetTicketEventsInput struct {
	ID    int64 `validate:"required,gt=0"`
	Limit int
}
