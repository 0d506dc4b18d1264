package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/alaines/alertas-api/pkg/errs"
	"github.com/alaines/alertas-api/pkg/helpers"
	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/storage"
)

var ticketValidate *validator.Validate

type TicketMiddleware func(TicketManagerService) TicketManagerService

type TicketManagerServiceBackend struct {
	ticketsStorage   storage.TicketManagerRepo
	incidentsStorage storage.IncidentsRepo
	usersStorage     storage.UsersRepo
	service          TicketManagerService
	logger           *logrus.Entry
}

type TicketManagerBuilder struct {
	Logger           *logrus.Entry
	TicketsStorage   storage.TicketManagerRepo
	IncidentsStorage storage.IncidentsRepo
	UsersStorage     storage.UsersRepo
}

func NewTicketManagerService(builder TicketManagerBuilder) TicketManagerService {
	ticketValidate = validator.New()
	svc := &TicketManagerServiceBackend{
		ticketsStorage:   builder.TicketsStorage,
		incidentsStorage: builder.IncidentsStorage,
		usersStorage:     builder.UsersStorage,
		logger:           builder.Logger,
	}

	svc.service = svc
	return svc
}

func (svc *TicketManagerServiceBackend) SetService(service TicketManagerService) {
	svc.service = service
}

func (svc *TicketManagerServiceBackend) CreateTicket(ctx context.Context, input CreateTicketInput) (*models.Ticket, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := ticketValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	incidentID := input.IncidentID
	incidentUUID := input.IncidentUUID

	if input.Source == models.TicketSourceWaze {
		if incidentUUID == nil && incidentID == nil {
			lFunc.Errorf("rejecting WAZE ticket without incident reference")
			return nil, fmt.Errorf("incidentUuid es obligatorio cuando la fuente es WAZE: %w", errs.ErrValidateBadRequest)
		}

		incidentID, incidentUUID, err = svc.resolveIncidentRef(ctx, incidentID, incidentUUID)
		if err != nil {
			lFunc.Errorf("could not resolve incident reference: %s", err)
			return nil, err
		}
	}

	if input.AssignedToUserID != nil {
		if err := svc.checkAssignee(ctx, *input.AssignedToUserID); err != nil {
			lFunc.Errorf("assignee check failed: %s", err)
			return nil, err
		}
	}

	priority := models.TicketPriorityDefault
	if input.Priority != nil {
		priority = *input.Priority
	}

	lFunc.Debugf("creating ticket '%s'", input.Title)
	now := time.Now()

	ticket := &models.Ticket{
		IncidentID:       incidentID,
		IncidentUUID:     incidentUUID,
		Source:           input.Source,
		IncidentType:     input.IncidentType,
		Title:            input.Title,
		Description:      input.Description,
		Status:           models.TicketOpen,
		Priority:         priority,
		CreatedByUserID:  input.ActorID,
		AssignedToUserID: input.AssignedToUserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	openStatus := models.TicketOpen

	err = svc.ticketsStorage.Transaction(ctx, func(repo storage.TicketManagerRepo) error {
		ticket, err = repo.Insert(ctx, ticket)
		if err != nil {
			return err
		}

		createdMsg := "Ticket creado"
		_, err = repo.Events().Insert(ctx, &models.TicketEvent{
			TicketID: ticket.ID,
			Type:     models.TicketEventTypeCreated,
			ToStatus: &openStatus,
			Message:  &createdMsg,
			Payload: &models.TicketEventPayload{
				Snapshot: ticketSnapshot(ticket),
			},
			CreatedByUserID: input.ActorID,
			CreatedAt:       now,
		})
		if err != nil {
			return err
		}

		if input.AssignedToUserID != nil {
			assignedMsg := fmt.Sprintf("Asignado a usuario ID %d", *input.AssignedToUserID)
			_, err = repo.Events().Insert(ctx, &models.TicketEvent{
				TicketID: ticket.ID,
				Type:     models.TicketEventTypeAssigned,
				Message:  &assignedMsg,
				Payload: &models.TicketEventPayload{
					Assignment: &models.AssignmentChange{AssignedToUserID: input.AssignedToUserID},
				},
				CreatedByUserID: input.ActorID,
				CreatedAt:       now,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		lFunc.Errorf("could not insert ticket in storage engine: %s", err)
		return nil, err
	}

	return ticket, nil
}

func (svc *TicketManagerServiceBackend) GetTickets(ctx context.Context, input GetTicketsInput) ([]models.Ticket, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	lFunc.Debugf("getting all tickets")
	return svc.ticketsStorage.SelectAll(ctx, input.QueryParameters)
}

func (svc *TicketManagerServiceBackend) GetTicketByID(ctx context.Context, input GetTicketByIDInput) (*models.TicketWithEvents, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := ticketValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, ticket, err := svc.ticketsStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if ticket '%d' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		lFunc.Errorf("ticket %d can not be found in storage engine", input.ID)
		return nil, errs.ErrTicketNotFound
	}

	events, err := svc.ticketsStorage.Events().SelectByTicket(ctx, input.ID, recentEventsLimit)
	if err != nil {
		lFunc.Errorf("could not read events for ticket '%d': %s", input.ID, err)
		return nil, err
	}

	return &models.TicketWithEvents{
		Ticket:       *ticket,
		Incident:     svc.loadIncidentSummary(ctx, ticket),
		RecentEvents: events,
	}, nil
}

func (svc *TicketManagerServiceBackend) UpdateTicket(ctx context.Context, input UpdateTicketInput) (*models.Ticket, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := ticketValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, ticket, err := svc.ticketsStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if ticket '%d' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		lFunc.Errorf("ticket %d can not be found in storage engine", input.ID)
		return nil, errs.ErrTicketNotFound
	}

	if input.Assignee != nil && input.Assignee.UserID != nil {
		if err := svc.checkAssignee(ctx, *input.Assignee.UserID); err != nil {
			lFunc.Errorf("assignee check failed: %s", err)
			return nil, err
		}
	}

	diff := map[string]models.FieldChange{}

	ticket.Title = helpers.ApplyChange(diff, "title", ticket.Title, input.Title)
	ticket.Description = helpers.ApplyChangePtr(diff, "description", ticket.Description, input.Description)
	ticket.Priority = helpers.ApplyChange(diff, "priority", ticket.Priority, input.Priority)

	if input.Assignee == nil && len(diff) == 0 {
		lFunc.Debugf("update for ticket '%d' changes nothing, skipping write", input.ID)
		return ticket, nil
	}

	now := time.Now()
	ticket.UpdatedAt = now

	if input.Assignee != nil {
		ticket.AssignedToUserID = input.Assignee.UserID
	}

	err = svc.ticketsStorage.Transaction(ctx, func(repo storage.TicketManagerRepo) error {
		ticket, err = repo.Update(ctx, ticket)
		if err != nil {
			return err
		}

		if input.Assignee != nil {
			eventType := models.TicketEventTypeAssigned
			message := ""
			if input.Assignee.UserID == nil {
				eventType = models.TicketEventTypeUnassigned
				message = "Ticket desasignado"
			} else {
				message = fmt.Sprintf("Asignado a usuario ID %d", *input.Assignee.UserID)
			}

			_, err = repo.Events().Insert(ctx, &models.TicketEvent{
				TicketID: ticket.ID,
				Type:     eventType,
				Message:  &message,
				Payload: &models.TicketEventPayload{
					Assignment: &models.AssignmentChange{AssignedToUserID: input.Assignee.UserID},
				},
				CreatedByUserID: input.ActorID,
				CreatedAt:       now,
			})
			if err != nil {
				return err
			}
		}

		if len(diff) > 0 {
			updatedMsg := "Ticket actualizado"
			_, err = repo.Events().Insert(ctx, &models.TicketEvent{
				TicketID: ticket.ID,
				Type:     models.TicketEventTypeUpdated,
				Message:  &updatedMsg,
				Payload: &models.TicketEventPayload{
					Diff: diff,
				},
				CreatedByUserID: input.ActorID,
				CreatedAt:       now,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		lFunc.Errorf("could not update ticket '%d' in storage engine: %s", input.ID, err)
		return nil, err
	}

	return ticket, nil
}

func (svc *TicketManagerServiceBackend) UpdateTicketStatus(ctx context.Context, input UpdateTicketStatusInput) (*models.Ticket, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := ticketValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, ticket, err := svc.ticketsStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if ticket '%d' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		lFunc.Errorf("ticket %d can not be found in storage engine", input.ID)
		return nil, errs.ErrTicketNotFound
	}

	if ticket.Status == input.NewStatus {
		lFunc.Errorf("rejecting status change: ticket %d already in %s", input.ID, input.NewStatus)
		return nil, fmt.Errorf("El ticket ya está en estado %s: %w", input.NewStatus, errs.ErrTicketStatusConflict)
	}

	fromStatus := ticket.Status
	toStatus := input.NewStatus

	message := fmt.Sprintf("Estado cambiado de %s a %s", fromStatus, toStatus)
	if input.Message != nil && *input.Message != "" {
		message = *input.Message
	}

	now := time.Now()
	ticket.Status = toStatus
	ticket.UpdatedAt = now

	err = svc.ticketsStorage.Transaction(ctx, func(repo storage.TicketManagerRepo) error {
		ticket, err = repo.Update(ctx, ticket)
		if err != nil {
			return err
		}

		_, err = repo.Events().Insert(ctx, &models.TicketEvent{
			TicketID:        ticket.ID,
			Type:            models.TicketEventTypeStatusChanged,
			FromStatus:      &fromStatus,
			ToStatus:        &toStatus,
			Message:         &message,
			CreatedByUserID: input.ActorID,
			CreatedAt:       now,
		})
		return err
	})
	if err != nil {
		lFunc.Errorf("could not update status of ticket '%d' in storage engine: %s", input.ID, err)
		return nil, err
	}

	return ticket, nil
}

func (svc *TicketManagerServiceBackend) AddTicketComment(ctx context.Context, input AddTicketCommentInput) (*models.TicketEvent, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := ticketValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, _, err := svc.ticketsStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if ticket '%d' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		lFunc.Errorf("ticket %d can not be found in storage engine", input.ID)
		return nil, errs.ErrTicketNotFound
	}

	message := input.Message
	event, err := svc.ticketsStorage.Events().Insert(ctx, &models.TicketEvent{
		TicketID:        input.ID,
		Type:            models.TicketEventTypeComment,
		Message:         &message,
		CreatedByUserID: input.ActorID,
		CreatedAt:       time.Now(),
	})
	if err != nil {
		lFunc.Errorf("could not insert comment for ticket '%d': %s", input.ID, err)
		return nil, err
	}

	return event, nil
}

func (svc *TicketManagerServiceBackend) DeleteTicket(ctx context.Context, input DeleteTicketInput) error {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := ticketValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return errs.ErrValidateBadRequest
	}

	exists, _, err := svc.ticketsStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if ticket '%d' exists in storage engine: %s", input.ID, err)
		return err
	} else if !exists {
		lFunc.Errorf("ticket %d can not be found in storage engine", input.ID)
		return errs.ErrTicketNotFound
	}

	err = svc.ticketsStorage.Transaction(ctx, func(repo storage.TicketManagerRepo) error {
		if err := repo.Events().DeleteByTicket(ctx, input.ID); err != nil {
			return err
		}

		return repo.Delete(ctx, input.ID)
	})
	if err != nil {
		lFunc.Errorf("could not delete ticket '%d' from storage engine: %s", input.ID, err)
		return err
	}

	return nil
}

func (svc *TicketManagerServiceBackend) GetTicketEvents(ctx context.Context, input GetTicketEventsInput) ([]models.TicketEvent, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := ticketValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, _, err := svc.ticketsStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if ticket '%d' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		lFunc.Errorf("ticket %d can not be found in storage engine", input.ID)
		return nil, errs.ErrTicketNotFound
	}

	return svc.ticketsStorage.Events().SelectByTicket(ctx, input.ID, clampEventsLimit(input.Limit))
}

// resolveIncidentRef fills in the missing half of the (id, uuid) incident
// reference. The UUID is the preferred lookup key.
func (svc *TicketManagerServiceBackend) resolveIncidentRef(ctx context.Context, id *int64, uuid *string) (*int64, *string, error) {
	if uuid != nil {
		exists, incident, err := svc.incidentsStorage.SelectExistsByUUID(ctx, *uuid)
		if err != nil {
			return nil, nil, err
		} else if !exists {
			return nil, nil, errs.ErrIncidentNotFound
		}

		return &incident.ID, uuid, nil
	}

	exists, incident, err := svc.incidentsStorage.SelectExists(ctx, *id)
	if err != nil {
		return nil, nil, err
	} else if !exists {
		return nil, nil, errs.ErrIncidentNotFound
	}

	return id, &incident.UUID, nil
}

func (svc *TicketManagerServiceBackend) checkAssignee(ctx context.Context, userID int64) error {
	exists, _, err := svc.usersStorage.SelectExists(ctx, userID)
	if err != nil {
		return err
	} else if !exists {
		return fmt.Errorf("Usuario asignado con ID %d no encontrado: %w", userID, errs.ErrUserNotFound)
	}

	return nil
}

// loadIncidentSummary resolves the referenced incident for a read. A dangling
// reference degrades to a nil summary instead of failing the read.
func (svc *TicketManagerServiceBackend) loadIncidentSummary(ctx context.Context, ticket *models.Ticket) *models.IncidentSummary {
	if ticket.IncidentUUID != nil {
		if exists, incident, err := svc.incidentsStorage.SelectExistsByUUID(ctx, *ticket.IncidentUUID); err == nil && exists {
			return incident.Summary()
		}
	}

	if ticket.IncidentID != nil {
		if exists, incident, err := svc.incidentsStorage.SelectExists(ctx, *ticket.IncidentID); err == nil && exists {
			return incident.Summary()
		}
	}

	return nil
}

func ticketSnapshot(ticket *models.Ticket) *models.TicketSnapshot {
	return &models.TicketSnapshot{
		IncidentID:       ticket.IncidentID,
		IncidentUUID:     ticket.IncidentUUID,
		Source:           ticket.Source,
		IncidentType:     ticket.IncidentType,
		Title:            ticket.Title,
		Description:      ticket.Description,
		Priority:         ticket.Priority,
		AssignedToUserID: ticket.AssignedToUserID,
	}
}
