package eventpub

import (
	"context"
	"fmt"

	"github.com/alaines/alertas-api/pkg/helpers"
	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/services"
)

type ticketEventPublisher struct {
	next       services.TicketManagerService
	eventMWPub ICloudEventPublisher
}

func NewTicketEventPublisher(eventMWPub ICloudEventPublisher) services.TicketMiddleware {
	return func(next services.TicketManagerService) services.TicketManagerService {
		return &ticketEventPublisher{
			next:       next,
			eventMWPub: NewEventPublisherWithSourceMiddleware(eventMWPub, models.TicketManagerSource),
		}
	}
}

func (mw *ticketEventPublisher) CreateTicket(ctx context.Context, input services.CreateTicketInput) (output *models.Ticket, err error) {
	ctx = context.WithValue(ctx, helpers.CtxEventType, models.EventCreateTicketKey) //nolint:staticcheck

	defer func() {
		if err == nil {
			ctx = context.WithValue(ctx, helpers.CtxEventSubject, fmt.Sprintf("ticket/%d", output.ID)) //nolint:staticcheck
			mw.eventMWPub.PublishCloudEvent(ctx, output)
		}
	}()
	return mw.next.CreateTicket(ctx, input)
}

func (mw *ticketEventPublisher) GetTickets(ctx context.Context, input services.GetTicketsInput) ([]models.Ticket, error) {
	return mw.next.GetTickets(ctx, input)
}

func (mw *ticketEventPublisher) GetTicketByID(ctx context.Context, input services.GetTicketByIDInput) (*models.TicketWithEvents, error) {
	return mw.next.GetTicketByID(ctx, input)
}

func (mw *ticketEventPublisher) UpdateTicket(ctx context.Context, input services.UpdateTicketInput) (output *models.Ticket, err error) {
	ctx = context.WithValue(ctx, helpers.CtxEventType, models.EventUpdateTicketKey)     //nolint:staticcheck
	ctx = context.WithValue(ctx, helpers.CtxEventSubject, fmt.Sprintf("ticket/%d", input.ID)) //nolint:staticcheck

	prev, err := mw.next.GetTicketByID(ctx, services.GetTicketByIDInput{ID: input.ID})
	if err != nil {
		return nil, fmt.Errorf("mw error: could not get ticket %d: %w", input.ID, err)
	}

	defer func() {
		if err == nil {
			mw.eventMWPub.PublishCloudEvent(ctx, models.UpdateModel[models.Ticket]{
				Previous: prev.Ticket,
				Updated:  *output,
			})
		}
	}()
	return mw.next.UpdateTicket(ctx, input)
}

func (mw *ticketEventPublisher) UpdateTicketStatus(ctx context.Context, input services.UpdateTicketStatusInput) (output *models.Ticket, err error) {
	ctx = context.WithValue(ctx, helpers.CtxEventType, models.EventUpdateTicketStatusKey) //nolint:staticcheck
	ctx = context.WithValue(ctx, helpers.CtxEventSubject, fmt.Sprintf("ticket/%d", input.ID))   //nolint:staticcheck

	prev, err := mw.next.GetTicketByID(ctx, services.GetTicketByIDInput{ID: input.ID})
	if err != nil {
		return nil, fmt.Errorf("mw error: could not get ticket %d: %w", input.ID, err)
	}

	defer func() {
		if err == nil {
			mw.eventMWPub.PublishCloudEvent(ctx, models.UpdateModel[models.Ticket]{
				Previous: prev.Ticket,
				Updated:  *output,
			})
		}
	}()
	return mw.next.UpdateTicketStatus(ctx, input)
}

func (mw *ticketEventPublisher) AddTicketComment(ctx context.Context, input services.AddTicketCommentInput) (output *models.TicketEvent, err error) {
	ctx = context.WithValue(ctx, helpers.CtxEventType, models.EventTicketCommentKey)    //nolint:staticcheck
	ctx = context.WithValue(ctx, helpers.CtxEventSubject, fmt.Sprintf("ticket/%d", input.ID)) //nolint:staticcheck

	defer func() {
		if err == nil {
			mw.eventMWPub.PublishCloudEvent(ctx, output)
		}
	}()
	return mw.next.AddTicketComment(ctx, input)
}

func (mw *ticketEventPublisher) DeleteTicket(ctx context.Context, input services.DeleteTicketInput) (err error) {
	ctx = context.WithValue(ctx, helpers.CtxEventType, models.EventDeleteTicketKey)     //nolint:staticcheck
	ctx = context.WithValue(ctx, helpers.CtxEventSubject, fmt.Sprintf("ticket/%d", input.ID)) //nolint:staticcheck

	prev, err := mw.next.GetTicketByID(ctx, services.GetTicketByIDInput{ID: input.ID})
	if err != nil {
		return fmt.Errorf("mw error: could not get ticket %d: %w", input.ID, err)
	}

	defer func() {
		if err == nil {
			mw.eventMWPub.PublishCloudEvent(ctx, prev.Ticket)
		}
	}()
	return mw.next.DeleteTicket(ctx, input)
}

func (mw *ticketEventPublisher) GetTicketEvents(ctx context.Context, input services.GetTicketEventsInput) ([]models.TicketEvent, error) {
	return mw.next.GetTicketEvents(ctx, input)
}
