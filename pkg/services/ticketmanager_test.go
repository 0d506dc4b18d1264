package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alaines/alertas-api/pkg/errs"
	"github.com/alaines/alertas-api/pkg/models"
)

func TestCreateTicket(t *testing.T) {
	svc, db := setupTicketService(t)
	ctx := context.Background()

	seedUser(t, db, 7, "operador1")
	incident := seedIncident(t, db, models.Incident{
		UUID:      "b301ee5c-0001-4000-8000-000000000001",
		Type:      "ACCIDENT",
		Status:    "ACTIVE",
		PubTime:   time.Now(),
		Latitude:  -12.05,
		Longitude: -77.03,
	})

	t.Run("ManualTicketOpensWithCreationEvent", func(t *testing.T) {
		ticket, err := svc.CreateTicket(ctx, CreateTicketInput{
			Source:  models.TicketSourceManual,
			Title:   "Semaforo intermitente en Av. Arequipa",
			ActorID: 1,
		})
		require.NoError(t, err)
		assert.Greater(t, ticket.ID, int64(0))
		assert.Equal(t, models.TicketOpen, ticket.Status)
		assert.Equal(t, models.TicketPriorityDefault, ticket.Priority)

		events, err := svc.GetTicketEvents(ctx, GetTicketEventsInput{ID: ticket.ID})
		require.NoError(t, err)
		require.Len(t, events, 1)

		event := events[0]
		assert.Equal(t, models.TicketEventTypeCreated, event.Type)
		require.NotNil(t, event.ToStatus)
		assert.Equal(t, models.TicketOpen, *event.ToStatus)
		require.NotNil(t, event.Message)
		assert.Equal(t, "Ticket creado", *event.Message)
		require.NotNil(t, event.Payload)
		require.NotNil(t, event.Payload.Snapshot)
		assert.Equal(t, "Semaforo intermitente en Av. Arequipa", event.Payload.Snapshot.Title)
	})

	t.Run("WazeTicketRequiresIncidentReference", func(t *testing.T) {
		_, err := svc.CreateTicket(ctx, CreateTicketInput{
			Source:  models.TicketSourceWaze,
			Title:   "Accidente reportado",
			ActorID: 1,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidateBadRequest)
		assert.Contains(t, err.Error(), "incidentUuid es obligatorio")
	})

	t.Run("WazeTicketResolvesIDFromUUID", func(t *testing.T) {
		ticket, err := svc.CreateTicket(ctx, CreateTicketInput{
			Source:       models.TicketSourceWaze,
			IncidentUUID: ptr(incident.UUID),
			Title:        "Accidente en Javier Prado",
			ActorID:      1,
		})
		require.NoError(t, err)
		require.NotNil(t, ticket.IncidentID)
		assert.Equal(t, incident.ID, *ticket.IncidentID)
		require.NotNil(t, ticket.IncidentUUID)
		assert.Equal(t, incident.UUID, *ticket.IncidentUUID)
	})

	t.Run("WazeTicketResolvesUUIDFromID", func(t *testing.T) {
		ticket, err := svc.CreateTicket(ctx, CreateTicketInput{
			Source:     models.TicketSourceWaze,
			IncidentID: ptr(incident.ID),
			Title:      "Accidente en Javier Prado, segundo reporte",
			ActorID:    1,
		})
		require.NoError(t, err)
		require.NotNil(t, ticket.IncidentUUID)
		assert.Equal(t, incident.UUID, *ticket.IncidentUUID)
	})

	t.Run("WazeTicketUnknownIncident", func(t *testing.T) {
		_, err := svc.CreateTicket(ctx, CreateTicketInput{
			Source:       models.TicketSourceWaze,
			IncidentUUID: ptr("b301ee5c-dead-4000-8000-000000000000"),
			Title:        "Referencia colgante",
			ActorID:      1,
		})
		assert.ErrorIs(t, err, errs.ErrIncidentNotFound)
	})

	t.Run("UnknownAssigneeWritesNothing", func(t *testing.T) {
		before, err := svc.GetTickets(ctx, GetTicketsInput{})
		require.NoError(t, err)

		_, err = svc.CreateTicket(ctx, CreateTicketInput{
			Source:           models.TicketSourceManual,
			Title:            "Asignacion invalida",
			AssignedToUserID: ptr(int64(999)),
			ActorID:          1,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		assert.Contains(t, err.Error(), "Usuario asignado con ID 999 no encontrado")

		after, err := svc.GetTickets(ctx, GetTicketsInput{})
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("AssigneeAtCreationEmitsAssignmentEvent", func(t *testing.T) {
		ticket, err := svc.CreateTicket(ctx, CreateTicketInput{
			Source:           models.TicketSourceManual,
			Title:            "Camara sin señal",
			AssignedToUserID: ptr(int64(7)),
			ActorID:          1,
		})
		require.NoError(t, err)
		require.NotNil(t, ticket.AssignedToUserID)
		assert.Equal(t, int64(7), *ticket.AssignedToUserID)

		events, err := svc.GetTicketEvents(ctx, GetTicketEventsInput{ID: ticket.ID})
		require.NoError(t, err)
		require.Len(t, events, 2)

		assert.Equal(t, models.TicketEventTypeAssigned, events[0].Type)
		require.NotNil(t, events[0].Message)
		assert.Equal(t, "Asignado a usuario ID 7", *events[0].Message)
		require.NotNil(t, events[0].Payload)
		require.NotNil(t, events[0].Payload.Assignment)
		assert.Equal(t, int64(7), *events[0].Payload.Assignment.AssignedToUserID)
		assert.Equal(t, models.TicketEventTypeCreated, events[1].Type)
	})
}

func TestUpdateTicket(t *testing.T) {
	svc, db := setupTicketService(t)
	ctx := context.Background()

	seedUser(t, db, 3, "operador2")

	ticket, err := svc.CreateTicket(ctx, CreateTicketInput{
		Source:  models.TicketSourceManual,
		Title:   "Panel apagado",
		ActorID: 1,
	})
	require.NoError(t, err)

	t.Run("TitleChangeLogsDiff", func(t *testing.T) {
		updated, err := svc.UpdateTicket(ctx, UpdateTicketInput{
			ID:      ticket.ID,
			Title:   ptr("Panel apagado en Av. Brasil"),
			ActorID: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, "Panel apagado en Av. Brasil", updated.Title)

		events, err := svc.GetTicketEvents(ctx, GetTicketEventsInput{ID: ticket.ID})
		require.NoError(t, err)
		require.Len(t, events, 2)

		event := events[0]
		assert.Equal(t, models.TicketEventTypeUpdated, event.Type)
		require.NotNil(t, event.Payload)
		require.Len(t, event.Payload.Diff, 1)
		change, ok := event.Payload.Diff["title"]
		require.True(t, ok)
		assert.Equal(t, "Panel apagado", change.From)
		assert.Equal(t, "Panel apagado en Av. Brasil", change.To)
	})

	t.Run("NoChangeSkipsWrite", func(t *testing.T) {
		_, err := svc.UpdateTicket(ctx, UpdateTicketInput{
			ID:      ticket.ID,
			Title:   ptr("Panel apagado en Av. Brasil"),
			ActorID: 1,
		})
		require.NoError(t, err)

		events, err := svc.GetTicketEvents(ctx, GetTicketEventsInput{ID: ticket.ID})
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("AssignEmitsAssignedEvent", func(t *testing.T) {
		updated, err := svc.UpdateTicket(ctx, UpdateTicketInput{
			ID:       ticket.ID,
			Assignee: &AssigneeUpdate{UserID: ptr(int64(3))},
			ActorID:  1,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.AssignedToUserID)
		assert.Equal(t, int64(3), *updated.AssignedToUserID)

		events, err := svc.GetTicketEvents(ctx, GetTicketEventsInput{ID: ticket.ID})
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, models.TicketEventTypeAssigned, events[0].Type)
	})

	t.Run("UnassignEmitsUnassignedEvent", func(t *testing.T) {
		updated, err := svc.UpdateTicket(ctx, UpdateTicketInput{
			ID:       ticket.ID,
			Assignee: &AssigneeUpdate{},
			ActorID:  1,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.AssignedToUserID)

		events, err := svc.GetTicketEvents(ctx, GetTicketEventsInput{ID: ticket.ID})
		require.NoError(t, err)
		require.Len(t, events, 4)

		event := events[0]
		assert.Equal(t, models.TicketEventTypeUnassigned, event.Type)
		require.NotNil(t, event.Message)
		assert.Equal(t, "Ticket desasignado", *event.Message)
		require.NotNil(t, event.Payload)
		require.NotNil(t, event.Payload.Assignment)
		assert.Nil(t, event.Payload.Assignment.AssignedToUserID)
	})

	t.Run("UnknownAssignee", func(t *testing.T) {
		_, err := svc.UpdateTicket(ctx, UpdateTicketInput{
			ID:       ticket.ID,
			Assignee: &AssigneeUpdate{UserID: ptr(int64(999))},
			ActorID:  1,
		})
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestUpdateTicketStatus(t *testing.T) {
	svc, _ := setupTicketService(t)
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, CreateTicketInput{
		Source:  models.TicketSourceManual,
		Title:   "Sensor sin lecturas",
		ActorID: 1,
	})
	require.NoError(t, err)

	t.Run("TransitionLogsFromAndTo", func(t *testing.T) {
		updated, err := svc.UpdateTicketStatus(ctx, UpdateTicketStatusInput{
			ID:        ticket.ID,
			NewStatus: models.TicketInProgress,
			ActorID:   1,
		})
		require.NoError(t, err)
		assert.Equal(t, models.TicketInProgress, updated.Status)

		events, err := svc.GetTicketEvents(ctx, GetTicketEventsInput{ID: ticket.ID})
		require.NoError(t, err)
		require.Len(t, events, 2)

		event := events[0]
		assert.Equal(t, models.TicketEventTypeStatusChanged, event.Type)
		require.NotNil(t, event.FromStatus)
		require.NotNil(t, event.ToStatus)
		assert.Equal(t, models.TicketOpen, *event.FromStatus)
		assert.Equal(t, models.TicketInProgress, *event.ToStatus)
		require.NotNil(t, event.Message)
		assert.Equal(t, "Estado cambiado de OPEN a IN_PROGRESS", *event.Message)
	})

	t.Run("SameStatusIsRejected", func(t *testing.T) {
		_, err := svc.UpdateTicketStatus(ctx, UpdateTicketStatusInput{
			ID:        ticket.ID,
			NewStatus: models.TicketInProgress,
			ActorID:   1,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrTicketStatusConflict)
		assert.Contains(t, err.Error(), "El ticket ya está en estado IN_PROGRESS")

		events, err := svc.GetTicketEvents(ctx, GetTicketEventsInput{ID: ticket.ID})
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("ProjectionMatchesLatestStatusEvent", func(t *testing.T) {
		updated, err := svc.UpdateTicketStatus(ctx, UpdateTicketStatusInput{
			ID:        ticket.ID,
			NewStatus: models.TicketResolved,
			ActorID:   1,
		})
		require.NoError(t, err)

		events, err := svc.GetTicketEvents(ctx, GetTicketEventsInput{ID: ticket.ID})
		require.NoError(t, err)
		require.NotEmpty(t, events)
		require.NotNil(t, events[0].ToStatus)
		assert.Equal(t, updated.Status, *events[0].ToStatus)
	})
}

func TestAddTicketComment(t *testing.T) {
	svc, _ := setupTicketService(t)
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, CreateTicketInput{
		Source:  models.TicketSourceManual,
		Title:   "Camara desenfocada",
		ActorID: 1,
	})
	require.NoError(t, err)

	event, err := svc.AddTicketComment(ctx, AddTicketCommentInput{
		ID:      ticket.ID,
		Message: "Se coordino visita de campo",
		ActorID: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TicketEventTypeComment, event.Type)
	require.NotNil(t, event.Message)
	assert.Equal(t, "Se coordino visita de campo", *event.Message)
	assert.Equal(t, int64(5), event.CreatedByUserID)

	withEvents, err := svc.GetTicketByID(ctx, GetTicketByIDInput{ID: ticket.ID})
	require.NoError(t, err)
	assert.Equal(t, models.TicketOpen, withEvents.Status)
	assert.Len(t, withEvents.RecentEvents, 2)

	_, err = svc.AddTicketComment(ctx, AddTicketCommentInput{
		ID:      9999,
		Message: "huerfano",
		ActorID: 1,
	})
	assert.ErrorIs(t, err, errs.ErrTicketNotFound)
}

func TestGetTicketByIDIncludesIncidentSummary(t *testing.T) {
	svc, db := setupTicketService(t)
	ctx := context.Background()

	incident := seedIncident(t, db, models.Incident{
		UUID:      "b301ee5c-0002-4000-8000-000000000002",
		Type:      "JAM",
		City:      ptr("Lima"),
		Status:    "ACTIVE",
		PubTime:   time.Now(),
		Latitude:  -12.08,
		Longitude: -77.05,
	})

	ticket, err := svc.CreateTicket(ctx, CreateTicketInput{
		Source:       models.TicketSourceWaze,
		IncidentUUID: ptr(incident.UUID),
		Title:        "Congestion severa",
		ActorID:      1,
	})
	require.NoError(t, err)

	withEvents, err := svc.GetTicketByID(ctx, GetTicketByIDInput{ID: ticket.ID})
	require.NoError(t, err)
	require.NotNil(t, withEvents.Incident)
	assert.Equal(t, incident.UUID, withEvents.Incident.UUID)
	assert.Equal(t, "JAM", withEvents.Incident.Type)
	require.NotNil(t, withEvents.Incident.City)
	assert.Equal(t, "Lima", *withEvents.Incident.City)
}

func TestDeleteTicket(t *testing.T) {
	svc, db := setupTicketService(t)
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, CreateTicketInput{
		Source:  models.TicketSourceManual,
		Title:   "Para borrar",
		ActorID: 1,
	})
	require.NoError(t, err)

	_, err = svc.AddTicketComment(ctx, AddTicketCommentInput{
		ID:      ticket.ID,
		Message: "registro previo al borrado",
		ActorID: 1,
	})
	require.NoError(t, err)

	err = svc.DeleteTicket(ctx, DeleteTicketInput{ID: ticket.ID, ActorID: 1})
	require.NoError(t, err)

	_, err = svc.GetTicketByID(ctx, GetTicketByIDInput{ID: ticket.ID})
	assert.ErrorIs(t, err, errs.ErrTicketNotFound)

	var orphanEvents int64
	require.NoError(t, db.Model(&models.TicketEvent{}).Where("ticket_id = ?", ticket.ID).Count(&orphanEvents).Error)
	assert.Equal(t, int64(0), orphanEvents)
}
