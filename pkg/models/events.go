package models

const HttpSourceHeader = "x-alertas-source"
const HttpRequestIDHeader = "x-request-id"

const DeviceManagerSource = "urn://service/alertas-devmanager"
const TicketManagerSource = "urn://service/alertas-ticketmanager"

// UpdateModel carries the before/after pair published for update mutations.
type UpdateModel[E any] struct {
	Previous E `json:"previous"`
	Updated  E `json:"updated"`
}

type EventType string

const (
	EventCreateDeviceKey       EventType = "device.create"
	EventUpdateDeviceKey       EventType = "device.update"
	EventUpdateDeviceStatusKey EventType = "device.status.update"
	EventDeleteDeviceKey       EventType = "device.delete"

	EventCreateTicketKey       EventType = "ticket.create"
	EventUpdateTicketKey       EventType = "ticket.update"
	EventUpdateTicketStatusKey EventType = "ticket.status.update"
	EventTicketCommentKey      EventType = "ticket.comment"
	EventDeleteTicketKey       EventType = "ticket.delete"

	EventAnyKey EventType = "any"
)
