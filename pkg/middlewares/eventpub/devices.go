package eventpub

import (
	"context"
	"fmt"

	"github.com/alaines/alertas-api/pkg/helpers"
	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/services"
)

type deviceEventPublisher struct {
	next       services.DeviceManagerService
	eventMWPub ICloudEventPublisher
}

func NewDeviceEventPublisher(eventMWPub ICloudEventPublisher) services.DeviceMiddleware {
	return func(next services.DeviceManagerService) services.DeviceManagerService {
		return &deviceEventPublisher{
			next:       next,
			eventMWPub: NewEventPublisherWithSourceMiddleware(eventMWPub, models.DeviceManagerSource),
		}
	}
}

func (mw *deviceEventPublisher) CreateDevice(ctx context.Context, input services.CreateDeviceInput) (output *models.Device, err error) {
	ctx = context.WithValue(ctx, helpers.CtxEventType, models.EventCreateDeviceKey)       //nolint:staticcheck
	ctx = context.WithValue(ctx, helpers.CtxEventSubject, fmt.Sprintf("device/%s", input.Name)) //nolint:staticcheck

	defer func() {
		if err == nil {
			mw.eventMWPub.PublishCloudEvent(ctx, output)
		}
	}()
	return mw.next.CreateDevice(ctx, input)
}

func (mw *deviceEventPublisher) GetDevices(ctx context.Context, input services.GetDevicesInput) ([]models.Device, error) {
	return mw.next.GetDevices(ctx, input)
}

func (mw *deviceEventPublisher) GetDeviceByID(ctx context.Context, input services.GetDeviceByIDInput) (*models.DeviceWithEvents, error) {
	return mw.next.GetDeviceByID(ctx, input)
}

func (mw *deviceEventPublisher) UpdateDevice(ctx context.Context, input services.UpdateDeviceInput) (output *models.Device, err error) {
	ctx = context.WithValue(ctx, helpers.CtxEventType, models.EventUpdateDeviceKey)     //nolint:staticcheck
	ctx = context.WithValue(ctx, helpers.CtxEventSubject, fmt.Sprintf("device/%d", input.ID)) //nolint:staticcheck

	prev, err := mw.next.GetDeviceByID(ctx, services.GetDeviceByIDInput{ID: input.ID})
	if err != nil {
		return nil, fmt.Errorf("mw error: could not get device %d: %w", input.ID, err)
	}

	defer func() {
		if err == nil {
			mw.eventMWPub.PublishCloudEvent(ctx, models.UpdateModel[models.Device]{
				Previous: prev.Device,
				Updated:  *output,
			})
		}
	}()
	return mw.next.UpdateDevice(ctx, input)
}

func (mw *deviceEventPublisher) UpdateDeviceStatus(ctx context.Context, input services.UpdateDeviceStatusInput) (output *models.Device, err error) {
	ctx = context.WithValue(ctx, helpers.CtxEventType, models.EventUpdateDeviceStatusKey) //nolint:staticcheck
	ctx = context.WithValue(ctx, helpers.CtxEventSubject, fmt.Sprintf("device/%d", input.ID))   //nolint:staticcheck

	prev, err := mw.next.GetDeviceByID(ctx, services.GetDeviceByIDInput{ID: input.ID})
	if err != nil {
		return nil, fmt.Errorf("mw error: could not get device %d: %w", input.ID, err)
	}

	defer func() {
		if err == nil {
			mw.eventMWPub.PublishCloudEvent(ctx, models.UpdateModel[models.Device]{
				Previous: prev.Device,
				Updated:  *output,
			})
		}
	}()
	return mw.next.UpdateDeviceStatus(ctx, input)
}

func (mw *deviceEventPublisher) DeleteDevice(ctx context.Context, input services.DeleteDeviceInput) (err error) {
	ctx = context.WithValue(ctx, helpers.CtxEventType, models.EventDeleteDeviceKey)     //nolint:staticcheck
	ctx = context.WithValue(ctx, helpers.CtxEventSubject, fmt.Sprintf("device/%d", input.ID)) //nolint:staticcheck

	prev, err := mw.next.GetDeviceByID(ctx, services.GetDeviceByIDInput{ID: input.ID})
	if err != nil {
		return fmt.Errorf("mw error: could not get device %d: %w", input.ID, err)
	}

	defer func() {
		if err == nil {
			mw.eventMWPub.PublishCloudEvent(ctx, prev.Device)
		}
	}()
	return mw.next.DeleteDevice(ctx, input)
}

func (mw *deviceEventPublisher) GetDeviceEvents(ctx context.Context, input services.GetDeviceEventsInput) ([]models.DeviceEvent, error) {
	return mw.next.GetDeviceEvents(ctx, input)
}
