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

var deviceValidate *validator.Validate

type DeviceMiddleware func(DeviceManagerService) DeviceManagerService

type DeviceManagerServiceBackend struct {
	devicesStorage storage.DeviceManagerRepo
	service        DeviceManagerService
	logger         *logrus.Entry
}

type DeviceManagerBuilder struct {
	Logger         *logrus.Entry
	DevicesStorage storage.DeviceManagerRepo
}

func NewDeviceManagerService(builder DeviceManagerBuilder) DeviceManagerService {
	deviceValidate = validator.New()
	svc := &DeviceManagerServiceBackend{
		devicesStorage: builder.DevicesStorage,
		logger:         builder.Logger,
	}

	svc.service = svc
	return svc
}

func (svc *DeviceManagerServiceBackend) SetService(service DeviceManagerService) {
	svc.service = service
}

func (svc *DeviceManagerServiceBackend) CreateDevice(ctx context.Context, input CreateDeviceInput) (*models.Device, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	status := models.DeviceActive
	if input.Status != nil {
		status = *input.Status
	}

	lFunc.Debugf("creating device '%s'", input.Name)
	now := time.Now()

	device := &models.Device{
		Name:                input.Name,
		Type:                input.Type,
		Brand:               input.Brand,
		Model:               input.Model,
		SerialNumber:        input.SerialNumber,
		InstallationYear:    input.InstallationYear,
		ManufactureYear:     input.ManufactureYear,
		Latitude:            input.Latitude,
		Longitude:           input.Longitude,
		Address:             input.Address,
		IPAddress:           input.IPAddress,
		Username:            input.Username,
		Password:            input.Password,
		Status:              status,
		LastMaintenanceDate: input.LastMaintenanceDate,
		Notes:               input.Notes,
		CreatedByUserID:     input.ActorID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = svc.devicesStorage.Transaction(ctx, func(repo storage.DeviceManagerRepo) error {
		device, err = repo.Insert(ctx, device)
		if err != nil {
			return err
		}

		_, err = repo.Events().Insert(ctx, &models.DeviceEvent{
			DeviceID:    device.ID,
			Type:        models.DeviceEventTypeCreated,
			Description: "Dispositivo creado",
			Payload: &models.DeviceEventPayload{
				Snapshot: deviceSnapshot(device),
			},
			CreatedByUserID: input.ActorID,
			CreatedAt:       now,
		})
		return err
	})
	if err != nil {
		lFunc.Errorf("could not insert device in storage engine: %s", err)
		return nil, err
	}

	return device, nil
}

func (svc *DeviceManagerServiceBackend) GetDevices(ctx context.Context, input GetDevicesInput) ([]models.Device, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	lFunc.Debugf("getting all devices")
	return svc.devicesStorage.SelectAll(ctx, input.QueryParameters)
}

func (svc *DeviceManagerServiceBackend) GetDeviceByID(ctx context.Context, input GetDeviceByIDInput) (*models.DeviceWithEvents, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, device, err := svc.devicesStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if device '%d' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		lFunc.Errorf("device %d can not be found in storage engine", input.ID)
		return nil, errs.ErrDeviceNotFound
	}

	events, err := svc.devicesStorage.Events().SelectByDevice(ctx, input.ID, recentEventsLimit)
	if err != nil {
		lFunc.Errorf("could not read events for device '%d': %s", input.ID, err)
		return nil, err
	}

	return &models.DeviceWithEvents{
		Device:       *device,
		RecentEvents: events,
	}, nil
}

func (svc *DeviceManagerServiceBackend) UpdateDevice(ctx context.Context, input UpdateDeviceInput) (*models.Device, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, device, err := svc.devicesStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if device '%d' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		lFunc.Errorf("device %d can not be found in storage engine", input.ID)
		return nil, errs.ErrDeviceNotFound
	}

	diff := map[string]models.FieldChange{}

	device.Name = helpers.ApplyChange(diff, "name", device.Name, input.Name)
	device.Type = helpers.ApplyChange(diff, "type", device.Type, input.Type)
	device.Brand = helpers.ApplyChangePtr(diff, "brand", device.Brand, input.Brand)
	device.Model = helpers.ApplyChangePtr(diff, "model", device.Model, input.Model)
	device.SerialNumber = helpers.ApplyChangePtr(diff, "serial_number", device.SerialNumber, input.SerialNumber)
	device.InstallationYear = helpers.ApplyChangePtr(diff, "installation_year", device.InstallationYear, input.InstallationYear)
	device.ManufactureYear = helpers.ApplyChangePtr(diff, "manufacture_year", device.ManufactureYear, input.ManufactureYear)
	device.Latitude = helpers.ApplyChangePtr(diff, "latitude", device.Latitude, input.Latitude)
	device.Longitude = helpers.ApplyChangePtr(diff, "longitude", device.Longitude, input.Longitude)
	device.Address = helpers.ApplyChangePtr(diff, "address", device.Address, input.Address)
	device.IPAddress = helpers.ApplyChangePtr(diff, "ip_address", device.IPAddress, input.IPAddress)
	device.Username = helpers.ApplyChangePtr(diff, "username", device.Username, input.Username)
	device.LastMaintenanceDate = helpers.ApplyChangePtr(diff, "last_maintenance_date", device.LastMaintenanceDate, input.LastMaintenanceDate)
	device.Notes = helpers.ApplyChangePtr(diff, "notes", device.Notes, input.Notes)

	// Credential values never reach the event log.
	if input.Password != nil && (device.Password == nil || *device.Password != *input.Password) {
		device.Password = input.Password
		diff["password"] = models.FieldChange{From: "***", To: "***"}
	}

	if len(diff) == 0 {
		lFunc.Debugf("update for device '%d' changes nothing, skipping write", input.ID)
		return device, nil
	}

	now := time.Now()
	device.UpdatedAt = now

	err = svc.devicesStorage.Transaction(ctx, func(repo storage.DeviceManagerRepo) error {
		device, err = repo.Update(ctx, device)
		if err != nil {
			return err
		}

		_, err = repo.Events().Insert(ctx, &models.DeviceEvent{
			DeviceID:    device.ID,
			Type:        models.DeviceEventTypeUpdated,
			Description: "Dispositivo actualizado",
			Payload: &models.DeviceEventPayload{
				Diff: diff,
			},
			CreatedByUserID: input.ActorID,
			CreatedAt:       now,
		})
		return err
	})
	if err != nil {
		lFunc.Errorf("could not update device '%d' in storage engine: %s", input.ID, err)
		return nil, err
	}

	return device, nil
}

func (svc *DeviceManagerServiceBackend) UpdateDeviceStatus(ctx context.Context, input UpdateDeviceStatusInput) (*models.Device, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, device, err := svc.devicesStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if device '%d' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		lFunc.Errorf("device %d can not be found in storage engine", input.ID)
		return nil, errs.ErrDeviceNotFound
	}

	// A same-status transition is allowed for devices and still logged.
	fromStatus := device.Status
	toStatus := input.NewStatus

	message := fmt.Sprintf("Estado cambiado de %s a %s", fromStatus, toStatus)
	if input.Message != nil && *input.Message != "" {
		message = *input.Message
	}

	now := time.Now()
	device.Status = toStatus
	device.UpdatedAt = now

	err = svc.devicesStorage.Transaction(ctx, func(repo storage.DeviceManagerRepo) error {
		device, err = repo.Update(ctx, device)
		if err != nil {
			return err
		}

		_, err = repo.Events().Insert(ctx, &models.DeviceEvent{
			DeviceID:        device.ID,
			Type:            models.DeviceEventTypeStatusChanged,
			FromStatus:      &fromStatus,
			ToStatus:        &toStatus,
			Description:     message,
			CreatedByUserID: input.ActorID,
			CreatedAt:       now,
		})
		return err
	})
	if err != nil {
		lFunc.Errorf("could not update status of device '%d' in storage engine: %s", input.ID, err)
		return nil, err
	}

	return device, nil
}

func (svc *DeviceManagerServiceBackend) DeleteDevice(ctx context.Context, input DeleteDeviceInput) error {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return errs.ErrValidateBadRequest
	}

	exists, _, err := svc.devicesStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if device '%d' exists in storage engine: %s", input.ID, err)
		return err
	} else if !exists {
		lFunc.Errorf("device %d can not be found in storage engine", input.ID)
		return errs.ErrDeviceNotFound
	}

	// The aggregate owns its events: they go away with the projection.
	err = svc.devicesStorage.Transaction(ctx, func(repo storage.DeviceManagerRepo) error {
		if err := repo.Events().DeleteByDevice(ctx, input.ID); err != nil {
			return err
		}

		return repo.Delete(ctx, input.ID)
	})
	if err != nil {
		lFunc.Errorf("could not delete device '%d' from storage engine: %s", input.ID, err)
		return err
	}

	return nil
}

func (svc *DeviceManagerServiceBackend) GetDeviceEvents(ctx context.Context, input GetDeviceEventsInput) ([]models.DeviceEvent, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := deviceValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, _, err := svc.devicesStorage.SelectExists(ctx, input.ID)
	if err != nil {
		lFunc.Errorf("something went wrong while checking if device '%d' exists in storage engine: %s", input.ID, err)
		return nil, err
	} else if !exists {
		lFunc.Errorf("device %d can not be found in storage engine", input.ID)
		return nil, errs.ErrDeviceNotFound
	}

	return svc.devicesStorage.Events().SelectByDevice(ctx, input.ID, clampEventsLimit(input.Limit))
}

func deviceSnapshot(device *models.Device) *models.DeviceSnapshot {
	return &models.DeviceSnapshot{
		Name:                device.Name,
		Type:                device.Type,
		Brand:               device.Brand,
		Model:               device.Model,
		SerialNumber:        device.SerialNumber,
		InstallationYear:    device.InstallationYear,
		ManufactureYear:     device.ManufactureYear,
		Latitude:            device.Latitude,
		Longitude:           device.Longitude,
		Address:             device.Address,
		Status:              device.Status,
		LastMaintenanceDate: device.LastMaintenanceDate,
		Notes:               device.Notes,
	}
}
