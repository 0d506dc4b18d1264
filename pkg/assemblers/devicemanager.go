package assemblers

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alaines/alertas-api/pkg/config"
	"github.com/alaines/alertas-api/pkg/eventbus"
	"github.com/alaines/alertas-api/pkg/helpers"
	"github.com/alaines/alertas-api/pkg/middlewares/eventpub"
	"github.com/alaines/alertas-api/pkg/services"
	"github.com/alaines/alertas-api/pkg/storage"
)

type DeviceManagerConfig struct {
	Logs              config.Logging
	PublisherEventBus config.EventBusEngine
	Storage           config.PluggableStorageEngine
}

func AssembleDeviceManagerService(conf DeviceManagerConfig) (*services.DeviceManagerService, error) {
	serviceID := "device-manager"

	lSvc := helpers.SetupLogger(conf.Logs.Level, "Device Manager", "Service")
	lStorage := helpers.SetupLogger(conf.Storage.LogLevel, "Device Manager", "Storage")

	devStorage, err := createDevicesStorageInstance(lStorage, conf.Storage)
	if err != nil {
		return nil, fmt.Errorf("could not create device storage: %s", err)
	}

	svc := services.NewDeviceManagerService(services.DeviceManagerBuilder{
		Logger:         lSvc,
		DevicesStorage: devStorage,
	})

	deviceSvc := svc.(*services.DeviceManagerServiceBackend)

	if conf.PublisherEventBus.Enabled {
		lMessaging := helpers.SetupLogger(conf.PublisherEventBus.LogLevel, "Device Manager", "Event Bus")
		lMessaging.Infof("Publisher Event Bus is enabled")

		pub, err := eventbus.NewEventBusPublisher(conf.PublisherEventBus, serviceID, lMessaging)
		if err != nil {
			return nil, fmt.Errorf("could not create Event Bus publisher: %s", err)
		}

		svc = eventpub.NewDeviceEventPublisher(&eventpub.CloudEventPublisher{
			Publisher: pub,
			ServiceID: serviceID,
			Logger:    lMessaging,
		})(svc)

		deviceSvc.SetService(svc)
	}

	return &svc, nil
}

func createDevicesStorageInstance(logger *logrus.Entry, conf config.PluggableStorageEngine) (storage.DeviceManagerRepo, error) {
	engine, err := BuildStorageEngine(logger, conf)
	if err != nil {
		return nil, fmt.Errorf("could not create storage engine: %s", err)
	}

	deviceStorage, err := engine.GetDeviceStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get device storage: %s", err)
	}

	return deviceStorage, nil
}
