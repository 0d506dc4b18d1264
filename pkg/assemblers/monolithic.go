package assemblers

import (
	"fmt"

	"github.com/alaines/alertas-api/pkg/config"
	"github.com/alaines/alertas-api/pkg/eventbus"
	"github.com/alaines/alertas-api/pkg/helpers"
	"github.com/alaines/alertas-api/pkg/middlewares/eventpub"
	"github.com/alaines/alertas-api/pkg/services"
)

// Monolith holds the three services wired over one shared storage engine.
type Monolith struct {
	Devices   services.DeviceManagerService
	Tickets   services.TicketManagerService
	Incidents services.IncidentsService
}

func AssembleMonolith(conf config.MonolithicConfig) (*Monolith, error) {
	lStorage := helpers.SetupLogger(conf.Storage.LogLevel, "Monolith", "Storage")

	engine, err := BuildStorageEngine(lStorage, conf.Storage)
	if err != nil {
		return nil, fmt.Errorf("could not create storage engine: %s", err)
	}

	deviceStorage, err := engine.GetDeviceStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get device storage: %s", err)
	}

	ticketStorage, err := engine.GetTicketStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get ticket storage: %s", err)
	}

	incidentsStorage, err := engine.GetIncidentsStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get incidents storage: %s", err)
	}

	usersStorage, err := engine.GetUsersStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get users storage: %s", err)
	}

	deviceSvc := services.NewDeviceManagerService(services.DeviceManagerBuilder{
		Logger:         helpers.SetupLogger(conf.Logs.Level, "Device Manager", "Service"),
		DevicesStorage: deviceStorage,
	})

	ticketSvc := services.NewTicketManagerService(services.TicketManagerBuilder{
		Logger:           helpers.SetupLogger(conf.Logs.Level, "Ticket Manager", "Service"),
		TicketsStorage:   ticketStorage,
		IncidentsStorage: incidentsStorage,
		UsersStorage:     usersStorage,
	})

	incidentsSvc := services.NewIncidentsService(services.IncidentsBuilder{
		Logger:           helpers.SetupLogger(conf.Logs.Level, "Incidents", "Service"),
		IncidentsStorage: incidentsStorage,
	})

	if conf.PublisherEventBus.Enabled {
		lMessaging := helpers.SetupLogger(conf.PublisherEventBus.LogLevel, "Monolith", "Event Bus")
		lMessaging.Infof("Publisher Event Bus is enabled")

		pub, err := eventbus.NewEventBusPublisher(conf.PublisherEventBus, "alertas", lMessaging)
		if err != nil {
			return nil, fmt.Errorf("could not create Event Bus publisher: %s", err)
		}

		cloudPub := &eventpub.CloudEventPublisher{
			Publisher: pub,
			ServiceID: "alertas",
			Logger:    lMessaging,
		}

		wrappedDeviceSvc := eventpub.NewDeviceEventPublisher(cloudPub)(deviceSvc)
		deviceSvc.(*services.DeviceManagerServiceBackend).SetService(wrappedDeviceSvc)
		deviceSvc = wrappedDeviceSvc

		wrappedTicketSvc := eventpub.NewTicketEventPublisher(cloudPub)(ticketSvc)
		ticketSvc.(*services.TicketManagerServiceBackend).SetService(wrappedTicketSvc)
		ticketSvc = wrappedTicketSvc
	}

	return &Monolith{
		Devices:   deviceSvc,
		Tickets:   ticketSvc,
		Incidents: incidentsSvc,
	}, nil
}
