package assemblers

import (
	"fmt"

	"github.com/alaines/alertas-api/pkg/config"
	"github.com/alaines/alertas-api/pkg/eventbus"
	"github.com/alaines/alertas-api/pkg/helpers"
	"github.com/alaines/alertas-api/pkg/middlewares/eventpub"
	"github.com/alaines/alertas-api/pkg/services"
)

type TicketManagerConfig struct {
	Logs              config.Logging
	PublisherEventBus config.EventBusEngine
	Storage           config.PluggableStorageEngine
}

func AssembleTicketManagerService(conf TicketManagerConfig) (*services.TicketManagerService, error) {
	serviceID := "ticket-manager"

	lSvc := helpers.SetupLogger(conf.Logs.Level, "Ticket Manager", "Service")
	lStorage := helpers.SetupLogger(conf.Storage.LogLevel, "Ticket Manager", "Storage")

	engine, err := BuildStorageEngine(lStorage, conf.Storage)
	if err != nil {
		return nil, fmt.Errorf("could not create storage engine: %s", err)
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

	svc := services.NewTicketManagerService(services.TicketManagerBuilder{
		Logger:           lSvc,
		TicketsStorage:   ticketStorage,
		IncidentsStorage: incidentsStorage,
		UsersStorage:     usersStorage,
	})

	ticketSvc := svc.(*services.TicketManagerServiceBackend)

	if conf.PublisherEventBus.Enabled {
		lMessaging := helpers.SetupLogger(conf.PublisherEventBus.LogLevel, "Ticket Manager", "Event Bus")
		lMessaging.Infof("Publisher Event Bus is enabled")

		pub, err := eventbus.NewEventBusPublisher(conf.PublisherEventBus, serviceID, lMessaging)
		if err != nil {
			return nil, fmt.Errorf("could not create Event Bus publisher: %s", err)
		}

		svc = eventpub.NewTicketEventPublisher(&eventpub.CloudEventPublisher{
			Publisher: pub,
			ServiceID: serviceID,
			Logger:    lMessaging,
		})(svc)

		ticketSvc.SetService(svc)
	}

	return &svc, nil
}
