package storage

import (
	"github.com/sirupsen/logrus"

	"github.com/alaines/alertas-api/pkg/config"
)

type CommonStorageEngine struct {
	Device    DeviceManagerRepo
	Ticket    TicketManagerRepo
	Incidents IncidentsRepo
	Users     UsersRepo
}

type StorageEngine interface {
	GetProvider() config.StorageProvider
	GetDeviceStorage() (DeviceManagerRepo, error)
	GetTicketStorage() (TicketManagerRepo, error)
	GetIncidentsStorage() (IncidentsRepo, error)
	GetUsersStorage() (UsersRepo, error)
}

var storageEngineBuilders = make(map[config.StorageProvider]func(*logrus.Entry, config.PluggableStorageEngine) (StorageEngine, error))

// RegisterStorageEngine registers a new storage engine
func RegisterStorageEngine(name config.StorageProvider, builder func(*logrus.Entry, config.PluggableStorageEngine) (StorageEngine, error)) {
	storageEngineBuilders[name] = builder
}

func GetEngineBuilder(name config.StorageProvider) func(*logrus.Entry, config.PluggableStorageEngine) (StorageEngine, error) {
	return storageEngineBuilders[name]
}
