package sqlite

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alaines/alertas-api/pkg/config"
	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/storage"
	"github.com/alaines/alertas-api/pkg/storage/postgres"
)

type SQLiteStorageEngine struct {
	storage.CommonStorageEngine
	db     *gorm.DB
	logger *logrus.Entry
}

func Register() {
	storage.RegisterStorageEngine(config.SQLite, func(logger *logrus.Entry, conf config.PluggableStorageEngine) (storage.StorageEngine, error) {
		path := conf.SQLite.DatabasePath
		if conf.SQLite.InMemory || path == "" {
			path = "file::memory:?cache=shared"
		}

		return NewStorageEngine(logger, path)
	})
}

func NewStorageEngine(logger *logrus.Entry, path string) (storage.StorageEngine, error) {
	db, err := CreateSQLiteDBConnection(logger, path)
	if err != nil {
		return nil, fmt.Errorf("could not create sqlite connection: %s", err)
	}

	if err := initializeSchema(db); err != nil {
		return nil, fmt.Errorf("could not initialize sqlite schema: %s", err)
	}

	return &SQLiteStorageEngine{
		db:     db,
		logger: logger,
	}, nil
}

func initializeSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Device{},
		&models.DeviceEvent{},
		&models.Ticket{},
		&models.TicketEvent{},
		&models.Incident{},
		&models.User{},
	)
}

func (s *SQLiteStorageEngine) GetProvider() config.StorageProvider {
	return config.SQLite
}

func (s *SQLiteStorageEngine) GetDeviceStorage() (storage.DeviceManagerRepo, error) {
	if s.Device == nil {
		repo, err := postgres.NewDeviceManagerRepository(s.logger, s.db)
		if err != nil {
			return nil, err
		}
		s.Device = repo
	}

	return s.Device, nil
}

func (s *SQLiteStorageEngine) GetTicketStorage() (storage.TicketManagerRepo, error) {
	if s.Ticket == nil {
		repo, err := postgres.NewTicketManagerRepository(s.logger, s.db)
		if err != nil {
			return nil, err
		}
		s.Ticket = repo
	}

	return s.Ticket, nil
}

func (s *SQLiteStorageEngine) GetIncidentsStorage() (storage.IncidentsRepo, error) {
	if s.Incidents == nil {
		repo, err := postgres.NewIncidentsRepository(s.logger, s.db)
		if err != nil {
			return nil, err
		}
		s.Incidents = repo
	}

	return s.Incidents, nil
}

func (s *SQLiteStorageEngine) GetUsersStorage() (storage.UsersRepo, error) {
	if s.Users == nil {
		repo, err := postgres.NewUsersRepository(s.logger, s.db)
		if err != nil {
			return nil, err
		}
		s.Users = repo
	}

	return s.Users, nil
}
