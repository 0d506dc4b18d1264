package postgres

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/alaines/alertas-api/pkg/config"
	"github.com/alaines/alertas-api/pkg/storage"
)

func Register() {
	storage.RegisterStorageEngine(config.Postgres, func(logger *log.Entry, conf config.PluggableStorageEngine) (storage.StorageEngine, error) {
		return NewStorageEngine(logger, conf.Postgres)
	})
}

const ALERTAS_DB_NAME = "alertas"

type PostgresStorageEngine struct {
	storage.CommonStorageEngine
	Config config.PostgresPSEConfig
	logger *log.Entry
}

func NewStorageEngine(logger *log.Entry, config config.PostgresPSEConfig) (storage.StorageEngine, error) {
	return &PostgresStorageEngine{
		Config: config,
		logger: logger,
	}, nil
}

func (s *PostgresStorageEngine) GetProvider() config.StorageProvider {
	return config.Postgres
}

func (s *PostgresStorageEngine) initialize() error {
	psqlCli, err := CreatePostgresDBConnection(s.logger, s.Config, ALERTAS_DB_NAME)
	if err != nil {
		return fmt.Errorf("could not create postgres client: %s", err)
	}

	m := NewMigrator(s.logger, psqlCli)
	m.MigrateToLatest()

	if s.Device, err = NewDeviceManagerRepository(s.logger, psqlCli); err != nil {
		return err
	}

	if s.Ticket, err = NewTicketManagerRepository(s.logger, psqlCli); err != nil {
		return err
	}

	if s.Incidents, err = NewIncidentsRepository(s.logger, psqlCli); err != nil {
		return err
	}

	if s.Users, err = NewUsersRepository(s.logger, psqlCli); err != nil {
		return err
	}

	return nil
}

func (s *PostgresStorageEngine) GetDeviceStorage() (storage.DeviceManagerRepo, error) {
	if s.Device == nil {
		if err := s.initialize(); err != nil {
			return nil, err
		}
	}

	return s.Device, nil
}

func (s *PostgresStorageEngine) GetTicketStorage() (storage.TicketManagerRepo, error) {
	if s.Ticket == nil {
		if err := s.initialize(); err != nil {
			return nil, err
		}
	}

	return s.Ticket, nil
}

func (s *PostgresStorageEngine) GetIncidentsStorage() (storage.IncidentsRepo, error) {
	if s.Incidents == nil {
		if err := s.initialize(); err != nil {
			return nil, err
		}
	}

	return s.Incidents, nil
}

func (s *PostgresStorageEngine) GetUsersStorage() (storage.UsersRepo, error) {
	if s.Users == nil {
		if err := s.initialize(); err != nil {
			return nil, err
		}
	}

	return s.Users, nil
}
