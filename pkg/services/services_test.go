package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/alaines/alertas-api/pkg/config"
	"github.com/alaines/alertas-api/pkg/helpers"
	"github.com/alaines/alertas-api/pkg/models"
	"github.com/alaines/alertas-api/pkg/storage"
	"github.com/alaines/alertas-api/pkg/storage/sqlite"
)

// setupStorageEngine builds an in-memory engine plus a second connection to
// the same database for seeding read-only tables (incidents, users).
func setupStorageEngine(t *testing.T) (storage.StorageEngine, *gorm.DB) {
	logger := helpers.SetupLogger(config.Info, "test", "storage")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	engine, err := sqlite.NewStorageEngine(logger, dsn)
	require.NoError(t, err)

	db, err := sqlite.CreateSQLiteDBConnection(logger, dsn)
	require.NoError(t, err)

	return engine, db
}

func setupDeviceService(t *testing.T) (DeviceManagerService, *gorm.DB) {
	engine, db := setupStorageEngine(t)

	devicesStorage, err := engine.GetDeviceStorage()
	require.NoError(t, err)

	svc := NewDeviceManagerService(DeviceManagerBuilder{
		Logger:         helpers.SetupLogger(config.Info, "test", "device-manager"),
		DevicesStorage: devicesStorage,
	})

	return svc, db
}

func setupTicketService(t *testing.T) (TicketManagerService, *gorm.DB) {
	engine, db := setupStorageEngine(t)

	ticketsStorage, err := engine.GetTicketStorage()
	require.NoError(t, err)
	incidentsStorage, err := engine.GetIncidentsStorage()
	require.NoError(t, err)
	usersStorage, err := engine.GetUsersStorage()
	require.NoError(t, err)

	svc := NewTicketManagerService(TicketManagerBuilder{
		Logger:           helpers.SetupLogger(config.Info, "test", "ticket-manager"),
		TicketsStorage:   ticketsStorage,
		IncidentsStorage: incidentsStorage,
		UsersStorage:     usersStorage,
	})

	return svc, db
}

func setupIncidentsService(t *testing.T) (IncidentsService, *gorm.DB) {
	engine, db := setupStorageEngine(t)

	incidentsStorage, err := engine.GetIncidentsStorage()
	require.NoError(t, err)

	svc := NewIncidentsService(IncidentsBuilder{
		Logger:           helpers.SetupLogger(config.Info, "test", "incidents"),
		IncidentsStorage: incidentsStorage,
	})

	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, id int64, username string) {
	require.NoError(t, db.Create(&models.User{ID: id, Username: username, FullName: username}).Error)
}

func seedIncident(t *testing.T, db *gorm.DB, incident models.Incident) models.Incident {
	require.NoError(t, db.Create(&incident).Error)
	return incident
}

func ptr[T any](v T) *T {
	return &v
}
