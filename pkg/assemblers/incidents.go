package assemblers

import (
	"fmt"

	"github.com/alaines/alertas-api/pkg/config"
	"github.com/alaines/alertas-api/pkg/helpers"
	"github.com/alaines/alertas-api/pkg/services"
)

type IncidentsConfig struct {
	Logs    config.Logging
	Storage config.PluggableStorageEngine
}

func AssembleIncidentsService(conf IncidentsConfig) (*services.IncidentsService, error) {
	lSvc := helpers.SetupLogger(conf.Logs.Level, "Incidents", "Service")
	lStorage := helpers.SetupLogger(conf.Storage.LogLevel, "Incidents", "Storage")

	engine, err := BuildStorageEngine(lStorage, conf.Storage)
	if err != nil {
		return nil, fmt.Errorf("could not create storage engine: %s", err)
	}

	incidentsStorage, err := engine.GetIncidentsStorage()
	if err != nil {
		return nil, fmt.Errorf("could not get incidents storage: %s", err)
	}

	svc := services.NewIncidentsService(services.IncidentsBuilder{
		Logger:           lSvc,
		IncidentsStorage: incidentsStorage,
	})

	return &svc, nil
}
