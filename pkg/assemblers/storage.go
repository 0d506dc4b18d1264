package assemblers

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alaines/alertas-api/pkg/config"
	"github.com/alaines/alertas-api/pkg/storage"
	"github.com/alaines/alertas-api/pkg/storage/postgres"
	"github.com/alaines/alertas-api/pkg/storage/sqlite"
)

func init() {
	postgres.Register()
	sqlite.Register()
}

func BuildStorageEngine(logger *logrus.Entry, conf config.PluggableStorageEngine) (storage.StorageEngine, error) {
	builder := storage.GetEngineBuilder(conf.Provider)
	if builder == nil {
		return nil, fmt.Errorf("no storage engine registered for provider '%s'", conf.Provider)
	}

	return builder(logger, conf)
}
