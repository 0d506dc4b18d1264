package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/alaines/alertas-api/pkg/assemblers"
	"github.com/alaines/alertas-api/pkg/config"
	"github.com/alaines/alertas-api/pkg/eventbus"
	"github.com/alaines/alertas-api/pkg/helpers"
)

var (
	version   = "v0"    // api version
	sha1ver   = "-"     // sha1 revision used to build the program
	buildTime = "devTS" // when the executable was built
)

func main() {
	log.SetFormatter(helpers.LogFormatter)
	log.Infof("starting alertas monolith: version=%s build=%s buildTime=%s", version, sha1ver, buildTime)

	conf, err := config.LoadConfig[config.MonolithicConfig](nil)
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}

	globalLogLevel, err := log.ParseLevel(string(conf.Logs.Level))
	if err != nil {
		log.Warn("unknown log level. defaulting to 'info' log level")
		globalLogLevel = log.InfoLevel
	}
	log.SetLevel(globalLogLevel)
	log.Infof("global log level set to '%s'", globalLogLevel)

	eventbus.RegisterAmqpEngine()
	eventbus.RegisterChannelEngine()

	if _, err := assemblers.AssembleMonolith(*conf); err != nil {
		log.Fatalf("could not assemble services: %s", err)
	}

	log.Infof("alertas services assembled and ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Infof("received %s signal, shutting down", sig)
}
