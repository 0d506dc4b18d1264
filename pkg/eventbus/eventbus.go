package eventbus

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"

	"github.com/alaines/alertas-api/pkg/config"
)

type EventBusEngine interface {
	Subscriber() (message.Subscriber, error)
	Publisher() (message.Publisher, error)
}

type EventBusBuilder func(conf config.EventBusEngine, serviceID string, logger *logrus.Entry) (EventBusEngine, error)

var engines = map[config.EventBusProvider]EventBusBuilder{}

func RegisterEventBusEngine(provider config.EventBusProvider, builder EventBusBuilder) {
	engines[provider] = builder
}

func GetEventBusEngine(conf config.EventBusEngine, serviceID string, logger *logrus.Entry) (EventBusEngine, error) {
	if builder, ok := engines[conf.Provider]; ok {
		return builder(conf, serviceID, logger)
	}

	return nil, fmt.Errorf("no event bus engine registered for provider '%s'", conf.Provider)
}
