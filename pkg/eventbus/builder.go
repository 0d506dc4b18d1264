package eventbus

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"

	"github.com/alaines/alertas-api/pkg/config"
)

func NewEventBusPublisher(conf config.EventBusEngine, serviceID string, logger *logrus.Entry) (message.Publisher, error) {
	engine, err := GetEventBusEngine(conf, serviceID, logger)
	if err != nil {
		return nil, err
	}

	return engine.Publisher()
}

func NewEventBusSubscriber(conf config.EventBusEngine, serviceID string, logger *logrus.Entry) (message.Subscriber, error) {
	engine, err := GetEventBusEngine(conf, serviceID, logger)
	if err != nil {
		return nil, err
	}

	return engine.Subscriber()
}
