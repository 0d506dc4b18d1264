package eventbus

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/sirupsen/logrus"

	"github.com/alaines/alertas-api/pkg/config"
)

func RegisterChannelEngine() {
	RegisterEventBusEngine(config.Channel, func(conf config.EventBusEngine, serviceID string, logger *logrus.Entry) (EventBusEngine, error) {
		return NewChannelEngine(serviceID, logger)
	})
}

type ChannelEngine struct {
	logger     *logrus.Entry
	serviceID  string
	subscriber message.Subscriber
	publisher  message.Publisher
}

func NewChannelEngine(serviceID string, logger *logrus.Entry) (EventBusEngine, error) {
	lEventBus := NewLoggerAdapter(logger.WithField("subsystem-provider", "GoChannel - PubSub"))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, lEventBus)

	return &ChannelEngine{
		logger:     logger,
		serviceID:  serviceID,
		publisher:  pubSub,
		subscriber: pubSub,
	}, nil
}

func (e *ChannelEngine) Subscriber() (message.Subscriber, error) {
	return e.subscriber, nil
}

func (e *ChannelEngine) Publisher() (message.Publisher, error) {
	return e.publisher, nil
}
