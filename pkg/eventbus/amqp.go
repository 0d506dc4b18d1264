package eventbus

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"strings"

	"github.com/ThreeDotsLabs/watermill-amqp/v2/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"

	"github.com/alaines/alertas-api/pkg/config"
)

func RegisterAmqpEngine() {
	RegisterEventBusEngine(config.Amqp, func(conf config.EventBusEngine, serviceID string, logger *logrus.Entry) (EventBusEngine, error) {
		amqpConf, err := config.DecodeStruct[config.AMQPConnection](conf.Config)
		if err != nil {
			return nil, fmt.Errorf("could not decode amqp config: %s", err)
		}

		return NewAmqpEngine(amqpConf, serviceID, logger)
	})
}

type AmqpEngine struct {
	logger    *logrus.Entry
	serviceID string
	conf      config.AMQPConnection
}

func NewAmqpEngine(conf config.AMQPConnection, serviceID string, logger *logrus.Entry) (EventBusEngine, error) {
	return &AmqpEngine{
		logger:    logger,
		serviceID: serviceID,
		conf:      conf,
	}, nil
}

func (e *AmqpEngine) Publisher() (message.Publisher, error) {
	amqpConfig := e.buildConfig()

	lEventBusPub := NewLoggerAdapter(e.logger.WithField("subsystem-provider", "AMQP - Publisher"))

	publisher, err := amqp.NewPublisher(amqpConfig, lEventBusPub)
	if err != nil {
		return nil, fmt.Errorf("could not create publisher: %s", err)
	}

	return publisher, nil
}

func (e *AmqpEngine) Subscriber() (message.Subscriber, error) {
	amqpConfig := e.buildConfig()

	lEventBusSub := NewLoggerAdapter(e.logger.WithField("subsystem-provider", "AMQP - Subscriber"))

	subscriber, err := amqp.NewSubscriber(amqpConfig, lEventBusSub)
	if err != nil {
		return nil, fmt.Errorf("could not create subscriber: %s", err)
	}

	return subscriber, nil
}

func (e *AmqpEngine) buildConfig() amqp.Config {
	conf := e.conf

	userPassUrlPrefix := ""
	if conf.BasicAuth {
		e.logger.Debugf("basic auth enabled")
		userPassUrlPrefix = fmt.Sprintf("%s:%s@", url.PathEscape(conf.Username), url.PathEscape(string(conf.Password)))
	}

	protocol := conf.Protocol
	if protocol == "" {
		protocol = "amqp"
	}

	amqpURL := fmt.Sprintf("%s://%s%s:%d", protocol, userPassUrlPrefix, conf.Hostname, conf.Port)

	amqpConfig := amqp.NewDurablePubSubConfig(amqpURL, amqp.GenerateQueueNameTopicNameWithSuffix(e.serviceID))

	if conf.InsecureSkipVerify {
		e.logger.Debugf("tls InsecureSkipVerify set")
		amqpConfig.Connection.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	amqpConfig.Exchange = amqp.ExchangeConfig{
		GenerateName: func(topic string) string {
			if conf.Exchange != "" {
				return conf.Exchange
			}
			return "alertas-events"
		},
		Type:    "topic",
		Durable: true,
	}

	amqpConfig.QueueBind = amqp.QueueBindConfig{
		GenerateRoutingKey: func(topic string) string {
			suf := fmt.Sprintf("_%s", e.serviceID)
			if strings.Contains(topic, suf) {
				return strings.ReplaceAll(topic, suf, "")
			}
			return topic
		},
	}

	amqpConfig.Publish = amqp.PublishConfig{
		GenerateRoutingKey: func(topic string) string {
			return topic
		},
	}

	return amqpConfig
}
