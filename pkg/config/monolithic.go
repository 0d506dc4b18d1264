package config

type MonolithicConfig struct {
	Logs              Logging                `mapstructure:"logs"`
	PublisherEventBus EventBusEngine         `mapstructure:"publisher_event_bus"`
	Storage           PluggableStorageEngine `mapstructure:"storage"`
}
