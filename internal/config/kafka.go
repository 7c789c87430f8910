package config

type Kafka struct {
	// Enabled toggles best-effort publishing of stock change events.
	// The service runs without a broker when disabled.
	Enabled   bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Addresses []string `env:"KAFKA_ADDRESSES" envSeparator:","`
}
