package ingest

// Config holds the AMQP consumer's connection and topology settings.
type Config struct {
	// Host and Port of the RabbitMQ server.
	Host string `yaml:"host" env:"INGEST_RABBIT_HOST"`
	Port uint   `yaml:"port" env:"INGEST_RABBIT_PORT"`

	// User and Password authenticate the connection.
	User     string `yaml:"user" env:"INGEST_RABBIT_USER"`
	Password string `yaml:"password" env:"INGEST_RABBIT_PASSWORD"`

	// UseSSL selects the amqps scheme.
	UseSSL bool `yaml:"use_ssl" env:"INGEST_RABBIT_USE_SSL"`

	// ExchangeName, ExchangeType, QueueName, and RoutingKey declare the
	// consumer topology. Durable exchange and queue, non-exclusive.
	ExchangeName string `yaml:"exchange_name" env:"INGEST_EXCHANGE_NAME"`
	ExchangeType string `yaml:"exchange_type" env:"INGEST_EXCHANGE_TYPE"`
	QueueName    string `yaml:"queue_name" env:"INGEST_QUEUE_NAME"`
	RoutingKey   string `yaml:"routing_key" env:"INGEST_ROUTING_KEY"`

	// ConsumerTag identifies this consumer on the channel.
	ConsumerTag string `yaml:"consumer_tag" env:"INGEST_CONSUMER_TAG"`

	// PrefetchCount bounds unacked deliveries in flight.
	PrefetchCount int `yaml:"prefetch_count" env:"INGEST_PREFETCH_COUNT"`

	// GenerateThumbnails runs the thumbnail processor on each batch
	// before indexing.
	GenerateThumbnails bool `yaml:"generate_thumbnails" env:"INGEST_GENERATE_THUMBNAILS"`
}

// DefaultConfig provides the production defaults.
func DefaultConfig() Config {
	return Config{
		Host:          "localhost",
		Port:          5672,
		User:          "guest",
		Password:      "guest",
		ExchangeName:  "clip-embeddings",
		ExchangeType:  "direct",
		QueueName:     "clip-embeddings-ready",
		RoutingKey:    "embeddings.ready",
		ConsumerTag:   "clipsearch-ingest",
		PrefetchCount: 4,
	}
}

// WithQueue sets the consumed queue.
func (c Config) WithQueue(name string) Config {
	c.QueueName = name
	return c
}

// WithPrefetch sets the in-flight delivery bound.
func (c Config) WithPrefetch(n int) Config {
	c.PrefetchCount = n
	return c
}
