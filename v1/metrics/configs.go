package metrics

// DefaultMetricsAddress is the listen address used when none is configured.
const DefaultMetricsAddress = ":9090"

// Config controls how the Prometheus metrics server exposes collectors.
type Config struct {
	// Address is the network address of the /metrics HTTP server.
	Address string `yaml:"address" env:"METRICS_ADDRESS"`

	// EnableDefaultCollectors registers the Go runtime, process, and
	// build info collectors alongside the service's own instruments.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// ServiceName is attached as a constant "service" label to every
	// metric, so several services can share one Prometheus cluster.
	ServiceName string `yaml:"service_name" env:"METRICS_SERVICE_NAME"`
}

// DefaultConfig provides the production defaults.
func DefaultConfig() Config {
	return Config{
		Address:                 DefaultMetricsAddress,
		EnableDefaultCollectors: true,
		ServiceName:             "clipsearch",
	}
}

// WithAddress sets the metrics server listen address.
func (c Config) WithAddress(addr string) Config {
	c.Address = addr
	return c
}

// WithServiceName sets the constant service label.
func (c Config) WithServiceName(name string) Config {
	c.ServiceName = name
	return c
}
