package tracer

// Config controls the OpenTelemetry tracer provider.
type Config struct {
	// ServiceName is attached to every span as the service resource.
	ServiceName string `yaml:"service_name" env:"TRACER_SERVICE_NAME"`

	// AppEnv tags spans with the deployment environment.
	AppEnv string `yaml:"app_env" env:"TRACER_APP_ENV"`

	// EnableExport ships spans to an OTLP HTTP collector. The
	// collector endpoint comes from the standard OTEL_EXPORTER_OTLP_*
	// environment variables.
	EnableExport bool `yaml:"enable_export" env:"TRACER_ENABLE_EXPORT"`
}

// DefaultConfig provides the production defaults. Export is off until
// explicitly enabled so local runs need no collector.
func DefaultConfig() Config {
	return Config{
		ServiceName: "clipsearch",
		AppEnv:      "development",
	}
}

// WithServiceName sets the span service resource.
func (c Config) WithServiceName(name string) Config {
	c.ServiceName = name
	return c
}

// WithExport toggles OTLP span export.
func (c Config) WithExport(enabled bool) Config {
	c.EnableExport = enabled
	return c
}
