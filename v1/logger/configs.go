package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls the logger's verbosity and identity fields.
type Config struct {
	// 1. production -> INFO
	// 2. development -> DEBUG
	// else -> INFO
	Level string `yaml:"level" env:"ZAP_LOGGER_LEVEL"`

	// ServiceName is stamped on every log entry.
	ServiceName string `yaml:"service_name" env:"ZAP_LOGGER_SERVICE_NAME"`

	// EnableTracing adds trace/span ids to context-aware log calls.
	EnableTracing bool `yaml:"enable_tracing" env:"ZAP_LOGGER_ENABLE_TRACING"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Level:       Info,
		ServiceName: "clipsearch",
	}
}
