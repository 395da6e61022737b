// Package logger provides structured logging for the clip search services.
//
// The logger package is designed to provide a standardized logging approach
// with features such as log levels, contextual logging, distributed tracing
// integration, and structured output. It integrates with the fx dependency
// injection framework for easy incorporation into applications.
//
// Core Features:
//   - Structured logging with key-value pairs
//   - Support for multiple log levels (Debug, Info, Warn, Error, Fatal)
//   - Context-aware logging for request tracing
//   - Distributed tracing integration with OpenTelemetry
//   - Automatic trace and span ID extraction from context
//   - JSON output with ISO8601 timestamps, pid, and service name
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create a logger directly:
//
//	import "github.com/Aleph-Alpha/clipsearch/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         "info",
//		ServiceName:   "clipsearch",
//		EnableTracing: true,
//	})
//
//	// Log with structured fields (without context)
//	log.Info("Clip batch indexed", nil, map[string]interface{}{
//		"video_id": "vid-123",
//		"clips":    42,
//	})
//
//	// Log with trace context (automatically includes trace_id and span_id)
//	log.InfoWithContext(ctx, "Search executed", nil, map[string]interface{}{
//		"mode": "hybrid",
//	})
//
// # FX Module Integration
//
// For production applications using Uber's fx, use the FXModule:
//
//	import (
//		"github.com/Aleph-Alpha/clipsearch/v1/logger"
//		"go.uber.org/fx"
//	)
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.DefaultConfig()
//		}),
//		// ... other modules
//	)
//	app.Run()
//
// The module registers a shutdown hook that flushes buffered log entries
// when the application stops.
//
// # Logging Levels
//
//	log.Debug("Debug message", nil, nil) // Only appears if level is Debug
//	log.Info("Info message", nil, nil)
//	log.Warn("Warning message", nil, nil)
//	log.Error("Error message", err, nil)
//
// # Context-Aware Logging
//
//	log.DebugWithContext(ctx, "Debug with trace", nil, nil)
//	log.WarnWithContext(ctx, "Warning with trace", nil, nil)
//	log.ErrorWithContext(ctx, "Error with trace", err, nil)
//
// # Configuration
//
// The logger can be configured via environment variables:
//
//	ZAP_LOGGER_LEVEL=debug               # Log level (debug, info, warning, error)
//	ZAP_LOGGER_SERVICE_NAME=clipsearch   # Service name stamped on every entry
//	ZAP_LOGGER_ENABLE_TRACING=true       # Enable distributed tracing integration
//
// # Tracing Integration
//
// When tracing is enabled (EnableTracing: true), the logger will automatically
// extract trace and span IDs from the context and include them in log entries.
// This provides correlation between logs and distributed traces in your
// observability system.
//
// The following fields are automatically added to log entries when tracing is
// enabled:
//   - trace_id: The OpenTelemetry trace ID
//   - span_id: The OpenTelemetry span ID
//
// To use tracing, ensure your application has OpenTelemetry configured and pass
// context with active spans to the *WithContext logging methods.
//
// # Thread Safety
//
// All methods on the Logger are safe for concurrent use by multiple goroutines.
package logger
