package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/clipsearch/v1/logger"
)

// Logger is the logging contract this package depends on, satisfied by
// *logger.Logger.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// FXModule provides the metrics server for fx-based applications and
// manages its startup and shutdown.
//
// The application supplies a metrics.Config; the module provides the
// *Metrics instance, binds it to the Collector interface, and runs the
// /metrics HTTP server for the lifetime of the application.
var FXModule = fx.Module("metrics",
	fx.Provide(func(l *logger.Logger) Logger { return l }),
	fx.Provide(NewMetrics),
	fx.Provide(func(m *Metrics) Collector { return m }),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the Prometheus HTTP server on
// application start and shuts it down gracefully on stop.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.InfoWithContext(ctx, "starting metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.ErrorWithContext(ctx, "metrics server failed", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.InfoWithContext(ctx, "shutting down metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
