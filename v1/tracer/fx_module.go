package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/clipsearch/v1/logger"
)

// FXModule provides the tracer for fx-based applications and flushes
// pending spans on shutdown.
var FXModule = fx.Module("tracer",
	fx.Provide(func(l *logger.Logger) Logger { return l }),
	fx.Provide(NewClient),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle shuts the provider down on application stop so
// batched spans reach the collector.
func RegisterTracerLifecycle(lc fx.Lifecycle, t *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if t == nil || t.tracer == nil {
				return nil
			}
			return t.tracer.Shutdown(ctx)
		},
	})
}
