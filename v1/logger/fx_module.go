package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides the logger for fx-based applications. The
// application supplies a logger.Config; buffered entries are flushed on
// shutdown.
var FXModule = fx.Module("logger",
	fx.Provide(NewLoggerClient),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle syncs the underlying zap logger on stop so no
// buffered entries are lost at exit.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Zap.Sync()
		},
	})
}
