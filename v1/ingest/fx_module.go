package ingest

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/clipsearch/v1/indexer"
	"github.com/Aleph-Alpha/clipsearch/v1/logger"
)

// FXModule provides the ingest consumer for fx-based applications and
// ties its consume loop to the application lifecycle.
var FXModule = fx.Module("ingest",
	fx.Provide(func(l *logger.Logger) Logger { return l }),
	fx.Provide(func(s *indexer.Service) Upserter { return s }),
	fx.Provide(NewConsumer),
	fx.Invoke(RegisterConsumerLifecycle),
)

// RegisterConsumerLifecycle starts consuming on application start and
// drains the connection on stop.
func RegisterConsumerLifecycle(lc fx.Lifecycle, c *Consumer) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return c.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			c.GracefulShutdown()
			return nil
		},
	})
}
