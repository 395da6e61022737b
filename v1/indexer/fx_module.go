package indexer

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/clipsearch/v1/logger"
)

// FXModule provides the indexer service for fx-based applications.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    qdrant.FXModule,
//	    indexer.FXModule,
//	    fx.Provide(func() indexer.Config {
//	        return indexer.DefaultConfig()
//	    }),
//	)
var FXModule = fx.Module("indexer",
	fx.Provide(func(l *logger.Logger) Logger { return l }),
	fx.Provide(NewService),
)
