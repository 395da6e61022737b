package search

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/clipsearch/v1/embedding"
	"github.com/Aleph-Alpha/clipsearch/v1/fusion"
	"github.com/Aleph-Alpha/clipsearch/v1/logger"
	"github.com/Aleph-Alpha/clipsearch/v1/minio"
	"github.com/Aleph-Alpha/clipsearch/v1/planner"
)

// FXModule provides the search service for fx-based applications. The
// application supplies search.Config, planner.Config, fusion.Config,
// and the store's index.Capabilities descriptor.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    qdrant.FXModule,
//	    minio.FXModule,
//	    embedding.FXModule,
//	    search.FXModule,
//	    fx.Provide(
//	        func() search.Config { return search.DefaultConfig() },
//	        func() planner.Config { return planner.DefaultConfig() },
//	        func() fusion.Config { return fusion.DefaultConfig() },
//	        func(s *qdrant.Store, cfg indexer.Config) index.Capabilities {
//	            return s.Capabilities(cfg.Schema())
//	        },
//	    ),
//	)
var FXModule = fx.Module("search",
	fx.Provide(func(l *logger.Logger) Logger { return l }),
	fx.Provide(func(c *embedding.Client) Embedder { return c }),
	fx.Provide(func(s *minio.Store) ObjectPresigner { return s }),
	fx.Provide(planner.New),
	fx.Provide(fusion.NewEngine),
	fx.Provide(NewPresenter),
	fx.Provide(NewService),
)
