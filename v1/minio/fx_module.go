package minio

import (
	"github.com/Aleph-Alpha/clipsearch/v1/logger"
	"go.uber.org/fx"
)

// FXModule provides the object store for fx-based applications.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    minio.FXModule,
//	    fx.Provide(func() *minio.Config {
//	        return minio.DefaultConfig()
//	    }),
//	)
var FXModule = fx.Module("minio",
	fx.Provide(func(l *logger.Logger) Logger { return l }),
	fx.Provide(NewStore),
	fx.Provide(func(s *Store) ObjectStore { return s }),
)
