package qdrant

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/clipsearch/v1/index"
)

// FXModule wires the Qdrant store into an Fx application.
//
// It provides the concrete *Store, exposes it under the index.Service
// contract, and closes it on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    fx.Provide(func() *qdrant.Config { return qdrant.DefaultConfig() }),
//	    qdrant.FXModule,
//	)
var FXModule = fx.Module("qdrant",
	fx.Provide(NewStore),
	fx.Provide(func(s *Store) index.Service { return s }),
	fx.Invoke(RegisterStoreLifecycle),
)

// RegisterStoreLifecycle hooks the store into the Fx lifecycle.
func RegisterStoreLifecycle(lc fx.Lifecycle, s *Store) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return s.Close()
		},
	})
}
