package thumbnail

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/clipsearch/v1/frames"
	"github.com/Aleph-Alpha/clipsearch/v1/logger"
	"github.com/Aleph-Alpha/clipsearch/v1/minio"
)

// FXModule provides the thumbnail processor for fx-based applications.
var FXModule = fx.Module("thumbnail",
	fx.Provide(func(l *logger.Logger) Logger { return l }),
	fx.Provide(func(s *minio.Store) Objects { return s }),
	fx.Provide(frames.NewExtractor),
	fx.Provide(func(e *frames.Extractor) Extractor { return e }),
	fx.Provide(NewProcessor),
)
