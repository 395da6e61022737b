package thumbnail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/clipsearch/v1/clip"
	"github.com/Aleph-Alpha/clipsearch/v1/minio"
)

//go:generate mockgen -source=processor.go -destination=mock_processor.go -package=thumbnail

// Objects is the object-store contract this package depends on,
// satisfied by *minio.Store.
type Objects interface {
	GetToFile(ctx context.Context, bucket, key, path string) error
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

// Extractor grabs one frame of a local video file, satisfied by
// *frames.Extractor.
type Extractor interface {
	Extract(ctx context.Context, videoPath string, timestamp float64, outPath string) error
}

// Logger is the logging contract this package depends on, satisfied by
// *logger.Logger.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Summary reports one run's per-clip outcomes.
type Summary struct {
	Attempted int `json:"attempted"`
	Generated int `json:"generated"`
	Failed    int `json:"failed"`
}

// Processor generates thumbnails for clip batches.
type Processor struct {
	cfg     Config
	objects Objects
	extract Extractor
	log     Logger
}

// ProcessorParams carries the processor's dependencies for Fx injection.
type ProcessorParams struct {
	fx.In

	Config    Config
	Objects   Objects
	Extractor Extractor
	Logger    Logger
}

// NewProcessor constructs the thumbnail processor.
func NewProcessor(p ProcessorParams) *Processor {
	return &Processor{
		cfg:     p.Config,
		objects: p.Objects,
		extract: p.Extractor,
		log:     p.Logger,
	}
}

// Process generates a thumbnail per clip and returns the batch with
// ThumbnailURI stamped on every clip that got one. Clips sharing a
// video path share one download. Failed clips pass through unchanged.
func (p *Processor) Process(ctx context.Context, clips []clip.Clip) ([]clip.Clip, Summary, error) {
	summary := Summary{Attempted: len(clips)}
	if len(clips) == 0 {
		return clips, summary, nil
	}

	workDir, err := os.MkdirTemp(p.cfg.WorkDir, "thumbnails-")
	if err != nil {
		return clips, summary, fmt.Errorf("thumbnail: work dir setup failed: %w", err)
	}
	defer os.RemoveAll(workDir)

	// One download per video path, shared across its clips. An empty
	// path marks a failed download so later clips fail fast.
	videos := make(map[string]string)

	out := make([]clip.Clip, len(clips))
	for i, c := range clips {
		out[i] = c

		localVideo, err := p.localVideo(ctx, workDir, videos, c.VideoPath)
		if err != nil {
			summary.Failed++
			p.log.WarnWithContext(ctx, "thumbnail skipped, video unavailable", err, map[string]interface{}{
				"clip_id":    c.ClipID,
				"video_path": c.VideoPath,
			})
			continue
		}

		uri, err := p.generate(ctx, workDir, localVideo, c)
		if err != nil {
			summary.Failed++
			p.log.WarnWithContext(ctx, "thumbnail generation failed", err, map[string]interface{}{
				"clip_id":  c.ClipID,
				"video_id": c.VideoID,
			})
			continue
		}

		out[i].ThumbnailURI = uri
		summary.Generated++
	}

	p.log.InfoWithContext(ctx, "thumbnail batch processed", nil, map[string]interface{}{
		"attempted": summary.Attempted,
		"generated": summary.Generated,
		"failed":    summary.Failed,
	})
	return out, summary, nil
}

// localVideo returns the local path of a downloaded video, downloading
// it on first use.
func (p *Processor) localVideo(ctx context.Context, workDir string, videos map[string]string, videoPath string) (string, error) {
	if local, ok := videos[videoPath]; ok {
		if local == "" {
			return "", fmt.Errorf("thumbnail: earlier download of %q failed", videoPath)
		}
		return local, nil
	}

	bucket, key, err := minio.ParseURI(videoPath)
	if err != nil {
		videos[videoPath] = ""
		return "", err
	}

	local := filepath.Join(workDir, uuid.NewString()+filepath.Ext(key))
	if err := p.objects.GetToFile(ctx, bucket, key, local); err != nil {
		videos[videoPath] = ""
		return "", err
	}
	videos[videoPath] = local
	return local, nil
}

// generate extracts the midpoint frame and uploads it.
func (p *Processor) generate(ctx context.Context, workDir, localVideo string, c clip.Clip) (string, error) {
	midpoint := (c.TimestampStart + c.TimestampEnd) / 2

	framePath := filepath.Join(workDir, uuid.NewString()+".jpg")
	if err := p.extract.Extract(ctx, localVideo, midpoint, framePath); err != nil {
		return "", err
	}
	defer os.Remove(framePath)

	data, err := os.ReadFile(framePath)
	if err != nil {
		return "", fmt.Errorf("thumbnail: frame read failed: %w", err)
	}

	key := p.cfg.KeyPrefix + uuid.NewString() + ".jpg"
	if err := p.objects.Put(ctx, p.cfg.Bucket, key, data, "image/jpeg"); err != nil {
		return "", err
	}
	return minio.BuildURI(p.cfg.Bucket, key), nil
}
