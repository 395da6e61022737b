package indexer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/clipsearch/v1/clip"
	"github.com/Aleph-Alpha/clipsearch/v1/index"
)

//go:generate mockgen -source=indexer.go -destination=mock_logger.go -package=indexer

// Logger is the logging contract the indexer depends on, satisfied by
// *logger.Logger.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Summary reports a batch write's per-record outcomes. Attempted is
// always Succeeded + Failed + Skipped.
type Summary struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// Service owns the clip write path.
type Service struct {
	cfg   Config
	store index.Service
	log   Logger

	// backoffBase scales the bulk-copy retry delay; shortened in tests.
	backoffBase time.Duration

	mu          sync.Mutex
	schemaReady bool
}

// ServiceParams carries the indexer's dependencies for Fx injection.
type ServiceParams struct {
	fx.In

	Config Config
	Store  index.Service
	Logger Logger
}

// NewService constructs the indexer.
func NewService(p ServiceParams) *Service {
	return &Service{
		cfg:         p.Config,
		store:       p.Store,
		log:         p.Logger,
		backoffBase: time.Second,
	}
}

// ensureSchema bootstraps the collection once per process. Success
// latches; failures retry on the next write so a store outage during
// startup does not wedge the service.
func (s *Service) ensureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schemaReady {
		return nil
	}
	if err := s.store.EnsureSchema(ctx, s.cfg.Schema()); err != nil {
		return fmt.Errorf("indexer: schema bootstrap failed: %w", err)
	}
	s.schemaReady = true
	return nil
}

// Upsert validates and writes a batch of clip records.
//
// Records for the same clip id are merged into one multi-vector
// document: visual-scoped embeddings land in the visual field,
// audio-scoped ones in the audio field. An invalid record is skipped
// and counted without aborting the batch; a store write failure counts
// every record of the failed write as failed.
func (s *Service) Upsert(ctx context.Context, clips []clip.Clip) (Summary, error) {
	summary := Summary{Attempted: len(clips)}
	if len(clips) == 0 {
		return summary, nil
	}

	if err := s.ensureSchema(ctx); err != nil {
		summary.Failed = len(clips)
		return summary, err
	}

	docs := make(map[string]*index.Document)
	order := make([]string, 0, len(clips))
	written := make(map[string]int)

	for i := range clips {
		c := clips[i]
		if c.ClipID == "" {
			c.ClipID = clip.DeriveClipID(c.VideoID, c.TimestampStart, c.TimestampEnd)
		}

		if err := c.Validate(); err != nil {
			summary.Skipped++
			s.log.WarnWithContext(ctx, "skipping invalid clip record", err, map[string]interface{}{
				"clip_id":       c.ClipID,
				"video_id":      c.VideoID,
				"segment_index": c.SegmentIndex,
			})
			continue
		}
		if err := clip.ValidateEmbedding(c.Embedding, s.cfg.Dim); err != nil {
			summary.Skipped++
			s.log.WarnWithContext(ctx, "skipping clip with invalid embedding", err, map[string]interface{}{
				"clip_id":         c.ClipID,
				"video_id":        c.VideoID,
				"embedding_scope": string(c.EmbeddingScope),
			})
			continue
		}

		doc, ok := docs[c.ClipID]
		if !ok {
			doc = &index.Document{
				ID:      c.ClipID,
				Vectors: make(map[string][]float32, 2),
				Payload: s.payload(c),
			}
			docs[c.ClipID] = doc
			order = append(order, c.ClipID)
		}
		doc.Vectors[s.vectorField(c.EmbeddingScope)] = c.Embedding
		written[c.ClipID]++
	}

	if len(order) == 0 {
		return summary, nil
	}

	batch := make([]index.Document, 0, len(order))
	for _, id := range order {
		batch = append(batch, *docs[id])
	}

	if err := s.store.Upsert(ctx, s.cfg.Collection, batch); err != nil {
		for _, id := range order {
			summary.Failed += written[id]
		}
		s.log.ErrorWithContext(ctx, "clip batch write failed", err, map[string]interface{}{
			"collection": s.cfg.Collection,
			"documents":  len(batch),
		})
		return summary, fmt.Errorf("indexer: upsert failed: %w", err)
	}

	for _, id := range order {
		summary.Succeeded += written[id]
	}

	s.log.InfoWithContext(ctx, "clip batch indexed", nil, map[string]interface{}{
		"collection": s.cfg.Collection,
		"attempted":  summary.Attempted,
		"succeeded":  summary.Succeeded,
		"skipped":    summary.Skipped,
	})
	return summary, nil
}

// DeleteByVideo removes every clip belonging to one video and returns
// the removed count.
func (s *Service) DeleteByVideo(ctx context.Context, videoID string) (uint64, error) {
	if videoID == "" {
		return 0, fmt.Errorf("indexer: video id cannot be empty")
	}

	removed, err := s.store.DeleteByFilter(ctx, s.cfg.Collection, index.ByVideo(s.cfg.VideoIDField, videoID))
	if err != nil {
		return 0, fmt.Errorf("indexer: delete by video %q failed: %w", videoID, err)
	}

	s.log.InfoWithContext(ctx, "video clips deleted", nil, map[string]interface{}{
		"video_id": videoID,
		"removed":  removed,
	})
	return removed, nil
}

// vectorField maps an embedding scope onto the document's named vector
// field. Audio embeddings get their own field; every visual variant
// (whole-clip, image, text-projected) shares the visual field.
func (s *Service) vectorField(scope clip.Scope) string {
	if scope == clip.ScopeAudio {
		return s.cfg.AudioField
	}
	return s.cfg.VisualField
}

func (s *Service) payload(c clip.Clip) map[string]any {
	payload := map[string]any{
		"clip_id":          c.ClipID,
		s.cfg.VideoIDField: c.VideoID,
		"video_path":       c.VideoPath,
		"part":             int64(c.Part),
		"segment_index":    int64(c.SegmentIndex),
		"timestamp_start":  c.TimestampStart,
		"timestamp_end":    c.TimestampEnd,
		s.cfg.TextField:    c.ClipText,
		"indexed_at":       time.Now().UTC().Format(time.RFC3339),
	}
	if c.ThumbnailURI != "" {
		payload["thumbnail_uri"] = c.ThumbnailURI
	}
	return payload
}
