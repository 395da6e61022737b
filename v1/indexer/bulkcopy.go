package indexer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Aleph-Alpha/clipsearch/v1/clip"
	"github.com/Aleph-Alpha/clipsearch/v1/index"
)

// BulkCopyOptions describes one collection-to-collection copy, used for
// dimension migrations and index rebuilds.
type BulkCopyOptions struct {
	// Source collection to scroll.
	Source string

	// TargetSchema is the destination collection's schema. It is
	// created if missing, and its field dimensions are re-enforced on
	// every copied document.
	TargetSchema index.Schema

	// PageSize overrides the configured scroll page size when > 0.
	PageSize int
}

// BulkSummary reports a bulk copy's outcome.
type BulkSummary struct {
	TookSec        float64 `json:"took_sec"`
	TotalAttempted int     `json:"total_attempted"`
	Created        int     `json:"created"`
	Errors         int     `json:"errors"`
	Skipped        int     `json:"skipped"`
}

// BulkCopy scrolls every document of the source collection into the
// target collection, re-validating vectors against the target schema.
//
// A document must carry at least one valid modality vector to be
// copied; vectors failing validation are dropped individually and a
// document losing all of them is skipped. Rate-limited writes back off
// exponentially with jitter and retry up to the configured maximum
// before the page counts as errored.
func (s *Service) BulkCopy(ctx context.Context, opts BulkCopyOptions) (BulkSummary, error) {
	start := time.Now()
	summary := BulkSummary{}

	if opts.Source == "" || opts.TargetSchema.Collection == "" {
		return summary, fmt.Errorf("indexer: bulk copy requires source and target collections")
	}
	if opts.Source == opts.TargetSchema.Collection {
		return summary, fmt.Errorf("indexer: bulk copy source and target must differ")
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = s.cfg.BulkPageSize
	}

	if err := s.store.EnsureSchema(ctx, opts.TargetSchema); err != nil {
		return summary, fmt.Errorf("indexer: target schema bootstrap failed: %w", err)
	}

	var cursor *string
	for {
		docs, next, err := s.store.Scroll(ctx, opts.Source, cursor, pageSize)
		if err != nil {
			summary.TookSec = time.Since(start).Seconds()
			return summary, fmt.Errorf("indexer: scroll failed: %w", err)
		}

		page := make([]index.Document, 0, len(docs))
		for _, doc := range docs {
			summary.TotalAttempted++
			copied, ok := s.revalidate(ctx, doc, opts.TargetSchema)
			if !ok {
				summary.Skipped++
				continue
			}
			page = append(page, copied)
		}

		if len(page) > 0 {
			if err := s.upsertWithBackoff(ctx, opts.TargetSchema.Collection, page); err != nil {
				summary.Errors += len(page)
				s.log.ErrorWithContext(ctx, "bulk copy page failed", err, map[string]interface{}{
					"source": opts.Source,
					"target": opts.TargetSchema.Collection,
					"page":   len(page),
				})
			} else {
				summary.Created += len(page)
			}
		}

		if next == nil {
			break
		}
		cursor = next
	}

	summary.TookSec = time.Since(start).Seconds()
	s.log.InfoWithContext(ctx, "bulk copy finished", nil, map[string]interface{}{
		"source":    opts.Source,
		"target":    opts.TargetSchema.Collection,
		"attempted": summary.TotalAttempted,
		"created":   summary.Created,
		"errors":    summary.Errors,
		"skipped":   summary.Skipped,
		"took_sec":  summary.TookSec,
	})
	return summary, nil
}

// revalidate filters a document's vectors against the target schema.
// Returns false when no valid modality vector remains.
func (s *Service) revalidate(ctx context.Context, doc index.Document, schema index.Schema) (index.Document, bool) {
	vectors := make(map[string][]float32, len(doc.Vectors))
	for name, vec := range doc.Vectors {
		field, ok := schema.Field(name)
		if !ok {
			continue
		}
		if err := clip.ValidateEmbedding(vec, int(field.Dim)); err != nil {
			s.log.WarnWithContext(ctx, "dropping vector during bulk copy", err, map[string]interface{}{
				"doc_id": doc.ID,
				"field":  name,
			})
			continue
		}
		vectors[name] = vec
	}
	if len(vectors) == 0 {
		return index.Document{}, false
	}
	return index.Document{ID: doc.ID, Vectors: vectors, Payload: doc.Payload}, true
}

// upsertWithBackoff retries rate-limited writes with exponential
// backoff (2^attempt seconds plus jitter) up to the configured maximum.
func (s *Service) upsertWithBackoff(ctx context.Context, collection string, docs []index.Document) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = s.store.Upsert(ctx, collection, docs)
		if err == nil {
			return nil
		}
		if !errors.Is(err, index.ErrRateLimited) || attempt >= s.cfg.MaxRetries {
			return err
		}

		delay := time.Duration(1<<uint(attempt))*s.backoffBase +
			time.Duration(rand.Int63n(int64(s.backoffBase)))
		s.log.WarnWithContext(ctx, "store rate limited, backing off", err, map[string]interface{}{
			"attempt": attempt + 1,
			"delay":   delay.String(),
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}
