package ingest

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Aleph-Alpha/clipsearch/v1/clip"
)

// handle processes one delivery end to end and acknowledges it by
// outcome: malformed payloads nack without requeue, store write
// failures nack with requeue, everything else acks on the summary.
func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var clips []clip.Clip
	if err := json.Unmarshal(d.Body, &clips); err != nil {
		c.log.ErrorWithContext(ctx, "dropping malformed clip batch", err, map[string]interface{}{
			"bytes": len(d.Body),
		})
		// Requeueing a payload that can never parse would loop forever.
		_ = d.Nack(false, false)
		c.countBatch("drop")
		return
	}

	if c.cfg.GenerateThumbnails && c.thumbs != nil {
		decorated, thumbSummary, err := c.thumbs.Process(ctx, clips)
		if err != nil {
			c.log.WarnWithContext(ctx, "thumbnail pass failed, indexing without thumbnails", err, nil)
		} else {
			clips = decorated
			if c.stats != nil {
				c.stats.CountThumbnails("generated", thumbSummary.Generated)
				c.stats.CountThumbnails("failed", thumbSummary.Failed)
			}
			if thumbSummary.Failed > 0 {
				c.log.WarnWithContext(ctx, "some thumbnails failed", nil, map[string]interface{}{
					"generated": thumbSummary.Generated,
					"failed":    thumbSummary.Failed,
				})
			}
		}
	}

	summary, err := c.writer.Upsert(ctx, clips)
	if err != nil {
		c.log.ErrorWithContext(ctx, "clip batch write failed, requeueing", err, map[string]interface{}{
			"attempted": summary.Attempted,
		})
		_ = d.Nack(false, true)
		c.countBatch("requeue")
		return
	}

	c.log.InfoWithContext(ctx, "clip batch ingested", nil, map[string]interface{}{
		"attempted": summary.Attempted,
		"succeeded": summary.Succeeded,
		"skipped":   summary.Skipped,
	})
	_ = d.Ack(false)
	c.countBatch("ack")
	if c.stats != nil {
		c.stats.CountClipsIngested("indexed", summary.Succeeded)
		c.stats.CountClipsIngested("skipped", summary.Skipped)
		c.stats.CountClipsIngested("failed", summary.Failed)
	}
}

func (c *Consumer) countBatch(ack string) {
	if c.stats != nil {
		c.stats.CountIngestBatch(ack)
	}
}
