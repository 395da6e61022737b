package clip

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Scope identifies which modality or granularity an embedding represents.
type Scope string

const (
	// ScopeClip - a whole-clip embedding spanning all modalities.
	ScopeClip Scope = "clip"
	// ScopeVisualImage - embedding of the raw visual frames.
	ScopeVisualImage Scope = "visual-image"
	// ScopeVisualText - visual embedding projected into the text space,
	// comparable against text-query embeddings.
	ScopeVisualText Scope = "visual-text"
	// ScopeAudio - embedding of the audio track.
	ScopeAudio Scope = "audio"
)

// Clip is one indexed record: a time span within a video plus one
// modality embedding and its searchable text.
type Clip struct {
	// ClipID is the deterministic identity of the (video, time range) pair.
	// Leave empty on ingestion; the indexer derives it via DeriveClipID.
	ClipID string `json:"clip_id"`

	// VideoID identifies the parent video (opaque string).
	VideoID string `json:"video_id"`

	// VideoPath is the storage-URI location of the source video.
	VideoPath string `json:"video_path"`

	// Part is the ingestion batch/shard that produced this record.
	Part int `json:"part"`

	// SegmentIndex is the position within the source batch.
	// Diagnostics only, never part of identity.
	SegmentIndex int `json:"segment_index"`

	// TimestampStart and TimestampEnd bound the clip in seconds,
	// with TimestampEnd >= TimestampStart.
	TimestampStart float64 `json:"timestamp_start"`
	TimestampEnd   float64 `json:"timestamp_end"`

	// EmbeddingScope says which modality Embedding belongs to.
	EmbeddingScope Scope `json:"embedding_scope"`

	// Embedding is the fixed-length vector for similarity search.
	Embedding []float32 `json:"embedding"`

	// ClipText is free text used for keyword search (file name,
	// caption, or generated summary).
	ClipText string `json:"clip_text"`

	// ThumbnailURI optionally references a generated preview image.
	ThumbnailURI string `json:"thumbnail_uri,omitempty"`
}

const (
	idPrefix = "clip_"
	idHexLen = 16
)

// DeriveClipID computes the stable identifier of a (video, time range)
// pair. Timestamps are fixed to 2-decimal precision before hashing, so
// 1.234 and 1.2349 collapse onto the same identity.
//
// The same triple always yields the same ID regardless of modality,
// which makes repeated ingestion an idempotent upsert collision rather
// than a duplicate.
func DeriveClipID(videoID string, start, end float64) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s_%.2f_%.2f", videoID, start, end))
	return idPrefix + hex.EncodeToString(sum[:])[:idHexLen]
}

// Validate checks the record's structural invariants ahead of indexing.
// The embedding itself is checked separately by ValidateEmbedding since
// the expected dimension is collection configuration, not record state.
func (c *Clip) Validate() error {
	if c.VideoID == "" {
		return fmt.Errorf("clip: video_id cannot be empty")
	}
	if c.TimestampEnd < c.TimestampStart {
		return fmt.Errorf("clip: timestamp_end %.2f precedes timestamp_start %.2f",
			c.TimestampEnd, c.TimestampStart)
	}
	return nil
}
