package indexer

import "github.com/Aleph-Alpha/clipsearch/v1/index"

// Config holds the write path's tunables: collection and field naming,
// the enforced embedding dimension, and bulk-copy behavior.
type Config struct {
	// Collection documents are written to.
	Collection string `yaml:"collection" env:"INDEXER_COLLECTION"`

	// VisualField and AudioField are the named vector fields documents
	// carry. Visual-scoped embeddings land in VisualField, audio-scoped
	// ones in AudioField.
	VisualField string `yaml:"visual_field" env:"INDEXER_VISUAL_FIELD"`
	AudioField  string `yaml:"audio_field" env:"INDEXER_AUDIO_FIELD"`

	// TextField is the payload field indexed for keyword search.
	TextField string `yaml:"text_field" env:"INDEXER_TEXT_FIELD"`

	// VideoIDField is the payload field deletes and scoped queries key on.
	VideoIDField string `yaml:"video_id_field" env:"INDEXER_VIDEO_ID_FIELD"`

	// Dim is the embedding dimension enforced at write time.
	Dim int `yaml:"dim" env:"INDEXER_DIM"`

	// Distance metric declared at collection creation.
	Distance index.Distance `yaml:"distance" env:"INDEXER_DISTANCE"`

	// BulkPageSize is the scroll page size during bulk copies.
	BulkPageSize int `yaml:"bulk_page_size" env:"INDEXER_BULK_PAGE_SIZE"`

	// MaxRetries bounds the exponential backoff when the store rate
	// limits a bulk-copy page.
	MaxRetries int `yaml:"max_retries" env:"INDEXER_MAX_RETRIES"`
}

// DefaultConfig provides the production defaults.
func DefaultConfig() Config {
	return Config{
		Collection:   "video_clips",
		VisualField:  "emb_visual",
		AudioField:   "emb_audio",
		TextField:    "clip_text",
		VideoIDField: "video_id",
		Dim:          1024,
		Distance:     index.DistanceCosine,
		BulkPageSize: 100,
		MaxRetries:   5,
	}
}

// Schema materializes the collection schema this configuration describes.
func (c Config) Schema() index.Schema {
	return index.Schema{
		Collection: c.Collection,
		VectorFields: []index.VectorField{
			{Name: c.VisualField, Dim: uint64(c.Dim), Distance: c.Distance},
			{Name: c.AudioField, Dim: uint64(c.Dim), Distance: c.Distance},
		},
		TextField: c.TextField,
	}
}

// Builder-style helpers (optional, ergonomic)
func (c Config) WithCollection(name string) Config {
	c.Collection = name
	return c
}

func (c Config) WithDim(dim int) Config {
	c.Dim = dim
	return c
}

func (c Config) WithBulkPageSize(n int) Config {
	c.BulkPageSize = n
	return c
}
