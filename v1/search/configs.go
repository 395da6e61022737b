package search

// Config holds the search surface's tunables.
type Config struct {
	// DefaultTopK is applied when a request leaves TopK unset.
	DefaultTopK int `yaml:"default_top_k" env:"SEARCH_DEFAULT_TOP_K"`

	// ThumbnailField is the payload field carrying the thumbnail URI.
	ThumbnailField string `yaml:"thumbnail_field" env:"SEARCH_THUMBNAIL_FIELD"`
}

// DefaultConfig provides the production defaults.
func DefaultConfig() Config {
	return Config{
		DefaultTopK:    10,
		ThumbnailField: "thumbnail_uri",
	}
}

// WithDefaultTopK sets the default result count.
func (c Config) WithDefaultTopK(k int) Config {
	c.DefaultTopK = k
	return c
}
