package thumbnail

// Config holds the thumbnail processor's tunables.
type Config struct {
	// Bucket thumbnails are uploaded to.
	Bucket string `yaml:"bucket" env:"THUMBNAIL_BUCKET"`

	// KeyPrefix namespaces thumbnail objects inside the bucket.
	KeyPrefix string `yaml:"key_prefix" env:"THUMBNAIL_KEY_PREFIX"`

	// WorkDir holds downloaded videos and extracted frames during a
	// run; empty means the system temp directory.
	WorkDir string `yaml:"work_dir" env:"THUMBNAIL_WORK_DIR"`
}

// DefaultConfig provides the production defaults.
func DefaultConfig() Config {
	return Config{
		Bucket:    "thumbnails",
		KeyPrefix: "thumbnails/",
	}
}

// WithBucket sets the upload bucket.
func (c Config) WithBucket(bucket string) Config {
	c.Bucket = bucket
	return c
}
