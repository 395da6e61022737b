package frames

import "time"

// Config holds the frame extractor's tunables.
type Config struct {
	// FFmpegPath is the ffmpeg binary, resolved via PATH by default.
	FFmpegPath string `yaml:"ffmpeg_path" env:"FRAMES_FFMPEG_PATH"`

	// Width and Height of the extracted frame.
	Width  int `yaml:"width" env:"FRAMES_WIDTH"`
	Height int `yaml:"height" env:"FRAMES_HEIGHT"`

	// Timeout bounds one extraction; a stuck decode is killed.
	Timeout time.Duration `yaml:"timeout" env:"FRAMES_TIMEOUT"`
}

// DefaultConfig provides the production defaults.
func DefaultConfig() Config {
	return Config{
		FFmpegPath: "ffmpeg",
		Width:      640,
		Height:     360,
		Timeout:    30 * time.Second,
	}
}

// WithTimeout sets the extraction deadline.
func (c Config) WithTimeout(d time.Duration) Config {
	c.Timeout = d
	return c
}
