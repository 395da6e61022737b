package frames

import (
	"context"
	"fmt"
	"os/exec"
)

// Extractor shells out to ffmpeg to grab one frame per call. Stateless;
// safe for concurrent use.
type Extractor struct {
	cfg Config
}

// NewExtractor constructs a frame extractor.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract writes the frame at timestamp seconds of the video to
// outPath as a scaled JPEG.
func (e *Extractor) Extract(ctx context.Context, videoPath string, timestamp float64, outPath string) error {
	if videoPath == "" || outPath == "" {
		return fmt.Errorf("frames: video and output paths are required")
	}
	if timestamp < 0 {
		return fmt.Errorf("frames: timestamp %.2f is negative", timestamp)
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.cfg.FFmpegPath, e.args(videoPath, timestamp, outPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("frames: extraction timed out after %s: %w", e.cfg.Timeout, ctx.Err())
		}
		return fmt.Errorf("frames: ffmpeg failed: %w: %s", err, tail(out))
	}
	return nil
}

// args builds the ffmpeg argv. Seeking (-ss) before the input makes
// ffmpeg seek by keyframe instead of decoding up to the timestamp.
func (e *Extractor) args(videoPath string, timestamp float64, outPath string) []string {
	return []string{
		"-ss", fmt.Sprintf("%.2f", timestamp),
		"-i", videoPath,
		"-vframes", "1",
		"-vf", fmt.Sprintf("scale=%d:%d", e.cfg.Width, e.cfg.Height),
		"-y",
		outPath,
	}
}

// tail keeps the last part of ffmpeg's output for error messages; the
// failure reason is at the end.
func tail(out []byte) string {
	const max = 512
	if len(out) > max {
		out = out[len(out)-max:]
	}
	return string(out)
}
