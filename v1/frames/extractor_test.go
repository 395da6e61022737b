package frames

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestArgs(t *testing.T) {
	e := NewExtractor(DefaultConfig())

	got := e.args("/tmp/vid.mp4", 12.5, "/tmp/frame.jpg")
	want := []string{
		"-ss", "12.50",
		"-i", "/tmp/vid.mp4",
		"-vframes", "1",
		"-vf", "scale=640:360",
		"-y",
		"/tmp/frame.jpg",
	}

	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestArgsRoundsTimestampToTwoDecimals(t *testing.T) {
	e := NewExtractor(DefaultConfig())
	got := e.args("v.mp4", 1.23456, "f.jpg")
	if got[1] != "1.23" {
		t.Errorf("timestamp arg = %q, want 1.23", got[1])
	}
}

func TestExtractValidation(t *testing.T) {
	e := NewExtractor(DefaultConfig())
	ctx := context.Background()

	if err := e.Extract(ctx, "", 0, "out.jpg"); err == nil {
		t.Error("expected error for empty video path")
	}
	if err := e.Extract(ctx, "v.mp4", 0, ""); err == nil {
		t.Error("expected error for empty output path")
	}
	if err := e.Extract(ctx, "v.mp4", -1, "out.jpg"); err == nil {
		t.Error("expected error for negative timestamp")
	}
}

func TestExtractMissingBinary(t *testing.T) {
	cfg := DefaultConfig().WithTimeout(5 * time.Second)
	cfg.FFmpegPath = "/nonexistent/ffmpeg"
	e := NewExtractor(cfg)

	err := e.Extract(context.Background(), "v.mp4", 0, "out.jpg")
	if err == nil {
		t.Fatal("expected error for missing ffmpeg binary")
	}
	if !strings.Contains(err.Error(), "ffmpeg") {
		t.Errorf("error %v should mention ffmpeg", err)
	}
}
