package logger

import (
	"io"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// captureStderr builds a logger while stderr points at a pipe and
// returns everything the logger wrote.
func captureStderr(t *testing.T, cfg Config, emit func(l *Logger)) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	old := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = old }()

	l := NewLoggerClient(cfg)
	emit(l)
	_ = l.Zap.Sync()
	_ = w.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read pipe: %v", err)
	}
	return string(data)
}

func TestOutputIsPlainJSON(t *testing.T) {
	out := captureStderr(t, Config{Level: Info, ServiceName: "clipsearch-test"}, func(l *Logger) {
		l.Info("hello", nil, map[string]interface{}{"k": "v"})
	})

	if !strings.Contains(out, `"level":"INFO"`) {
		t.Errorf("output missing plain level name: %s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output contains ANSI color escapes: %q", out)
	}
	if !strings.Contains(out, `"service":"clipsearch-test"`) {
		t.Errorf("output missing service field: %s", out)
	}
	if !strings.Contains(out, `"k":"v"`) {
		t.Errorf("output missing structured field: %s", out)
	}
}

func TestLevelGating(t *testing.T) {
	cases := []struct {
		cfgLevel    string
		infoEnabled bool
	}{
		{Debug, true},
		{Info, true},
		{Warning, false},
		{Error, false},
	}
	for _, tc := range cases {
		l := NewLoggerClient(Config{Level: tc.cfgLevel, ServiceName: "t"})
		if got := l.Zap.Core().Enabled(zap.InfoLevel); got != tc.infoEnabled {
			t.Errorf("level %q: info enabled = %v, want %v", tc.cfgLevel, got, tc.infoEnabled)
		}
	}
}
