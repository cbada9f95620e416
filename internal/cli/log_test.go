package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.start = prog.start.Add(-1500 * time.Microsecond)

	prog.done("Rendered tree.tex", "format", "tex", "cached", false)

	out := buf.String()
	for _, want := range []string{"INFO", "Rendered tree.tex", "format=tex", "cached=false", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("done() output = %q, want %q", out, want)
		}
	}
	if strings.Contains(out, "1.5ms") {
		t.Errorf("done() output = %q, want elapsed rounded to the millisecond", out)
	}
}

func TestProgressDoneBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.WarnLevel)).done("Rendered tree.tex")
	if buf.Len() != 0 {
		t.Errorf("done() at warn level wrote %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	custom := newLogger(&bytes.Buffer{}, log.InfoLevel)

	tests := []struct {
		name string
		ctx  context.Context
		want *log.Logger
	}{
		{"attached", withLogger(context.Background(), custom), custom},
		{"missing", context.Background(), log.Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loggerFromContext(tt.ctx); got != tt.want {
				t.Errorf("loggerFromContext() = %p, want %p", got, tt.want)
			}
		})
	}
}

// The render command finds the CLI logger through the context set up by the
// root command, so its progress line lands in the CLI's log.
func TestRenderLogsThroughCommandContext(t *testing.T) {
	in := writeTree(t, "tree.json", sampleTree)
	outPath := filepath.Join(t.TempDir(), "tree.tex")

	tests := []struct {
		name      string
		level     log.Level
		wantDebug bool
	}{
		{"info", LogInfo, false},
		{"debug", LogDebug, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			c := New(&logBuf, LogInfo)
			c.SetLogLevel(tt.level)

			if _, err := runCLIWithLog(t, c, "", "render", in, "-o", outPath); err != nil {
				t.Fatalf("render error: %v", err)
			}

			logs := logBuf.String()
			if !strings.Contains(logs, "Rendered tree.tex") || !strings.Contains(logs, "format=tex") {
				t.Errorf("log = %q, want the render progress line", logs)
			}
			if got := strings.Contains(logs, "rendered artifact"); got != tt.wantDebug {
				t.Errorf("log contains runner debug line = %v, want %v\n%s", got, tt.wantDebug, logs)
			}
		})
	}
}
