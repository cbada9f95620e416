package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	const msg = "Running pdflatex..."
	var buf bytes.Buffer

	s := startSpinner(context.Background(), &buf, msg)
	time.Sleep(3 * spinnerInterval)
	s.stop()

	out := buf.String()
	if !strings.HasPrefix(out, "\r") || !strings.Contains(out, spinnerFrames[0]) {
		t.Errorf("spinner output = %q, want first frame drawn immediately", out)
	}
	if n := strings.Count(out, msg); n < 2 {
		t.Errorf("spinner drew %d frames, want at least 2", n)
	}
	// Frame, space and message: the erase covers the widest line drawn.
	erase := "\r" + strings.Repeat(" ", len(msg)+2) + "\r"
	if !strings.HasSuffix(out, erase) {
		t.Errorf("spinner output = %q, want suffix %q", out, erase)
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	var buf bytes.Buffer
	s := startSpinner(context.Background(), &buf, "Running latexmk...")
	s.stop()
	n := buf.Len()
	s.stop()
	if buf.Len() != n {
		t.Errorf("second stop() wrote %q", buf.String()[n:])
	}

	var none *spinner
	none.stop()
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := startSpinner(ctx, &buf, "Running pdflatex...")
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after context cancel")
	}
	s.stop()
	if !strings.HasSuffix(buf.String(), "\r") {
		t.Errorf("spinner output = %q, want line erased", buf.String())
	}
}

// With a terminal on uiOut, --compile animates while the command runs and
// leaves only the result line behind.
func TestRenderCompileSpinner(t *testing.T) {
	var ui bytes.Buffer
	oldOut, oldInteractive := uiOut, interactive
	uiOut, interactive = &ui, func() bool { return true }
	t.Cleanup(func() { uiOut, interactive = oldOut, oldInteractive })

	in := writeTree(t, "tree.json", sampleTree)
	outPath := filepath.Join(t.TempDir(), "tree.tex")
	if _, err := runCLI(t, "", "render", in, "-o", outPath, "--compile=sh -c 'sleep 0.2'"); err != nil {
		t.Fatalf("render --compile error: %v", err)
	}

	out := ui.String()
	for _, want := range []string{"Running sh...", "Compiled with sh", "tree.pdf"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
	if i, j := strings.LastIndex(out, "Running sh..."), strings.Index(out, "Compiled with sh"); i > j {
		t.Errorf("spinner drew after the compile result:\n%s", out)
	}
}
