package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a single status line while a typesetting command runs.
// The first frame is drawn immediately. The line is erased when the
// spinner stops, so the compile result can be printed in its place.
type spinner struct {
	w       io.Writer
	message string
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
}

// startSpinner draws message on w until stop is called or ctx is done.
func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		w:       w,
		message: message,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	width := 0
	for i := 0; ; i++ {
		line := styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]) + " " + StyleDim.Render(s.message)
		fmt.Fprint(s.w, "\r"+line)
		width = max(width, lipgloss.Width(line))

		select {
		case <-ctx.Done():
			fmt.Fprint(s.w, "\r"+strings.Repeat(" ", width)+"\r")
			return
		case <-ticker.C:
		}
	}
}

// stop ends the animation and waits until the line is erased. It may be
// called more than once, and on a nil spinner, which is what runCompile
// holds when status output is not a terminal.
func (s *spinner) stop() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
	<-s.stopped
}
