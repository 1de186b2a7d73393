package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner redraws a one-line activity indicator on w while a slow step
// (a sheet download, a Graphviz render) runs.
type spinner struct {
	w      io.Writer
	label  string
	quit   chan struct{}
	exited chan struct{}
	once   sync.Once
}

// startSpinner starts drawing label on w. The animation also ends when ctx
// does; stop must still be called to blank the line.
func startSpinner(ctx context.Context, w io.Writer, label string) *spinner {
	s := &spinner{
		w:      w,
		label:  label,
		quit:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.exited)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			return
		case <-s.quit:
			return
		case <-ticker.C:
			fmt.Fprintf(s.w, "\r%s %s",
				styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]),
				StyleDim.Render(s.label))
		}
	}
}

// stop ends the animation and blanks the line. Repeated calls are no-ops.
func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.quit)
		<-s.exited
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.label)+4))
	})
}

// spin runs fn behind a spinner on stderr and prints failMsg if fn fails.
func spin(ctx context.Context, label, failMsg string, fn func() error) error {
	s := startSpinner(ctx, os.Stderr, label)
	err := fn()
	s.stop()
	if err != nil {
		printError("%s", failMsg)
	}
	return err
}
