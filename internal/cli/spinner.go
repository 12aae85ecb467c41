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

const spinnerTick = 80 * time.Millisecond

// Spinner animates a one-line status on stderr while a tree is loaded,
// rendered, or stored. It ends on Stop or when the command context ends.
type Spinner struct {
	label  string
	out    io.Writer
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	started  bool
	finished chan struct{}
	stopOnce sync.Once
}

func newSpinner(label string) *Spinner {
	return newSpinnerWithContext(context.Background(), label)
}

// newSpinnerWithContext ties the spinner to a command context so that
// Ctrl-C clears the line even if the command never reaches Stop.
func newSpinnerWithContext(ctx context.Context, label string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		label:    label,
		out:      os.Stderr,
		parent:   ctx,
		ctx:      sctx,
		cancel:   cancel,
		finished: make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go s.run()
}

func (s *Spinner) run() {
	defer close(s.finished)
	t := time.NewTicker(spinnerTick)
	defer t.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clearLine()
			return
		case <-t.C:
			s.mu.Lock()
			fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.label))
			s.mu.Unlock()
		}
	}
}

// Stop ends the animation and blanks the status line. Extra calls are no-ops.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if started {
			<-s.finished
		}
		s.clearLine()
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.label)+4))
}

func (s *Spinner) StopWithSuccess(msg string) {
	s.Stop()
	printSuccess("%s", msg)
}

func (s *Spinner) StopWithError(msg string) {
	s.Stop()
	printError("%s", msg)
}

// Cancelled reports whether the command context ended, as opposed to the
// spinner being stopped normally.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
