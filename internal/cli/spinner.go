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

const (
	spinnerInterval = 80 * time.Millisecond
	progressWidth   = 20
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner draws an animated status line on stderr while a run is in
// progress. When progress is known it also draws a bar. It stops on its own
// when its context is cancelled.
type Spinner struct {
	out    io.Writer
	ctx    context.Context
	cancel context.CancelFunc

	stopOnce sync.Once
	done     chan struct{}
	stopped  chan struct{}

	mu       sync.Mutex
	message  string
	step     int
	steps    int
	drawn    int // widest line drawn so far
	finished bool
	halted   bool // Stop was called
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     os.Stderr,
		ctx:     sctx,
		cancel:  cancel,
		message: message,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins drawing in a background goroutine.
func (s *Spinner) Start() {
	go s.loop()
}

func (s *Spinner) loop() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			s.clearLine()
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.draw(spinnerFrames[frame%len(spinnerFrames)])
		}
	}
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.message
	if bar := s.bar(); bar != "" {
		line = bar + " " + line
	}
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(line))
	s.drawn = max(s.drawn, len(line))
}

// bar renders the progress bar. Callers hold s.mu.
func (s *Spinner) bar() string {
	if s.steps <= 0 {
		return ""
	}
	filled := min(progressWidth, s.step*progressWidth/s.steps)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", progressWidth-filled) + "]"
}

// Stop ends the animation and clears the line. It may be called more than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.halted = true
		s.mu.Unlock()
		s.cancel()
		close(s.done)
		<-s.stopped
		s.clearLine()
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return
	}
	s.finished = true
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.drawn+progressWidth+4))
}

// Update replaces the status message. Safe for concurrent use.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Progress sets the bar to step out of steps. A non-positive steps hides it.
func (s *Spinner) Progress(step, steps int) {
	s.mu.Lock()
	s.step, s.steps = max(step, 0), steps
	s.mu.Unlock()
}

// Message returns the current status message.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended before Stop.
func (s *Spinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.halted && s.ctx.Err() != nil
}
