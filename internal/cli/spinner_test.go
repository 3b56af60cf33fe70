package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func captured(message string) (*Spinner, *syncBuffer) {
	out := &syncBuffer{}
	s := newSpinner(message)
	s.out = out
	return s, out
}

func TestSpinnerDraws(t *testing.T) {
	s, out := captured("Optimizing layout...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	if !strings.Contains(out.String(), "Optimizing layout...") {
		t.Errorf("output %q does not contain the message", out.String())
	}
	if s.Cancelled() {
		t.Error("Stop must not count as cancellation")
	}
}

func TestSpinnerProgressBar(t *testing.T) {
	s, out := captured("Optimizing layout")
	s.Progress(5, 10)
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	want := "[" + strings.Repeat("█", 10) + strings.Repeat("░", 10) + "]"
	if !strings.Contains(out.String(), want) {
		t.Errorf("output %q does not contain bar %q", out.String(), want)
	}
}

func TestSpinnerBar(t *testing.T) {
	tests := []struct {
		step, steps int
		filled      int
		hidden      bool
	}{
		{0, 0, 0, true},
		{0, 100, 0, false},
		{50, 100, 10, false},
		{100, 100, 20, false},
		{150, 100, 20, false},
		{-3, 100, 0, false},
	}
	for _, tt := range tests {
		s := newSpinner("")
		s.Progress(tt.step, tt.steps)
		bar := s.bar()
		if tt.hidden {
			if bar != "" {
				t.Errorf("Progress(%d, %d): bar = %q, want hidden", tt.step, tt.steps, bar)
			}
			continue
		}
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("Progress(%d, %d): filled = %d, want %d", tt.step, tt.steps, got, tt.filled)
		}
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Classifying zones...")
	s.out = &syncBuffer{}
	s.Start()
	cancel()
	time.Sleep(2 * spinnerInterval)

	if !s.Cancelled() {
		t.Error("spinner should report cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := captured("Comparing algorithms...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerUpdate(t *testing.T) {
	s, out := captured("Optimizing layout...")
	s.Start()
	s.Update("Optimizing layout (generation 10/100)")
	if got := s.Message(); got != "Optimizing layout (generation 10/100)" {
		t.Errorf("Message() = %q", got)
	}
	time.Sleep(3 * spinnerInterval)
	s.Stop()
	if !strings.Contains(out.String(), "generation 10/100") {
		t.Errorf("updated message not drawn: %q", out.String())
	}
}
