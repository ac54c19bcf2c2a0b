package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomz197/sidescroller/internal/draw"
)

// syncBuffer guards a bytes.Buffer for sessions run on another goroutine.
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

func fixedSize() draw.TermSizeFunc {
	return func() (int, int, error) { return 120, 40, nil }
}

// idleReader returns a reader that blocks until the test ends.
func idleReader(t *testing.T) (*bufio.Reader, *io.PipeWriter) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	return bufio.NewReader(pr), pw
}

func newTestSession(t *testing.T, r *bufio.Reader, w io.Writer, opts Options) *Session {
	t.Helper()
	opts.Seed = 1
	opts.TermSizeFunc = fixedSize()
	s, err := NewSession(r, w, opts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestQuitKeyEndsSession(t *testing.T) {
	for _, key := range quitKeys {
		r, _ := idleReader(t)
		s := newTestSession(t, r, io.Discard, Options{})
		now := time.Now()
		s.lastFrame = now

		s.step(now.Add(time.Millisecond))
		if s.ended != "" {
			t.Fatalf("ended early: %s", s.ended)
		}
		s.kb.Press(key)
		s.step(now.Add(2 * time.Millisecond))
		if s.ended != "quit" {
			t.Errorf("%s: ended = %q, want quit", key, s.ended)
		}
	}
}

func TestInputClosedEndsSession(t *testing.T) {
	s := newTestSession(t, bufio.NewReader(strings.NewReader("")), io.Discard, Options{})
	now := time.Now()
	s.lastFrame = now
	for i := 0; i < 500 && s.ended == ""; i++ {
		now = now.Add(time.Millisecond)
		s.step(now)
		time.Sleep(time.Millisecond)
	}
	if s.ended != "input closed" {
		t.Errorf("ended = %q, want input closed", s.ended)
	}
}

func TestShutdownCountdown(t *testing.T) {
	r, _ := idleReader(t)
	var out bytes.Buffer
	s := newTestSession(t, r, &out, Options{ShutdownDisplay: 3 * time.Second})
	now := time.Now()
	s.lastFrame = now

	s.NotifyShutdown()
	s.NotifyShutdown() // second notice is dropped
	s.step(now)
	if !strings.Contains(out.String(), "SERVER SHUTTING DOWN") {
		t.Fatal("shutdown notice not drawn")
	}
	if !strings.Contains(out.String(), "Disconnecting in 3 seconds") {
		t.Error("countdown not shown")
	}

	s.step(now.Add(2 * time.Second))
	if s.ended != "" {
		t.Fatalf("ended during countdown: %s", s.ended)
	}
	s.step(now.Add(3 * time.Second))
	if s.ended != "server shutdown" {
		t.Errorf("ended = %q, want server shutdown", s.ended)
	}
}

func TestInactivityWarnsThenDisconnects(t *testing.T) {
	r, _ := idleReader(t)
	var out bytes.Buffer
	s := newTestSession(t, r, &out, Options{Inactivity: true})
	now := time.Now()
	s.lastFrame = now
	s.lastInput = now

	s.step(now.Add(60 * time.Second))
	if strings.Contains(out.String(), "INACTIVITY WARNING") {
		t.Fatal("warned too early")
	}
	s.step(now.Add(91 * time.Second))
	if !strings.Contains(out.String(), "INACTIVITY WARNING") {
		t.Fatal("no inactivity warning")
	}
	if s.ended != "" {
		t.Fatalf("ended after warning: %s", s.ended)
	}
	s.step(now.Add(121 * time.Second))
	if s.ended != "inactive" {
		t.Errorf("ended = %q, want inactive", s.ended)
	}
}

func TestInactivityDisabled(t *testing.T) {
	r, _ := idleReader(t)
	s := newTestSession(t, r, io.Discard, Options{})
	now := time.Now()
	s.lastFrame = now
	s.lastInput = now
	s.step(now.Add(time.Hour))
	if s.ended != "" {
		t.Errorf("ended = %q without inactivity enabled", s.ended)
	}
}

func TestInputResetsInactivity(t *testing.T) {
	r, pw := idleReader(t)
	s := newTestSession(t, r, io.Discard, Options{Inactivity: true})
	start := time.Now()
	s.lastFrame = start
	s.lastInput = start

	go pw.Write([]byte("x"))
	now := start.Add(100 * time.Second)
	for i := 0; i < 500 && !s.lastInput.Equal(now); i++ {
		s.step(now)
		time.Sleep(time.Millisecond)
	}
	if !s.lastInput.Equal(now) {
		t.Fatal("key press did not reset the idle timer")
	}
	s.step(start.Add(130 * time.Second))
	if s.ended != "" {
		t.Errorf("ended = %q after recent input", s.ended)
	}
}

func runAsync(s *Session, ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	return done
}

func TestRunQuitsOnKey(t *testing.T) {
	r, pw := idleReader(t)
	out := &syncBuffer{}
	s := newTestSession(t, r, out, Options{})

	done := runAsync(s, context.Background())
	go pw.Write([]byte("q"))

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
	if !strings.HasSuffix(out.String(), "\033[?25h") {
		t.Error("cursor not restored on exit")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	r, _ := idleReader(t)
	s := newTestSession(t, r, &syncBuffer{}, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(s, ctx)
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if s.ended != "context cancelled" {
		t.Errorf("ended = %q", s.ended)
	}
}

var errGone = errors.New("connection gone")

type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) { return 0, errGone }

func TestRunReturnsWriteError(t *testing.T) {
	r, _ := idleReader(t)
	s := newTestSession(t, r, brokenWriter{}, Options{})

	done := runAsync(s, context.Background())
	select {
	case err := <-done:
		if !errors.Is(err, errGone) {
			t.Fatalf("Run = %v, want errGone", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after a write error")
	}
}
