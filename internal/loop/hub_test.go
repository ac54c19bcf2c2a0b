package loop

import (
	"context"
	"testing"
	"time"
)

func TestHubShutdownWithoutSessions(t *testing.T) {
	h := NewHub(nil)
	start := time.Now()
	if !h.Shutdown(time.Second) {
		t.Fatal("Shutdown reported a timeout with no sessions")
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Error("Shutdown waited with no sessions")
	}
}

func TestHubShutdownWaitsForSessions(t *testing.T) {
	h := NewHub(nil)
	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		r, _ := idleReader(t)
		s := newTestSession(t, r, &syncBuffer{}, Options{ShutdownDisplay: 100 * time.Millisecond})
		go func() { done <- h.Serve(context.Background(), s) }()
	}
	for i := 0; i < 500 && h.Len() < 2; i++ {
		time.Sleep(time.Millisecond)
	}
	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}

	if !h.Shutdown(5 * time.Second) {
		t.Fatal("sessions did not end before the timeout")
	}
	if h.Len() != 0 {
		t.Errorf("Len = %d after shutdown", h.Len())
	}
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Errorf("Serve: %v", err)
		}
	}
}

func TestHubShutdownTimesOut(t *testing.T) {
	h := NewHub(nil)
	r, _ := idleReader(t)
	s := newTestSession(t, r, &syncBuffer{}, Options{})
	h.Add(s) // never run, so it never ends

	if h.Shutdown(300 * time.Millisecond) {
		t.Fatal("Shutdown should time out")
	}
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
	h.Remove(s)
	if h.Len() != 0 {
		t.Errorf("Len = %d after Remove", h.Len())
	}
}
