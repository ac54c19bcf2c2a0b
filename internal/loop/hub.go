package loop

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// pollInterval is how often Shutdown checks for remaining sessions.
const pollInterval = 200 * time.Millisecond

// Hub tracks live sessions so a server can notify them on shutdown.
type Hub struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
	log      *log.Logger
}

// NewHub creates an empty hub. A nil logger discards.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		sessions: make(map[*Session]struct{}),
		log:      logger,
	}
}

// Add registers a session.
func (h *Hub) Add(s *Session) {
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	n := len(h.sessions)
	h.mu.Unlock()
	h.log.Debug("session added", "sessions", n)
}

// Remove unregisters a session.
func (h *Hub) Remove(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s)
	n := len(h.sessions)
	h.mu.Unlock()
	h.log.Debug("session removed", "sessions", n)
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Serve registers s, runs it and unregisters it when it ends.
func (h *Hub) Serve(ctx context.Context, s *Session) error {
	h.Add(s)
	defer h.Remove(s)
	return s.Run(ctx)
}

// Shutdown notifies every live session and waits for them to end, up to
// the given timeout. It reports whether all sessions ended in time.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.mu.Lock()
	for s := range h.sessions {
		s.NotifyShutdown()
	}
	n := len(h.sessions)
	h.mu.Unlock()
	if n == 0 {
		return true
	}
	h.log.Info("notified sessions of shutdown", "sessions", n)

	// Wait for all sessions to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			h.log.Warn("shutdown timed out", "remaining", h.Len())
			return false
		case <-ticker.C:
			if h.Len() == 0 {
				return true
			}
		}
	}
}
