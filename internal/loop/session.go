// Package loop runs the frame loop for one terminal connection and tracks
// live sessions for graceful server shutdown.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/sidescroller/internal/config"
	"github.com/tomz197/sidescroller/internal/draw"
	"github.com/tomz197/sidescroller/internal/game"
	"github.com/tomz197/sidescroller/internal/input"
	"github.com/tomz197/sidescroller/internal/render"
)

// Quit keys end the session in every state.
var quitKeys = []string{"q", input.KeyCtrlC}

// Options configures a Session.
type Options struct {
	Level        *config.Level // nil = embedded default level
	Seed         int64         // 0 = seeded from the clock
	TermSizeFunc draw.TermSizeFunc
	Styles       *lipgloss.Renderer
	Bell         bool
	Logger       *log.Logger

	// Inactivity enables the idle warning and disconnect.
	Inactivity bool

	// ShutdownDisplay is how long the shutdown notice shows before the
	// session ends. Zero uses config.ShutdownDisplaySeconds.
	ShutdownDisplay time.Duration
}

// Session drives one game over one terminal: Input -> Update -> Draw at a
// fixed frame rate until the player quits, the input ends, the context is
// cancelled or a shutdown countdown runs out.
type Session struct {
	game   *game.Game
	term   *render.Terminal
	kb     *input.Keyboard
	stream *input.Stream
	log    *log.Logger
	seed   int64

	inactivity      bool
	shutdownDisplay time.Duration
	shutdownCh      chan struct{}
	shutdownAt      time.Time // zero until a shutdown notice arrives

	lastInput time.Time
	lastFrame time.Time
	ended     string // why the session ended, empty while running
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	term := render.NewTerminal(w, render.Options{
		TermSizeFunc: opts.TermSizeFunc,
		Styles:       opts.Styles,
		Bell:         opts.Bell,
		Logger:       logger,
	})
	g, err := game.New(game.Options{
		Level:    opts.Level,
		Rand:     rand.New(rand.NewSource(seed)),
		Renderer: term,
		Sound:    term,
		HUD:      term,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	display := opts.ShutdownDisplay
	if display <= 0 {
		display = time.Duration(config.ShutdownDisplaySeconds * float64(time.Second))
	}

	return &Session{
		game:            g,
		term:            term,
		kb:              input.NewKeyboard(input.DefaultHoldDuration),
		stream:          input.StartStream(r),
		log:             logger,
		seed:            seed,
		inactivity:      opts.Inactivity,
		shutdownDisplay: display,
		shutdownCh:      make(chan struct{}, 1),
	}, nil
}

// Game returns the session's game.
func (s *Session) Game() *game.Game {
	return s.game
}

// NotifyShutdown tells the session the server is going down. It is safe to
// call from any goroutine.
func (s *Session) NotifyShutdown() {
	select {
	case s.shutdownCh <- struct{}{}:
	default:
	}
}

// Run starts the frame loop. Blocks until the session ends.
func (s *Session) Run(ctx context.Context) error {
	s.term.Open()
	defer s.term.Close()

	now := time.Now()
	s.lastInput = now
	s.lastFrame = now
	s.log.Info("session started", "seed", s.seed)

	for {
		select {
		case <-ctx.Done():
			s.ended = "context cancelled"
		default:
		}
		if s.ended != "" {
			break
		}

		frameStart := time.Now()
		s.step(frameStart)
		if err := s.term.Err(); err != nil {
			s.log.Info("session ended", "reason", "write failed", "err", err)
			return fmt.Errorf("failed to draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	rs := s.game.Run()
	s.log.Info("session ended", "reason", s.ended, "score", rs.Score, "distance", rs.Distance)
	return nil
}

// step runs one frame at the given wall-clock time.
func (s *Session) step(now time.Time) {
	dt := now.Sub(s.lastFrame).Seconds()
	s.lastFrame = now

	if s.stream.Poll(s.kb) > 0 {
		s.lastInput = now
	}
	if input.ConsumeAny(s.kb, quitKeys...) {
		s.ended = "quit"
		return
	}
	if s.stream.Closed() {
		s.ended = "input closed"
		return
	}

	select {
	case <-s.shutdownCh:
		if s.shutdownAt.IsZero() {
			s.shutdownAt = now.Add(s.shutdownDisplay)
		}
	default:
	}

	notice := ""
	switch {
	case !s.shutdownAt.IsZero():
		remaining := s.shutdownAt.Sub(now)
		if remaining <= 0 {
			s.ended = "server shutdown"
			return
		}
		notice = fmt.Sprintf("SERVER SHUTTING DOWN\n\nPlease reconnect in a moment.\nDisconnecting in %d seconds...\n\nPress Q to disconnect now",
			secondsLeft(remaining))
	case s.inactivity:
		idle := now.Sub(s.lastInput)
		if idle > config.InactivityDisconnectUser*time.Second {
			s.ended = "inactive"
			return
		}
		if idle > config.InactivityWarnUser*time.Second {
			left := config.InactivityDisconnectUser*time.Second - idle
			notice = fmt.Sprintf("INACTIVITY WARNING\n\nDisconnecting in %d seconds.\n\nPress any key to continue", secondsLeft(left))
		}
	}
	s.term.SetNotice(notice)

	s.game.Frame(dt, s.kb)
	s.kb.EndFrame()
}

func secondsLeft(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
