// Package input tracks keyboard state for the frame loop and decodes raw
// terminal bytes into key events.
package input

import (
	"strings"
	"time"
)

// Logical key names. Letters are their lowercase character.
const (
	KeySpace      = "space"
	KeyEnter      = "enter"
	KeyEscape     = "escape"
	KeyBackspace  = "backspace"
	KeyArrowUp    = "arrowup"
	KeyArrowDown  = "arrowdown"
	KeyArrowLeft  = "arrowleft"
	KeyArrowRight = "arrowright"
	KeyCtrlC      = "ctrl+c"
)

// DefaultHoldDuration is how long a key counts as held after its last press
// when the source never reports releases (terminals only send presses and
// auto-repeats).
const DefaultHoldDuration = 120 * time.Millisecond

// Source is what the simulation polls once per tick.
type Source interface {
	// IsHeld reports whether the key is currently down (level-triggered).
	IsHeld(key string) bool
	// ConsumeJustPressed reports and consumes a pending press edge.
	ConsumeJustPressed(key string) bool
}

// Keyboard tracks held keys and per-frame press edges. Key names are
// case-insensitive. It is not safe for concurrent use: feed it from the
// goroutine that runs the frame loop (see Stream.Poll).
type Keyboard struct {
	held    map[string]time.Time // last press time; zero time = held until Release
	pressed map[string]struct{}
	hold    time.Duration
	now     func() time.Time
}

// Compile-time check that Keyboard implements Source.
var _ Source = (*Keyboard)(nil)

// NewKeyboard creates a tracker. A hold of zero means keys stay held until
// Release is called.
func NewKeyboard(hold time.Duration) *Keyboard {
	return &Keyboard{
		held:    make(map[string]time.Time),
		pressed: make(map[string]struct{}),
		hold:    hold,
		now:     time.Now,
	}
}

// SetClock replaces the time source (tests).
func (k *Keyboard) SetClock(now func() time.Time) {
	k.now = now
}

// Normalize maps a key name to its canonical lowercase form.
func Normalize(key string) string {
	key = strings.ToLower(key)
	switch key {
	case " ":
		return KeySpace
	case "\r", "\n", "return":
		return KeyEnter
	case "esc":
		return KeyEscape
	case "up":
		return KeyArrowUp
	case "down":
		return KeyArrowDown
	case "left":
		return KeyArrowLeft
	case "right":
		return KeyArrowRight
	}
	return key
}

// Press records a key-down event. A press of a key that is not already held
// also records an edge.
func (k *Keyboard) Press(key string) {
	key = Normalize(key)
	if !k.IsHeld(key) {
		k.pressed[key] = struct{}{}
	}
	if k.hold > 0 {
		k.held[key] = k.now()
	} else {
		k.held[key] = time.Time{}
	}
}

// Release records a key-up event.
func (k *Keyboard) Release(key string) {
	delete(k.held, Normalize(key))
}

// IsHeld implements Source.
func (k *Keyboard) IsHeld(key string) bool {
	t, ok := k.held[Normalize(key)]
	if !ok {
		return false
	}
	if k.hold <= 0 || t.IsZero() {
		return true
	}
	return k.now().Sub(t) < k.hold
}

// ConsumeJustPressed implements Source.
func (k *Keyboard) ConsumeJustPressed(key string) bool {
	key = Normalize(key)
	if _, ok := k.pressed[key]; !ok {
		return false
	}
	delete(k.pressed, key)
	return true
}

// EndFrame drops press edges nobody consumed this frame, so a stale press
// never fires an action in a later state.
func (k *Keyboard) EndFrame() {
	clear(k.pressed)
}

// Reset forgets all held keys and pending edges.
func (k *Keyboard) Reset() {
	clear(k.held)
	clear(k.pressed)
}

// AnyHeld reports whether any of the keys is held.
func AnyHeld(src Source, keys ...string) bool {
	for _, key := range keys {
		if src.IsHeld(key) {
			return true
		}
	}
	return false
}

// ConsumeAny consumes a pending edge for the first key in keys that has one.
func ConsumeAny(src Source, keys ...string) bool {
	for _, key := range keys {
		if src.ConsumeJustPressed(key) {
			return true
		}
	}
	return false
}
