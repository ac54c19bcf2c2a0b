package game

import (
	"sync"
	"time"
)

// AfterFunc schedules f to run once after d on another goroutine.
type AfterFunc func(d time.Duration, f func())

func defaultAfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Banner is the centered message line. Timed messages clear themselves
// unless a newer message has replaced them in the meantime.
type Banner struct {
	mu        sync.Mutex
	text      string
	afterFunc AfterFunc
}

// NewBanner creates a banner. A nil afterFunc uses time.AfterFunc.
func NewBanner(afterFunc AfterFunc) *Banner {
	if afterFunc == nil {
		afterFunc = defaultAfterFunc
	}
	return &Banner{afterFunc: afterFunc}
}

// Set replaces the message until something else replaces it.
func (b *Banner) Set(text string) {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
}

// Flash shows text and clears it after d if it is still showing.
func (b *Banner) Flash(text string, d time.Duration) {
	b.Set(text)
	b.afterFunc(d, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.text == text {
			b.text = ""
		}
	})
}

// Clear removes the current message.
func (b *Banner) Clear() {
	b.Set("")
}

// Text returns the current message.
func (b *Banner) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}
