// Package hud draws the on-screen log feed and the gravity debug panel.
package hud

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLifetime is how long a message stays on screen.
const DefaultLifetime = 15 * time.Second

// Entry is one message in the feed.
type Entry struct {
	Level   zerolog.Level
	Message string
	At      time.Time
}

// Feed is a zerolog hook that keeps recent messages for display.
type Feed struct {
	Lifetime time.Duration
	MinLevel zerolog.Level
	Max      int
	Now      func() time.Time

	mu      sync.Mutex
	entries []Entry
}

func NewFeed() *Feed {
	return &Feed{
		Lifetime: DefaultLifetime,
		MinLevel: zerolog.InfoLevel,
		Max:      12,
		Now:      time.Now,
	}
}

// Run implements zerolog.Hook.
func (f *Feed) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	if level < f.MinLevel || msg == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append(f.entries, Entry{Level: level, Message: msg, At: f.Now()})
	if f.Max > 0 && len(f.entries) > f.Max {
		f.entries = f.entries[len(f.entries)-f.Max:]
	}
}

// Entries drops expired messages and returns the rest, oldest first.
func (f *Feed) Entries() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.Now()
	keep := f.entries[:0]
	for _, e := range f.entries {
		if now.Sub(e.At) < f.Lifetime {
			keep = append(keep, e)
		}
	}
	f.entries = keep
	return append([]Entry(nil), keep...)
}

// Age returns how far through its lifetime an entry is, in [0, 1].
func (f *Feed) Age(e Entry) float32 {
	if f.Lifetime <= 0 {
		return 1
	}
	a := float32(f.Now().Sub(e.At)) / float32(f.Lifetime)
	return min(max(a, 0), 1)
}
