// Package notice keeps the short-lived success/error banners each admin section shows after
// an action. A banner disappears once Lifetime has passed since it was shown.
package notice

import (
	"sync"
	"time"
)

// Lifetime is how long a banner stays visible.
const Lifetime = 3 * time.Second

// Kind is the banner style.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Notice is one banner.
type Notice struct {
	Kind    Kind      `json:"type"`
	Message string    `json:"message"`
	ShownAt time.Time `json:"shownAt"`
}

// Board holds at most one banner per section; showing a new one replaces the old.
type Board struct {
	mu      sync.Mutex
	now     func() time.Time
	notices map[string]Notice
}

// NewBoard returns an empty board. now may be nil to use time.Now.
func NewBoard(now func() time.Time) *Board {
	if now == nil {
		now = time.Now
	}
	return &Board{now: now, notices: make(map[string]Notice)}
}

func (b *Board) Show(section string, kind Kind, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices[section] = Notice{Kind: kind, Message: message, ShownAt: b.now()}
}

// Current returns the section's banner if it is still within Lifetime. Expired banners are dropped.
func (b *Board) Current(section string) (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.notices[section]
	if !ok {
		return Notice{}, false
	}
	if b.now().Sub(n.ShownAt) >= Lifetime {
		delete(b.notices, section)
		return Notice{}, false
	}
	return n, true
}
