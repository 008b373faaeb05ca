// Package notify carries user-visible notifications ("toasts") from the
// controller to whatever surface renders them.
package notify

import (
	"sync"
	"time"
)

// Variant selects how a notification is rendered.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDestructive
)

func (v Variant) String() string {
	if v == VariantDestructive {
		return "destructive"
	}
	return "default"
}

// Notification is a single toast.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
	At          time.Time
}

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a plain function to Notifier.
type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = Func(func(Notification) {})

// Center keeps the most recent notifications for display, newest last.
type Center struct {
	mu    sync.Mutex
	items []Notification
	limit int
	ttl   time.Duration
	now   func() time.Time
}

// NewCenter returns a Center holding at most limit toasts, each visible for ttl.
func NewCenter(limit int, ttl time.Duration) *Center {
	if limit <= 0 {
		limit = 5
	}
	return &Center{limit: limit, ttl: ttl, now: time.Now}
}

// Notify records n, stamping it when At is zero.
func (c *Center) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n.At.IsZero() {
		n.At = c.now()
	}
	c.items = append(c.items, n)
	if len(c.items) > c.limit {
		c.items = append([]Notification(nil), c.items[len(c.items)-c.limit:]...)
	}
}

// Active returns the toasts that have not expired, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expireLocked()
	return append([]Notification(nil), c.items...)
}

// Latest returns the newest unexpired toast.
func (c *Center) Latest() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expireLocked()
	if len(c.items) == 0 {
		return Notification{}, false
	}
	return c.items[len(c.items)-1], true
}

// Dismiss removes every toast.
func (c *Center) Dismiss() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

func (c *Center) expireLocked() {
	if c.ttl <= 0 {
		return
	}
	cutoff := c.now().Add(-c.ttl)
	keep := c.items[:0]
	for _, n := range c.items {
		if n.At.After(cutoff) {
			keep = append(keep, n)
		}
	}
	c.items = keep
}

// Recorder stores every notification it receives. Useful for headless runs
// and tests.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.items = nil
	r.mu.Unlock()
}
