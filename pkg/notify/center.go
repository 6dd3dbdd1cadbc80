package notify

import (
	"context"
	"sync"
	"time"
)

// Center subscribes to the bus and tracks the currently visible entries.
// Display order is insertion order.
type Center struct {
	mu      sync.Mutex
	entries []Notification

	ttl time.Duration
	now func() time.Time
}

// NewCenter creates a Center with the standard lifetime.
func NewCenter() *Center {
	return &Center{
		ttl: TTL,
		now: time.Now,
	}
}

// Run consumes the bus until ctx is done. It returns the subscription
// error, or nil once the stream closes.
func (c *Center) Run(ctx context.Context, bus *Bus) error {
	notifications, err := bus.Subscribe(ctx)
	if err != nil {
		return err
	}

	for notification := range notifications {
		c.Add(notification)
	}

	return nil
}

// Add records a notification directly. Run uses it; tests and synchronous
// callers may too.
func (c *Center) Add(notification Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, notification)
}

// Active returns the still-visible entries in insertion order, pruning
// anything past its lifetime.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.ttl)
	kept := c.entries[:0]

	for _, entry := range c.entries {
		if entry.PublishedAt.After(cutoff) {
			kept = append(kept, entry)
		}
	}

	c.entries = kept

	out := make([]Notification, len(c.entries))
	copy(out, c.entries)

	return out
}

// Dismiss removes an entry early. Dismissing an unknown or already-removed
// id is a no-op.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.entries[:0]

	for _, entry := range c.entries {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}

	c.entries = kept
}
