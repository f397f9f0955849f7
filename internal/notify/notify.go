// Package notify is the transient message center behind the status banner:
// every mutating operation reports success or failure here and the UI renders
// whatever is still live.
package notify

import "time"

// Severity of a notification.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 4 * time.Second

// Notification is one transient message.
type Notification struct {
	Message  string
	Severity Severity
	expires  time.Time
}

// Center holds the live notifications for the app. Constructed once at
// startup and injected; a nil *Center is a valid no-op sink, so library code
// can notify unconditionally.
type Center struct {
	ttl   time.Duration
	now   func() time.Time
	items []Notification
}

// NewCenter creates a center with the default TTL.
func NewCenter() *Center {
	return &Center{ttl: DefaultTTL, now: time.Now}
}

// Notify publishes a message at the given severity.
func (c *Center) Notify(message string, severity Severity) {
	if c == nil || message == "" {
		return
	}
	c.items = append(c.items, Notification{
		Message:  message,
		Severity: severity,
		expires:  c.now().Add(c.ttl),
	})
}

// Active prunes expired notifications and returns the remainder, oldest
// first.
func (c *Center) Active() []Notification {
	if c == nil {
		return nil
	}
	now := c.now()
	live := c.items[:0]
	for _, n := range c.items {
		if n.expires.After(now) {
			live = append(live, n)
		}
	}
	c.items = live
	return c.items
}

// Dismiss drops all notifications immediately.
func (c *Center) Dismiss() {
	if c == nil {
		return
	}
	c.items = nil
}
