package notify

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// Severity classifies a notification.
type Severity string

const (
	// SeveritySuccess reports a completed user action.
	SeveritySuccess Severity = "success"
	// SeverityWarning reports something that needs attention, such as a ringing alarm.
	SeverityWarning Severity = "warning"
	// SeverityDanger reports a failed action.
	SeverityDanger Severity = "danger"
)

// DefaultTTL is how long a notification stays in a Feed.
const DefaultTTL = 4 * time.Second

// Notification is a message shown to the user.
type Notification struct {
	ID        uint64    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Notifier accepts notifications.
type Notifier interface {
	Show(ctx context.Context, message string, severity Severity)
}

// LogNotifier writes notifications to the context logger.
type LogNotifier struct{}

// Show logs the message at a level matching its severity.
func (LogNotifier) Show(ctx context.Context, message string, severity Severity) {
	switch severity {
	case SeverityDanger:
		logger.ErrorKV(ctx, message, "severity", severity)
	case SeverityWarning:
		logger.WarnKV(ctx, message, "severity", severity)
	default:
		logger.InfoKV(ctx, message, "severity", severity)
	}
}

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

// Show forwards to every notifier.
func (m Multi) Show(ctx context.Context, message string, severity Severity) {
	for _, n := range m {
		if n != nil {
			n.Show(ctx, message, severity)
		}
	}
}

// Feed keeps notifications until they expire.
type Feed struct {
	ttl   time.Duration
	items []Notification
	seq   uint64
	mu    sync.Mutex
}

// NewFeed creates a feed; a non-positive ttl uses DefaultTTL.
func NewFeed(ttl time.Duration) *Feed {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Feed{ttl: ttl}
}

// Show records a notification.
func (f *Feed) Show(_ context.Context, message string, severity Severity) {
	now := time.Now()

	f.mu.Lock()
	defer f.mu.Unlock()

	f.prune(now)

	f.seq++
	f.items = append(f.items, Notification{
		ID:        f.seq,
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(f.ttl),
	})
}

// Active returns the notifications that have not expired yet, oldest first.
func (f *Feed) Active() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prune(time.Now())

	return slices.Clone(f.items)
}

// Latest returns the newest active notification.
func (f *Feed) Latest() (Notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prune(time.Now())

	if len(f.items) == 0 {
		return Notification{}, false
	}

	return f.items[len(f.items)-1], true
}

// prune must be called with mu held.
func (f *Feed) prune(now time.Time) {
	f.items = slices.DeleteFunc(f.items, func(n Notification) bool {
		return !now.Before(n.ExpiresAt)
	})
}
