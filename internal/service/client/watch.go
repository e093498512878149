package client

import (
	"context"
	"time"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// Watch polls the daemon and prints new notifications until ctx is done.
// Transient failures are logged and retried on the next tick.
func (s *Session) Watch(ctx context.Context) error {
	interval := s.settings.PollInterval

	var lastSeen uint64

	poll := func() {
		status, err := s.client.Status(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.WarnKV(ctx, "Status poll failed", "error", err)
			}

			return
		}

		var fresh []api.Notification

		fresh, lastSeen = unseen(status.Notifications, lastSeen)
		for _, n := range fresh {
			s.printf("%s [%s] %s\n", n.CreatedAt.Local().Format(time.TimeOnly), n.Severity, n.Message)
		}
	}

	poll()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			poll()
		}
	}
}

// unseen returns the notifications newer than lastSeen and the new mark.
// A feed whose newest id is below lastSeen comes from a restarted daemon,
// which numbers from 1 again, so it is read from the start.
func unseen(items []api.Notification, lastSeen uint64) ([]api.Notification, uint64) {
	var newest uint64
	for _, n := range items {
		newest = max(newest, n.ID)
	}

	if len(items) > 0 && newest < lastSeen {
		lastSeen = 0
	}

	var fresh []api.Notification

	for _, n := range items {
		if n.ID <= lastSeen {
			continue
		}

		fresh = append(fresh, n)
	}

	return fresh, max(lastSeen, newest)
}
