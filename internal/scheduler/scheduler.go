package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/notify"
)

// DefaultPollInterval is how often Run checks the clock.
const DefaultPollInterval = time.Second

// ErrNotRinging is returned by Dismiss and Snooze when no alarm rings.
var ErrNotRinging = errors.New("no alarm is ringing")

// State is the scheduler state.
type State int

const (
	// Idle means no alarm rings.
	Idle State = iota
	// Ringing means one alarm is presented to the user.
	Ringing
)

// String returns the lowercase state name.
func (s State) String() string {
	if s == Ringing {
		return "ringing"
	}

	return "idle"
}

// Store is the part of the alarm store the scheduler reads and extends.
type Store interface {
	Alarms() []domain.Alarm
	Sounds() map[string]domain.Sound
	ResolveSound(id string) string
	AddSnoozeAlarm(ctx context.Context, original domain.Alarm) (domain.Alarm, error)
}

// Player plays the ringing sound.
type Player interface {
	Play(ctx context.Context, soundID string, sounds map[string]domain.Sound, autoStop time.Duration) bool
	Stop(ctx context.Context)
}

// Options configure a Scheduler.
type Options struct {
	// PollInterval is the Run period; DefaultPollInterval when zero.
	PollInterval time.Duration
	// RingTimeout stops the sound after the delay; zero rings until handled.
	RingTimeout time.Duration
}

// Scheduler is the Idle/Ringing state machine.
type Scheduler struct {
	store    Store
	player   Player
	notifier notify.Notifier
	opts     Options

	mu      sync.Mutex
	state   State
	ringing domain.Alarm
	since   time.Time
	// lastMinute is the "HH:MM" checked by the previous tick.
	lastMinute string
}

// New creates an idle scheduler. notifier may be nil.
func New(store Store, player Player, notifier notify.Notifier, opts Options) *Scheduler {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	if notifier == nil {
		notifier = notify.Multi(nil)
	}

	return &Scheduler{
		store:    store,
		player:   player,
		notifier: notifier,
		opts:     opts,
	}
}

// Tick checks now against the alarms. A minute is checked once; later ticks
// in the same minute return immediately. While an alarm rings the minute is
// consumed without firing. It returns the alarm that started ringing.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) (domain.Alarm, bool) {
	minute := domain.ClockTimeOf(now).String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if minute == s.lastMinute {
		return domain.Alarm{}, false
	}

	s.lastMinute = minute

	if s.state != Idle {
		return domain.Alarm{}, false
	}

	for _, a := range s.store.Alarms() {
		if !a.Enabled || a.Time != minute {
			continue
		}

		s.ring(ctx, a, now)

		return a, true
	}

	return domain.Alarm{}, false
}

// ring enters Ringing; mu must be held.
func (s *Scheduler) ring(ctx context.Context, a domain.Alarm, now time.Time) {
	s.state = Ringing
	s.ringing = a
	s.since = now

	ctx = logger.WithKV(ctx, "alarm_id", a.ID, "name", a.Name, "time", a.Time)

	soundID := s.store.ResolveSound(a.SoundID)
	if !s.player.Play(ctx, soundID, s.store.Sounds(), s.opts.RingTimeout) {
		logger.WarnKV(ctx, "Alarm sound did not start", "sound_id", soundID)

		// An unplayable upload must not leave the alarm silent.
		if soundID != domain.DefaultSoundID {
			s.player.Play(ctx, domain.DefaultSoundID, nil, s.opts.RingTimeout)
		}
	}

	logger.Info(ctx, "Alarm ringing")

	s.notifier.Show(ctx, fmt.Sprintf("Alarm \"%s\" is ringing!", a.Name), notify.SeverityWarning)
}

// Dismiss stops the sound and returns to Idle. The alarm is not modified.
func (s *Scheduler) Dismiss(ctx context.Context) (domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ringing {
		return domain.Alarm{}, ErrNotRinging
	}

	dismissed := s.ringing

	s.player.Stop(ctx)
	s.clear()

	logger.InfoKV(ctx, "Alarm dismissed", "alarm_id", dismissed.ID)

	return dismissed, nil
}

// Snooze stops the sound, appends the snoozed copy of the ringing alarm and
// returns to Idle. The snooze alarm is returned even when persisting it
// failed.
func (s *Scheduler) Snooze(ctx context.Context) (domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Ringing {
		return domain.Alarm{}, ErrNotRinging
	}

	s.player.Stop(ctx)

	snoozed, err := s.store.AddSnoozeAlarm(ctx, s.ringing)

	logger.InfoKV(ctx, "Alarm snoozed", "alarm_id", s.ringing.ID, "snooze_id", snoozed.ID, "time", snoozed.Time)

	s.clear()

	if err != nil {
		return snoozed, fmt.Errorf("add snooze alarm: %w", err)
	}

	return snoozed, nil
}

// clear returns to Idle; mu must be held.
func (s *Scheduler) clear() {
	s.state = Idle
	s.ringing = domain.Alarm{}
	s.since = time.Time{}
}

// State returns the current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Ringing returns the ringing alarm and when it started.
func (s *Scheduler) Ringing() (domain.Alarm, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ringing, s.since, s.state == Ringing
}

// Run ticks immediately and then every poll interval until ctx is done.
// On exit any sound is stopped.
func (s *Scheduler) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "scheduler")

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	logger.InfoKV(ctx, "Scheduler started", "poll_interval", s.opts.PollInterval, "ring_timeout", s.opts.RingTimeout)

	s.Tick(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			s.player.Stop(context.WithoutCancel(ctx))
			logger.Info(ctx, "Scheduler stopped")

			return nil
		case now := <-ticker.C:
			s.Tick(ctx, now)
		}
	}
}
