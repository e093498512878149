package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	repo "github.com/oshokin/alarm-clock/internal/repository/state"
)

var (
	// ErrAlarmNotFound is returned for unknown alarm ids.
	ErrAlarmNotFound = errors.New("alarm not found")
	// ErrSoundNotFound is returned for unknown sound ids.
	ErrSoundNotFound = errors.New("sound not found")
	// ErrEmptySoundID is returned when a sound is added without an id.
	ErrEmptySoundID = errors.New("sound id is empty")
)

// Store keeps the alarm clock state in memory and writes it through the
// repository after each mutation.
type Store struct {
	// repo handles persistent storage of the state. May be nil.
	repo repo.Repository
	// state is the current in-memory state.
	state *domain.State
	// mu protects state.
	mu sync.RWMutex
}

// New creates a store backed by the provided repository. A missing or
// unreadable record is treated as a first run: the problem is logged and the
// store starts from defaults.
func New(ctx context.Context, repository repo.Repository) *Store {
	s := &Store{
		repo:  repository,
		state: domain.NewState(),
	}

	if repository == nil {
		return s
	}

	state, err := repository.Load(ctx)
	switch {
	case err == nil:
		if state != nil {
			state.Normalize()
			s.state = state
		}
	case errors.Is(err, repo.ErrNotFound):
		logger.Info(ctx, "No saved state found, starting with defaults")
	default:
		logger.WarnKV(ctx, "Failed to load saved state, starting with defaults", "error", err)
	}

	logger.InfoKV(ctx, "State loaded",
		"alarms", len(s.state.Alarms),
		"sounds", len(s.state.Sounds),
		"selected_time", s.state.SelectedTime)

	return s
}

// AddAlarm appends an enabled alarm built from the selected time and sound.
func (s *Store) AddAlarm(ctx context.Context, name string) (domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := domain.Alarm{
		ID:      domain.NewAlarmID(),
		Name:    domain.NormalizeName(name),
		Time:    s.state.SelectedTime,
		SoundID: s.state.SelectedSound,
		Enabled: true,
	}

	s.state.Alarms = append(s.state.Alarms, a)

	logger.InfoKV(ctx, "Alarm added", "alarm_id", a.ID, "name", a.Name, "time", a.Time, "sound_id", a.SoundID)

	return a, s.persist(ctx)
}

// AddSnoozeAlarm appends a copy of original shifted by the snooze offset.
// The original alarm is not modified.
func (s *Store) AddSnoozeAlarm(ctx context.Context, original domain.Alarm) (domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := original.Snoozed()
	s.state.Alarms = append(s.state.Alarms, a)

	logger.InfoKV(ctx, "Snooze alarm added", "alarm_id", a.ID, "original_id", original.ID, "time", a.Time)

	return a, s.persist(ctx)
}

// RemoveAlarm deletes the alarm and returns it.
func (s *Store) RemoveAlarm(ctx context.Context, id string) (domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Alarm{}, fmt.Errorf("%w: %s", ErrAlarmNotFound, id)
	}

	removed := s.state.Alarms[i]
	s.state.Alarms = slices.Delete(s.state.Alarms, i, i+1)

	logger.InfoKV(ctx, "Alarm removed", "alarm_id", id, "name", removed.Name)

	return removed, s.persist(ctx)
}

// ToggleAlarm flips the enabled flag and returns the updated alarm.
func (s *Store) ToggleAlarm(ctx context.Context, id string) (domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Alarm{}, fmt.Errorf("%w: %s", ErrAlarmNotFound, id)
	}

	s.state.Alarms[i].Enabled = !s.state.Alarms[i].Enabled
	updated := s.state.Alarms[i]

	logger.InfoKV(ctx, "Alarm toggled", "alarm_id", id, "enabled", updated.Enabled)

	return updated, s.persist(ctx)
}

// ClearAlarms empties the alarm list and reports how many were removed.
// An already empty list is not written again.
func (s *Store) ClearAlarms(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.state.Alarms)
	if n == 0 {
		return 0, nil
	}

	s.state.Alarms = []domain.Alarm{}

	logger.InfoKV(ctx, "Alarms cleared", "count", n)

	return n, s.persist(ctx)
}

// AddSound inserts the sound and makes it the selected one.
func (s *Store) AddSound(ctx context.Context, id string, sound domain.Sound) error {
	if id == "" {
		return ErrEmptySoundID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Sounds[id] = sound
	s.state.SelectedSound = id

	logger.InfoKV(ctx, "Sound added", "sound_id", id, "name", sound.Name, "size", sound.Size)

	return s.persist(ctx)
}

// RemoveSound deletes the sound. If it was selected, the selection reverts
// to the default tone. Alarms still referencing it resolve to the default
// tone at play time.
func (s *Store) RemoveSound(ctx context.Context, id string) (domain.Sound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sound, ok := s.state.Sounds[id]
	if !ok {
		return domain.Sound{}, fmt.Errorf("%w: %s", ErrSoundNotFound, id)
	}

	delete(s.state.Sounds, id)

	if s.state.SelectedSound == id {
		s.state.SelectedSound = domain.DefaultSoundID
	}

	logger.InfoKV(ctx, "Sound removed", "sound_id", id, "selected_sound", s.state.SelectedSound)

	return sound, s.persist(ctx)
}

// SelectSound makes id the default sound for new alarms and returns the
// effective selection. Unknown ids select the default tone.
func (s *Store) SelectSound(ctx context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SelectedSound = s.resolveSound(id)

	logger.InfoKV(ctx, "Sound selected", "sound_id", s.state.SelectedSound)

	return s.state.SelectedSound, s.persist(ctx)
}

// SetSelectedTime stores the default time for new alarms.
func (s *Store) SetSelectedTime(ctx context.Context, hhmm string) error {
	if !domain.IsValidClockTime(hhmm) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTime, hhmm)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.SelectedTime == hhmm {
		return nil
	}

	s.state.SelectedTime = hhmm

	logger.DebugKV(ctx, "Selected time changed", "time", hhmm)

	return s.persist(ctx)
}

// SetTheme stores the current theme id.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if err := domain.ValidateTheme(theme); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CurrentTheme = theme

	logger.InfoKV(ctx, "Theme changed", "theme", theme)

	return s.persist(ctx)
}

// Alarms returns a copy of the alarm list in insertion order.
func (s *Store) Alarms() []domain.Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.state.Alarms)
}

// Alarm returns the alarm with the given id.
func (s *Store) Alarm(id string) (domain.Alarm, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Alarm{}, false
	}

	return s.state.Alarms[i], true
}

// Sounds returns a copy of the sound table.
func (s *Store) Sounds() map[string]domain.Sound {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.state.Sounds)
}

// Sound returns the sound with the given id.
func (s *Store) Sound(id string) (domain.Sound, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sound, ok := s.state.Sounds[id]

	return sound, ok
}

// Selection returns the selection defaults.
func (s *Store) Selection() domain.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Selection()
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() *domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

// ResolveSound returns id if it names a stored sound, otherwise the default tone.
func (s *Store) ResolveSound(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.resolveSound(id)
}

// Close flushes the state one last time.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx)
}

func (s *Store) resolveSound(id string) string {
	if _, ok := s.state.Sounds[id]; ok {
		return id
	}

	return domain.DefaultSoundID
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.state.Alarms, func(a domain.Alarm) bool {
		return a.ID == id
	})
}

// persist must be called with mu held. The in-memory mutation is kept even
// when the write fails.
func (s *Store) persist(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	if err := s.repo.Save(ctx, s.state.Clone()); err != nil {
		logger.ErrorKV(ctx, "Failed to persist state", "error", err)

		return fmt.Errorf("persist state: %w", err)
	}

	return nil
}
