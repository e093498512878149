package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/notify"
)

var errTestPersist = errors.New("disk full")

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu        sync.Mutex
	alarms    []domain.Alarm
	sounds    map[string]domain.Sound
	snoozeErr error
}

func (f *fakeStore) Alarms() []domain.Alarm {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]domain.Alarm(nil), f.alarms...)
}

func (f *fakeStore) Sounds() map[string]domain.Sound { return f.sounds }

func (f *fakeStore) ResolveSound(id string) string {
	if _, ok := f.sounds[id]; ok {
		return id
	}

	return domain.DefaultSoundID
}

func (f *fakeStore) AddSnoozeAlarm(_ context.Context, original domain.Alarm) (domain.Alarm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a := original.Snoozed()
	f.alarms = append(f.alarms, a)

	return a, f.snoozeErr
}

// fakePlayer records play and stop calls.
type fakePlayer struct {
	mu       sync.Mutex
	played   []string
	autoStop []time.Duration
	stops    int
	playing  bool
	// broken lists sound ids that fail to play.
	broken map[string]bool
}

func (p *fakePlayer) Play(_ context.Context, soundID string, _ map[string]domain.Sound, autoStop time.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.played = append(p.played, soundID)
	p.autoStop = append(p.autoStop, autoStop)
	p.playing = !p.broken[soundID]

	return p.playing
}

func (p *fakePlayer) Stop(context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stops++
	p.playing = false
}

func (p *fakePlayer) isPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.playing
}

// recorder collects notifications.
type recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *recorder) Show(_ context.Context, message string, _ notify.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, message)
}

func at(hour, minute, second int) time.Time {
	return time.Date(2024, time.March, 10, hour, minute, second, 0, time.UTC)
}

func newTestScheduler(alarms ...domain.Alarm) (*Scheduler, *fakeStore, *fakePlayer, *recorder) {
	store := &fakeStore{
		alarms: alarms,
		sounds: map[string]domain.Sound{"sound_a": {Name: "a"}},
	}
	player := new(fakePlayer)
	rec := new(recorder)

	return New(store, player, rec, Options{RingTimeout: time.Minute}), store, player, rec
}

// TestTick_FiresFirstEnabledMatch rings the first enabled alarm in list order.
func TestTick_FiresFirstEnabledMatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _, player, rec := newTestScheduler(
		domain.Alarm{ID: "alarm_off", Name: "Off", Time: "07:00", SoundID: "sound_a", Enabled: false},
		domain.Alarm{ID: "alarm_other", Name: "Other", Time: "08:00", SoundID: "sound_a", Enabled: true},
		domain.Alarm{ID: "alarm_1", Name: "Wake", Time: "07:00", SoundID: "sound_a", Enabled: true},
		domain.Alarm{ID: "alarm_2", Name: "Twin", Time: "07:00", SoundID: "default", Enabled: true},
	)

	_, fired := s.Tick(ctx, at(6, 59, 59))
	require.False(t, fired)
	require.Equal(t, Idle, s.State())

	a, fired := s.Tick(ctx, at(7, 0, 0))
	require.True(t, fired)
	require.Equal(t, "alarm_1", a.ID)
	require.Equal(t, Ringing, s.State())
	require.Equal(t, []string{"sound_a"}, player.played)
	require.Equal(t, []time.Duration{time.Minute}, player.autoStop)
	require.Equal(t, []string{`Alarm "Wake" is ringing!`}, rec.messages)

	ringing, since, ok := s.Ringing()
	require.True(t, ok)
	require.Equal(t, "alarm_1", ringing.ID)
	require.Equal(t, at(7, 0, 0), since)
}

// TestTick_MinuteDedup fires at most once per minute.
func TestTick_MinuteDedup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _, player, _ := newTestScheduler(
		domain.Alarm{ID: "alarm_1", Name: "Wake", Time: "07:00", SoundID: "default", Enabled: true},
	)

	_, fired := s.Tick(ctx, at(7, 0, 1))
	require.True(t, fired)

	_, err := s.Dismiss(ctx)
	require.NoError(t, err)

	// Same minute again: no second ring even though Idle.
	_, fired = s.Tick(ctx, at(7, 0, 30))
	require.False(t, fired)
	require.Len(t, player.played, 1)

	// The next day the alarm fires again.
	_, fired = s.Tick(ctx, at(7, 1, 0))
	require.False(t, fired)

	_, fired = s.Tick(ctx, at(7, 0, 0).Add(24*time.Hour))
	require.True(t, fired)
	require.Len(t, player.played, 2)
}

// TestTick_RingingConsumesMinute does not queue matches while ringing.
func TestTick_RingingConsumesMinute(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _, player, _ := newTestScheduler(
		domain.Alarm{ID: "alarm_1", Name: "First", Time: "07:00", SoundID: "default", Enabled: true},
		domain.Alarm{ID: "alarm_2", Name: "Second", Time: "07:01", SoundID: "default", Enabled: true},
	)

	_, fired := s.Tick(ctx, at(7, 0, 0))
	require.True(t, fired)

	_, fired = s.Tick(ctx, at(7, 1, 0))
	require.False(t, fired)

	_, err := s.Dismiss(ctx)
	require.NoError(t, err)

	// 07:01 was consumed while ringing.
	_, fired = s.Tick(ctx, at(7, 1, 30))
	require.False(t, fired)
	require.Len(t, player.played, 1)
}

// TestTick_DanglingSoundFallsBack plays the default tone for removed sounds.
func TestTick_DanglingSoundFallsBack(t *testing.T) {
	t.Parallel()

	s, _, player, _ := newTestScheduler(
		domain.Alarm{ID: "alarm_1", Name: "Wake", Time: "07:00", SoundID: "sound_gone", Enabled: true},
	)

	_, fired := s.Tick(context.Background(), at(7, 0, 0))
	require.True(t, fired)
	require.Equal(t, []string{domain.DefaultSoundID}, player.played)
}

// TestTick_UnplayableSoundFallsBack rings with the default tone when an upload fails.
func TestTick_UnplayableSoundFallsBack(t *testing.T) {
	t.Parallel()

	s, _, player, _ := newTestScheduler(
		domain.Alarm{ID: "alarm_1", Name: "Wake", Time: "07:00", SoundID: "sound_a", Enabled: true},
	)
	player.broken = map[string]bool{"sound_a": true}

	_, fired := s.Tick(context.Background(), at(7, 0, 0))
	require.True(t, fired)
	require.Equal(t, []string{"sound_a", domain.DefaultSoundID}, player.played)
	require.True(t, player.isPlaying())
	require.Equal(t, Ringing, s.State())
}

// TestDismiss returns to Idle without touching alarms.
func TestDismiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	original := domain.Alarm{ID: "alarm_1", Name: "Wake", Time: "07:00", SoundID: "default", Enabled: true}
	s, store, player, _ := newTestScheduler(original)

	_, err := s.Dismiss(ctx)
	require.ErrorIs(t, err, ErrNotRinging)

	s.Tick(ctx, at(7, 0, 0))

	dismissed, err := s.Dismiss(ctx)
	require.NoError(t, err)
	require.Equal(t, original, dismissed)
	require.Equal(t, Idle, s.State())
	require.False(t, player.isPlaying())
	require.Equal(t, []domain.Alarm{original}, store.Alarms())

	_, _, ok := s.Ringing()
	require.False(t, ok)
}

// TestSnooze appends the snoozed copy and returns to Idle.
func TestSnooze(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	original := domain.Alarm{ID: "alarm_1", Name: "Late", Time: "23:58", SoundID: "sound_a", Enabled: true}
	s, store, player, _ := newTestScheduler(original)

	_, err := s.Snooze(ctx)
	require.ErrorIs(t, err, ErrNotRinging)

	s.Tick(ctx, at(23, 58, 0))

	snoozed, err := s.Snooze(ctx)
	require.NoError(t, err)
	require.Equal(t, "00:03", snoozed.Time)
	require.Equal(t, "Late (Snoozed)", snoozed.Name)
	require.Equal(t, Idle, s.State())
	require.Equal(t, 1, player.stops)

	alarms := store.Alarms()
	require.Len(t, alarms, 2)
	require.Equal(t, original, alarms[0])

	// The snooze alarm rings after midnight.
	a, fired := s.Tick(ctx, at(0, 3, 0))
	require.True(t, fired)
	require.Equal(t, snoozed.ID, a.ID)
}

// TestSnooze_PersistFailure still leaves the ringing state.
func TestSnooze_PersistFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, store, _, _ := newTestScheduler(
		domain.Alarm{ID: "alarm_1", Name: "Wake", Time: "07:00", SoundID: "default", Enabled: true},
	)
	store.snoozeErr = errTestPersist

	s.Tick(ctx, at(7, 0, 0))

	snoozed, err := s.Snooze(ctx)
	require.ErrorIs(t, err, errTestPersist)
	require.Equal(t, "07:05", snoozed.Time)
	require.Equal(t, Idle, s.State())
}

// TestRun polls until cancelled and stops the sound on exit.
func TestRun(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		wake := domain.ClockTimeOf(time.Now().Add(2 * time.Minute)).String()
		s, _, player, rec := newTestScheduler(
			domain.Alarm{ID: "alarm_1", Name: "Wake", Time: wake, SoundID: "default", Enabled: true},
		)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() {
			done <- s.Run(ctx)
		}()

		time.Sleep(90 * time.Second)
		synctest.Wait()
		require.Equal(t, Idle, s.State())

		time.Sleep(time.Minute)
		synctest.Wait()
		require.Equal(t, Ringing, s.State())
		require.True(t, player.isPlaying())

		rec.mu.Lock()
		require.Len(t, rec.messages, 1)
		rec.mu.Unlock()

		cancel()
		require.NoError(t, <-done)
		require.False(t, player.isPlaying())
	})
}

// TestState_String names every state.
func TestState_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "ringing", Ringing.String())
}
