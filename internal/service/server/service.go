package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/notify"
	"github.com/oshokin/alarm-clock/internal/scheduler"
	"github.com/oshokin/alarm-clock/internal/sound"
	"github.com/oshokin/alarm-clock/internal/store"
)

// service encapsulates the alarm clock business logic.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// store holds alarms, sounds and selection.
	store *store.Store
	// engine plays ringing sounds and previews.
	engine *sound.Engine
	// scheduler fires alarms.
	scheduler *scheduler.Scheduler
	// notifier receives user-facing messages.
	notifier notify.Notifier
	// feed keeps recent messages for clients.
	feed *notify.Feed
	// preview bounds sound previews.
	preview time.Duration
	// maxUpload is the largest accepted upload in bytes; 0 disables the check.
	maxUpload int64
}

// serviceOptions are the collaborators of a service.
type serviceOptions struct {
	Store           *store.Store
	Output          sound.Output
	SampleRate      int
	PollInterval    time.Duration
	RingTimeout     time.Duration
	PreviewDuration time.Duration
	NotificationTTL time.Duration
	MaxUploadSize   int64
}

// newService wires the engine, the notifier chain and the scheduler around st.
func newService(opts serviceOptions) *service {
	feed := notify.NewFeed(opts.NotificationTTL)
	notifier := notify.Multi{notify.LogNotifier{}, feed}
	engine := sound.NewEngine(opts.Output, opts.SampleRate)

	return &service{
		store:  opts.Store,
		engine: engine,
		scheduler: scheduler.New(opts.Store, engine, notifier, scheduler.Options{
			PollInterval: opts.PollInterval,
			RingTimeout:  opts.RingTimeout,
		}),
		notifier:  notifier,
		feed:      feed,
		preview:   opts.PreviewDuration,
		maxUpload: opts.MaxUploadSize,
	}
}

// Snapshot returns a copy of the whole state.
func (s *service) Snapshot(context.Context) *domain.State {
	return s.store.Snapshot()
}

// AddAlarm appends an alarm. A non-empty hhmm or soundID updates the
// selection first, as the time field and the sound picker do.
func (s *service) AddAlarm(ctx context.Context, name, hhmm, soundID string) (domain.Alarm, error) {
	if hhmm != "" {
		if err := s.store.SetSelectedTime(ctx, hhmm); err != nil {
			return domain.Alarm{}, err
		}
	}

	if soundID != "" {
		if _, err := s.store.SelectSound(ctx, soundID); err != nil {
			return domain.Alarm{}, err
		}
	}

	a, err := s.store.AddAlarm(ctx, name)
	if err != nil {
		return a, err
	}

	s.notifier.Show(ctx, fmt.Sprintf("Alarm \"%s\" added for %s", a.Name, a.Time), notify.SeveritySuccess)

	return a, nil
}

// RemoveAlarm deletes an alarm.
func (s *service) RemoveAlarm(ctx context.Context, id string) (domain.Alarm, error) {
	a, err := s.store.RemoveAlarm(ctx, id)
	if err != nil {
		return a, err
	}

	s.notifier.Show(ctx, fmt.Sprintf("Alarm \"%s\" deleted", a.Name), notify.SeverityWarning)

	return a, nil
}

// ToggleAlarm flips the enabled flag.
func (s *service) ToggleAlarm(ctx context.Context, id string) (domain.Alarm, error) {
	a, err := s.store.ToggleAlarm(ctx, id)
	if err != nil {
		return a, err
	}

	if a.Enabled {
		s.notifier.Show(ctx, "Alarm enabled", notify.SeveritySuccess)
	} else {
		s.notifier.Show(ctx, "Alarm disabled", notify.SeverityWarning)
	}

	return a, nil
}

// ClearAlarms deletes every alarm.
func (s *service) ClearAlarms(ctx context.Context) (int, error) {
	n, err := s.store.ClearAlarms(ctx)
	if err != nil {
		return n, err
	}

	if n == 0 {
		s.notifier.Show(ctx, "No alarms to clear", notify.SeverityWarning)

		return 0, nil
	}

	s.notifier.Show(ctx, "All alarms cleared", notify.SeveritySuccess)

	return n, nil
}

// UploadSound stores an audio file and selects it.
func (s *service) UploadSound(ctx context.Context, fileName, mediaType string, data []byte) (string, domain.Sound, error) {
	if err := sound.CheckSize(int64(len(data)), s.maxUpload); err != nil {
		s.notifier.Show(ctx, "Error uploading file", notify.SeverityDanger)

		return "", domain.Sound{}, err
	}

	snd, err := sound.NewSound(fileName, mediaType, data)
	switch {
	case errors.Is(err, sound.ErrNotAudio):
		s.notifier.Show(ctx, "Please select an audio file", notify.SeverityDanger)

		return "", domain.Sound{}, err
	case err != nil:
		s.notifier.Show(ctx, "Error uploading file", notify.SeverityDanger)

		return "", domain.Sound{}, err
	}

	id := domain.NewSoundID()

	if _, err = sound.DecodeDataURI(snd.Data, sound.DefaultSampleRate); err != nil {
		// Kept anyway: the scheduler falls back to the default tone.
		logger.WarnKV(ctx, "Uploaded sound cannot be decoded", "sound_id", id, "error", err)
	}

	if err = s.store.AddSound(ctx, id, snd); err != nil {
		s.notifier.Show(ctx, "Error uploading file", notify.SeverityDanger)

		return "", domain.Sound{}, err
	}

	s.notifier.Show(ctx, "Sound uploaded successfully!", notify.SeveritySuccess)

	return id, snd, nil
}

// RemoveSound deletes a stored sound and stops it if it is playing.
func (s *service) RemoveSound(ctx context.Context, id string) (domain.Sound, error) {
	snd, err := s.store.RemoveSound(ctx, id)
	if err != nil {
		return snd, err
	}

	if s.engine.Current() == id {
		s.engine.Stop(ctx)
	}

	s.notifier.Show(ctx, "Sound deleted", notify.SeverityWarning)

	return snd, nil
}

// SelectSound sets the default sound for new alarms.
func (s *service) SelectSound(ctx context.Context, id string) (string, error) {
	selected, err := s.store.SelectSound(ctx, id)
	if err != nil {
		return selected, err
	}

	label := domain.SoundLabel(selected, s.store.Sounds())
	s.notifier.Show(ctx, "Selected sound: "+label, notify.SeveritySuccess)

	return selected, nil
}

// PlaySound previews a sound for the preview duration.
func (s *service) PlaySound(ctx context.Context, id string) bool {
	if s.refusePreview(ctx) {
		return false
	}

	s.notifier.Show(ctx, "Playing sound preview...", notify.SeveritySuccess)

	return s.engine.Play(ctx, id, s.store.Sounds(), s.preview)
}

// TestSound previews the selected sound.
func (s *service) TestSound(ctx context.Context) bool {
	if s.refusePreview(ctx) {
		return false
	}

	id := s.store.ResolveSound(s.store.Selection().SoundID)

	s.notifier.Show(ctx, "Testing alarm sound...", notify.SeveritySuccess)

	return s.engine.Play(ctx, id, s.store.Sounds(), s.preview)
}

// refusePreview keeps a ringing alarm audible: a preview would replace the
// ring sound and stop after the preview duration.
func (s *service) refusePreview(ctx context.Context) bool {
	if s.scheduler.State() != scheduler.Ringing {
		return false
	}

	s.notifier.Show(ctx, "Snooze or dismiss the alarm first", notify.SeverityWarning)

	return true
}

// StopSound stops any playback, including a ringing alarm's sound.
func (s *service) StopSound(ctx context.Context) {
	s.engine.Stop(ctx)
}

// SetSelectedTime sets the default time for new alarms.
func (s *service) SetSelectedTime(ctx context.Context, hhmm string) error {
	return s.store.SetSelectedTime(ctx, hhmm)
}

// SetTheme sets the client theme.
func (s *service) SetTheme(ctx context.Context, theme string) error {
	if err := s.store.SetTheme(ctx, theme); err != nil {
		return err
	}

	s.notifier.Show(ctx, "Theme changed to "+theme, notify.SeveritySuccess)

	return nil
}

// Status reports the selection, the ringing alarm and playback.
func (s *service) Status(context.Context) domain.Status {
	selection := s.store.Selection()

	status := domain.Status{
		Selection:         selection,
		SelectedSoundName: domain.SoundLabel(selection.SoundID, s.store.Sounds()),
		Playback:          s.engine.State().String(),
		PlayingSound:      s.engine.Current(),
	}

	if a, since, ok := s.scheduler.Ringing(); ok {
		status.Ringing = &a
		status.RingingSince = since
	}

	return status
}

// Notifications returns the messages that have not expired.
func (s *service) Notifications(context.Context) []notify.Notification {
	return s.feed.Active()
}

// Snooze snoozes the ringing alarm.
func (s *service) Snooze(ctx context.Context) (domain.Alarm, error) {
	a, err := s.scheduler.Snooze(ctx)
	if errors.Is(err, scheduler.ErrNotRinging) {
		return a, err
	}

	// The snooze alarm exists in memory even when persisting it failed.
	s.notifier.Show(ctx, fmt.Sprintf("Alarm snoozed for %d minutes", domain.SnoozeMinutes), notify.SeveritySuccess)

	return a, err
}

// Dismiss dismisses the ringing alarm.
func (s *service) Dismiss(ctx context.Context) (domain.Alarm, error) {
	a, err := s.scheduler.Dismiss(ctx)
	if err != nil {
		return a, err
	}

	s.notifier.Show(ctx, "Alarm dismissed", notify.SeveritySuccess)

	return a, nil
}
