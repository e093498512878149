package client

import (
	"context"
	"errors"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/timeinput"
)

// ErrNoSuchPosition is returned when a list position is out of range.
var ErrNoSuchPosition = errors.New("no alarm at position")

// ListAlarms prints the alarm table.
func (s *Session) ListAlarms(ctx context.Context) error {
	alarms, err := s.client.ListAlarms(ctx)
	if err != nil {
		return err
	}

	if len(alarms) == 0 {
		s.printf("No alarms set\n")

		return nil
	}

	s.printf("%s\n", renderAlarms(alarms))

	return nil
}

// AddAlarm creates an alarm. hhmm may be a time or a digit sequence typed
// into the time field; empty keeps the selected time.
func (s *Session) AddAlarm(ctx context.Context, name, hhmm, soundID string) error {
	if hhmm != "" && !domain.IsValidClockTime(hhmm) {
		status, err := s.client.Status(ctx)
		if err != nil {
			return err
		}

		hhmm = timeinput.Type(status.Selection.Time, hhmm)
	}

	a, err := s.client.AddAlarm(ctx, name, hhmm, soundID)
	if err != nil {
		return err
	}

	s.printf("Alarm %q added for %s (%s)\n", a.Name, a.Time, a.SoundName)

	return nil
}

// RemoveAlarm deletes an alarm by id or position.
func (s *Session) RemoveAlarm(ctx context.Context, ref string) error {
	id, err := s.resolveAlarmID(ctx, ref)
	if err != nil {
		return err
	}

	a, err := s.client.RemoveAlarm(ctx, id)
	if err != nil {
		return err
	}

	s.printf("Alarm %q deleted\n", a.Name)

	return nil
}

// ToggleAlarm flips an alarm by id or position.
func (s *Session) ToggleAlarm(ctx context.Context, ref string) error {
	id, err := s.resolveAlarmID(ctx, ref)
	if err != nil {
		return err
	}

	a, err := s.client.ToggleAlarm(ctx, id)
	if err != nil {
		return err
	}

	s.printf("Alarm %q %s\n", a.Name, enabledLabel(a.Enabled))

	return nil
}

// ClearAlarms deletes every alarm.
func (s *Session) ClearAlarms(ctx context.Context) error {
	n, err := s.client.ClearAlarms(ctx)
	if err != nil {
		return err
	}

	if n == 0 {
		s.printf("No alarms to clear\n")

		return nil
	}

	s.printf("All alarms cleared (%d)\n", n)

	return nil
}

// SetTime sets the selected time. Anything that is not already "HH:MM" is
// treated as keystrokes typed into the time field.
func (s *Session) SetTime(ctx context.Context, input string) error {
	hhmm := input
	if !domain.IsValidClockTime(hhmm) {
		status, err := s.client.Status(ctx)
		if err != nil {
			return err
		}

		hhmm = timeinput.Type(status.Selection.Time, input)
	}

	selection, err := s.client.SetSelectedTime(ctx, hhmm)
	if err != nil {
		return err
	}

	s.printf("Selected time: %s\n", selection.Time)

	return nil
}

// SetTheme changes the theme.
func (s *Session) SetTheme(ctx context.Context, theme string) error {
	selection, err := s.client.SetTheme(ctx, theme)
	if err != nil {
		return err
	}

	s.printf("Theme changed to %s\n", selection.Theme)

	return nil
}

// Snooze snoozes the ringing alarm.
func (s *Session) Snooze(ctx context.Context) error {
	a, err := s.client.Snooze(ctx)
	if err != nil {
		return err
	}

	s.printf("Alarm snoozed for %d minutes: %q at %s\n", domain.SnoozeMinutes, a.Name, a.Time)

	return nil
}

// Dismiss dismisses the ringing alarm.
func (s *Session) Dismiss(ctx context.Context) error {
	a, err := s.client.Dismiss(ctx)
	if err != nil {
		return err
	}

	s.printf("Alarm %q dismissed\n", a.Name)

	return nil
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}

	return "disabled"
}

// Status prints the selection, playback and the ringing alarm.
func (s *Session) Status(ctx context.Context) error {
	status, err := s.client.Status(ctx)
	if err != nil {
		return err
	}

	s.printf("%s\n", renderStatus(status))

	return nil
}
