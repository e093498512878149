package alarm

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultSoundID is the sentinel for the built-in synthesized tone.
	DefaultSoundID = "default"
	// DefaultSoundName is how the built-in tone is presented to users.
	DefaultSoundName = "Default Beep"
	// DefaultName is used when an alarm is created with a blank name.
	DefaultName = "Alarm"
	// SnoozeSuffix is appended to the name of a snoozed copy.
	SnoozeSuffix = " (Snoozed)"
	// SnoozeMinutes is the offset applied when snoozing.
	SnoozeMinutes = 5

	alarmIDPrefix = "alarm_"
	soundIDPrefix = "sound_"
)

// Alarm is a user-defined daily time trigger.
type Alarm struct {
	// ID is an opaque unique token.
	ID string `json:"id"`
	// Name is the display name, never blank.
	Name string `json:"name"`
	// Time is the trigger time in 24h "HH:MM" form.
	Time string `json:"time"`
	// SoundID references a Sound or DefaultSoundID.
	SoundID string `json:"soundId"`
	// Enabled reports whether the alarm participates in firing.
	Enabled bool `json:"enabled"`
}

// Sound is a stored audio asset uploaded by the user.
type Sound struct {
	// Name is the display name (file name without extension).
	Name string `json:"name"`
	// Data is a self-contained data URI with the encoded audio payload.
	Data string `json:"data"`
	// Size is a human-readable byte-size label.
	Size string `json:"size"`
}

// NewAlarmID returns a fresh alarm identifier.
func NewAlarmID() string {
	return alarmIDPrefix + uuid.NewString()
}

// NewSoundID returns a fresh sound identifier.
func NewSoundID() string {
	return soundIDPrefix + uuid.NewString()
}

// NormalizeName trims the name and substitutes DefaultName for blanks.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}

	return name
}

// Snoozed builds the additive copy of a fired alarm, SnoozeMinutes later.
// The receiver is left untouched.
func (a Alarm) Snoozed() Alarm {
	t, err := ParseClockTime(a.Time)
	if err != nil {
		// Malformed times never reach the store; fall back to midnight.
		t = ClockTime{}
	}

	return Alarm{
		ID:      NewAlarmID(),
		Name:    a.Name + SnoozeSuffix,
		Time:    t.AddMinutes(SnoozeMinutes).String(),
		SoundID: a.SoundID,
		Enabled: true,
	}
}

// SoundLabel returns the display name of the sound id within the table,
// falling back to DefaultSoundName for the sentinel or dangling references.
func SoundLabel(id string, sounds map[string]Sound) string {
	if sound, ok := sounds[id]; ok && id != DefaultSoundID {
		return sound.Name
	}

	return DefaultSoundName
}
