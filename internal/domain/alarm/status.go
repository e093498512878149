package alarm

import "time"

// Status is a point-in-time view of the daemon.
type Status struct {
	// Selection holds the defaults for new alarms and the theme.
	Selection Selection
	// SelectedSoundName is the display name of Selection.SoundID.
	SelectedSoundName string
	// Ringing is the ringing alarm, nil when idle.
	Ringing *Alarm
	// RingingSince is when Ringing started.
	RingingSince time.Time
	// Playback is the sound engine state name.
	Playback string
	// PlayingSound is the sound id of the active playback session.
	PlayingSound string
}
