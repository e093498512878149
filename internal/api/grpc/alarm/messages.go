package alarm

import "time"

// Empty is used by methods without parameters or results.
type Empty struct{}

// Alarm is the wire form of an alarm.
type Alarm struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Time      string `json:"time"`
	SoundID   string `json:"soundId"`
	SoundName string `json:"soundName"`
	Enabled   bool   `json:"enabled"`
}

// AlarmList is returned by ListAlarms.
type AlarmList struct {
	Alarms []Alarm `json:"alarms"`
}

// AddAlarmRequest creates an alarm. Time and SoundID, when set, update the
// selection before the alarm is built from it.
type AddAlarmRequest struct {
	Name    string `json:"name"`
	Time    string `json:"time,omitempty"`
	SoundID string `json:"soundId,omitempty"`
}

// AlarmRequest addresses one alarm.
type AlarmRequest struct {
	ID string `json:"id"`
}

// AlarmResponse carries one alarm.
type AlarmResponse struct {
	Alarm Alarm `json:"alarm"`
}

// ClearAlarmsResponse reports how many alarms were removed.
type ClearAlarmsResponse struct {
	Cleared int `json:"cleared"`
}

// Sound is the wire form of a stored sound, without its payload.
type Sound struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     string `json:"size"`
	Selected bool   `json:"selected"`
}

// SoundList is returned by ListSounds. The default tone is always first.
type SoundList struct {
	Sounds        []Sound `json:"sounds"`
	SelectedSound string  `json:"selectedSound"`
}

// UploadSoundRequest carries an audio file. MediaType is detected from
// FileName when empty.
type UploadSoundRequest struct {
	FileName  string `json:"fileName"`
	MediaType string `json:"mediaType,omitempty"`
	Data      []byte `json:"data"`
}

// SoundRequest addresses one sound.
type SoundRequest struct {
	ID string `json:"id"`
}

// SoundResponse carries one sound.
type SoundResponse struct {
	Sound Sound `json:"sound"`
}

// PlaybackResponse reports whether a preview started.
type PlaybackResponse struct {
	Playing bool `json:"playing"`
}

// SetSelectedTimeRequest sets the default time for new alarms.
type SetSelectedTimeRequest struct {
	Time string `json:"time"`
}

// SetThemeRequest sets the client theme.
type SetThemeRequest struct {
	Theme string `json:"theme"`
}

// Selection is the wire form of the selection defaults.
type Selection struct {
	Time      string `json:"time"`
	SoundID   string `json:"soundId"`
	SoundName string `json:"soundName"`
	Theme     string `json:"theme"`
}

// Notification is a recent user-facing message.
type Notification struct {
	ID        uint64    `json:"id"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StatusResponse is returned by GetStatus.
type StatusResponse struct {
	Selection     Selection      `json:"selection"`
	State         string         `json:"state"`
	Ringing       *Alarm         `json:"ringing,omitempty"`
	RingingSince  time.Time      `json:"ringingSince,omitzero"`
	Playback      string         `json:"playback"`
	PlayingSound  string         `json:"playingSound,omitempty"`
	Notifications []Notification `json:"notifications"`
	ServerTime    time.Time      `json:"serverTime"`
	Version       string         `json:"version"`
}
