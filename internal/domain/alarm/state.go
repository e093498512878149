package alarm

import "maps"

// DefaultTime is the selected time on first run.
const DefaultTime = "00:00"

// Selection holds the process-wide defaults used when constructing alarms.
type Selection struct {
	// Time is the selected "HH:MM" for the next alarm.
	Time string
	// SoundID is the selected sound or DefaultSoundID.
	SoundID string
	// Theme is the current theme id.
	Theme string
}

// DefaultSelection returns the first-run selection.
func DefaultSelection() Selection {
	return Selection{
		Time:    DefaultTime,
		SoundID: DefaultSoundID,
		Theme:   DefaultTheme,
	}
}

// State is the complete persisted record.
type State struct {
	// Alarms in insertion order, which is also the firing tie-break order.
	Alarms []Alarm `json:"alarms"`
	// Sounds keyed by sound id.
	Sounds map[string]Sound `json:"sounds"`
	// SelectedSound is the default sound for new alarms.
	SelectedSound string `json:"selectedSound"`
	// CurrentTheme is the theme id applied by clients.
	CurrentTheme string `json:"currentTheme"`
	// SelectedTime is the default time for new alarms.
	SelectedTime string `json:"selectedTime"`
}

// NewState returns the empty first-run state.
func NewState() *State {
	selection := DefaultSelection()

	return &State{
		Alarms:        []Alarm{},
		Sounds:        map[string]Sound{},
		SelectedSound: selection.SoundID,
		CurrentTheme:  selection.Theme,
		SelectedTime:  selection.Time,
	}
}

// Normalize fills missing fields with defaults and repairs values that
// would break invariants, such as a malformed selected time.
func (s *State) Normalize() {
	if s.Alarms == nil {
		s.Alarms = []Alarm{}
	}

	if s.Sounds == nil {
		s.Sounds = map[string]Sound{}
	}

	if s.SelectedSound == "" {
		s.SelectedSound = DefaultSoundID
	}

	if ValidateTheme(s.CurrentTheme) != nil {
		s.CurrentTheme = DefaultTheme
	}

	if !IsValidClockTime(s.SelectedTime) {
		s.SelectedTime = DefaultTime
	}

	// Alarms with an unusable time could never fire and would break the
	// HH:MM invariant for readers.
	alarms := s.Alarms[:0]

	for _, a := range s.Alarms {
		if a.ID == "" || !IsValidClockTime(a.Time) {
			continue
		}

		a.Name = NormalizeName(a.Name)
		if a.SoundID == "" {
			a.SoundID = DefaultSoundID
		}

		alarms = append(alarms, a)
	}

	s.Alarms = alarms
}

// Selection extracts the selection defaults.
func (s *State) Selection() Selection {
	return Selection{
		Time:    s.SelectedTime,
		SoundID: s.SelectedSound,
		Theme:   s.CurrentTheme,
	}
}

// Clone returns a deep copy of the state to avoid leaking internal references.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}

	alarms := make([]Alarm, len(s.Alarms))
	copy(alarms, s.Alarms)

	return &State{
		Alarms:        alarms,
		Sounds:        maps.Clone(s.Sounds),
		SelectedSound: s.SelectedSound,
		CurrentTheme:  s.CurrentTheme,
		SelectedTime:  s.SelectedTime,
	}
}
