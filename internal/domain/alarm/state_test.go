package alarm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewState verifies first-run defaults.
func TestNewState(t *testing.T) {
	t.Parallel()

	s := NewState()

	require.Empty(t, s.Alarms)
	require.NotNil(t, s.Sounds)
	require.Equal(t, DefaultSelection(), s.Selection())
}

// TestStateNormalize fills missing fields and drops unusable alarms.
func TestStateNormalize(t *testing.T) {
	t.Parallel()

	s := &State{
		Alarms: []Alarm{
			{ID: "alarm_1", Name: " ", Time: "06:30", Enabled: true},
			{ID: "alarm_2", Name: "Broken", Time: "25:00"},
			{ID: "", Name: "No id", Time: "07:00"},
		},
		CurrentTheme: "neon",
		SelectedTime: "bogus",
	}

	s.Normalize()

	require.Len(t, s.Alarms, 1)
	require.Equal(t, DefaultName, s.Alarms[0].Name)
	require.Equal(t, DefaultSoundID, s.Alarms[0].SoundID)
	require.NotNil(t, s.Sounds)
	require.Equal(t, DefaultSoundID, s.SelectedSound)
	require.Equal(t, DefaultTheme, s.CurrentTheme)
	require.Equal(t, DefaultTime, s.SelectedTime)
}

// TestStateClone verifies that Clone copies collections instead of sharing them.
func TestStateClone(t *testing.T) {
	t.Parallel()

	require.Nil(t, (*State)(nil).Clone())

	s := NewState()
	s.Alarms = append(s.Alarms, Alarm{ID: "alarm_1", Name: "A", Time: "01:00", SoundID: DefaultSoundID})
	s.Sounds["sound_1"] = Sound{Name: "Birds"}

	c := s.Clone()
	require.Equal(t, s, c)

	c.Alarms[0].Enabled = true
	c.Sounds["sound_2"] = Sound{Name: "Rain"}

	require.False(t, s.Alarms[0].Enabled)
	require.NotContains(t, s.Sounds, "sound_2")
}
