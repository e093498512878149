package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// TestFileRepository_NotFound verifies Load returns ErrNotFound for missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.json"))
	s, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, s)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns equal state.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "state.json")
	repo := NewFileRepository(file)

	want := &domain.State{
		Alarms: []domain.Alarm{
			{ID: "alarm_1", Name: "Wake", Time: "07:30", SoundID: "sound_1", Enabled: true},
			{ID: "alarm_2", Name: "Nap", Time: "14:05", SoundID: domain.DefaultSoundID},
		},
		Sounds: map[string]domain.Sound{
			"sound_1": {Name: "chime", Data: "data:audio/wav;base64,AAAA", Size: "3 B"},
		},
		SelectedSound: "sound_1",
		CurrentTheme:  "navy",
		SelectedTime:  "07:30",
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)

	info, err := os.Stat(file)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// No temporary files are left behind.
	entries, err := os.ReadDir(filepath.Dir(file))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

// TestFileRepository_WireKeys pins the persisted field names.
func TestFileRepository_WireKeys(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "state.json")
	repo := NewFileRepository(file)

	require.NoError(t, repo.Save(context.Background(), domain.NewState()))

	contents, err := os.ReadFile(file)
	require.NoError(t, err)

	for _, key := range []string{`"alarms"`, `"sounds"`, `"selectedSound"`, `"currentTheme"`, `"selectedTime"`} {
		require.Contains(t, string(contents), key)
	}
}

// TestFileRepository_MissingFieldsDefault fills absent keys with defaults.
func TestFileRepository_MissingFieldsDefault(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"alarms":[{"id":"alarm_1","time":"06:00","enabled":true}]}`), 0o600))

	got, err := NewFileRepository(file).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.DefaultTime, got.SelectedTime)
	require.Equal(t, domain.DefaultSoundID, got.SelectedSound)
	require.Equal(t, domain.DefaultTheme, got.CurrentTheme)
	require.NotNil(t, got.Sounds)
	require.Len(t, got.Alarms, 1)
	require.Equal(t, domain.DefaultName, got.Alarms[0].Name)
	require.Equal(t, domain.DefaultSoundID, got.Alarms[0].SoundID)
}

// TestFileRepository_Corrupt reports ErrCorrupt for undecodable files.
func TestFileRepository_Corrupt(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0o600))

	_, err := NewFileRepository(file).Load(context.Background())
	require.ErrorIs(t, err, ErrCorrupt)
}
