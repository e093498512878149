package sound

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFormatSize covers the unit boundaries.
func TestFormatSize(t *testing.T) {
	t.Parallel()

	cases := map[int64]string{
		0:       "0 B",
		1023:    "1023 B",
		1024:    "1.0 KB",
		1536:    "1.5 KB",
		1048575: "1024.0 KB",
		1048576: "1.0 MB",
		5767168: "5.5 MB",
	}

	for n, want := range cases {
		require.Equal(t, want, FormatSize(n), n)
	}
}

// TestCheckMediaType accepts only audio types.
func TestCheckMediaType(t *testing.T) {
	t.Parallel()

	require.NoError(t, CheckMediaType("audio/mpeg"))
	require.NoError(t, CheckMediaType("Audio/WAV"))
	require.ErrorIs(t, CheckMediaType("image/png"), ErrNotAudio)
	require.ErrorIs(t, CheckMediaType(""), ErrNotAudio)
}

func TestCheckSize(t *testing.T) {
	t.Parallel()

	require.NoError(t, CheckSize(1024, 1024))
	require.NoError(t, CheckSize(1<<30, 0))

	err := CheckSize(3*megabyte, 2*megabyte)
	require.ErrorIs(t, err, ErrFileTooLarge)
	require.EqualError(t, err, "3.0 MB, limit 2.0 MB: file is too large")
}

// TestDetectMediaType maps common audio extensions.
func TestDetectMediaType(t *testing.T) {
	t.Parallel()

	require.Equal(t, "audio/mpeg", DetectMediaType("song.MP3"))
	require.Equal(t, "audio/wav", DetectMediaType("/tmp/bell.wav"))
	require.Empty(t, DetectMediaType("README"))
}

// TestNewSound builds the stored record.
func TestNewSound(t *testing.T) {
	t.Parallel()

	s, err := NewSound("/home/me/rooster.call.mp3", "", []byte("abc"))
	require.NoError(t, err)
	require.Equal(t, "rooster.call", s.Name)
	require.Equal(t, "3 B", s.Size)
	require.True(t, strings.HasPrefix(s.Data, "data:audio/mpeg;base64,"))

	mediaType, data, err := ParseDataURI(s.Data)
	require.NoError(t, err)
	require.Equal(t, "audio/mpeg", mediaType)
	require.Equal(t, []byte("abc"), data)

	_, err = NewSound("notes.txt", "text/plain", []byte("abc"))
	require.ErrorIs(t, err, ErrNotAudio)

	_, err = NewSound("bell.wav", "", nil)
	require.ErrorIs(t, err, ErrEmptyFile)

	require.Equal(t, "bell", SoundName("bell.wav"))
}
