package timeinput

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFormat checks the clamping table for every digit sequence of length 0-4
// that exercises a distinct rule.
func TestFormat(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":     "00:00",
		"0":    "00:00",
		"1":    "10:00",
		"2":    "20:00",
		"3":    "03:00",
		"9":    "09:00",
		"07":   "07:00",
		"19":   "19:00",
		"20":   "20:00",
		"23":   "23:00",
		"29":   "23:00",
		"33":   "23:00",
		"99":   "23:00",
		"073":  "07:30",
		"078":  "07:50",
		"335":  "23:50",
		"0730": "07:30",
		"1259": "12:59",
		"2399": "23:59",
		"3359": "23:59",
		"0000": "00:00",
	}

	for in, want := range cases {
		var digits []int
		for _, r := range in {
			digits = append(digits, int(r-'0'))
		}

		require.Equal(t, want, Format(digits), "digits %q", in)
	}
}

// TestFormat_UsesLastFourDigits verifies that oversized input is windowed.
func TestFormat_UsesLastFourDigits(t *testing.T) {
	t.Parallel()

	require.Equal(t, "23:45", Format([]int{1, 2, 3, 4, 5}))
}

// TestMachine_SequentialKeystrokes drives the machine key by key.
func TestMachine_SequentialKeystrokes(t *testing.T) {
	t.Parallel()

	var commits []string

	m := New("06:00", func(v string) { commits = append(commits, v) })
	m.Focus()
	require.Equal(t, "00:00", m.Display())

	steps := []struct {
		key  rune
		want string
	}{
		{'3', "03:00"},
		{'3', "23:00"},
		{'5', "23:50"},
		{'9', "23:59"},
	}

	for _, step := range steps {
		require.True(t, m.Key(step.key))
		require.Equal(t, step.want, m.Display())
	}

	// Single-digit states are visible but not propagated.
	require.Equal(t, []string{"23:00", "23:50", "23:59"}, commits)
	require.Equal(t, "23:59", m.Committed())
}

// TestMachine_SlidingWindow verifies that a fifth digit drops the oldest one.
func TestMachine_SlidingWindow(t *testing.T) {
	t.Parallel()

	m := New("", nil)
	m.Focus()

	for _, r := range "1234" {
		m.Key(r)
	}

	require.Equal(t, []int{1, 2, 3, 4}, m.Digits())

	m.Key('5')
	require.Equal(t, []int{2, 3, 4, 5}, m.Digits())
	require.Equal(t, "23:45", m.Display())
}

// TestMachine_IgnoresNonDigits ensures other runes do not change state.
func TestMachine_IgnoresNonDigits(t *testing.T) {
	t.Parallel()

	m := New("08:15", nil)
	m.Focus()
	m.Key('1')

	for _, r := range "a:-. " {
		require.False(t, m.Key(r))
	}

	require.Equal(t, []int{1}, m.Digits())
	require.Equal(t, "10:00", m.Display())
}

// TestMachine_Backspace re-renders from the shortened buffer.
func TestMachine_Backspace(t *testing.T) {
	t.Parallel()

	m := New("", nil)
	m.Focus()

	for _, r := range "0745" {
		m.Key(r)
	}

	require.True(t, m.Backspace())
	require.Equal(t, "07:40", m.Display())
	require.True(t, m.Backspace())
	require.Equal(t, "07:00", m.Display())
	require.True(t, m.Backspace())
	require.Equal(t, "00:00", m.Display())
	require.True(t, m.Backspace())
	require.Equal(t, "00:00", m.Display())
	require.False(t, m.Backspace())
}

// TestMachine_Blur covers the three blur outcomes.
func TestMachine_Blur(t *testing.T) {
	t.Parallel()

	t.Run("empty buffer restores committed", func(t *testing.T) {
		t.Parallel()

		calls := 0
		m := New("06:45", func(string) { calls++ })
		m.Focus()
		m.Blur()

		require.Equal(t, "06:45", m.Display())
		require.Equal(t, "06:45", m.Committed())
		require.Zero(t, calls)
		require.False(t, m.Editing())
	})

	t.Run("single digit commits the hour", func(t *testing.T) {
		t.Parallel()

		var got string
		m := New("06:45", func(v string) { got = v })
		m.Focus()
		m.Key('7')
		m.Blur()

		require.Equal(t, "07:00", got)
		require.Equal(t, "07:00", m.Display())
	})

	t.Run("single low digit uses the tens rule", func(t *testing.T) {
		t.Parallel()

		m := New("06:45", nil)
		m.Focus()
		m.Key('2')
		m.Blur()

		require.Equal(t, "20:00", m.Committed())
	})

	t.Run("two or more digits keep the display", func(t *testing.T) {
		t.Parallel()

		m := New("06:45", nil)
		m.Focus()

		for _, r := range "214" {
			m.Key(r)
		}

		m.Blur()
		require.Equal(t, "21:40", m.Committed())
		require.Equal(t, "21:40", m.Display())
	})

	t.Run("backspace then blur commits the shortened value", func(t *testing.T) {
		t.Parallel()

		m := New("06:45", nil)
		m.Focus()

		for _, r := range "0745" {
			m.Key(r)
		}

		m.Backspace()
		m.Blur()
		require.Equal(t, "07:40", m.Committed())
	})
}

// TestMachine_Delete clears the buffer without committing.
func TestMachine_Delete(t *testing.T) {
	t.Parallel()

	m := New("06:45", nil)
	require.False(t, m.Delete())

	m.Focus()
	m.Key('1')
	require.True(t, m.Delete())
	require.Empty(t, m.Digits())
	require.Equal(t, "00:00", m.Display())

	m.Blur()
	require.Equal(t, "06:45", m.Committed())
}

// TestMachine_KeyOutsideEditFocuses starts a fresh buffer when unfocused.
func TestMachine_KeyOutsideEditFocuses(t *testing.T) {
	t.Parallel()

	m := New("06:45", nil)
	m.Key('3')

	require.True(t, m.Editing())
	require.Equal(t, "03:00", m.Display())
}

// TestMachine_Reset discards edits and re-seeds the committed value.
func TestMachine_Reset(t *testing.T) {
	t.Parallel()

	m := New("bogus", nil)
	require.Equal(t, "00:00", m.Display())

	m.Focus()
	m.Key('1')
	m.Reset("09:30")

	require.False(t, m.Editing())
	require.Empty(t, m.Digits())
	require.Equal(t, "09:30", m.Display())
	require.Equal(t, "09:30", m.Committed())
}

// TestType runs whole strings through the machine.
func TestType(t *testing.T) {
	t.Parallel()

	require.Equal(t, "07:30", Type("00:00", "0730"))
	require.Equal(t, "07:30", Type("00:00", "07:30"))
	require.Equal(t, "03:00", Type("00:00", "3"))
	require.Equal(t, "12:00", Type("12:00", ""))
	require.Equal(t, "23:45", Type("00:00", "12345"))
}
