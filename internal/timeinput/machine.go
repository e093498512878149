package timeinput

import (
	"fmt"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// MaxDigits is the size of the keystroke window.
const MaxDigits = 4

// emptyDisplay is shown while editing with nothing typed yet.
const emptyDisplay = "00:00"

// Machine is the keystroke transducer behind a time entry field.
// It is not safe for concurrent use.
type Machine struct {
	// digits is the sliding window of accepted digits, oldest first.
	digits []int
	// display is the rendered "HH:MM" shown to the user.
	display string
	// committed is the last value propagated upstream.
	committed string
	// editing reports whether the field currently has focus.
	editing bool
	// onCommit is invoked with every newly committed value.
	onCommit func(string)
}

// New creates a machine showing committed. Invalid values fall back to "00:00".
// onCommit may be nil.
func New(committed string, onCommit func(string)) *Machine {
	if !domain.IsValidClockTime(committed) {
		committed = emptyDisplay
	}

	return &Machine{
		digits:    make([]int, 0, MaxDigits),
		display:   committed,
		committed: committed,
		onCommit:  onCommit,
	}
}

// Focus enters edit mode: the buffer is cleared and the display reset.
func (m *Machine) Focus() {
	m.editing = true
	m.digits = m.digits[:0]
	m.display = emptyDisplay
}

// Blur leaves edit mode, committing whatever the buffer holds.
func (m *Machine) Blur() {
	if !m.editing {
		return
	}

	switch len(m.digits) {
	case 0:
		m.display = m.committed
	case 1:
		m.display = Format(m.digits)
		m.commit(m.display)
	default:
		m.commit(m.display)
	}

	m.editing = false
	m.digits = m.digits[:0]
}

// Key feeds one keystroke. Digits are appended to the window; any other rune
// is swallowed. A digit typed outside edit mode focuses the field first.
// It reports whether the keystroke changed the state.
func (m *Machine) Key(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}

	if !m.editing {
		m.Focus()
	}

	if len(m.digits) == MaxDigits {
		// Slide the window: drop the oldest digit.
		copy(m.digits, m.digits[1:])
		m.digits = m.digits[:MaxDigits-1]
	}

	m.digits = append(m.digits, int(r-'0'))
	m.display = Format(m.digits)

	if len(m.digits) >= 2 {
		m.commit(m.display)
	}

	return true
}

// Backspace removes the most recent digit and re-renders.
func (m *Machine) Backspace() bool {
	if !m.editing || len(m.digits) == 0 {
		return false
	}

	m.digits = m.digits[:len(m.digits)-1]
	m.display = Format(m.digits)

	return true
}

// Delete clears the whole buffer without committing anything.
func (m *Machine) Delete() bool {
	if !m.editing {
		return false
	}

	m.digits = m.digits[:0]
	m.display = emptyDisplay

	return true
}

// Reset leaves edit mode and shows committed, discarding the buffer.
func (m *Machine) Reset(committed string) {
	if !domain.IsValidClockTime(committed) {
		committed = emptyDisplay
	}

	m.editing = false
	m.digits = m.digits[:0]
	m.display = committed
	m.committed = committed
}

// Display returns the current "HH:MM" shown to the user.
func (m *Machine) Display() string {
	return m.display
}

// Committed returns the last value propagated upstream.
func (m *Machine) Committed() string {
	return m.committed
}

// Digits returns a copy of the buffered digits, oldest first.
func (m *Machine) Digits() []int {
	out := make([]int, len(m.digits))
	copy(out, m.digits)

	return out
}

// Editing reports whether the machine is in edit mode.
func (m *Machine) Editing() bool {
	return m.editing
}

func (m *Machine) commit(value string) {
	if value == m.committed {
		return
	}

	m.committed = value

	if m.onCommit != nil {
		m.onCommit(value)
	}
}

// Format renders a digit window (at most the last four digits are used)
// into a clamped "HH:MM".
func Format(digits []int) string {
	if len(digits) > MaxDigits {
		digits = digits[len(digits)-MaxDigits:]
	}

	switch len(digits) {
	case 0:
		return emptyDisplay
	case 1:
		d0 := digits[0]
		if d0 > 2 {
			// A lone 3-9 can only be a single-digit hour.
			return fmt.Sprintf("%02d:00", d0)
		}

		return fmt.Sprintf("%02d:00", d0*10)
	}

	hour := clampHour(digits[0], digits[1])

	switch len(digits) {
	case 2:
		return fmt.Sprintf("%02d:00", hour)
	case 3:
		return fmt.Sprintf("%02d:%d0", hour, min(digits[2], 5))
	default:
		return fmt.Sprintf("%02d:%d%d", hour, min(digits[2], 5), min(digits[3], 9))
	}
}

// clampHour combines the two hour digits. The tens digit is capped at 2 and,
// in the twenties, the units digit at 3.
func clampHour(tens, units int) int {
	tens = min(tens, 2)
	if tens < 2 {
		return tens*10 + units
	}

	return 20 + min(units, 3)
}

// Type runs a whole keystroke string through a focused machine seeded with
// committed and returns the value committed on blur. Non-digits are swallowed.
func Type(committed, keys string) string {
	m := New(committed, nil)
	m.Focus()

	for _, r := range keys {
		m.Key(r)
	}

	m.Blur()

	return m.Committed()
}
