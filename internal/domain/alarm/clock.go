package alarm

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// ErrInvalidTime is returned when a string is not a valid 24h "HH:MM" time.
var ErrInvalidTime = errors.New("time must be in HH:MM 24h format")

// clockTimePattern is the canonical shape of an alarm time.
var clockTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ClockTime is a time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses a strict "HH:MM" string.
func ParseClockTime(s string) (ClockTime, error) {
	if !clockTimePattern.MatchString(s) {
		return ClockTime{}, fmt.Errorf("%q: %w", s, ErrInvalidTime)
	}

	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')

	return ClockTime{Hour: hour, Minute: minute}, nil
}

// IsValidClockTime reports whether s is a strict "HH:MM" string.
func IsValidClockTime(s string) bool {
	return clockTimePattern.MatchString(s)
}

// ClockTimeOf extracts the local wall-clock minute from t.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

// AddMinutes shifts the time using modular day arithmetic, so 23:58 + 5 = 00:03.
func (c ClockTime) AddMinutes(minutes int) ClockTime {
	total := (c.Hour*minutesPerHour + c.Minute + minutes) % minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}

	return ClockTime{Hour: total / minutesPerHour, Minute: total % minutesPerHour}
}

// String renders the zero-padded "HH:MM" form.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
