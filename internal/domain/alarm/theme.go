package alarm

import (
	"errors"
	"fmt"
	"slices"
)

// DefaultTheme is the theme used on first run.
const DefaultTheme = "dark"

// ErrUnknownTheme is returned when a theme id is not in the catalogue.
var ErrUnknownTheme = errors.New("unknown theme")

// themes lists the supported theme ids in presentation order.
//
//nolint:gochecknoglobals // Read-only catalogue.
var themes = []string{"dark", "light", "navy", "amber"}

// Themes returns the supported theme ids.
func Themes() []string {
	return slices.Clone(themes)
}

// ValidateTheme checks that id is a supported theme.
func ValidateTheme(id string) error {
	if !slices.Contains(themes, id) {
		return fmt.Errorf("%q: %w", id, ErrUnknownTheme)
	}

	return nil
}

// NextTheme returns the theme following id, wrapping around.
// Unknown ids yield DefaultTheme.
func NextTheme(id string) string {
	i := slices.Index(themes, id)
	if i < 0 {
		return DefaultTheme
	}

	return themes[(i+1)%len(themes)]
}
