// Package tui provides the Bubble Tea terminal UI of alarm-clock.
//
// The model polls the daemon for status once per poll interval, refreshes
// the clock ten times a second and feeds time-field keystrokes through
// timeinput.Machine.
package tui
