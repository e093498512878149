// Package timeinput converts keypad-style digit keystrokes into a valid
// 24h "HH:MM" value.
//
// The Machine keeps a sliding window of at most four digits and re-renders the
// display from that window after every keystroke, clamping each position so
// that the display is always a structurally valid time. Partial input is
// visible immediately but is only committed upstream once it is "valid
// enough" (two digits or more, or an explicit blur).
package timeinput
