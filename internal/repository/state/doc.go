// Package state implements persistence for the alarm clock State.
//
// The FileRepository stores and loads the whole record as one JSON document
// and exposes a Repository interface that the store depends on.
package state
