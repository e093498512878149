// Package store owns the alarm clock state: the alarm list, the uploaded
// sounds and the selection defaults.
//
// Every mutation is written through the Repository before the call returns,
// and readers always receive copies.
package store
