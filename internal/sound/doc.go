// Package sound plays alarm sounds.
//
// An Engine owns at most one playback session. Sessions either loop the
// synthesized default tone or a user upload decoded from its data URI
// (WAV or MP3). Samples are rendered as mono signed 16-bit little-endian
// PCM and handed to an Output; OtoOutput sends them to the system audio
// device through oto.
package sound
