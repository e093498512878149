// Package server runs the alarm-clockd daemon.
//
// The service type composes the store, the sound engine and the scheduler
// into the user-facing operations exposed over gRPC, and reports each
// outcome through the notifier. Run loads the settings, wires everything
// together and serves until the context is cancelled.
package server
