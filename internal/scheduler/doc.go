// Package scheduler fires alarms.
//
// A Scheduler polls the wall clock, compares the current minute with the
// enabled alarms and rings at most one alarm at a time. A ringing alarm is
// left by Dismiss or Snooze.
package scheduler
