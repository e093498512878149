// Package alarm contains core domain types for the alarm clock.
//
// It defines Alarm (a named daily trigger), Sound (an uploaded audio asset),
// Selection (defaults used for new alarms) and State (the whole persisted
// record), together with HH:MM clock arithmetic and the theme catalogue.
// Clone helpers avoid leaking internal references out of the store.
package alarm
