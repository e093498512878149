// Package notify delivers short user-facing messages.
//
// Components report through the Notifier interface. The daemon logs every
// notification and keeps recent ones in a Feed that clients poll to render
// toasts.
package notify
