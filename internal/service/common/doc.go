// Package common holds helpers shared by the command line clients.
//
// It wraps the clock service stub with per-call timeouts and the calling
// actor, and detects that actor (hostname/username) from the system.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
