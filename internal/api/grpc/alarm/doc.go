// Package alarm implements the gRPC transport for the alarm clock daemon.
//
// The service descriptor is declared by hand and messages are plain Go
// structs carried by a JSON codec registered under the "json" content
// subtype. Server adapts a business Service to the wire and maps its
// errors to status codes; ClockServiceClient is the typed stub used by the CLI and TUI.
package alarm
