// Package client implements the alarm-clock command line operations.
//
// Every command connects to alarm-clockd, performs one call and prints the
// result as a table or a short status line.
package client
