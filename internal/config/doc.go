// Package config defines the settings shared by alarm-clockd and alarm-clock
// and provides helpers to load, validate and save them in YAML format.
//
// Missing optional values are filled with defaults by Validate, so a config
// file only needs to mention what differs from a local single-user setup.
package config
