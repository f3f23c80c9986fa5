// Package config defines configuration structures for the xfer CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (XFER_ prefix)
//   - YAML configuration file
//
// Sizes accept human-readable strings ("64KiB", "1.5MB") and durations
// the Go syntax ("500ms", "30s").
//
// # Structure
//
//	from: big-file.bin
//	to: s3://bucket/big-file.bin
//	units: binary
//	buffer_size: 64KiB
//	update_interval: 500ms
//	http:
//	  retry_attempts: 5
//	  retry_backoff: 1s
package config
