// Package format holds pure string formatting helpers shared by the CLI and
// the dashboard: durations, byte sizes and thousands separators.
package format
