// Package logging constructs the slog loggers used across transmute.
//
// Two output formats are supported: a compact console format for interactive
// use and a JSON format for machine consumption. Output can be duplicated to
// a log file under the configured logging directory.
package logging
