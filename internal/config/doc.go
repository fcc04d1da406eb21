// Package config loads, normalizes, and validates transmute configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and the pipeline need: the ordered step list, path filters and
// cleanup tables, per-type mappings, workflow-state rewrites, and logging
// settings. Configuration is loaded once at process start and treated as
// immutable for the duration of a run.
package config
