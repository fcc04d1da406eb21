// Package steps contains the built-in transformation steps of the migration
// pipeline.
//
// Each step is a pipeline.Func constructed with the run configuration, so no
// step reaches for global state. Steps cover path and id cleanup, path
// filtering, default-page merging, workflow-state handling, portal type
// mapping, creator cleanup, block assembly, blob extraction, and per-path
// data overrides.
package steps
