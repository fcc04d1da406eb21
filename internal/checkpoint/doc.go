// Package checkpoint persists per-file migration progress in SQLite so
// interrupted or repeated runs can skip content files that were already
// migrated with identical on-disk state.
package checkpoint
