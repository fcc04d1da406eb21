package pipeline

import (
	"github.com/google/uuid"

	"transmute/internal/item"
)

// NewItemKey is the ephemeral flag a step sets on an item it synthesized
// mid-pipeline. The engine strips the flag and runs the item through the
// full step list from the beginning.
const NewItemKey = "_is_new_item"

// Func is the contract every transformation step satisfies. It receives the
// working item and the shared run context and returns a finite, ordered
// sequence of results:
//
//   - a nil entry drops the working item;
//   - a non-nil entry becomes the working item for the next step;
//   - an entry flagged with NewItemKey is a synthesized item and is queued
//     for full re-processing instead of replacing the working item;
//   - an empty sequence leaves the working item unchanged.
//
// Steps may mutate the item in place; the engine owns it afterwards.
type Func func(it item.Item, md *Context) ([]item.Item, error)

// Step pairs a resolved step function with the name it was registered under.
// The name identifies the step in diagnostics, drop statistics, and the
// audit report.
type Step struct {
	Name string
	Run  Func
}

// NewUID returns a fresh unique identifier for a synthesized item.
func NewUID() string {
	return uuid.NewString()
}
