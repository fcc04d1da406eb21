// Package pipeline implements the step pipeline engine at the heart of
// transmute.
//
// A Registry maps stable step names to step functions. The Engine drives one
// source item through the ordered, resolved step list: a step may pass the
// item through, mutate it, drop it, or fan out into synthesized items that
// re-enter the pipeline at the first step. A shared Context carries cross-item
// state (UID remapping, deferred default-page merges, ordering, relations)
// for the whole run, and a PathFilter records dropped container paths so
// descendants are excluded without re-walking the tree.
//
// The engine is deliberately single-threaded: items are processed one at a
// time so the shared Context needs no locking and output ordering stays
// deterministic. A step returning an error aborts the entire run; batch
// migrations are expected to be re-run after fixing configuration.
package pipeline
