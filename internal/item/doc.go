// Package item defines the open-ended content record that flows through the
// transformation pipeline.
//
// Exported records are arbitrary JSON objects; step authors add and remove
// fields freely, so Item is a string-keyed map rather than a fixed struct.
// Keys prefixed with an underscore are engine-internal signals and are
// stripped before an item is written to the destination tree.
package item
