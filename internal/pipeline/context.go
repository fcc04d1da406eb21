package pipeline

import "transmute/internal/item"

// Relation is one content relation from the source export.
type Relation struct {
	FromUUID     string `json:"from_uuid"`
	Relationship string `json:"relationship"`
	ToUUID       string `json:"to_uuid"`
}

// Context is the cross-item state shared by every pipeline invocation of a
// run. Steps mutate it and the orchestrator consults it when the item loop
// finishes. It grows monotonically during a run except for the two pending
// maps, which shrink as deferred default-page merges resolve. It must never
// be cleared mid-run.
type Context struct {
	// Version of the destination metadata format.
	Version string

	// DefaultPageLinks maps a container UID to the UID of its default-page
	// child, sourced from the export sidecar. Entries are consumed (popped)
	// when the container is processed.
	DefaultPageLinks map[string]string

	// DefaultPagePending maps a default-page child UID to its deferred
	// container item, created when the container is seen before the child
	// and consumed once the child arrives.
	DefaultPagePending map[string]item.Item

	// FixRelations maps a merged default-page child UID to its container
	// UID so relations can follow the merge.
	FixRelations map[string]string

	// Ordering, LocalRoles, and LocalPermissions hold per-UID sidecar
	// structures, filtered to retained UIDs at export time.
	Ordering         map[string]any
	LocalRoles       map[string]any
	LocalPermissions map[string]any

	// Relations holds the raw relation list from the source export.
	Relations []Relation

	// BlobFiles and DataFiles accumulate destination-relative paths of
	// written files, recorded in the final metadata document.
	BlobFiles []string
	DataFiles []string
}

// NewContext returns an empty metadata context.
func NewContext() *Context {
	return &Context{
		Version:            "1.0.0",
		DefaultPageLinks:   make(map[string]string),
		DefaultPagePending: make(map[string]item.Item),
		FixRelations:       make(map[string]string),
		Ordering:           make(map[string]any),
		LocalRoles:         make(map[string]any),
		LocalPermissions:   make(map[string]any),
	}
}

// PopDefaultPageLink consumes and returns the default-page child UID linked
// to the given container UID.
func (c *Context) PopDefaultPageLink(containerUID string) (string, bool) {
	childUID, ok := c.DefaultPageLinks[containerUID]
	if ok {
		delete(c.DefaultPageLinks, containerUID)
	}
	return childUID, ok
}

// PopPendingDefaultPage consumes and returns the container item deferred for
// the given default-page child UID.
func (c *Context) PopPendingDefaultPage(childUID string) (item.Item, bool) {
	parent, ok := c.DefaultPagePending[childUID]
	if ok {
		delete(c.DefaultPagePending, childUID)
	}
	return parent, ok
}
