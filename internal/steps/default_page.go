package steps

import (
	"fmt"

	"transmute/internal/config"
	"transmute/internal/item"
	"transmute/internal/pipeline"
)

// DefaultPage merges a container with its default-page child. When the
// container arrives first it is deferred (dropped from the stream) until its
// child shows up; the child then takes the container's identity: configured
// keys are copied from the container, the child's original UID moves to
// "_UID" for remapping, and the child-to-container link is recorded for
// relation fixing. A Link child is rewritten into a Document whose body
// points at the remote URL.
func DefaultPage(cfg *config.Config) pipeline.Func {
	keysFromParent := append([]string(nil), cfg.DefaultPages.KeysFromParent...)
	return func(it item.Item, md *pipeline.Context) ([]item.Item, error) {
		uid := it.UID()
		if parent, ok := md.PopPendingDefaultPage(uid); ok {
			merged := mergeDefaultPage(parent, it, keysFromParent)
			md.FixRelations[uid] = parent.UID()
			return []item.Item{merged}, nil
		}
		if childUID, ok := md.PopDefaultPageLink(uid); ok {
			// Defer this container until its default page arrives.
			md.DefaultPagePending[childUID] = it
			return []item.Item{nil}, nil
		}
		return []item.Item{it}, nil
	}
}

// mergeDefaultPage merges the container item into its default-page child.
func mergeDefaultPage(parent, child item.Item, keysFromParent []string) item.Item {
	if child.Type() == "Link" {
		child = linkToDocument(child)
	}
	// The child keeps its old UID under _UID so relations can be remapped.
	child["_UID"] = child.PopString("UID")
	navTitle := child.String("nav_title")
	if navTitle == "" {
		navTitle = child.String("title")
	}
	if parentTitle := parent.String("title"); parentTitle != "" {
		navTitle = parentTitle
	}
	child["nav_title"] = navTitle
	for _, key := range keysFromParent {
		if value, ok := parent[key]; ok {
			child[key] = value
		}
	}
	return child
}

// linkToDocument rewrites a Link item into a Document whose body carries an
// anchor to the remote URL.
func linkToDocument(it item.Item) item.Item {
	delete(it, "layout")
	remoteURL := it.PopString("remoteUrl")
	it["@type"] = "Document"
	it["text"] = map[string]any{
		"data": fmt.Sprintf("<div><a href='%s'>%s</a></div>", remoteURL, remoteURL),
	}
	return it
}
