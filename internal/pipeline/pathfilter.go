package pipeline

import (
	"sort"
	"strings"

	"transmute/internal/item"
)

// PathFilter holds the configured allowed path prefixes and the drop set that
// grows as container items are dropped mid-run. It is mutated only from the
// single-threaded pipeline loop, so no locking is required.
type PathFilter struct {
	allowed map[string]struct{}
	drop    map[string]struct{}
}

// NewPathFilter builds a filter from configured allowed and drop prefixes.
func NewPathFilter(allowed, drop []string) *PathFilter {
	f := &PathFilter{
		allowed: make(map[string]struct{}, len(allowed)),
		drop:    make(map[string]struct{}, len(drop)),
	}
	for _, prefix := range allowed {
		f.allowed[prefix] = struct{}{}
	}
	for _, prefix := range drop {
		f.drop[prefix] = struct{}{}
	}
	return f
}

// MarkDropped records a dropped container path so its descendants are
// excluded too. The entry is recorded minimally: paths with no ancestor in
// the allowed set were never going to be retained and need no entry, and a
// path already covered by a dropped ancestor needs no entry of its own.
func (f *PathFilter) MarkDropped(path string) {
	parents := item.AllParents(path)
	underAllowed := false
	for parent := range parents {
		if _, ok := f.allowed[parent]; ok {
			underAllowed = true
			break
		}
	}
	if !underAllowed {
		return
	}
	for parent := range parents {
		if _, ok := f.drop[parent]; ok {
			return
		}
	}
	f.drop[path] = struct{}{}
}

// Allows reports whether a path passes the filter: dropped prefixes exclude,
// then allowed prefixes (when configured) must match.
func (f *PathFilter) Allows(path string) bool {
	for prefix := range f.drop {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	if len(f.allowed) == 0 {
		return true
	}
	for prefix := range f.allowed {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// DropPrefixes returns the current drop set in stable order, for diagnostics.
func (f *PathFilter) DropPrefixes() []string {
	out := make([]string, 0, len(f.drop))
	for prefix := range f.drop {
		out = append(out, prefix)
	}
	sort.Strings(out)
	return out
}
