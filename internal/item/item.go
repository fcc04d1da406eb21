package item

import "strings"

// Item is one content record being migrated. The three keys every record
// carries during processing are "UID", "@id", and "@type".
type Item map[string]any

// UID returns the item's unique identifier.
func (it Item) UID() string {
	return it.String("UID")
}

// ID returns the item's short identifier (last path segment).
func (it Item) ID() string {
	return it.String("id")
}

// Path returns the item's path-like identifier ("@id").
func (it Item) Path() string {
	return it.String("@id")
}

// Type returns the item's portal type tag ("@type").
func (it Item) Type() string {
	return it.String("@type")
}

// ReviewState returns the item's workflow state, or the empty string.
func (it Item) ReviewState() string {
	return it.String("review_state")
}

// IsFolderish reports whether the item is a container.
func (it Item) IsFolderish() bool {
	v, _ := it["is_folderish"].(bool)
	return v
}

// String returns the value under key when it is a string.
func (it Item) String(key string) string {
	s, _ := it[key].(string)
	return s
}

// StringSlice returns the value under key coerced to a string slice.
// JSON decoding produces []any, so both slice forms are accepted.
func (it Item) StringSlice(key string) []string {
	switch v := it[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, entry := range v {
			if s, ok := entry.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Map returns the value under key when it is a JSON object.
func (it Item) Map(key string) map[string]any {
	m, _ := it[key].(map[string]any)
	return m
}

// PopString removes key and returns its string value, if any.
func (it Item) PopString(key string) string {
	s := it.String(key)
	delete(it, key)
	return s
}

// PopFlag removes key and reports whether it held a true value.
func (it Item) PopFlag(key string) bool {
	v, _ := it[key].(bool)
	delete(it, key)
	return v
}

// Clone returns a shallow copy of the item.
func (it Item) Clone() Item {
	out := make(Item, len(it))
	for k, v := range it {
		out[k] = v
	}
	return out
}

// WithoutInternalKeys returns a copy of the item with every underscore-prefixed
// key removed. Destination files must never carry engine-internal keys.
func (it Item) WithoutInternalKeys() Item {
	out := make(Item, len(it))
	for k, v := range it {
		if strings.HasPrefix(k, "_") {
			continue
		}
		out[k] = v
	}
	return out
}

// AllParents returns every ancestor prefix of a path-like identifier. The
// result contains neither the empty prefix nor the path itself:
// "/plone/folder/item" yields {"/plone", "/plone/folder"}.
func AllParents(path string) map[string]struct{} {
	parents := make(map[string]struct{})
	parts := strings.Split(path, "/")
	for idx := range parts {
		parent := strings.Join(parts[:idx], "/")
		if strings.TrimSpace(parent) == "" {
			continue
		}
		parents[parent] = struct{}{}
	}
	return parents
}
