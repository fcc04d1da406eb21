package steps

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"transmute/internal/config"
	"transmute/internal/item"
	"transmute/internal/pipeline"
)

// shortIDPattern strips runs of spaces, underscores, and dashes from both
// ends of a path segment.
var shortIDPattern = regexp.MustCompile(`^[ _-]*([^ _-]*)[ _-]*$`)

// ExportPrefix strips configured export prefixes from the item path. The
// cleaned path is also recorded under "_@id" for the audit report.
func ExportPrefix(cfg *config.Config) pipeline.Func {
	prefixes := append([]string(nil), cfg.Paths.ExportPrefixes...)
	return func(it item.Item, md *pipeline.Context) ([]item.Item, error) {
		path := it.Path()
		for _, prefix := range prefixes {
			if strings.HasPrefix(path, prefix) {
				path = strings.ReplaceAll(path, prefix, "")
			}
		}
		it["@id"] = path
		it["_@id"] = path
		return []item.Item{it}, nil
	}
}

// IDs normalizes the item path and short id: URL-unquoting, space to
// underscore conversion, configured substring substitutions, and trimming of
// separator runs on the final segment. The transformation is idempotent.
func IDs(cfg *config.Config) pipeline.Func {
	cleanup := sortedPairs(cfg.Paths.Cleanup)
	return func(it item.Item, md *pipeline.Context) ([]item.Item, error) {
		path := strings.ReplaceAll(it.Path(), " ", "_")
		if unquoted, err := url.PathUnescape(path); err == nil {
			path = unquoted
		}
		for _, pair := range cleanup {
			if strings.Contains(path, pair[0]) {
				path = strings.ReplaceAll(path, pair[0], pair[1])
			}
		}

		parts := strings.Split(path, "/")
		if len(parts) > 0 {
			parts[len(parts)-1] = FixShortID(parts[len(parts)-1])
			path = strings.Join(parts, "/")
			it["@id"] = path
			it["id"] = parts[len(parts)-1]
		}
		return []item.Item{it}, nil
	}
}

// FixShortID cleans one path segment: separator runs are stripped from both
// ends and inner spaces become underscores.
func FixShortID(id string) string {
	if m := shortIDPattern.FindStringSubmatch(id); m != nil {
		id = m[1]
	}
	return strings.ReplaceAll(id, " ", "_")
}

// sortedPairs flattens a substitution map into deterministic (src, dst)
// pairs; map iteration order must not leak into path rewriting.
func sortedPairs(mapping map[string]string) [][2]string {
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([][2]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, [2]string{key, mapping[key]})
	}
	return pairs
}
