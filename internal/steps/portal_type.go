package steps

import (
	"strings"

	"transmute/internal/config"
	"transmute/internal/item"
	"transmute/internal/pipeline"
)

// PortalType runs the per-type pre-processor and then maps the item's type
// through the configured tables. An item whose source type has no mapping is
// dropped; path-specific overrides win over the type table. The source type
// is preserved under "_orig_type" for later steps.
func PortalType(cfg *config.Config) pipeline.Func {
	return func(it item.Item, md *pipeline.Context) ([]item.Item, error) {
		var out []item.Item
		for _, processed := range preProcess(cfg, it) {
			sourceType := processed.Type()
			newType := cfg.PortalTypeFor(sourceType)
			if forced := cfg.Paths.PortalType[processed.Path()]; forced != "" {
				newType = forced
			}
			if newType == "" {
				out = append(out, nil)
				continue
			}
			processed["@type"] = newType
			processed["_orig_type"] = sourceType
			out = append(out, processed)
		}
		return out, nil
	}
}

// preProcess dispatches to the type-specific processor before mapping.
func preProcess(cfg *config.Config, it item.Item) []item.Item {
	switch cfg.ProcessorFor(it.Type()) {
	case "collection":
		return processCollection(cfg, it)
	default:
		return []item.Item{it}
	}
}

// processCollection scrubs a collection's stored query.
func processCollection(cfg *config.Config, it item.Item) []item.Item {
	if query, ok := it["query"].([]any); ok {
		it["query"] = cleanupQuerystring(cfg, query)
	}
	return []item.Item{it}
}

// cleanupQuerystring rewrites portal_type query rows through the type map
// and removes rows that become empty, along with obsolete section rows.
func cleanupQuerystring(cfg *config.Config, query []any) []any {
	newQuery := make([]any, 0, len(query))
	for _, raw := range query {
		row, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		index, _ := row["i"].(string)
		switch index {
		case "portal_type":
			values := toStringSlice(row["v"])
			mapped := make([]any, 0, len(values))
			for _, value := range values {
				if fixed := cfg.PortalTypeFor(value); strings.TrimSpace(fixed) != "" {
					mapped = append(mapped, fixed)
				}
			}
			if len(mapped) == 0 {
				continue
			}
			row["v"] = mapped
		case "section":
			continue
		}
		newQuery = append(newQuery, row)
	}
	return newQuery
}

func toStringSlice(value any) []string {
	switch v := value.(type) {
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
	case string:
		return []string{v}
	}
	return nil
}
