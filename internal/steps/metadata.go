package steps

import (
	"slices"
	"strings"

	"transmute/internal/config"
	"transmute/internal/item"
	"transmute/internal/pipeline"
)

// Creators removes configured principals from the creator list, falling back
// to the default creator when none remain.
func Creators(cfg *config.Config) pipeline.Func {
	remove := append([]string(nil), cfg.Principals.Remove...)
	fallback := cfg.Principals.Default
	return func(it item.Item, md *pipeline.Context) ([]item.Item, error) {
		var creators []string
		for _, creator := range it.StringSlice("creators") {
			if !slices.Contains(remove, creator) {
				creators = append(creators, creator)
			}
		}
		if len(creators) == 0 {
			creators = []string{fallback}
		}
		it["creators"] = creators
		return []item.Item{it}, nil
	}
}

// BasicMetadata trims surrounding whitespace from title and description.
func BasicMetadata() pipeline.Func {
	return func(it item.Item, md *pipeline.Context) ([]item.Item, error) {
		for _, field := range []string{"title", "description"} {
			if value, ok := it[field].(string); ok {
				it[field] = strings.TrimSpace(value)
			}
		}
		return []item.Item{it}, nil
	}
}

// Constraints rewrites the addable-type constraints through the portal type
// map, dropping types that no longer exist.
func Constraints(cfg *config.Config) pipeline.Func {
	const key = "exportimport.constrains"
	return func(it item.Item, md *pipeline.Context) ([]item.Item, error) {
		raw, ok := it[key].(map[string]any)
		if !ok {
			return []item.Item{it}, nil
		}
		constraints := make(map[string]any, len(raw))
		for constraintType, values := range raw {
			seen := make(map[string]struct{})
			mapped := make([]string, 0)
			for _, value := range toStringSlice(values) {
				fixed := cfg.PortalTypeFor(value)
				if fixed == "" {
					continue
				}
				if _, dup := seen[fixed]; dup {
					continue
				}
				seen[fixed] = struct{}{}
				mapped = append(mapped, fixed)
			}
			slices.Sort(mapped)
			constraints[constraintType] = mapped
		}
		it[key] = constraints
		return []item.Item{it}, nil
	}
}

// Sanitize removes configured keys from the item.
func Sanitize(cfg *config.Config) pipeline.Func {
	dropKeys := append([]string(nil), cfg.Sanitize.DropKeys...)
	return func(it item.Item, md *pipeline.Context) ([]item.Item, error) {
		for _, key := range dropKeys {
			delete(it, key)
		}
		return []item.Item{it}, nil
	}
}

// DataOverride overwrites item fields with per-path values from
// configuration. It runs last so overrides always win.
func DataOverride(cfg *config.Config) pipeline.Func {
	return func(it item.Item, md *pipeline.Context) ([]item.Item, error) {
		for key, value := range cfg.DataOverride[it.Path()] {
			it[key] = value
		}
		return []item.Item{it}, nil
	}
}
