package steps_test

import (
	"testing"

	"transmute/internal/config"
	"transmute/internal/item"
	"transmute/internal/pipeline"
	"transmute/internal/steps"
)

func TestPortalTypeMapsAndRecordsOriginal(t *testing.T) {
	cfg := config.Default()
	step := steps.PortalType(&cfg)
	md := pipeline.NewContext()

	results, err := step(item.Item{"UID": "a", "@id": "/folder", "@type": "Folder"}, md)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	got := results[0]
	if got.Type() != "Document" {
		t.Fatalf("@type = %q", got.Type())
	}
	if got.String("_orig_type") != "Folder" {
		t.Fatalf("_orig_type = %q", got.String("_orig_type"))
	}
}

func TestPortalTypeDropsUnmappedTypes(t *testing.T) {
	cfg := config.Default()
	step := steps.PortalType(&cfg)
	md := pipeline.NewContext()

	results, err := step(item.Item{"UID": "a", "@id": "/x", "@type": "LegacyWidget"}, md)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if len(results) != 1 || results[0] != nil {
		t.Fatalf("unmapped type not dropped: %v", results)
	}
}

func TestPortalTypePathOverrideWins(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.PortalType = map[string]string{"/special": "News Item"}
	step := steps.PortalType(&cfg)
	md := pipeline.NewContext()

	results, err := step(item.Item{"UID": "a", "@id": "/special", "@type": "Document"}, md)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if got := results[0].Type(); got != "News Item" {
		t.Fatalf("@type = %q", got)
	}
}

func TestPortalTypeCleansCollectionQuery(t *testing.T) {
	cfg := config.Default()
	step := steps.PortalType(&cfg)
	md := pipeline.NewContext()

	it := item.Item{
		"UID":   "a",
		"@id":   "/events",
		"@type": "Collection",
		"query": []any{
			map[string]any{"i": "portal_type", "o": "selection.any", "v": []any{"Event", "LegacyWidget"}},
			map[string]any{"i": "portal_type", "o": "selection.any", "v": []any{"LegacyWidget"}},
			map[string]any{"i": "section", "o": "selection.any", "v": []any{"news"}},
			map[string]any{"i": "path", "o": "string.path", "v": "/events"},
		},
	}
	results, err := step(it, md)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	got := results[0]
	query := got["query"].([]any)
	if len(query) != 2 {
		t.Fatalf("query rows = %d, want 2: %v", len(query), query)
	}
	first := query[0].(map[string]any)
	values := first["v"].([]any)
	if len(values) != 1 || values[0] != "Event" {
		t.Fatalf("portal_type row not rewritten: %v", values)
	}
	second := query[1].(map[string]any)
	if second["i"] != "path" {
		t.Fatalf("unexpected surviving row: %v", second)
	}
}
