package steps_test

import (
	"testing"

	"transmute/internal/config"
	"transmute/internal/item"
	"transmute/internal/pipeline"
	"transmute/internal/steps"
)

// captureConverter records what Blocks handed it and returns a fixed layout.
type captureConverter struct {
	source   string
	defaults []map[string]any
}

func (c *captureConverter) Convert(source string, defaults []map[string]any) (map[string]any, error) {
	c.source = source
	c.defaults = defaults
	return map[string]any{
		"blocks":        map[string]any{"b1": map[string]any{"@type": "slate"}},
		"blocks_layout": map[string]any{"items": []any{"b1"}},
	}, nil
}

func TestBlobsMovesPayloadFields(t *testing.T) {
	payload := map[string]any{"filename": "a.pdf", "data": "aGk="}
	it := runStep(t, steps.Blobs(), item.Item{"UID": "a", "file": payload, "title": "x"})

	if _, ok := it["file"]; ok {
		t.Fatal("file field kept on item")
	}
	blobs := it.Map("_blob_files_")
	if blobs == nil || blobs["file"] == nil {
		t.Fatalf("blob buffer missing: %v", it)
	}
}

func TestBlocksFiltersDefaultBlocks(t *testing.T) {
	cfg := config.Default()
	cfg.Types["Document"] = config.TypeInfo{
		PortalType: "Document",
		Blocks: []map[string]any{
			{"@type": "title"},
			{"@type": "leadimage"},
			{"@type": "description"},
		},
	}
	conv := &captureConverter{}
	step := steps.Blocks(&cfg, conv)
	md := pipeline.NewContext()

	it := item.Item{"UID": "a", "@id": "/a", "@type": "Document", "description": "About"}
	if _, err := step(it, md); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	// No image on the item, so the leadimage block is skipped.
	if len(conv.defaults) != 2 {
		t.Fatalf("defaults = %v", conv.defaults)
	}
	if conv.defaults[0]["@type"] != "title" || conv.defaults[1]["@type"] != "description" {
		t.Fatalf("unexpected default blocks: %v", conv.defaults)
	}
}

func TestBlocksAddsCollectionListing(t *testing.T) {
	cfg := config.Default()
	cfg.Types["Document"] = config.TypeInfo{
		PortalType: "Document",
		Blocks:     []map[string]any{{"@type": "title"}},
	}
	conv := &captureConverter{}
	step := steps.Blocks(&cfg, conv)
	md := pipeline.NewContext()

	it := item.Item{
		"UID":           "a",
		"@id":           "/events",
		"@type":         "Document",
		"_orig_type":    "Collection",
		"query":         []any{map[string]any{"i": "portal_type", "v": []any{"Event"}}},
		"sort_on":       "effective",
		"sort_order":    "reverse",
		"sort_reversed": true,
	}
	results, err := step(it, md)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	var listing map[string]any
	for _, block := range conv.defaults {
		if block["@type"] == "listing" {
			listing = block
		}
	}
	if listing == nil {
		t.Fatalf("no listing block: %v", conv.defaults)
	}
	querystring := listing["querystring"].(map[string]any)
	if querystring["sort_on"] != "effective" || querystring["sort_order"] != "descending" {
		t.Fatalf("querystring = %v", querystring)
	}
	if results[0]["blocks"] == nil || results[0]["blocks_layout"] == nil {
		t.Fatalf("converted layout not applied: %v", results[0])
	}
}

func TestBlocksAddsFolderListingVariation(t *testing.T) {
	cfg := config.Default()
	cfg.Types["Document"] = config.TypeInfo{
		PortalType: "Document",
		Blocks:     []map[string]any{{"@type": "title"}},
	}
	conv := &captureConverter{}
	step := steps.Blocks(&cfg, conv)
	md := pipeline.NewContext()

	it := item.Item{
		"UID":        "a",
		"@id":        "/gallery",
		"@type":      "Document",
		"_orig_type": "Folder",
		"layout":     "album_view",
	}
	if _, err := step(it, md); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	last := conv.defaults[len(conv.defaults)-1]
	if last["@type"] != "listing" || last["variation"] != "imageGallery" {
		t.Fatalf("folder listing = %v", last)
	}
}

func TestBlocksLeavesPlainItemsAloneWithoutDefaults(t *testing.T) {
	cfg := config.Default()
	step := steps.Blocks(&cfg, &captureConverter{})
	md := pipeline.NewContext()

	it := item.Item{"UID": "a", "@id": "/file", "@type": "File"}
	results, err := step(it, md)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if _, ok := results[0]["blocks"]; ok {
		t.Fatalf("blocks added to item without any configured blocks: %v", results[0])
	}
}

func TestHTMLConverterSplitsParagraphs(t *testing.T) {
	conv := steps.NewHTMLConverter()
	layout, err := conv.Convert("<p>First</p><p>Second &amp; third</p>", []map[string]any{{"@type": "title"}})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	blocks := layout["blocks"].(map[string]any)
	items := layout["blocks_layout"].(map[string]any)["items"].([]any)
	if len(blocks) != 3 || len(items) != 3 {
		t.Fatalf("got %d blocks, %d layout items", len(blocks), len(items))
	}
	// Layout order: the title default first, then the body paragraphs.
	first := blocks[items[0].(string)].(map[string]any)
	if first["@type"] != "title" {
		t.Fatalf("first block = %v", first)
	}
	second := blocks[items[1].(string)].(map[string]any)
	if second["plaintext"] != "First" {
		t.Fatalf("second block = %v", second)
	}
	third := blocks[items[2].(string)].(map[string]any)
	if third["plaintext"] != "Second & third" {
		t.Fatalf("third block = %v", third)
	}
}
