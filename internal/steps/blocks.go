package steps

import (
	"strings"

	"transmute/internal/config"
	"transmute/internal/item"
	"transmute/internal/pipeline"
)

// folderVariations maps legacy folder layouts to listing block variations.
var folderVariations = map[string]string{
	"listing_view":      "listing",
	"summary_view":      "summary",
	"tabular_view":      "listing",
	"full_view":         "summary",
	"album_view":        "imageGallery",
	"galeria_de_fotos":  "imageGallery",
	"galeria_de_albuns": "imageGallery",
}

// Blocks assembles the destination block structure for an item: default
// blocks configured for its type, listing blocks derived from legacy
// collections and folders, and the converted HTML body text.
func Blocks(cfg *config.Config, conv Converter) pipeline.Func {
	if conv == nil {
		conv = NewHTMLConverter()
	}
	return func(it item.Item, md *pipeline.Context) ([]item.Item, error) {
		hasImage := it["image"] != nil
		description := strings.TrimSpace(it.String("description"))
		blocks := defaultBlocks(cfg, it.Type(), hasImage, description != "")

		var itemBlocks []map[string]any
		if extra, ok := it["_blocks_"].([]map[string]any); ok {
			itemBlocks = extra
		}
		delete(it, "_blocks_")
		if len(blocks) == 0 && len(itemBlocks) == 0 {
			return []item.Item{it}, nil
		}
		blocks = append(blocks, itemBlocks...)

		switch it.String("_orig_type") {
		case "Collection", "Topic":
			blocks = appendQueryListing(it, blocks)
		case "Folder":
			blocks = appendFolderListing(it, blocks)
		}

		var source string
		if text := it.Map("text"); text != nil {
			source, _ = text["data"].(string)
		}
		layout, err := conv.Convert(source, blocks)
		if err != nil {
			return nil, err
		}
		for key, value := range layout {
			it[key] = value
		}
		return []item.Item{it}, nil
	}
}

// defaultBlocks returns the configured blocks for a type, skipping lead
// image and description blocks when the item has nothing to fill them with.
func defaultBlocks(cfg *config.Config, itemType string, hasImage, hasDescription bool) []map[string]any {
	info := cfg.Types[itemType]
	configured := info.OverrideBlocks
	if configured == nil {
		configured = info.Blocks
	}
	blocks := make([]map[string]any, 0, len(configured))
	for _, block := range configured {
		blockType, _ := block["@type"].(string)
		if blockType == "leadimage" && !hasImage {
			continue
		}
		if blockType == "description" && !hasDescription {
			continue
		}
		copied := make(map[string]any, len(block))
		for key, value := range block {
			copied[key] = value
		}
		blocks = append(blocks, copied)
	}
	return blocks
}

// appendQueryListing turns a collection's stored query into a listing block.
func appendQueryListing(it item.Item, blocks []map[string]any) []map[string]any {
	query, ok := it["query"].([]any)
	if !ok || len(query) == 0 {
		return blocks
	}
	querystring := map[string]any{"query": query}
	if sortOn, ok := it["sort_on"]; ok {
		querystring["sort_on"] = sortOn
	}
	if _, ok := it["sort_order"]; ok {
		order := "ascending"
		if reversed, _ := it["sort_reversed"].(bool); reversed {
			order = "descending"
		}
		querystring["sort_order"] = order
		querystring["sort_order_boolean"] = true
	}
	block := map[string]any{
		"@type":       "listing",
		"headline":    "",
		"headlineTag": "h2",
		"querystring": querystring,
		"b_size":      valueOr(it, "item_count", 10),
		"limit":       valueOr(it, "limit", 1000),
		"styles":      map[string]any{},
		"variation":   "summary",
	}
	return append(blocks, block)
}

// appendFolderListing adds a listing block matching the folder's old layout.
func appendFolderListing(it item.Item, blocks []map[string]any) []map[string]any {
	variation := folderVariations[it.String("layout")]
	if variation == "" {
		variation = "listing"
	}
	block := map[string]any{
		"@type":       "listing",
		"headline":    "",
		"headlineTag": "h2",
		"styles":      map[string]any{},
		"variation":   variation,
	}
	return append(blocks, block)
}

func valueOr(it item.Item, key string, fallback any) any {
	if value, ok := it[key]; ok {
		return value
	}
	return fallback
}
