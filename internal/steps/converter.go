package steps

import (
	"html"
	"regexp"
	"strings"

	"transmute/internal/pipeline"
)

// Converter turns HTML body text into a block structure: a map holding the
// "blocks" table keyed by block id and the "blocks_layout" item order. The
// defaults slice is prepended before the converted body blocks.
type Converter interface {
	Convert(source string, defaults []map[string]any) (map[string]any, error)
}

// HTMLConverter is the built-in converter. It splits the body into
// paragraph-level chunks and emits one slate block per chunk.
type HTMLConverter struct{}

func NewHTMLConverter() *HTMLConverter {
	return &HTMLConverter{}
}

var (
	blockBoundary = regexp.MustCompile(`(?is)</(?:p|div|h[1-6]|li|blockquote|pre|table|ul|ol)>|<br\s*/?>`)
	tagPattern    = regexp.MustCompile(`(?s)<[^>]*>`)
)

// Convert builds the block table and layout. Block ids are fresh UUIDs so
// repeated runs never collide with ids already present in the defaults.
func (c *HTMLConverter) Convert(source string, defaults []map[string]any) (map[string]any, error) {
	blocks := make(map[string]any)
	layout := make([]any, 0, len(defaults)+1)

	appendBlock := func(block map[string]any) {
		id := pipeline.NewUID()
		blocks[id] = block
		layout = append(layout, id)
	}
	for _, block := range defaults {
		appendBlock(block)
	}
	for _, text := range splitParagraphs(source) {
		appendBlock(map[string]any{
			"@type":     "slate",
			"plaintext": text,
			"value": []any{
				map[string]any{
					"type":     "p",
					"children": []any{map[string]any{"text": text}},
				},
			},
		})
	}
	return map[string]any{
		"blocks":        blocks,
		"blocks_layout": map[string]any{"items": layout},
	}, nil
}

// splitParagraphs cuts the HTML at block-element boundaries and strips the
// remaining markup from each chunk.
func splitParagraphs(source string) []string {
	if strings.TrimSpace(source) == "" {
		return nil
	}
	var paragraphs []string
	for _, chunk := range blockBoundary.Split(source, -1) {
		text := html.UnescapeString(tagPattern.ReplaceAllString(chunk, ""))
		text = strings.Join(strings.Fields(text), " ")
		if text == "" {
			continue
		}
		paragraphs = append(paragraphs, text)
	}
	return paragraphs
}
