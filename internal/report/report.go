package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"transmute/internal/exportimport"
)

// Detail identifies one content item inside a per-type listing.
type Detail struct {
	Path  string `json:"@id"`
	UID   string `json:"UID"`
	Type  string `json:"@type"`
	Title string `json:"title"`
}

// Report holds the tallies of one source export.
type Report struct {
	Total    int                       `json:"total"`
	Types    map[string]int            `json:"types"`
	Creators map[string]int            `json:"creators"`
	States   map[string]int            `json:"states"`
	Layouts  map[string]map[string]int `json:"layouts"`
	Details  map[string][]Detail       `json:"details"`
}

// Analyze reads every content file in a source export and tallies it.
func Analyze(files exportimport.SourceFiles) (*Report, error) {
	rpt := &Report{
		Types:    make(map[string]int),
		Creators: make(map[string]int),
		States:   make(map[string]int),
		Layouts:  make(map[string]map[string]int),
		Details:  make(map[string][]Detail),
	}
	for _, path := range files.Content {
		it, err := exportimport.ReadItem(path)
		if err != nil {
			return nil, err
		}
		rpt.Total++
		itemType := orUnknown(it.Type())
		rpt.Types[itemType]++
		rpt.States[orUnknown(it.ReviewState())]++
		creators := it.StringSlice("creators")
		if len(creators) == 0 {
			creators = []string{"(none)"}
		}
		for _, creator := range creators {
			rpt.Creators[creator]++
		}
		if layout := it.String("layout"); layout != "" {
			byType := rpt.Layouts[itemType]
			if byType == nil {
				byType = make(map[string]int)
				rpt.Layouts[itemType] = byType
			}
			byType[layout]++
		}
		rpt.Details[itemType] = append(rpt.Details[itemType], Detail{
			Path:  it.Path(),
			UID:   it.UID(),
			Type:  itemType,
			Title: it.String("title"),
		})
	}
	return rpt, nil
}

// Write stores the report as report.json plus one report_<type>.csv per
// portal type inside dst.
func (r *Report) Write(dst string) error {
	if err := exportimport.WriteJSON(filepath.Join(dst, "report.json"), r); err != nil {
		return err
	}
	header := []string{"@id", "UID", "@type", "title"}
	for itemType, details := range r.Details {
		rows := make([][]string, 0, len(details))
		for _, detail := range details {
			rows = append(rows, []string{detail.Path, detail.UID, detail.Type, detail.Title})
		}
		name := fmt.Sprintf("report_%s.csv", fileSlug(itemType))
		if err := exportimport.WriteCSV(filepath.Join(dst, name), header, rows); err != nil {
			return err
		}
	}
	return nil
}

// SortedKeys returns the keys of a tally ordered by descending count, ties
// broken alphabetically.
func SortedKeys(tally map[string]int) []string {
	keys := make([]string, 0, len(tally))
	for key := range tally {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if tally[keys[i]] != tally[keys[j]] {
			return tally[keys[i]] > tally[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

var titleCaser = cases.Title(language.English)

// DisplayName renders a raw tally key for table output.
func DisplayName(key string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(key)
	return titleCaser.String(cleaned)
}

func fileSlug(itemType string) string {
	slug := strings.ToLower(strings.TrimSpace(itemType))
	slug = strings.NewReplacer(" ", "_", ".", "_", "/", "_").Replace(slug)
	if slug == "" {
		return "unknown"
	}
	return slug
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(unknown)"
	}
	return value
}
