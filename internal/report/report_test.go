package report_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"transmute/internal/exportimport"
	"transmute/internal/report"
	"transmute/internal/testsupport"
)

func analyze(t *testing.T, src *testsupport.SourceBuilder) *report.Report {
	t.Helper()
	files, err := exportimport.ScanSource(src.Dir())
	if err != nil {
		t.Fatalf("ScanSource: %v", err)
	}
	rpt, err := report.Analyze(files)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return rpt
}

func TestAnalyzeTallies(t *testing.T) {
	src := testsupport.NewSource(t)
	src.AddItem(testsupport.Item("a", "/a", "Document", map[string]any{
		"creators":     []any{"jane"},
		"review_state": "published",
	}))
	src.AddItem(testsupport.Item("b", "/b", "Document", map[string]any{
		"creators":     []any{"jane", "joe"},
		"review_state": "private",
	}))
	src.AddItem(testsupport.Item("c", "/c", "Folder", map[string]any{
		"layout": "album_view",
	}))

	rpt := analyze(t, src)
	if rpt.Total != 3 {
		t.Fatalf("total = %d", rpt.Total)
	}
	if rpt.Types["Document"] != 2 || rpt.Types["Folder"] != 1 {
		t.Fatalf("types = %v", rpt.Types)
	}
	if rpt.Creators["jane"] != 2 || rpt.Creators["joe"] != 1 || rpt.Creators["(none)"] != 1 {
		t.Fatalf("creators = %v", rpt.Creators)
	}
	if rpt.States["published"] != 1 || rpt.States["private"] != 1 || rpt.States["(unknown)"] != 1 {
		t.Fatalf("states = %v", rpt.States)
	}
	if rpt.Layouts["Folder"]["album_view"] != 1 {
		t.Fatalf("layouts = %v", rpt.Layouts)
	}
	if len(rpt.Details["Document"]) != 2 {
		t.Fatalf("details = %v", rpt.Details)
	}
}

func TestWriteProducesJSONAndCSV(t *testing.T) {
	src := testsupport.NewSource(t)
	src.AddItem(testsupport.Item("a", "/a", "News Item", map[string]any{"title": "News"}))

	rpt := analyze(t, src)
	dst := t.TempDir()
	if err := rpt.Write(dst); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "report.json")); err != nil {
		t.Fatalf("report.json missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "report_news_item.csv")); err != nil {
		t.Fatalf("per-type CSV missing: %v", err)
	}
}

func TestSortedKeysOrdersByCountThenName(t *testing.T) {
	keys := report.SortedKeys(map[string]int{"b": 2, "a": 2, "c": 5})
	if !reflect.DeepEqual(keys, []string{"c", "a", "b"}) {
		t.Fatalf("keys = %v", keys)
	}
}

func TestDisplayName(t *testing.T) {
	if got := report.DisplayName("news_item"); got != "News Item" {
		t.Fatalf("DisplayName = %q", got)
	}
}
