package exportimport_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"transmute/internal/exportimport"
	"transmute/internal/testsupport"
)

func TestScanSourceClassifiesFiles(t *testing.T) {
	src := testsupport.NewSource(t)
	src.AddSidecar("export_relations.json", []any{})
	src.AddSidecar("export_defaultpages.json", []any{})
	src.AddSidecar("errors.json", []any{})
	src.AddSidecar("paths.json", []any{})
	src.AddItem(testsupport.Item("a", "/a", "Document", nil))
	src.AddItem(testsupport.Item("b", "/b", "Document", nil))

	files, err := exportimport.ScanSource(src.Dir())
	if err != nil {
		t.Fatalf("ScanSource: %v", err)
	}
	if len(files.Metadata) != 4 {
		t.Fatalf("metadata files = %v", files.Metadata)
	}
	if len(files.Content) != 2 {
		t.Fatalf("content files = %v", files.Content)
	}
}

func TestScanSourceSortsContentNumerically(t *testing.T) {
	src := testsupport.NewSource(t)
	for _, name := range []string{"10.json", "2.json", "100.json", "1.json", "extra.json"} {
		src.AddSidecar(name, testsupport.Item("u-"+name, "/"+name, "Document", nil))
	}

	files, err := exportimport.ScanSource(src.Dir())
	if err != nil {
		t.Fatalf("ScanSource: %v", err)
	}
	names := make([]string, 0, len(files.Content))
	for _, path := range files.Content {
		names = append(names, filepath.Base(path))
	}
	want := []string{"1.json", "2.json", "10.json", "100.json", "extra.json"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("order = %v, want %v", names, want)
	}
}

func TestReadItem(t *testing.T) {
	src := testsupport.NewSource(t)
	path := src.AddItem(testsupport.Item("abc", "/page", "Document", map[string]any{"title": "Page"}))

	it, err := exportimport.ReadItem(path)
	if err != nil {
		t.Fatalf("ReadItem: %v", err)
	}
	if it.UID() != "abc" || it.Path() != "/page" || it.String("title") != "Page" {
		t.Fatalf("unexpected item: %v", it)
	}
}
