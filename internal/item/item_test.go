package item_test

import (
	"reflect"
	"testing"

	"transmute/internal/item"
)

func TestAllParentsReturnsEveryAncestor(t *testing.T) {
	parents := item.AllParents("/plone/folder/sub/page")
	want := map[string]struct{}{
		"/plone":            {},
		"/plone/folder":     {},
		"/plone/folder/sub": {},
	}
	if !reflect.DeepEqual(parents, want) {
		t.Fatalf("AllParents = %v, want %v", parents, want)
	}
}

func TestAllParentsExcludesSelfAndRoot(t *testing.T) {
	parents := item.AllParents("/plone")
	if len(parents) != 0 {
		t.Fatalf("expected no parents for top-level path, got %v", parents)
	}
	if _, ok := item.AllParents("/a/b")["/a/b"]; ok {
		t.Fatal("path must not be its own parent")
	}
}

func TestStringSliceAcceptsBothSliceForms(t *testing.T) {
	it := item.Item{"a": []any{"x", "y", 3}, "b": []string{"z"}}
	if got := it.StringSlice("a"); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Fatalf("StringSlice(a) = %v", got)
	}
	if got := it.StringSlice("b"); !reflect.DeepEqual(got, []string{"z"}) {
		t.Fatalf("StringSlice(b) = %v", got)
	}
}

func TestPopStringRemovesKey(t *testing.T) {
	it := item.Item{"UID": "abc"}
	if got := it.PopString("UID"); got != "abc" {
		t.Fatalf("PopString = %q", got)
	}
	if _, ok := it["UID"]; ok {
		t.Fatal("key not removed")
	}
}

func TestPopFlag(t *testing.T) {
	it := item.Item{"flag": true}
	if !it.PopFlag("flag") {
		t.Fatal("expected true")
	}
	if it.PopFlag("flag") {
		t.Fatal("second pop must be false")
	}
}

func TestWithoutInternalKeys(t *testing.T) {
	it := item.Item{"UID": "abc", "_UID": "old", "_blob_files_": map[string]any{}}
	clean := it.WithoutInternalKeys()
	if _, ok := clean["_UID"]; ok {
		t.Fatal("underscore key kept")
	}
	if clean.UID() != "abc" {
		t.Fatalf("UID lost: %v", clean)
	}
	if _, ok := it["_UID"]; !ok {
		t.Fatal("original item mutated")
	}
}
