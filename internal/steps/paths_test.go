package steps_test

import (
	"testing"

	"transmute/internal/item"
	"transmute/internal/pipeline"
	"transmute/internal/steps"
)

func TestPathsDropsFilteredItems(t *testing.T) {
	filter := pipeline.NewPathFilter([]string{"/site"}, []string{"/site/private"})
	step := steps.Paths(filter)
	md := pipeline.NewContext()

	results, err := step(item.Item{"UID": "a", "@id": "/site/private/doc"}, md)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if len(results) != 1 || results[0] != nil {
		t.Fatalf("filtered item not dropped: %v", results)
	}

	results, err = step(item.Item{"UID": "b", "@id": "/site/public/doc"}, md)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if len(results) != 1 || results[0] == nil {
		t.Fatalf("allowed item dropped: %v", results)
	}
}

func TestPathsObservesDropsAddedMidRun(t *testing.T) {
	filter := pipeline.NewPathFilter([]string{"/site"}, nil)
	step := steps.Paths(filter)
	md := pipeline.NewContext()

	results, err := step(item.Item{"UID": "a", "@id": "/site/folder/doc"}, md)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if results[0] == nil {
		t.Fatal("item dropped before its container was")
	}

	// A container dropped later in the run excludes its descendants from
	// that point on.
	filter.MarkDropped("/site/folder")
	results, err = step(item.Item{"UID": "b", "@id": "/site/folder/doc2"}, md)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if results[0] != nil {
		t.Fatal("descendant of dropped container retained")
	}
}
