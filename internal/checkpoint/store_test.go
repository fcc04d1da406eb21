package checkpoint_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"transmute/internal/checkpoint"
)

func openStore(t *testing.T) *checkpoint.Store {
	t.Helper()
	store, err := checkpoint.Open(filepath.Join(t.TempDir(), "checkpoint.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func writeContent(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(`{"UID":"x"}`), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFilterPendingSkipsRecordedFiles(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	one := writeContent(t, dir, "1.json")
	two := writeContent(t, dir, "2.json")

	pending, err := store.FilterPending(ctx, []string{one, two})
	if err != nil {
		t.Fatalf("FilterPending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("fresh store pending = %v", pending)
	}

	if err := store.RecordFiles(ctx, "run-1", []string{one}); err != nil {
		t.Fatalf("RecordFiles: %v", err)
	}
	pending, err = store.FilterPending(ctx, []string{one, two})
	if err != nil {
		t.Fatalf("FilterPending: %v", err)
	}
	if len(pending) != 1 || pending[0] != two {
		t.Fatalf("pending = %v, want only %s", pending, two)
	}
}

func TestModifiedFileBecomesPendingAgain(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	path := writeContent(t, dir, "1.json")
	if err := store.RecordFiles(ctx, "run-1", []string{path}); err != nil {
		t.Fatalf("RecordFiles: %v", err)
	}

	// A rewrite changes size and mtime, so the fingerprint changes too.
	if err := os.WriteFile(path, []byte(`{"UID":"x","title":"changed"}`), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	pending, err := store.FilterPending(ctx, []string{path})
	if err != nil {
		t.Fatalf("FilterPending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("modified file not pending: %v", pending)
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	started := time.Now().Add(-time.Minute)
	if err := store.RecordRun(ctx, checkpoint.RunRecord{
		ID:        "run-1",
		Src:       "/src",
		Dst:       "/dst",
		Started:   started,
		Finished:  time.Now(),
		Processed: 12,
		Exported:  9,
		Dropped:   3,
	}); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := store.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %v", runs)
	}
	run := runs[0]
	if run.ID != "run-1" || run.Processed != 12 || run.Exported != 9 || run.Dropped != 3 {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.Started.Unix() != started.Unix() {
		t.Fatalf("started = %v, want %v", run.Started, started)
	}
}

func TestResetClearsEverything(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	path := writeContent(t, dir, "1.json")
	if err := store.RecordFiles(ctx, "run-1", []string{path}); err != nil {
		t.Fatalf("RecordFiles: %v", err)
	}
	if err := store.RecordRun(ctx, checkpoint.RunRecord{ID: "run-1", Started: time.Now(), Finished: time.Now()}); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	pending, err := store.FilterPending(ctx, []string{path})
	if err != nil {
		t.Fatalf("FilterPending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("recorded file survived reset: %v", pending)
	}
	runs, err := store.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("runs survived reset: %v", runs)
	}
}
