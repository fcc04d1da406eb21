package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// SourceBuilder assembles a fake source export directory for tests.
type SourceBuilder struct {
	t    testing.TB
	dir  string
	next int
}

// NewSource creates an empty source export under a temp directory.
func NewSource(t testing.TB) *SourceBuilder {
	t.Helper()
	return &SourceBuilder{t: t, dir: t.TempDir(), next: 1}
}

// Dir returns the source directory path.
func (b *SourceBuilder) Dir() string {
	return b.dir
}

// AddItem writes one content file named after the next sequence number and
// returns its path.
func (b *SourceBuilder) AddItem(it map[string]any) string {
	b.t.Helper()
	name := fmt.Sprintf("%d.json", b.next)
	b.next++
	return b.writeJSON(name, it)
}

// AddSidecar writes one metadata sidecar, such as export_relations.json.
func (b *SourceBuilder) AddSidecar(name string, data any) string {
	b.t.Helper()
	return b.writeJSON(name, data)
}

func (b *SourceBuilder) writeJSON(name string, data any) string {
	b.t.Helper()
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		b.t.Fatalf("encode %s: %v", name, err)
	}
	path := filepath.Join(b.dir, name)
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		b.t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// Item builds a minimal content record with the identifiers every record
// carries. Extra key/value pairs are merged in.
func Item(uid, path, portalType string, extra map[string]any) map[string]any {
	it := map[string]any{
		"UID":   uid,
		"@id":   path,
		"@type": portalType,
		"id":    filepath.Base(path),
	}
	for key, value := range extra {
		it[key] = value
	}
	return it
}
