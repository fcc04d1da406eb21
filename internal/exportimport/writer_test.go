package exportimport_test

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"transmute/internal/exportimport"
)

func TestExportItemWritesDataAndBlobs(t *testing.T) {
	contentDir := t.TempDir()
	payload := []byte("pdf bytes")
	it := map[string]any{
		"UID":   "uid-1",
		"id":    "report",
		"@id":   "/report",
		"@type": "File",
		"_blob_files_": map[string]any{
			"file": map[string]any{
				"filename":     "report.pdf",
				"content-type": "application/pdf",
				"data":         base64.StdEncoding.EncodeToString(payload),
			},
		},
		"_orig_type": "File",
	}

	written, err := exportimport.ExportItem(it, contentDir)
	if err != nil {
		t.Fatalf("ExportItem: %v", err)
	}
	if written.Data != "uid-1/data.json" {
		t.Fatalf("data path = %q", written.Data)
	}
	if len(written.BlobFiles) != 1 || written.BlobFiles[0] != "uid-1/file/report.pdf" {
		t.Fatalf("blob files = %v", written.BlobFiles)
	}

	blob, err := os.ReadFile(filepath.Join(contentDir, "uid-1", "file", "report.pdf"))
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(blob) != string(payload) {
		t.Fatalf("blob bytes = %q", blob)
	}

	data, err := os.ReadFile(filepath.Join(contentDir, "uid-1", "data.json"))
	if err != nil {
		t.Fatalf("read data.json: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode data.json: %v", err)
	}
	for _, key := range []string{"_blob_files_", "_orig_type"} {
		if _, ok := doc[key]; ok {
			t.Fatalf("internal key %q written to data.json", key)
		}
	}
	file := doc["file"].(map[string]any)
	if file["blob_path"] != "uid-1/file/report.pdf" {
		t.Fatalf("blob_path = %v", file["blob_path"])
	}
	if _, ok := file["data"]; ok {
		t.Fatal("base64 payload written to data.json")
	}
}

func TestExportItemBlobFilenameFallsBackToItemID(t *testing.T) {
	contentDir := t.TempDir()
	it := map[string]any{
		"UID": "uid-2",
		"id":  "logo",
		"_blob_files_": map[string]any{
			"image": map[string]any{
				"data": base64.StdEncoding.EncodeToString([]byte("png")),
			},
		},
	}
	written, err := exportimport.ExportItem(it, contentDir)
	if err != nil {
		t.Fatalf("ExportItem: %v", err)
	}
	if len(written.BlobFiles) != 1 || written.BlobFiles[0] != "uid-2/image/logo" {
		t.Fatalf("blob files = %v", written.BlobFiles)
	}
}

func TestExportItemRequiresUID(t *testing.T) {
	if _, err := exportimport.ExportItem(map[string]any{"id": "x"}, t.TempDir()); err == nil {
		t.Fatal("expected error for missing UID")
	}
}

func TestRemoveContentsKeepsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "content", "abc"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "relations.json"), []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := exportimport.RemoveContents(dir, nil); err != nil {
		t.Fatalf("RemoveContents: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("directory not emptied: %v", entries)
	}
}
