package exportimport

import (
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// ItemFiles reports the files written for one exported item. Paths are
// relative to the destination content directory.
type ItemFiles struct {
	Data      string
	BlobFiles []string
}

// ExportItem writes one retained item as content/<UID>/data.json, decoding
// any blob fields collected under the item's blob buffer into sibling files.
// Underscore-prefixed keys are stripped from the written document.
func ExportItem(it map[string]any, contentDir string) (ItemFiles, error) {
	uid, _ := it["UID"].(string)
	if uid == "" {
		return ItemFiles{}, fmt.Errorf("export item: missing UID")
	}
	itemID, _ := it["id"].(string)
	itemDir := filepath.Join(contentDir, uid)
	if err := os.MkdirAll(itemDir, 0o755); err != nil {
		return ItemFiles{}, fmt.Errorf("create item directory: %w", err)
	}

	var blobFiles []string
	if blobs, ok := it["_blob_files_"].(map[string]any); ok {
		fields := make([]string, 0, len(blobs))
		for field := range blobs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			blob, ok := blobs[field].(map[string]any)
			if !ok {
				continue
			}
			blobPath, err := exportBlob(field, blob, itemDir, itemID)
			if err != nil {
				return ItemFiles{}, fmt.Errorf("item %s: %w", uid, err)
			}
			rel, err := filepath.Rel(contentDir, blobPath)
			if err != nil {
				return ItemFiles{}, err
			}
			blob["blob_path"] = filepath.ToSlash(rel)
			blobFiles = append(blobFiles, filepath.ToSlash(rel))
			it[field] = blob
		}
	}

	clean := make(map[string]any, len(it))
	for key, value := range it {
		if len(key) > 0 && key[0] == '_' {
			continue
		}
		clean[key] = value
	}

	dataPath := filepath.Join(itemDir, "data.json")
	if err := WriteJSON(dataPath, clean); err != nil {
		return ItemFiles{}, err
	}
	return ItemFiles{
		Data:      filepath.ToSlash(filepath.Join(uid, "data.json")),
		BlobFiles: blobFiles,
	}, nil
}

// exportBlob decodes one base64 blob field into <itemDir>/<field>/<filename>.
func exportBlob(field string, blob map[string]any, itemDir, itemID string) (string, error) {
	filename, _ := blob["filename"].(string)
	if filename == "" {
		filename = itemID
	}
	encoded, _ := blob["data"].(string)
	delete(blob, "data")
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode blob field %s: %w", field, err)
	}
	fieldDir := filepath.Join(itemDir, field)
	if err := os.MkdirAll(fieldDir, 0o755); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}
	path := filepath.Join(fieldDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob %s: %w", path, err)
	}
	return path, nil
}

// WriteJSON writes data as indented JSON, creating parent directories as
// needed. Map keys marshal in sorted order, keeping output deterministic.
func WriteJSON(path string, data any) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes a header row plus data rows.
func WriteCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// RemoveContents deletes everything inside dir without removing dir itself,
// used by the run command's clean-up option.
func RemoveContents(dir string, log *slog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
		if log != nil {
			log.Debug("removed existing destination entry", "path", path)
		}
	}
	return nil
}
