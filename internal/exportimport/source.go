package exportimport

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"transmute/internal/item"
)

// SourceFiles holds the classified files of a source directory.
type SourceFiles struct {
	Metadata []string
	Content  []string
}

// ScanSource walks a source directory and classifies its JSON files into
// sidecar metadata and content items. Content files are sorted by their
// numeric filename so processing order is stable.
func ScanSource(src string) (SourceFiles, error) {
	var files SourceFiles
	err := filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			return nil
		}
		name := entry.Name()
		if strings.HasPrefix(name, "export_") || name == "errors.json" || name == "paths.json" {
			files.Metadata = append(files.Metadata, path)
			return nil
		}
		files.Content = append(files.Content, path)
		return nil
	})
	if err != nil {
		return SourceFiles{}, fmt.Errorf("scan source %s: %w", src, err)
	}
	sort.Strings(files.Metadata)
	sortContentFiles(files.Content)
	return files, nil
}

// sortContentFiles orders files by zero-padding the numeric part of their
// name; files without a numeric name sort after the numeric ones.
func sortContentFiles(content []string) {
	key := func(path string) string {
		name := strings.TrimSuffix(filepath.Base(path), ".json")
		if n, err := strconv.Atoi(name); err == nil {
			return fmt.Sprintf("%07d", n)
		}
		return "~" + name
	}
	sort.SliceStable(content, func(i, j int) bool {
		return key(content[i]) < key(content[j])
	})
}

// ReadItem decodes one content file.
func ReadItem(path string) (item.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item %s: %w", path, err)
	}
	var it item.Item
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("decode item %s: %w", path, err)
	}
	return it, nil
}

// ReadJSON decodes an arbitrary JSON file into out.
func ReadJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
