package exportimport

import (
	"path/filepath"
	"sort"
	"strings"

	"transmute/internal/pipeline"
)

// MetadataFileName is the consolidated metadata document inside content/.
const MetadataFileName = "__metadata__.json"

// InitializeContext builds the run's metadata context from the source
// sidecar files. Unknown sidecars are ignored; missing ones leave their
// section empty.
func InitializeContext(files SourceFiles) (*pipeline.Context, error) {
	md := pipeline.NewContext()
	for _, path := range files.Metadata {
		name := filepath.Base(path)
		key := strings.TrimSuffix(strings.TrimPrefix(name, "export_"), ".json")
		switch key {
		case "defaultpages":
			var entries []map[string]any
			if err := ReadJSON(path, &entries); err != nil {
				return nil, err
			}
			for _, entry := range entries {
				containerUID, _ := entry["uuid"].(string)
				childUID, _ := entry["default_page_uuid"].(string)
				if containerUID != "" && childUID != "" {
					md.DefaultPageLinks[containerUID] = childUID
				}
			}
		case "localroles":
			var entries []map[string]any
			if err := ReadJSON(path, &entries); err != nil {
				return nil, err
			}
			for _, entry := range entries {
				uid, _ := entry["uuid"].(string)
				if uid != "" {
					md.LocalRoles[uid] = map[string]any{"local_roles": entry["localroles"]}
				}
			}
		case "ordering":
			var entries []map[string]any
			if err := ReadJSON(path, &entries); err != nil {
				return nil, err
			}
			for _, entry := range entries {
				uid, _ := entry["uuid"].(string)
				if uid != "" {
					md.Ordering[uid] = entry["order"]
				}
			}
		case "relations":
			var relations []pipeline.Relation
			if err := ReadJSON(path, &relations); err != nil {
				return nil, err
			}
			md.Relations = append(md.Relations, relations...)
		}
	}
	return md, nil
}

// ExportOptions controls the final metadata export.
type ExportOptions struct {
	// UIDs maps every retained UID (and every remapped old UID) to the
	// final destination UID.
	UIDs map[string]string
	// Seen holds the destination UIDs written during the run.
	Seen map[string]struct{}
	// KeepDefaultPages retains the default_page table in the metadata.
	KeepDefaultPages bool
	// Debug additionally writes __debug_metadata__.json.
	Debug bool
}

// ExportContext writes the filtered metadata document and the remapped
// relations file. It returns the path of the metadata document.
func ExportContext(md *pipeline.Context, dst string, opts ExportOptions) (string, error) {
	contentDir := filepath.Join(dst, "content")
	metadataPath := filepath.Join(contentDir, MetadataFileName)

	relations := remapRelations(md.Relations, opts.UIDs)
	if err := WriteJSON(filepath.Join(dst, "relations.json"), relations); err != nil {
		return "", err
	}

	if opts.Debug {
		if err := writeDebugMetadata(md, contentDir, opts); err != nil {
			return "", err
		}
	}

	defaultPage := map[string]string{}
	if opts.KeepDefaultPages {
		defaultPage = filterStringMap(md.DefaultPageLinks, opts.UIDs)
	}

	// File lists keep the order the run recorded them in: items are
	// exported by destination path, so parent containers precede their
	// children for the importer. Re-sorting here would order by UID.
	doc := map[string]any{
		"__version__":       md.Version,
		"_blob_files_":      emptyWhenNil(md.BlobFiles),
		"_data_files_":      emptyWhenNil(md.DataFiles),
		"default_page":      defaultPage,
		"local_permissions": md.LocalPermissions,
		"local_roles":       filterAnyMap(md.LocalRoles, opts.UIDs),
		"ordering":          filterAnyMap(md.Ordering, opts.UIDs),
		"relations":         []any{},
	}
	if err := WriteJSON(metadataPath, doc); err != nil {
		return "", err
	}
	return metadataPath, nil
}

// remapRelations rewrites relation endpoints through the UID map, dropping
// relations whose endpoints were not retained or point at themselves.
func remapRelations(relations []pipeline.Relation, uids map[string]string) []map[string]string {
	out := make([]map[string]string, 0, len(relations))
	for _, rel := range relations {
		from := uids[rel.FromUUID]
		to := uids[rel.ToUUID]
		if from == "" || to == "" || from == to {
			continue
		}
		out = append(out, map[string]string{
			"from_attribute": rel.Relationship,
			"from_uuid":      from,
			"to_uuid":        to,
		})
	}
	return out
}

func writeDebugMetadata(md *pipeline.Context, contentDir string, opts ExportOptions) error {
	seen := make([]string, 0, len(opts.Seen))
	for uid := range opts.Seen {
		seen = append(seen, uid)
	}
	sort.Strings(seen)
	doc := map[string]any{
		"__version__":       md.Version,
		"__seen__":          seen,
		"_blob_files_":      emptyWhenNil(md.BlobFiles),
		"_data_files_":      emptyWhenNil(md.DataFiles),
		"default_page":      md.DefaultPageLinks,
		"default_page_pending": len(md.DefaultPagePending),
		"fix_relations":     md.FixRelations,
		"local_permissions": md.LocalPermissions,
		"local_roles":       md.LocalRoles,
		"ordering":          md.Ordering,
	}
	return WriteJSON(filepath.Join(contentDir, "__debug_metadata__.json"), doc)
}

func filterStringMap(data map[string]string, uids map[string]string) map[string]string {
	out := make(map[string]string, len(data))
	for key, value := range data {
		if _, ok := uids[key]; ok {
			out[key] = value
		}
	}
	return out
}

func filterAnyMap(data map[string]any, uids map[string]string) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		if _, ok := uids[key]; ok {
			out[key] = value
		}
	}
	return out
}

func emptyWhenNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
