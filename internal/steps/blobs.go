package steps

import (
	"transmute/internal/item"
	"transmute/internal/pipeline"
)

// blobKeys are the item fields that carry base64-encoded file payloads.
var blobKeys = []string{"file", "image"}

// Blobs moves binary payload fields into the item's blob buffer so the
// writer can decode them into sidecar files instead of the data document.
func Blobs() pipeline.Func {
	return func(it item.Item, md *pipeline.Context) ([]item.Item, error) {
		blobs := make(map[string]any)
		for _, key := range blobKeys {
			data, ok := it[key].(map[string]any)
			if !ok {
				continue
			}
			delete(it, key)
			blobs[key] = data
		}
		it["_blob_files_"] = blobs
		return []item.Item{it}, nil
	}
}
