package steps

import (
	"transmute/internal/item"
	"transmute/internal/pipeline"
)

// Paths drops items whose path fails the allow/drop prefix filter. The
// filter is the run's live instance, so containers dropped earlier in the
// run exclude their descendants here.
func Paths(filter *pipeline.PathFilter) pipeline.Func {
	return func(it item.Item, md *pipeline.Context) ([]item.Item, error) {
		if !filter.Allows(it.Path()) {
			return []item.Item{nil}, nil
		}
		return []item.Item{it}, nil
	}
}
