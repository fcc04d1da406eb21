package steps

import (
	"transmute/internal/config"
	"transmute/internal/pipeline"
)

// Step names, as referenced from the pipeline.steps configuration list.
const (
	NameExportPrefix  = "export_prefix"
	NameIDs           = "ids"
	NamePaths         = "paths"
	NameDefaultPage   = "default_page"
	NameReviewState   = "review_state"
	NamePortalType    = "portal_type"
	NameCreators      = "creators"
	NameBasicMetadata = "basic_metadata"
	NameConstraints   = "constraints"
	NameBlobs         = "blobs"
	NameBlocks        = "blocks"
	NameSanitize      = "sanitize"
	NameDataOverride  = "data_override"
)

// Register binds every built-in step to its name. The path filter is the
// run's live filter instance so the paths step observes drop prefixes added
// mid-run; conv converts HTML body text into block structures.
func Register(reg *pipeline.Registry, cfg *config.Config, filter *pipeline.PathFilter, conv Converter) {
	reg.Register(NameExportPrefix, ExportPrefix(cfg))
	reg.Register(NameIDs, IDs(cfg))
	reg.Register(NamePaths, Paths(filter))
	reg.Register(NameDefaultPage, DefaultPage(cfg))
	reg.Register(NameReviewState, ReviewStateStep(cfg))
	reg.Register(NamePortalType, PortalType(cfg))
	reg.Register(NameCreators, Creators(cfg))
	reg.Register(NameBasicMetadata, BasicMetadata())
	reg.Register(NameConstraints, Constraints(cfg))
	reg.Register(NameBlobs, Blobs())
	reg.Register(NameBlocks, Blocks(cfg, conv))
	reg.Register(NameSanitize, Sanitize(cfg))
	reg.Register(NameDataOverride, DataOverride(cfg))
}
