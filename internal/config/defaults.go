package config

const (
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultCheckpointPath = "~/.local/share/transmute/checkpoint.db"
	defaultCreator        = "admin"
	defaultTypeProcessor  = "default"
)

func defaultSteps() []string {
	return []string{
		"export_prefix",
		"ids",
		"paths",
		"default_page",
		"review_state",
		"portal_type",
		"creators",
		"basic_metadata",
		"constraints",
		"blobs",
		"blocks",
		"sanitize",
		"data_override",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Pipeline: Pipeline{
			Steps: defaultSteps(),
			// A deferred default page and a path-filtered item are not
			// container drops that should cascade to descendants.
			DoNotAddDrop: []string{"paths", "default_page"},
		},
		Paths: Paths{
			Cleanup:    map[string]string{},
			PortalType: map[string]string{},
		},
		Types: map[string]TypeInfo{
			"Document":   {PortalType: "Document"},
			"News Item":  {PortalType: "News Item"},
			"Event":      {PortalType: "Event"},
			"File":       {PortalType: "File"},
			"Image":      {PortalType: "Image"},
			"Link":       {PortalType: "Link"},
			"Folder":     {PortalType: "Document"},
			"Collection": {PortalType: "Document", Processor: "collection"},
			"Topic":      {PortalType: "Document", Processor: "collection"},
		},
		ReviewState: ReviewState{
			Rewrite: ReviewStateRewrite{
				States:    map[string]string{},
				Workflows: map[string]string{},
			},
		},
		Principals: Principals{
			Default: defaultCreator,
		},
		Sanitize: Sanitize{
			DropKeys: []string{
				"@components",
				"allow_discussion",
				"immediatelyAddableTypes",
				"locallyAllowedTypes",
				"next_item",
				"parent",
				"previous_item",
			},
		},
		DefaultPages: DefaultPages{
			KeysFromParent: []string{"@id", "id", "UID", "review_state"},
		},
		DataOverride: map[string]map[string]any{},
		Checkpoint: Checkpoint{
			Path: defaultCheckpointPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
