package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Pipeline configures the ordered step list.
type Pipeline struct {
	// Steps is the ordered list of step names to run. When empty, the
	// repository default list is used.
	Steps []string `toml:"steps"`
	// DoNotAddDrop names steps whose container drops must not propagate to
	// descendant paths.
	DoNotAddDrop []string `toml:"do_not_add_drop"`
}

// PathFilter configures the allowed and drop path prefix sets.
type PathFilter struct {
	Allowed []string `toml:"allowed"`
	Drop    []string `toml:"drop"`
}

// Paths configures path handling: export prefixes to strip, cleanup
// substitutions, the allow/drop filter, and per-path portal type overrides.
type Paths struct {
	ExportPrefixes []string          `toml:"export_prefixes"`
	Cleanup        map[string]string `toml:"cleanup"`
	Filter         PathFilter        `toml:"filter"`
	PortalType     map[string]string `toml:"portal_type"`
}

// TypeInfo configures handling for one source portal type.
type TypeInfo struct {
	// PortalType is the destination type; items of a source type with no
	// mapping are dropped.
	PortalType string `toml:"portal_type"`
	// Processor names the pre-processor for this type ("default" when empty).
	Processor string `toml:"processor"`
	// Blocks are default blocks added to items of this type.
	Blocks []map[string]any `toml:"blocks"`
	// OverrideBlocks replace Blocks entirely when set.
	OverrideBlocks []map[string]any `toml:"override_blocks"`
}

// ReviewStateFilter configures which workflow states survive migration.
type ReviewStateFilter struct {
	Allowed []string `toml:"allowed"`
}

// ReviewStateRewrite configures workflow and state renames applied to the
// review state and workflow history of every item.
type ReviewStateRewrite struct {
	States    map[string]string `toml:"states"`
	Workflows map[string]string `toml:"workflows"`
}

// ReviewState groups workflow-state filtering and rewriting.
type ReviewState struct {
	Filter  ReviewStateFilter  `toml:"filter"`
	Rewrite ReviewStateRewrite `toml:"rewrite"`
}

// Principals configures creator cleanup.
type Principals struct {
	Remove  []string `toml:"remove"`
	Default string   `toml:"default"`
}

// Sanitize lists item keys removed before export.
type Sanitize struct {
	DropKeys []string `toml:"drop_keys"`
}

// DefaultPages configures default-page merging.
type DefaultPages struct {
	// Keep retains the default_page table in the exported metadata.
	Keep bool `toml:"keep"`
	// KeysFromParent are copied from the container onto its merged
	// default-page child.
	KeysFromParent []string `toml:"keys_from_parent"`
}

// Checkpoint configures the incremental-run store.
type Checkpoint struct {
	Path string `toml:"path"`
}

// Logging configures log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for transmute.
type Config struct {
	// Debug enables verbose reporting and the debug metadata dump.
	Debug bool `toml:"debug"`

	Pipeline     Pipeline                  `toml:"pipeline"`
	Paths        Paths                     `toml:"paths"`
	Types        map[string]TypeInfo       `toml:"types"`
	ReviewState  ReviewState               `toml:"review_state"`
	Principals   Principals                `toml:"principals"`
	Sanitize     Sanitize                  `toml:"sanitize"`
	DefaultPages DefaultPages              `toml:"default_pages"`
	DataOverride map[string]map[string]any `toml:"data_override"`
	Checkpoint   Checkpoint                `toml:"checkpoint"`
	Logging      Logging                   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/transmute/config.toml")
}

// Load locates, parses, and validates a configuration file. When no file is
// found the repository defaults are returned. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	projectPath, err := filepath.Abs("transmute.toml")
	if err != nil {
		return "", false, err
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	if len(c.Pipeline.Steps) == 0 {
		c.Pipeline.Steps = defaultSteps()
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Checkpoint.Path) == "" {
		c.Checkpoint.Path = defaultCheckpointPath
	}
	var err error
	if c.Checkpoint.Path, err = expandPath(c.Checkpoint.Path); err != nil {
		return fmt.Errorf("checkpoint.path: %w", err)
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// PortalTypeFor maps a source portal type to its destination type, returning
// the empty string when no mapping exists.
func (c *Config) PortalTypeFor(sourceType string) string {
	return c.Types[sourceType].PortalType
}

// ProcessorFor returns the configured pre-processor name for a source type,
// falling back to "default".
func (c *Config) ProcessorFor(sourceType string) string {
	if name := c.Types[sourceType].Processor; name != "" {
		return name
	}
	return defaultTypeProcessor
}
