package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for augur.
type Config struct {
	// Extraction behavior
	Extract ExtractConfig `koanf:"extract" json:"extract" toml:"extract"`

	// File discovery for directory runs
	Scan ScanConfig `koanf:"scan" json:"scan" toml:"scan"`

	// Directory tree printer options
	Tree TreeConfig `koanf:"tree" json:"tree" toml:"tree"`

	// Output settings
	Output OutputConfig `koanf:"output" json:"output" toml:"output"`
}

// ExtractConfig controls how declarations are keyed and shaped.
type ExtractConfig struct {
	QualifyMethods bool `koanf:"qualify_methods" json:"qualify_methods" toml:"qualify_methods"`
	DropReceiver   bool `koanf:"drop_receiver" json:"drop_receiver" toml:"drop_receiver"`
	ClassRecords   bool `koanf:"class_records" json:"class_records" toml:"class_records"`
}

// ScanConfig defines exclusions for directory analysis.
type ScanConfig struct {
	Dirs      []string `koanf:"dirs" json:"dirs" toml:"dirs"`
	Patterns  []string `koanf:"patterns" json:"patterns" toml:"patterns"`
	Gitignore bool     `koanf:"gitignore" json:"gitignore" toml:"gitignore"`
}

// TreeConfig holds the tree printer's recognized options.
type TreeConfig struct {
	Filter       string   `koanf:"filter" json:"filter" toml:"filter"`
	MaxDepth     int      `koanf:"max_depth" json:"max_depth" toml:"max_depth"`
	IncludeSize  bool     `koanf:"include_size" json:"include_size" toml:"include_size"`
	IncludeMTime bool     `koanf:"include_mtime" json:"include_mtime" toml:"include_mtime"`
	SortByMTime  bool     `koanf:"sort_by_mtime" json:"sort_by_mtime" toml:"sort_by_mtime"`
	ExcludeDirs  []string `koanf:"exclude_dirs" json:"exclude_dirs" toml:"exclude_dirs"`
	Gitignore    bool     `koanf:"gitignore" json:"gitignore" toml:"gitignore"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format" json:"format" toml:"format"` // text, json, markdown, toon, yaml
	Color  bool   `koanf:"color" json:"color" toml:"color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			QualifyMethods: false,
			DropReceiver:   false,
			ClassRecords:   false,
		},
		Scan: ScanConfig{
			Dirs: []string{
				"venv",
				".venv",
				".git",
				"__pycache__",
				".pytest_cache",
				"node_modules",
			},
			Patterns:  []string{},
			Gitignore: true,
		},
		Tree: TreeConfig{
			MaxDepth: 0, // unlimited
			ExcludeDirs: []string{
				"venv",
				".venv",
				".git",
				"__pycache__",
				".pytest_cache",
				"node_modules",
			},
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file, layered over defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns
// defaults. The second return value names the file used, empty when none
// was found.
func LoadOrDefault() (*Config, string) {
	configNames := []string{
		"augur.toml",
		"augur.yaml",
		"augur.yml",
		"augur.json",
		".augur.toml",
		".augur.yaml",
		".augur.yml",
		".augur.json",
	}

	searchDirs := []string{".", ".augur"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				if cfg, err := Load(path); err == nil {
					return cfg, path
				}
			}
		}
	}

	return DefaultConfig(), ""
}
