package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for LeakMon. All fields
// are pointers so the merge logic can tell "unset" from "explicitly zero".
type FileConfig struct {
	Roots   []string `yaml:"roots"`
	Exclude *string  `yaml:"exclude"` // comma-separated globs

	MaxBytes         *int64   `yaml:"max_bytes"`
	Disable          *string  `yaml:"disable"` // comma-separated detector IDs
	MinConfidence    *float64 `yaml:"min_confidence"`
	EntropyThreshold *float64 `yaml:"entropy_threshold"`
	MinTokenLength   *int     `yaml:"min_token_length"`
	ContextBytes     *int     `yaml:"context_bytes"`
	ReadTimeout      *string  `yaml:"read_timeout"` // duration string, e.g. "2s"

	NoColor         *bool `yaml:"no_color"`
	DefaultExcludes *bool `yaml:"default_excludes"`
	SkipComments    *bool `yaml:"skip_comments"`

	// AuditLog overrides the default audit log location.
	AuditLog *string `yaml:"audit_log"`

	// Markers that classify a file or line as test data for the
	// confidence penalty. Empty means built-in defaults.
	TestPathMarkers []string `yaml:"test_path_markers"`
	InlineMarkers   []string `yaml:"inline_markers"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .leakmon.yml/.yaml and leakmon.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".leakmon.yml", ".leakmon.yaml", "leakmon.yml", "leakmon.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "leakmon", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
