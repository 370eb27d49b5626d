// File: pkg/collect/config.go
package collect

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults mirroring the flag surface.
const (
	DefaultOutputPrefix = "repositorio"
	DefaultHeaderLine   = "-----"
	DefaultMaxFileBytes = 2 * 1024 * 1024
	DefaultIgnoreFile   = ".repopackignore"
)

// Config holds the options for one collection run. The zero value is not
// usable; start from DefaultConfig or LoadConfigFile.
type Config struct {
	Root              string   `yaml:"root"`                // Directory to collect from.
	OutputPrefix      string   `yaml:"output_prefix"`       // Base name (optionally with directories) for output files.
	Exclude           []string `yaml:"exclude"`             // Glob/path exclusion patterns.
	IncludeExt        []string `yaml:"include_ext"`         // Extension allow-list; non-empty means exclusive.
	DenyExt           []string `yaml:"deny_ext"`            // Extension deny-list.
	IgnoredDirs       []string `yaml:"ignored_dirs"`        // Directory names pruned in addition to the defaults.
	NoDefaultExcludes bool     `yaml:"no_default_excludes"` // Disable the built-in name/extension/directory excludes.
	PrimaryExts       []string `yaml:"primary_exts"`        // Extensions ranked in the primary-source tier; empty means defaults.
	ConfigExts        []string `yaml:"config_exts"`         // Extensions ranked in the configuration/markup tier; empty means defaults.
	MaxFileBytes      int64    `yaml:"max_file_bytes"`      // Per-file size ceiling; 0 means unlimited.
	ChunkBytes        int      `yaml:"chunk_bytes"`         // Per-chunk byte budget; 0 means a single unbounded chunk.
	HeaderLine        string   `yaml:"header_line"`         // Separator between path and fenced content in each block.
	IgnoreFile        string   `yaml:"ignore_file"`         // Name of the in-root ignore file.
}

// DefaultConfig returns a Config with the documented defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Root:         ".",
		OutputPrefix: DefaultOutputPrefix,
		MaxFileBytes: DefaultMaxFileBytes,
		ChunkBytes:   0,
		HeaderLine:   DefaultHeaderLine,
		IgnoreFile:   DefaultIgnoreFile,
	}
}

// LoadConfigFile reads a YAML config file over the defaults.
// Unknown keys are rejected so typos surface instead of being ignored.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks option combinations before anything is walked or written.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root directory must not be empty")
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("invalid root %q: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %q is not a directory", c.Root)
	}
	if c.OutputPrefix == "" {
		return fmt.Errorf("output prefix must not be empty")
	}
	if c.MaxFileBytes < 0 {
		return fmt.Errorf("max file size must not be negative, got %d", c.MaxFileBytes)
	}
	if c.ChunkBytes < 0 {
		return fmt.Errorf("chunk byte budget must not be negative, got %d", c.ChunkBytes)
	}
	return nil
}

// normalizeExts lower-cases extensions and guarantees a leading dot,
// so ".PY", "py" and ".py" all normalize to ".py".
func normalizeExts(exts []string) map[string]bool {
	normalized := make(map[string]bool, len(exts))
	for _, e := range exts {
		s := strings.ToLower(strings.TrimSpace(e))
		if s == "" {
			continue
		}
		if !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		normalized[s] = true
	}
	return normalized
}
