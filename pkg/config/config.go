// Package config handles loading lzv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/lzv/config.yaml
//   - State:  ~/.local/state/lzv/ (analysis run history)
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// AnalyzerConfig names the analyzer executable and any extra arguments.
type AnalyzerConfig struct {
	Binary    string   `yaml:"binary,omitempty"`     // default: lizard (on PATH)
	ExtraArgs []string `yaml:"extra_args,omitempty"` // appended to every invocation
}

// Config is the top-level configuration for lzv.
type Config struct {
	Analyzer AnalyzerConfig `yaml:"analyzer,omitempty"`
	// Exclude holds doublestar globs matched against analyzed file paths.
	// Matching records are dropped from the snapshot, and matching paths are
	// skipped by the picker's fallback directory walk.
	Exclude []string `yaml:"exclude,omitempty"`
	// AutoRefresh re-runs analysis when sources under the analyzed root
	// change on disk.
	AutoRefresh bool `yaml:"auto_refresh,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Exclude: []string{"**/.git/**", "**/node_modules/**", "**/.venv/**"},
	}
}

// ConfigDir returns the XDG config directory for lzv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lzv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lzv")
}

// StateDir returns the XDG state directory for lzv.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "lzv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "lzv")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. A missing file is not an
// error: the defaults apply.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Excluded reports whether path matches any configured exclude glob.
// Paths are matched slash-separated; invalid globs never match.
func (c Config) Excluded(path string) bool {
	p := filepath.ToSlash(path)
	for _, glob := range c.Exclude {
		if ok, err := doublestar.Match(glob, p); err == nil && ok {
			return true
		}
	}
	return false
}
