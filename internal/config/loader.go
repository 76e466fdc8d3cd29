package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}

// LoadRunner loads runner tuning.
// Search order: customPath -> ~/.runner/configs/runner.{yaml,toml} -> ./configs/runner.{yaml,toml} -> embedded default.
// Files only need to contain the keys they override.
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	candidates := make([]string, 0, 4)
	if dir := UserDir(); dir != "" {
		candidates = append(candidates,
			filepath.Join(dir, "configs", "runner.yaml"),
			filepath.Join(dir, "configs", "runner.toml"),
		)
	}
	candidates = append(candidates, "configs/runner.yaml", "configs/runner.toml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// loadFile decodes a tuning file over the built-in defaults.
func loadFile(path string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// UserDir returns ~/.runner, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runner")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
