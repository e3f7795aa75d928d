package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadGravity loads the game configuration. Missing keys keep their defaults.
// Search order: customPath -> ~/.gravity/configs/gravity.yaml -> ./configs/gravity.yaml -> embedded default
func LoadGravity(customPath string) (GravityConfig, error) {
	cfg := DefaultGravityConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{userConfigPath("gravity.yaml"), filepath.Join("configs", "gravity.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if loaded, ok := tryLoad(path); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGravityYAML, &cfg); err != nil {
		return DefaultGravityConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are skipped.
func tryLoad(path string) (GravityConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GravityConfig{}, false
	}
	cfg := DefaultGravityConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GravityConfig{}, false
	}
	if cfg.Validate() != nil {
		return GravityConfig{}, false
	}
	return cfg, true
}

// UserDir returns ~/.gravity, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gravity")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
