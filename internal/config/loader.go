package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in each search location.
const FileName = "goldrun.yaml"

// LoadGoldrun loads the configuration.
// Search order: customPath -> ~/.goldrun/configs/goldrun.yaml -> ./configs/goldrun.yaml -> embedded default
// Fields missing from a file keep their default values.
func LoadGoldrun(customPath string) (GoldrunConfig, error) {
	cfg := DefaultGoldrunConfig()

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

	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if c, ok := tryFile(path, cfg); ok {
			return c, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGoldrunYAML, &cfg); err != nil {
		return DefaultGoldrunConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile reads path over base. Unreadable or invalid files are skipped.
func tryFile(path string, base GoldrunConfig) (GoldrunConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, false
	}
	if cfg.Validate() != nil {
		return base, false
	}
	return cfg, true
}

// userConfigPath returns the path in the user's config directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".goldrun", "configs", filename)
}

// Load loads the configuration and applies a difficulty preset.
func Load(customPath, preset string) (GoldrunConfig, error) {
	p, err := ParsePreset(preset)
	if err != nil {
		return GoldrunConfig{}, err
	}
	cfg, err := LoadGoldrun(customPath)
	if err != nil {
		return cfg, err
	}
	if p != "" {
		ApplyGoldrunPreset(&cfg, p)
	}
	return cfg, nil
}
