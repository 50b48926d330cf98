package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadShooter loads the shooter configuration.
// Search order: customPath -> ~/.arcade/configs/shooter.yaml -> ./configs/shooter.yaml -> embedded default
func LoadShooter(customPath string) (ShooterConfig, error) {
	var cfg ShooterConfig

	// An explicit path must load
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

	// Discovered files are skipped when unreadable or invalid
	candidates := []string{userConfigPath("shooter.yaml"), filepath.Join("configs", "shooter.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var found ShooterConfig
		if yaml.Unmarshal(data, &found) == nil && found.Validate() == nil {
			return found, nil
		}
	}

	if err := yaml.Unmarshal(defaultShooterYAML, &cfg); err != nil {
		return DefaultShooterConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyShooterPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyShooterPreset(cfg *ShooterConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Pickups.ShieldChance = 0.15
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Pickups.ShieldChance = 0.04
	}
}
