// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
)

// ShooterConfig contains all configuration for the shooter game.
// Distances are in screen cells, speeds in cells per second and
// durations in seconds.
type ShooterConfig struct {
	Player     ShooterPlayer    `yaml:"player"`
	Bullets    ShooterBullets   `yaml:"bullets"`
	Enemies    ShooterEnemies   `yaml:"enemies"`
	Pickups    ShooterPickups   `yaml:"pickups"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ShooterPlayer defines the player ship.
type ShooterPlayer struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	Lives        int     `yaml:"lives"`
	FireCooldown float64 `yaml:"fire_cooldown"`
	Invulnerable float64 `yaml:"invulnerable"` // Grace period after losing a life
}

// ShooterBullets defines player bullets.
type ShooterBullets struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// ShooterEnemies defines descending enemies.
type ShooterEnemies struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	Score         int     `yaml:"score"`
}

// ShooterPickups defines shield pickups dropped by destroyed enemies.
type ShooterPickups struct {
	ShieldChance float64 `yaml:"shield_chance"` // 0.0 - 1.0
	Speed        float64 `yaml:"speed"`
	Size         float64 `yaml:"size"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "score", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // Score or level-time seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to enemy speed multiplier at max difficulty
	SpawnReduction  float64 `yaml:"spawn_reduction"`  // Fraction of the spawn interval removed at max difficulty
}

// Validate reports every setting that would make the game unplayable.
func (c ShooterConfig) Validate() error {
	var errs []error
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %vx%v", c.Player.Width, c.Player.Height))
	}
	if c.Player.Lives <= 0 {
		errs = append(errs, fmt.Errorf("player lives must be positive, got %d", c.Player.Lives))
	}
	if c.Bullets.Speed <= 0 {
		errs = append(errs, fmt.Errorf("bullet speed must be positive, got %v", c.Bullets.Speed))
	}
	if c.Enemies.SpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("enemy spawn interval must be positive, got %v", c.Enemies.SpawnInterval))
	}
	if c.Pickups.ShieldChance < 0 || c.Pickups.ShieldChance > 1 {
		errs = append(errs, fmt.Errorf("shield chance must be within [0, 1], got %v", c.Pickups.ShieldChance))
	}
	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		errs = append(errs, fmt.Errorf("unknown progression type %q", c.Difficulty.Progression.Type))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid shooter config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
