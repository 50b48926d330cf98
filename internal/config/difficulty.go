package config

import "math"

// minSpawnInterval keeps the spawner from flooding the screen.
const minSpawnInterval = 0.25

// DifficultyManager calculates dynamic game parameters based on score or level time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
// levelTime is in seconds and should exclude paused time.
func (d *DifficultyManager) Level(score int, levelTime float64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = levelTime / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// EnemySpeed returns the enemy speed for the current difficulty.
func (d *DifficultyManager) EnemySpeed(base float64, score int, levelTime float64) float64 {
	level := d.Level(score, levelTime)
	return base * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// SpawnInterval returns the seconds between enemy spawns for the current difficulty.
func (d *DifficultyManager) SpawnInterval(base float64, score int, levelTime float64) float64 {
	level := d.Level(score, levelTime)
	reduction := clampF(d.cfg.Scaling.SpawnReduction, 0.0, 1.0)
	return math.Max(base*(1.0-level*reduction), minSpawnInterval)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
