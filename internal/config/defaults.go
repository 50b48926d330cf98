package config

import (
	_ "embed"
)

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// DefaultShooterConfig returns the default shooter configuration.
// It mirrors defaults/shooter.yaml.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Player: ShooterPlayer{
			Width:        3,
			Height:       1,
			Speed:        30,
			Lives:        3,
			FireCooldown: 0.2,
			Invulnerable: 1.5,
		},
		Bullets: ShooterBullets{
			Width:  1,
			Height: 1,
			Speed:  80,
		},
		Enemies: ShooterEnemies{
			Width:         3,
			Height:        1,
			Speed:         4,
			SpawnInterval: 1.4,
			Score:         10,
		},
		Pickups: ShooterPickups{
			ShieldChance: 0.08,
			Speed:        6,
			Size:         1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 180,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
				SpawnReduction:  0.65,
			},
		},
	}
}
