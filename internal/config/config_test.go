package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML ShooterConfig
	if err := yaml.Unmarshal(defaultShooterYAML, &fromYAML); err != nil {
		t.Fatalf("embedded defaults should parse: %v", err)
	}
	if fromYAML != DefaultShooterConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", fromYAML, DefaultShooterConfig())
	}
	if err := fromYAML.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadShooterCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shooter.yaml")
	cfg := DefaultShooterConfig()
	cfg.Player.Lives = 9
	cfg.Enemies.Speed = 12.5

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	loaded, err := LoadShooter(path)
	if err != nil {
		t.Fatalf("LoadShooter() failed: %v", err)
	}
	if loaded.Player.Lives != 9 || loaded.Enemies.Speed != 12.5 {
		t.Errorf("LoadShooter() = %+v, expected custom values", loaded)
	}
}

func TestLoadShooterErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadShooter(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("player: [oops"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := LoadShooter(bad); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("malformed config error = %v, expected parse failure", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("player:\n  lives: 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := LoadShooter(invalid); err == nil || !strings.Contains(err.Error(), "invalid shooter config") {
		t.Errorf("invalid config error = %v, expected validation failure", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultShooterConfig()
	cfg.Pickups.ShieldChance = 2
	cfg.Difficulty.Progression.Type = "waves"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, want := range []string{"shield chance", "progression type"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q should mention %q", err, want)
		}
	}
}

func TestApplyShooterPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		enabled      bool
		initialLevel float64
		lives        int
	}{
		{DifficultyEasy, true, 0.0, 5},
		{DifficultyNormal, true, 0.3, 3},
		{DifficultyHard, true, 0.7, 2},
		{DifficultyFixed, false, 0.0, 3},
		{"", true, 0.0, 3},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultShooterConfig()
			ApplyShooterPreset(&cfg, tc.preset)

			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initialLevel {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initialLevel)
			}
			if cfg.Player.Lives != tc.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Player.Lives, tc.lives)
			}
		})
	}
}

func TestDifficultyLevel(t *testing.T) {
	cfg := DefaultShooterConfig().Difficulty
	cfg.Progression = ProgressionConfig{Type: "time", MaxAt: 100}
	d := NewDifficultyManager(cfg)

	if got := d.Level(0, 0); got != 0 {
		t.Errorf("Level at start = %v, expected 0", got)
	}
	if got := d.Level(0, 50); got != 0.5 {
		t.Errorf("Level at half time = %v, expected 0.5", got)
	}
	if got := d.Level(0, 1000); got != 1 {
		t.Errorf("Level past max = %v, expected 1", got)
	}

	cfg.InitialLevel = 0.5
	d = NewDifficultyManager(cfg)
	if got := d.Level(0, 50); got != 0.75 {
		t.Errorf("Level from 0.5 at half time = %v, expected 0.75", got)
	}
}

func TestDifficultyScoreProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 200},
	})

	if got := d.Level(50, 999); got != 0.25 {
		t.Errorf("Level() = %v, expected 0.25", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	cfg := DefaultShooterConfig().Difficulty
	cfg.Enabled = false
	cfg.InitialLevel = 0.4
	d := NewDifficultyManager(cfg)

	if d.IsEnabled() {
		t.Error("IsEnabled() should be false")
	}
	if got := d.Level(1000, 1000); got != 0.4 {
		t.Errorf("Level() = %v, expected fixed 0.4", got)
	}
}

func TestDifficultyScaling(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 10},
		Scaling:     ScalingConfig{SpeedMultiplier: 2, SpawnReduction: 0.5},
	})

	if got := d.EnemySpeed(4, 0, 10); got != 12 {
		t.Errorf("EnemySpeed() at max = %v, expected 12", got)
	}
	if got := d.SpawnInterval(2, 0, 10); got != 1 {
		t.Errorf("SpawnInterval() at max = %v, expected 1", got)
	}
	if got := d.SpawnInterval(0.3, 0, 10); math.Abs(got-minSpawnInterval) > 1e-12 {
		t.Errorf("SpawnInterval() = %v, expected floor %v", got, minSpawnInterval)
	}
}
