package shooter

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-shooter/internal/collision"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// quietConfig disables spawning, drops and difficulty so tests place
// entities by hand.
func quietConfig() config.ShooterConfig {
	cfg := config.DefaultShooterConfig()
	cfg.Enemies.SpawnInterval = 1e6
	cfg.Pickups.ShieldChance = 0
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestGame(t *testing.T, cfg config.ShooterConfig) (*Game, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	g := NewWithOptions(Options{Config: &cfg, Now: clk.now})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	return g, clk
}

// tick advances the clock by d and steps with the given actions.
func tick(g *Game, clk *fakeClock, d time.Duration, actions ...core.Action) core.StepResult {
	clk.advance(d)
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func placeEnemy(g *Game, x, y float64) *Enemy {
	e := &Enemy{}
	g.attach(&e.body, e, core.NewVec2(x, y), core.Vec2{})
	g.addCollider(e.id, collision.KindStatic, g.cfg.Enemies.Width, g.cfg.Enemies.Height, false)
	g.enemies = append(g.enemies, e)
	return e
}

func placePickup(g *Game, x, y float64) *Pickup {
	p := &Pickup{}
	g.attach(&p.body, p, core.NewVec2(x, y), core.Vec2{})
	g.addCollider(p.id, collision.KindStatic, g.cfg.Pickups.Size, g.cfg.Pickups.Size, true)
	g.pickups = append(g.pickups, p)
	return p
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists("shooter") {
		t.Fatal("shooter should be registered")
	}
	g, err := registry.Create("shooter")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Shooter" {
		t.Errorf("Title() = %q, expected %q", g.Title(), "Shooter")
	}
}

func TestGameDeterminism(t *testing.T) {
	cfg := config.DefaultShooterConfig()

	run := func() (core.GameState, Stats, []core.Vec2) {
		g, clk := newTestGame(t, cfg)
		for i := 0; i < 900; i++ {
			var actions []core.Action
			if i%6 == 0 {
				actions = append(actions, core.ActionFire)
			}
			if (i/40)%2 == 0 {
				actions = append(actions, core.ActionLeft)
			} else {
				actions = append(actions, core.ActionRight)
			}
			if tick(g, clk, 16*time.Millisecond, actions...).State.GameOver {
				break
			}
		}
		var positions []core.Vec2
		for _, e := range g.enemies {
			positions = append(positions, e.pos)
		}
		return g.State(), g.Stats(), positions
	}

	state1, stats1, pos1 := run()
	state2, stats2, pos2 := run()

	if state1 != state2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", state1, state2)
	}
	if stats1 != stats2 {
		t.Errorf("Determinism failed: stats differ. Run1=%+v, Run2=%+v", stats1, stats2)
	}
	if len(pos1) != len(pos2) {
		t.Fatalf("Determinism failed: %d vs %d enemies", len(pos1), len(pos2))
	}
	for i := range pos1 {
		if !pos1[i].Equals(pos2[i]) {
			t.Errorf("enemy %d at %v vs %v", i, pos1[i], pos2[i])
		}
	}
	if stats1.Shots == 0 {
		t.Error("the run should have fired")
	}
}

func TestGameReset(t *testing.T) {
	g, clk := newTestGame(t, config.DefaultShooterConfig())

	for i := 0; i < 120; i++ {
		tick(g, clk, 16*time.Millisecond, core.ActionFire)
	}

	g.Reset(g.runtime)

	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused {
		t.Errorf("Reset should clear state, got %+v", state)
	}
	if state.LevelTime != 0 {
		t.Errorf("Reset should restart level time, got %v", state.LevelTime)
	}
	if state.Lives != g.cfg.Player.Lives {
		t.Errorf("Lives = %d, expected %d", state.Lives, g.cfg.Player.Lives)
	}
	if len(g.bullets) != 0 || len(g.enemies) != 0 || len(g.pickups) != 0 {
		t.Error("Reset should clear all entities")
	}
	if g.world.Len() != 1 {
		t.Errorf("world should hold only the player collider, got %d", g.world.Len())
	}
}

func TestFastBulletDoesNotTunnel(t *testing.T) {
	cfg := quietConfig()
	cfg.Bullets.Speed = 400
	g, clk := newTestGame(t, cfg)

	enemy := placeEnemy(g, 40, 10)

	// 400 cells/s over 50ms moves the bullet 20 cells in one tick
	res := tick(g, clk, 50*time.Millisecond, core.ActionFire)

	if !enemy.dead {
		t.Fatal("enemy should be destroyed by a bullet that crossed it")
	}
	if res.State.Score != cfg.Enemies.Score {
		t.Errorf("Score = %d, expected %d", res.State.Score, cfg.Enemies.Score)
	}
	if len(g.bullets) != 0 || len(g.enemies) != 0 {
		t.Errorf("bullet and enemy should be gone, got %d bullets and %d enemies", len(g.bullets), len(g.enemies))
	}
	if g.Stats().Kills != 1 {
		t.Errorf("Kills = %d, expected 1", g.Stats().Kills)
	}
}

func TestBulletMissesOffsetEnemy(t *testing.T) {
	g, clk := newTestGame(t, quietConfig())
	enemy := placeEnemy(g, 10, 10)

	for i := 0; i < 20; i++ {
		tick(g, clk, 50*time.Millisecond, core.ActionFire)
	}

	if enemy.dead || g.State().Score != 0 {
		t.Error("bullets fired far from the enemy should miss")
	}
	if g.Stats().Shots == 0 {
		t.Error("shots should have been fired")
	}
}

func TestFireCooldown(t *testing.T) {
	cfg := quietConfig()
	cfg.Player.FireCooldown = 0.25
	g, clk := newTestGame(t, cfg)

	for i := 0; i < 6; i++ {
		tick(g, clk, 125*time.Millisecond, core.ActionFire)
	}

	if g.Stats().Shots != 3 {
		t.Errorf("Shots = %d, expected 3", g.Stats().Shots)
	}
}

func TestEnemyContactCostsLife(t *testing.T) {
	g, clk := newTestGame(t, quietConfig())
	placeEnemy(g, g.player.pos.X, g.player.pos.Y)

	res := tick(g, clk, 16*time.Millisecond)

	if res.State.Lives != g.cfg.Player.Lives-1 {
		t.Errorf("Lives = %d, expected %d", res.State.Lives, g.cfg.Player.Lives-1)
	}
	if res.Collisions == 0 {
		t.Error("the contact should be reported")
	}
	if len(g.enemies) != 0 {
		t.Error("ramming enemy should be destroyed")
	}

	// grace period
	placeEnemy(g, g.player.pos.X, g.player.pos.Y)
	res = tick(g, clk, 16*time.Millisecond)
	if res.State.Lives != g.cfg.Player.Lives-1 {
		t.Errorf("invulnerable player should not lose a life, got %d", res.State.Lives)
	}
}

func TestShieldAbsorbsHit(t *testing.T) {
	g, clk := newTestGame(t, quietConfig())
	placePickup(g, g.player.pos.X, g.player.pos.Y)

	tick(g, clk, 16*time.Millisecond)

	if !g.player.shield {
		t.Fatal("pickup should grant a shield")
	}
	if len(g.pickups) != 0 {
		t.Error("collected pickup should be removed")
	}

	placeEnemy(g, g.player.pos.X, g.player.pos.Y)
	res := tick(g, clk, 16*time.Millisecond)

	if g.player.shield {
		t.Error("shield should be consumed")
	}
	if res.State.Lives != g.cfg.Player.Lives {
		t.Errorf("Lives = %d, shield should absorb the hit", res.State.Lives)
	}
}

func TestEnemyReachingBottomEndsGame(t *testing.T) {
	cfg := quietConfig()
	cfg.Player.Lives = 1
	g, clk := newTestGame(t, cfg)

	e := placeEnemy(g, 5, 20)
	e.vel = core.NewVec2(0, 10)

	var res core.StepResult
	for i := 0; i < 20 && !res.State.GameOver; i++ {
		res = tick(g, clk, 100*time.Millisecond)
	}

	if !res.State.GameOver {
		t.Fatal("losing the last life should end the game")
	}
	if res.State.Lives != 0 {
		t.Errorf("Lives = %d, expected 0", res.State.Lives)
	}
	if res.State.Paused {
		t.Error("a finished game should not report as paused")
	}

	frozen := res.State.LevelTime
	res = tick(g, clk, time.Second)
	if res.State.LevelTime != frozen {
		t.Errorf("level time should stop at game over, %v -> %v", frozen, res.State.LevelTime)
	}
}

func TestPauseExcludesLevelTime(t *testing.T) {
	g, clk := newTestGame(t, quietConfig())
	e := placeEnemy(g, 10, 5)
	e.vel = core.NewVec2(0, 1)

	for i := 0; i < 10; i++ {
		tick(g, clk, 100*time.Millisecond)
	}
	if lt := g.State().LevelTime; math.Abs(lt-1.0) > 1e-9 {
		t.Fatalf("LevelTime = %v, expected 1.0", lt)
	}

	res := tick(g, clk, 100*time.Millisecond, core.ActionPause)
	if !res.State.Paused {
		t.Fatal("pause should be toggled on")
	}
	frozenAt := e.pos
	for i := 0; i < 50; i++ {
		tick(g, clk, 100*time.Millisecond)
	}
	if !e.pos.Equals(frozenAt) {
		t.Error("entities should not move while paused")
	}
	if lt := g.State().LevelTime; math.Abs(lt-1.1) > 1e-9 {
		t.Errorf("LevelTime while paused = %v, expected 1.1", lt)
	}

	res = tick(g, clk, 100*time.Millisecond, core.ActionPause)
	if res.State.Paused {
		t.Fatal("pause should be toggled off")
	}
	for i := 0; i < 4; i++ {
		tick(g, clk, 100*time.Millisecond)
	}
	if lt := g.State().LevelTime; math.Abs(lt-1.5) > 1e-9 {
		t.Errorf("LevelTime = %v, expected 1.5", lt)
	}
}

func TestPlayerStaysOnScreen(t *testing.T) {
	g, clk := newTestGame(t, quietConfig())

	for i := 0; i < 100; i++ {
		tick(g, clk, 50*time.Millisecond, core.ActionLeft, core.ActionUp)
	}

	halfW := g.cfg.Player.Width / 2
	if g.player.pos.X != halfW {
		t.Errorf("X = %v, expected clamp at %v", g.player.pos.X, halfW)
	}
	if g.player.pos.Y < hudRows {
		t.Errorf("Y = %v, player should stay below the HUD", g.player.pos.Y)
	}
}

func TestPlayerStopsWithoutInput(t *testing.T) {
	g, clk := newTestGame(t, quietConfig())
	startX := g.player.pos.X

	tick(g, clk, 50*time.Millisecond, core.ActionRight)
	moved := g.player.pos.X
	if moved <= startX {
		t.Fatalf("Right should move the ship, X %v -> %v", startX, moved)
	}

	for i := 0; i < 10; i++ {
		tick(g, clk, 50*time.Millisecond)
	}
	if g.player.pos.X-moved > g.cfg.Player.Speed*moveHold {
		t.Errorf("ship should stop once the press expires, X = %v", g.player.pos.X)
	}
}

func TestEnemiesSpawnOnInterval(t *testing.T) {
	cfg := quietConfig()
	cfg.Enemies.SpawnInterval = 1
	g, clk := newTestGame(t, cfg)

	for i := 0; i < 3; i++ {
		tick(g, clk, 250*time.Millisecond)
	}
	if len(g.enemies) != 0 {
		t.Fatalf("no enemy expected before the interval, got %d", len(g.enemies))
	}

	tick(g, clk, 250*time.Millisecond)
	if len(g.enemies) != 1 {
		t.Fatalf("one enemy expected after the interval, got %d", len(g.enemies))
	}
	e := g.enemies[0]
	halfW := cfg.Enemies.Width / 2
	if e.pos.X < halfW || e.pos.X > 80-halfW {
		t.Errorf("enemy spawned off screen at %v", e.pos)
	}
}

func TestShieldDrop(t *testing.T) {
	cfg := quietConfig()
	cfg.Pickups.ShieldChance = 1
	g, clk := newTestGame(t, cfg)
	placeEnemy(g, 40, 15)

	tick(g, clk, 100*time.Millisecond, core.ActionFire)

	if len(g.pickups) != 1 {
		t.Fatalf("destroyed enemy should drop a pickup, got %d", len(g.pickups))
	}
	if g.world.Len() != 2 {
		t.Errorf("world should hold the player and the pickup, got %d colliders", g.world.Len())
	}
}

func TestRender(t *testing.T) {
	g, clk := newTestGame(t, quietConfig())
	placeEnemy(g, 20, 5)
	tick(g, clk, 10*time.Millisecond)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	if !strings.Contains(hud, "Score: 0") {
		t.Errorf("HUD %q should show the score", hud)
	}
	if !strings.Contains(hud, "0:00.01") {
		t.Errorf("HUD %q should show the level time", hud)
	}
	if !strings.ContainsRune(screen.String(), PlayerChar) {
		t.Error("player should be drawn")
	}
	if screen.Get(20, 5) != EnemyChar {
		t.Errorf("enemy cell = %q, expected %q", screen.Get(20, 5), EnemyChar)
	}
}
