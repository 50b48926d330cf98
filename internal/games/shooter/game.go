// Package shooter implements a vertical arcade shooter.
// The player ship fires fast bullets at enemies descending from the top of
// the screen. All contact is resolved by the collision world: bullets use
// swept colliders so they cannot pass through an enemy between two ticks.
package shooter

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/collision"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

// Registry identity.
const (
	ID    = "shooter"
	Title = "Shooter"
)

// Visual characters for rendering
const (
	PlayerChar = '▲'
	BulletChar = '│'
	EnemyChar  = '▼'
	ShieldChar = '◆'
	FloorChar  = '─'
)

const (
	// maxDelta caps a single step after the process was suspended.
	maxDelta = 0.25
	// moveHold is how long one key press keeps the ship moving.
	// Terminals report presses and repeats, never releases.
	moveHold = 0.12
	hudRows  = 1
)

// Options configures a Game beyond the runtime config.
type Options struct {
	Config *config.ShooterConfig // nil loads from the config path
	Now    func() time.Time      // time source for the frame clock, nil uses time.Now
	Logger *log.Logger           // collision world logger, nil discards
}

// Stats accumulates counters over one run.
type Stats struct {
	Ticks int
	Pairs int
	Hits  int
	Kills int
	Shots int
}

// Game implements the shooter game logic.
type Game struct {
	opts    Options
	runtime core.RuntimeConfig
	cfg     config.ShooterConfig

	clock      *core.FrameClock
	world      *collision.World
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	player  *Player
	bullets []*Bullet
	enemies []*Enemy
	pickups []*Pickup

	score      int
	gameOver   bool
	spawnTimer float64
	stats      Stats
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // Use config default
	}
}

// New creates a new shooter instance driven by the wall clock.
func New() *Game {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a new shooter instance.
func NewWithOptions(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return Title
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.opts.Config != nil {
		g.cfg = *g.opts.Config
	} else {
		cfg, err := config.LoadShooter(configPath)
		if err != nil {
			g.opts.Logger.Warn("using default shooter config", "err", err)
			cfg = config.DefaultShooterConfig()
		}
		config.ApplyShooterPreset(&cfg, difficultyPreset)
		g.cfg = cfg
	}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.world = collision.NewWorld(collision.WorldOptions{Logger: g.opts.Logger})

	g.bullets = g.bullets[:0]
	g.enemies = g.enemies[:0]
	g.pickups = g.pickups[:0]
	g.score = 0
	g.gameOver = false
	g.spawnTimer = 0
	g.stats = Stats{}

	g.player = &Player{lives: g.cfg.Player.Lives}
	start := core.NewVec2(float64(runtime.ScreenW)/2, float64(runtime.ScreenH)-1-g.cfg.Player.Height/2)
	g.attach(&g.player.body, g.player, start, core.Vec2{})
	g.addCollider(g.player.id, collision.KindStatic, g.cfg.Player.Width, g.cfg.Player.Height, false)

	g.clock = core.NewFrameClock(g.opts.Now)
	g.clock.Start()
	g.clock.StartLevel()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.clock.SetPause(!g.clock.Paused())
	}

	g.clock.CalcDeltaTime()
	if g.clock.Paused() {
		return core.StepResult{State: g.State()}
	}

	dt := math.Min(g.clock.Delta(), maxDelta)
	g.stats.Ticks++

	g.updatePlayer(in, dt)
	for _, b := range g.bullets {
		b.advance(dt)
	}
	for _, e := range g.enemies {
		e.advance(dt)
	}
	for _, p := range g.pickups {
		p.advance(dt)
	}
	g.spawnEnemies(dt)

	sweep := g.world.Sweep()
	g.stats.Pairs += sweep.Pairs
	g.stats.Hits += sweep.Hits

	g.cullOffscreen()
	g.prune()

	if g.player.lives <= 0 {
		g.gameOver = true
		g.clock.SetPause(true)
	}

	return core.StepResult{State: g.State(), Collisions: sweep.Hits}
}

// updatePlayer applies movement and fire input, then moves the ship.
func (g *Game) updatePlayer(in core.InputFrame, dt float64) {
	p := g.player

	if axis := in.Axis(); axis.LengthSquared() > 0 {
		p.vel = axis.Scaled(g.cfg.Player.Speed)
		p.hold = moveHold
	}
	p.hold -= dt
	if p.hold <= 0 {
		p.vel = core.Vec2{}
	}

	p.advance(dt)
	halfW, halfH := g.cfg.Player.Width/2, g.cfg.Player.Height/2
	p.pos.X = core.ClampF(p.pos.X, halfW, float64(g.runtime.ScreenW)-halfW)
	p.pos.Y = core.ClampF(p.pos.Y, hudRows+halfH, float64(g.runtime.ScreenH)-1-halfH)

	p.cooldown = math.Max(p.cooldown-dt, 0)
	p.invuln = math.Max(p.invuln-dt, 0)

	if in.Has(core.ActionFire) && p.cooldown == 0 {
		g.fire()
		p.cooldown = g.cfg.Player.FireCooldown
	}
}

// fire launches a bullet from the nose of the ship.
func (g *Game) fire() {
	b := &Bullet{}
	nose := g.player.pos.Minus(core.NewVec2(0, g.cfg.Player.Height/2))
	g.attach(&b.body, b, nose, core.NewVec2(0, -g.cfg.Bullets.Speed))
	g.addCollider(b.id, collision.KindSwept, g.cfg.Bullets.Width, g.cfg.Bullets.Height, true)
	g.bullets = append(g.bullets, b)
	g.stats.Shots++
}

// spawnEnemies releases enemies at the interval the difficulty allows.
func (g *Game) spawnEnemies(dt float64) {
	levelTime := g.clock.LevelTime()
	interval := g.difficulty.SpawnInterval(g.cfg.Enemies.SpawnInterval, g.score, levelTime)

	g.spawnTimer += dt
	for g.spawnTimer >= interval {
		g.spawnTimer -= interval

		halfW := g.cfg.Enemies.Width / 2
		span := math.Max(float64(g.runtime.ScreenW)-2*halfW, 0)
		pos := core.NewVec2(halfW+g.rng.Float64()*span, hudRows+g.cfg.Enemies.Height/2)
		speed := g.difficulty.EnemySpeed(g.cfg.Enemies.Speed, g.score, levelTime)

		e := &Enemy{}
		g.attach(&e.body, e, pos, core.NewVec2(0, speed))
		g.addCollider(e.id, collision.KindStatic, g.cfg.Enemies.Width, g.cfg.Enemies.Height, false)
		g.enemies = append(g.enemies, e)
	}
}

// maybeDropShield rolls for a shield pickup where an enemy died.
// It runs inside collision handlers, so the pickup joins the next sweep.
func (g *Game) maybeDropShield(at core.Vec2) {
	if g.rng.Float64() >= g.cfg.Pickups.ShieldChance {
		return
	}
	p := &Pickup{}
	g.attach(&p.body, p, at, core.NewVec2(0, g.cfg.Pickups.Speed))
	g.addCollider(p.id, collision.KindStatic, g.cfg.Pickups.Size, g.cfg.Pickups.Size, true)
	g.pickups = append(g.pickups, p)
}

// cullOffscreen removes entities that left the playfield.
// An enemy slipping past the bottom costs a life.
func (g *Game) cullOffscreen() {
	bottom := float64(g.runtime.ScreenH) - 1
	for _, b := range g.bullets {
		if !b.dead && b.pos.Y < hudRows {
			g.despawn(b)
		}
	}
	for _, e := range g.enemies {
		if !e.dead && e.pos.Y-g.cfg.Enemies.Height/2 >= bottom {
			g.despawn(e)
			g.player.lives--
		}
	}
	for _, p := range g.pickups {
		if !p.dead && p.pos.Y >= bottom {
			g.despawn(p)
		}
	}
}

// prune drops despawned entities from the game's lists.
func (g *Game) prune() {
	g.bullets = alive(g.bullets)
	g.enemies = alive(g.enemies)
	g.pickups = alive(g.pickups)
}

func alive[T entity](list []T) []T {
	out := list[:0]
	for _, e := range list {
		if !e.base().dead {
			out = append(out, e)
		}
	}
	clear(list[len(out):])
	return out
}

// attach registers e with the world and initializes its motion state.
func (g *Game) attach(b *body, e entity, pos, vel core.Vec2) {
	b.game = g
	b.pos = pos
	b.past = pos
	b.vel = vel
	b.id = g.world.AddEntity(e)
}

func (g *Game) addCollider(id collision.EntityID, kind collision.Kind, w, h float64, trigger bool) {
	var err error
	if kind == collision.KindSwept {
		_, err = g.world.NewFastCollider(id, w, h, trigger)
	} else {
		_, err = g.world.NewCollider(id, w, h, trigger)
	}
	if err != nil {
		g.opts.Logger.Error("attach collider", "entity", id, "err", err)
	}
}

// despawn removes e from the world. Safe to call from collision handlers.
func (g *Game) despawn(e entity) {
	b := e.base()
	if b.dead {
		return
	}
	b.dead = true
	g.world.RemoveEntity(b.id)
}

// entityOf resolves the owner of c, or nil if it is gone.
func (g *Game) entityOf(c *collision.Collider) collision.Entity {
	e, ok := g.world.Entity(c.Owner())
	if !ok {
		return nil
	}
	return e
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), FloorChar, core.ColorGray)

	for _, p := range g.pickups {
		dst.DrawRect(g.cellOf(p.pos, g.cfg.Pickups.Size, g.cfg.Pickups.Size), ShieldChar, core.ColorBrightCyan)
	}
	for _, e := range g.enemies {
		dst.DrawRect(g.cellOf(e.pos, g.cfg.Enemies.Width, g.cfg.Enemies.Height), EnemyChar, core.ColorRed)
	}
	for _, b := range g.bullets {
		dst.DrawRect(g.cellOf(b.pos, g.cfg.Bullets.Width, g.cfg.Bullets.Height), BulletChar, core.ColorYellow)
	}

	// Blink while invulnerable
	if g.player.invuln == 0 || g.stats.Ticks/4%2 == 0 {
		color := core.ColorGreen
		if g.player.shield {
			color = core.ColorBrightCyan
		}
		dst.DrawRect(g.cellOf(g.player.pos, g.cfg.Player.Width, g.cfg.Player.Height), PlayerChar, color)
	}

	g.drawHUD(dst)

	if g.clock.Paused() && !g.gameOver {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Time: %s  |  Press R to restart", g.score, core.FormatLevelTime(g.clock.LevelTime())))
	}
}

func (g *Game) cellOf(pos core.Vec2, w, h float64) core.Rect {
	return core.BoxAround(pos, w, h).Cell()
}

// drawHUD renders score, lives, shield and level time on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))

	lives := strings.Repeat("♥", core.Max(g.player.lives, 0))
	dst.DrawTextColored(14, 0, "Lives: "+lives, core.ColorBrightRed)

	if g.player.shield {
		dst.DrawTextColored(30, 0, "SHIELD", core.ColorBrightCyan)
	}

	levelTime := core.FormatLevelTime(g.clock.LevelTime())
	dst.DrawText(dst.Width()-len(levelTime)-1, 0, levelTime)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		Lives:     g.player.lives,
		LevelTime: g.clock.LevelTime(),
		GameOver:  g.gameOver,
		Paused:    g.clock.Paused() && !g.gameOver,
	}
}

// Stats returns the counters accumulated since the last Reset.
func (g *Game) Stats() Stats {
	return g.stats
}

func init() {
	registry.Register(ID, Title, func() registry.Game {
		return New()
	})
}
