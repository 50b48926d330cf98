package shooter

import (
	"github.com/vovakirdan/tui-shooter/internal/collision"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// body is the motion state shared by every shooter entity.
type body struct {
	id   collision.EntityID
	pos  core.Vec2
	past core.Vec2
	vel  core.Vec2
	dead bool
	game *Game
}

func (b *body) Position() core.Vec2     { return b.pos }
func (b *body) PastPosition() core.Vec2 { return b.past }

// advance records the current position as the past one and moves by vel*dt.
func (b *body) advance(dt float64) {
	b.past = b.pos
	b.pos.Add(b.vel.Scaled(dt))
}

func (b *body) base() *body { return b }

// entity is implemented by every object the game tracks.
type entity interface {
	collision.Entity
	base() *body
}

// Player is the ship controlled by the user.
type Player struct {
	body
	lives    int
	shield   bool
	cooldown float64 // seconds until the next shot
	invuln   float64 // seconds of remaining grace after a hit
	hold     float64 // seconds the last move input keeps the ship moving
}

// OnCollision handles contact with enemies and pickups.
func (p *Player) OnCollision(c collision.Collision) {
	switch p.game.entityOf(c.Other()).(type) {
	case *Enemy:
		if c.Other().Trigger() || p.invuln > 0 {
			return
		}
		p.invuln = p.game.cfg.Player.Invulnerable
		if p.shield {
			p.shield = false
			return
		}
		p.lives--
	case *Pickup:
		p.shield = true
	}
}

// Bullet is a fast projectile fired upward by the player.
type Bullet struct {
	body
}

// OnCollision removes the bullet when it hits an enemy.
// The player and pickups are passed through.
func (b *Bullet) OnCollision(c collision.Collision) {
	if _, ok := b.game.entityOf(c.Other()).(*Enemy); ok {
		b.game.despawn(b)
	}
}

// Enemy descends toward the player.
type Enemy struct {
	body
}

// OnCollision destroys the enemy when shot or when it rams the player.
func (e *Enemy) OnCollision(c collision.Collision) {
	if e.dead {
		return
	}
	switch e.game.entityOf(c.Other()).(type) {
	case *Bullet:
		e.game.score += e.game.cfg.Enemies.Score
		e.game.stats.Kills++
		e.game.despawn(e)
		e.game.maybeDropShield(e.pos)
	case *Player:
		e.game.despawn(e)
	}
}

// Pickup grants a shield when the player touches it.
type Pickup struct {
	body
}

// OnCollision removes the pickup once collected.
func (p *Pickup) OnCollision(c collision.Collision) {
	if _, ok := p.game.entityOf(c.Other()).(*Player); ok {
		p.game.despawn(p)
	}
}
