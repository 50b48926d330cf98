// Package collision implements axis-aligned box colliders for 2D entities.
//
// A Collider is a box of a given size centered on its owner's position. It
// holds a handle to the owner, never the owner itself, and resolves the
// position through the World on every query. Colliders come in two kinds:
// static colliders are tested at the owner's current position only, swept
// colliders test the whole path the owner travelled during the last tick so
// fast objects cannot tunnel through thin targets.
//
// The World is the registry: it owns the live colliders and runs the
// brute-force pairwise sweep each tick, reporting hits to both owners.
package collision

import (
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// EntityID is a handle to an entity registered with a World.
type EntityID uint32

// ColliderID identifies a collider within its World.
type ColliderID uint32

// Entity is the surface the collision core needs from a game object.
type Entity interface {
	// Position returns the current center of the entity.
	Position() core.Vec2

	// PastPosition returns the center as of the previous tick.
	PastPosition() core.Vec2

	// OnCollision is called once per detected pair per tick.
	// It must not add or remove colliders synchronously expecting
	// them to take part in the running sweep.
	OnCollision(c Collision)
}

// Kind selects the overlap test a collider runs.
type Kind uint8

const (
	KindStatic Kind = iota // sampled at the current position
	KindSwept              // tested along the previous-to-current path
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindSwept:
		return "swept"
	default:
		return "unknown"
	}
}

// Collider is an axis-aligned box attached to an entity.
type Collider struct {
	id        ColliderID
	owner     EntityID
	kind      Kind
	width     float64
	height    float64
	enabled   bool
	trigger   bool
	destroyed bool
	world     *World
}

// ID returns the collider's identifier.
func (c *Collider) ID() ColliderID {
	return c.id
}

// Owner returns the handle of the owning entity.
func (c *Collider) Owner() EntityID {
	return c.owner
}

// Kind returns whether the collider is static or swept.
func (c *Collider) Kind() Kind {
	return c.kind
}

// IsFast reports whether the collider runs the swept test.
func (c *Collider) IsFast() bool {
	return c.kind == KindSwept
}

// Width returns the box width.
func (c *Collider) Width() float64 {
	return c.width
}

// Height returns the box height.
func (c *Collider) Height() float64 {
	return c.height
}

// SetWidth sets the box width. Negative values are clamped to zero.
func (c *Collider) SetWidth(w float64) {
	c.width = c.clampSize("width", w)
}

// SetHeight sets the box height. Negative values are clamped to zero.
func (c *Collider) SetHeight(h float64) {
	c.height = c.clampSize("height", h)
}

// SetSize sets width and height together.
func (c *Collider) SetSize(w, h float64) {
	c.SetWidth(w)
	c.SetHeight(h)
}

func (c *Collider) clampSize(dim string, v float64) float64 {
	if v >= 0 {
		return v
	}
	c.world.logger.Warn("negative collider size clamped",
		"collider", c.id,
		"owner", c.owner,
		"dim", dim,
		"value", v,
	)
	return 0
}

// Enabled reports whether the collider takes part in sweeps.
func (c *Collider) Enabled() bool {
	return c.enabled
}

// SetEnabled turns participation in sweeps on or off.
func (c *Collider) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// Trigger reports whether the collider is a trigger.
// Triggers are detected like solids; owners decide how to react.
func (c *Collider) Trigger() bool {
	return c.trigger
}

// SetTrigger marks the collider as a trigger or a solid.
func (c *Collider) SetTrigger(trigger bool) {
	c.trigger = trigger
}

// Destroyed reports whether Destroy has been called.
func (c *Collider) Destroyed() bool {
	return c.destroyed
}

// parent resolves the owner handle.
func (c *Collider) parent() (Entity, bool) {
	if c.world == nil {
		return nil, false
	}
	e, ok := c.world.entities[c.owner]
	return e, ok
}

// Attached reports whether the owner handle still resolves.
func (c *Collider) Attached() bool {
	_, ok := c.parent()
	return ok
}

// Position returns the owner's current position, or the zero vector
// if the owner is gone.
func (c *Collider) Position() core.Vec2 {
	if e, ok := c.parent(); ok {
		return e.Position()
	}
	return core.Vec2{}
}

// PastPosition returns the owner's previous-tick position, or the zero
// vector if the owner is gone.
func (c *Collider) PastPosition() core.Vec2 {
	if e, ok := c.parent(); ok {
		return e.PastPosition()
	}
	return core.Vec2{}
}

// Bounds returns the box at the owner's current position.
func (c *Collider) Bounds() core.Box {
	return core.BoxAround(c.Position(), c.width, c.height)
}

// Corners returns the box corners clockwise from the top-left:
// top-left, top-right, bottom-right, bottom-left.
func (c *Collider) Corners() [4]core.Vec2 {
	return c.Bounds().Corners()
}

// IsColliding tests c against other with the test matching their kinds.
// Whenever either side is swept, the test runs from the swept side.
// A collider whose owner is gone never collides.
func (c *Collider) IsColliding(other *Collider) bool {
	if !c.Attached() || !other.Attached() {
		return false
	}
	switch {
	case c.kind == KindSwept:
		return sweptColliding(c, other)
	case other.kind == KindSwept:
		return sweptColliding(other, c)
	default:
		return staticColliding(c, other)
	}
}

// Collide hands col to the owner's collision handler.
func (c *Collider) Collide(col Collision) {
	if e, ok := c.parent(); ok {
		e.OnCollision(col)
	}
}

// Destroy removes the collider from its world.
// It must be called when the owner is torn down.
func (c *Collider) Destroy() {
	if c.world != nil {
		c.world.Remove(c)
	}
}
