package collision

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrUnknownEntity is returned when a collider is attached to a handle
// the world does not know.
var ErrUnknownEntity = errors.New("collision: unknown entity")

// WorldOptions configures a World.
type WorldOptions struct {
	// Logger receives anomaly reports. Nil discards them.
	Logger *log.Logger
}

// SweepStats summarizes one call to Sweep.
type SweepStats struct {
	Pairs int // enabled pairs with distinct owners that were tested
	Hits  int // pairs that collided
}

// World is the collider registry and entity handle store.
// It is not safe for concurrent use; the tick driver owns it.
type World struct {
	logger *log.Logger

	entities     map[EntityID]Entity
	colliders    []*Collider // registration order is sweep order
	nextEntity   EntityID
	nextCollider ColliderID

	sweeping bool
	pending  []func()
}

// NewWorld creates an empty world.
func NewWorld(opts WorldOptions) *World {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &World{
		logger:   logger,
		entities: make(map[EntityID]Entity),
	}
}

// AddEntity stores e and returns its handle.
// The handle is usable immediately, even during a sweep.
func (w *World) AddEntity(e Entity) EntityID {
	w.nextEntity++
	id := w.nextEntity
	w.entities[id] = e
	return id
}

// Entity resolves a handle.
func (w *World) Entity(id EntityID) (Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// RemoveEntity destroys every collider owned by id and forgets the handle.
// During a sweep the entity's colliders stop taking part right away and the
// handle is released once the sweep finishes.
func (w *World) RemoveEntity(id EntityID) {
	w.destroyOwnedBy(id)
	if w.sweeping {
		w.queue(func() {
			// catches colliders whose registration was itself queued
			w.destroyOwnedBy(id)
			delete(w.entities, id)
		})
		return
	}
	delete(w.entities, id)
}

func (w *World) destroyOwnedBy(id EntityID) {
	var owned []*Collider
	for _, c := range w.colliders {
		if c.owner == id {
			owned = append(owned, c)
		}
	}
	for _, c := range owned {
		c.Destroy()
	}
}

// CollidersOf returns the live colliders owned by id, in registration order.
func (w *World) CollidersOf(id EntityID) []*Collider {
	var out []*Collider
	for _, c := range w.colliders {
		if c.owner == id && !c.destroyed {
			out = append(out, c)
		}
	}
	return out
}

// NewCollider creates and registers a static collider of the given size.
func (w *World) NewCollider(owner EntityID, width, height float64, trigger bool) (*Collider, error) {
	return w.newCollider(owner, KindStatic, width, height, trigger)
}

// NewZeroCollider creates and registers a 0×0 static collider.
func (w *World) NewZeroCollider(owner EntityID, trigger bool) (*Collider, error) {
	return w.newCollider(owner, KindStatic, 0, 0, trigger)
}

// NewFastCollider creates and registers a swept collider of the given size.
func (w *World) NewFastCollider(owner EntityID, width, height float64, trigger bool) (*Collider, error) {
	return w.newCollider(owner, KindSwept, width, height, trigger)
}

// NewZeroFastCollider creates and registers a 0×0 swept collider.
func (w *World) NewZeroFastCollider(owner EntityID, trigger bool) (*Collider, error) {
	return w.newCollider(owner, KindSwept, 0, 0, trigger)
}

func (w *World) newCollider(owner EntityID, kind Kind, width, height float64, trigger bool) (*Collider, error) {
	if _, ok := w.entities[owner]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEntity, owner)
	}

	w.nextCollider++
	c := &Collider{
		id:      w.nextCollider,
		owner:   owner,
		kind:    kind,
		enabled: true,
		trigger: trigger,
		world:   w,
	}
	c.SetSize(width, height)
	w.Register(c)
	return c, nil
}

// Register adds c to the live set. During a sweep the addition is applied
// once the sweep finishes.
func (w *World) Register(c *Collider) {
	if w.sweeping {
		w.logger.Debug("register deferred until sweep ends", "collider", c.id)
		w.queue(func() { w.register(c) })
		return
	}
	w.register(c)
}

func (w *World) register(c *Collider) {
	if c.destroyed {
		return
	}
	// the owner may have been removed while this registration was queued
	if _, ok := w.entities[c.owner]; !ok {
		w.logger.Debug("register dropped, owner removed", "collider", c.id, "entity", c.owner)
		c.destroyed = true
		return
	}
	for _, existing := range w.colliders {
		if existing == c {
			return
		}
	}
	w.colliders = append(w.colliders, c)
}

// Remove takes c out of the live set. The collider stops colliding at once;
// during a sweep its slot is released once the sweep finishes.
func (w *World) Remove(c *Collider) {
	if c.destroyed {
		return
	}
	c.destroyed = true
	if w.sweeping {
		w.queue(func() { w.remove(c) })
		return
	}
	w.remove(c)
}

func (w *World) remove(c *Collider) {
	for i, existing := range w.colliders {
		if existing == c {
			w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
			return
		}
	}
	w.logger.Debug("remove of unregistered collider", "collider", c.id)
}

// Len returns the number of live colliders.
func (w *World) Len() int {
	return len(w.colliders)
}

// Sweep tests every unordered pair of enabled colliders once and reports
// each hit to both owners, each from its own side. Pairs sharing an owner
// are skipped. Registry changes made by collision handlers are applied
// after the last pair has been tested.
func (w *World) Sweep() SweepStats {
	var stats SweepStats

	w.sweeping = true
	for i := 0; i < len(w.colliders); i++ {
		a := w.colliders[i]
		for j := i + 1; j < len(w.colliders); j++ {
			if !active(a) {
				break
			}
			b := w.colliders[j]
			if !active(b) || a.owner == b.owner {
				continue
			}

			stats.Pairs++
			if !a.IsColliding(b) {
				continue
			}
			stats.Hits++
			a.Collide(NewCollision(a, b))
			b.Collide(NewCollision(b, a))
		}
	}
	w.sweeping = false

	w.flush()
	return stats
}

func active(c *Collider) bool {
	return c.enabled && !c.destroyed
}

func (w *World) queue(fn func()) {
	w.pending = append(w.pending, fn)
}

// flush applies registry changes queued during a sweep, in order.
func (w *World) flush() {
	for len(w.pending) > 0 {
		ops := w.pending
		w.pending = nil
		for _, op := range ops {
			op()
		}
	}
}
