package collision

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// mustCollider unwraps a collider constructor result.
func mustCollider(t *testing.T) func(*Collider, error) *Collider {
	t.Helper()
	return func(c *Collider, err error) *Collider {
		t.Helper()
		if err != nil {
			t.Fatalf("creating collider failed: %v", err)
		}
		return c
	}
}

func TestWorldSweepDeliversBothSides(t *testing.T) {
	w := NewWorld(WorldOptions{})
	a, b := at(0, 0), at(1, 0)
	ca := mustCollider(t)(w.NewCollider(w.AddEntity(a), 4, 4, false))
	cb := mustCollider(t)(w.NewCollider(w.AddEntity(b), 4, 4, true))

	stats := w.Sweep()

	if stats.Pairs != 1 || stats.Hits != 1 {
		t.Errorf("Sweep() = %+v, expected 1 pair and 1 hit", stats)
	}
	if len(a.hits) != 1 || len(b.hits) != 1 {
		t.Fatalf("each side should get one collision, got %d and %d", len(a.hits), len(b.hits))
	}
	if a.hits[0].Self() != ca || a.hits[0].Other() != cb {
		t.Error("a should see itself as Self and b as Other")
	}
	if b.hits[0].Self() != cb || b.hits[0].Other() != ca {
		t.Error("b should see itself as Self and a as Other")
	}
	if !a.hits[0].Other().Trigger() {
		t.Error("triggers should be detected like solids")
	}
}

func TestWorldSweepEachPairOnce(t *testing.T) {
	w := NewWorld(WorldOptions{})
	bodies := []*body{at(0, 0), at(1, 0), at(0, 1), at(1, 1)}
	for _, b := range bodies {
		mustCollider(t)(w.NewCollider(w.AddEntity(b), 4, 4, false))
	}

	stats := w.Sweep()

	if stats.Pairs != 6 || stats.Hits != 6 {
		t.Errorf("Sweep() = %+v, expected 6 pairs and 6 hits", stats)
	}
	for i, b := range bodies {
		if len(b.hits) != 3 {
			t.Errorf("body %d got %d collisions, expected 3", i, len(b.hits))
		}
	}
}

func TestWorldSweepSkipsDisabled(t *testing.T) {
	w := NewWorld(WorldOptions{})
	a, b := at(0, 0), at(0, 0)
	mustCollider(t)(w.NewCollider(w.AddEntity(a), 2, 2, false))
	cb := mustCollider(t)(w.NewCollider(w.AddEntity(b), 2, 2, false))
	cb.SetEnabled(false)

	if stats := w.Sweep(); stats.Pairs != 0 {
		t.Errorf("disabled collider should not be tested, got %+v", stats)
	}
	if len(a.hits) != 0 {
		t.Error("no collision expected with a disabled collider")
	}

	cb.SetEnabled(true)
	if stats := w.Sweep(); stats.Hits != 1 {
		t.Errorf("re-enabled collider should collide, got %+v", stats)
	}
}

func TestWorldSweepSkipsSameOwner(t *testing.T) {
	var buf bytes.Buffer
	w := NewWorld(WorldOptions{Logger: log.New(&buf)})
	a := at(0, 0)
	id := w.AddEntity(a)
	mustCollider(t)(w.NewCollider(id, 2, 2, false))
	mustCollider(t)(w.NewCollider(id, 3, 3, true))

	if stats := w.Sweep(); stats.Pairs != 0 || stats.Hits != 0 {
		t.Errorf("same-owner pair should be filtered, got %+v", stats)
	}
	if len(a.hits) != 0 {
		t.Error("no self-collision should be delivered")
	}
	if len(w.CollidersOf(id)) != 2 {
		t.Errorf("CollidersOf() = %d colliders, expected 2", len(w.CollidersOf(id)))
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be logged, got %q", buf.String())
	}
}

func TestNewCollisionLogsSelfCollision(t *testing.T) {
	var buf bytes.Buffer
	w := NewWorld(WorldOptions{Logger: log.New(&buf)})
	id := w.AddEntity(at(0, 0))
	c1 := mustCollider(t)(w.NewCollider(id, 1, 1, false))
	c2 := mustCollider(t)(w.NewCollider(id, 1, 1, false))

	col := NewCollision(c1, c2)

	if col.Self() != c1 || col.Other() != c2 {
		t.Error("collision should still be built")
	}
	if !strings.Contains(buf.String(), "self-collision") {
		t.Errorf("expected a self-collision warning, got %q", buf.String())
	}
}

func TestWorldFastAgainstStatic(t *testing.T) {
	w := NewWorld(WorldOptions{})
	bullet := moving(0, 0, 100, 0)
	wall := at(50, 0)
	other := moving(0, 5, 100, 5)
	mustCollider(t)(w.NewFastCollider(w.AddEntity(bullet), 1, 1, true))
	mustCollider(t)(w.NewFastCollider(w.AddEntity(other), 1, 1, true))
	mustCollider(t)(w.NewCollider(w.AddEntity(wall), 2, 20, false))

	stats := w.Sweep()

	if stats.Pairs != 3 || stats.Hits != 2 {
		t.Errorf("Sweep() = %+v, expected 3 pairs and 2 hits", stats)
	}
	if len(wall.hits) != 2 {
		t.Errorf("wall should be hit by both bullets, got %d", len(wall.hits))
	}
	if len(bullet.hits) != 1 || bullet.hits[0].Self().Kind() != KindSwept {
		t.Error("bullet should get one collision from its swept collider")
	}
}

// destroyer removes a collider from its world when hit.
type destroyer struct {
	*body
	world  *World
	victim *Collider
}

func (d *destroyer) OnCollision(c Collision) {
	d.body.OnCollision(c)
	d.victim.Destroy()
}

func TestWorldRemoveDuringSweepIsDeferred(t *testing.T) {
	w := NewWorld(WorldOptions{})
	d := &destroyer{body: at(0, 0), world: w}
	mustCollider(t)(w.NewCollider(w.AddEntity(d), 2, 2, false))
	b, c := at(0.5, 0), at(-0.5, 0)
	cb := mustCollider(t)(w.NewCollider(w.AddEntity(b), 2, 2, false))
	mustCollider(t)(w.NewCollider(w.AddEntity(c), 2, 2, false))
	d.victim = cb

	w.Sweep()

	if !cb.Destroyed() {
		t.Error("victim should be destroyed")
	}
	if w.Len() != 2 {
		t.Errorf("Len() = %d after sweep, expected 2", w.Len())
	}
	if len(b.hits) != 1 {
		t.Errorf("victim should have been hit once before removal, got %d", len(b.hits))
	}
	if len(c.hits) != 1 {
		t.Errorf("remaining collider should still collide with the destroyer, got %d", len(c.hits))
	}
}

// spawner attaches a new collider to a fresh entity when hit.
type spawner struct {
	*body
	world   *World
	spawned *Collider
}

func (s *spawner) OnCollision(c Collision) {
	s.body.OnCollision(c)
	if s.spawned != nil {
		return
	}
	id := s.world.AddEntity(at(0, 0))
	s.spawned, _ = s.world.NewCollider(id, 2, 2, false)
}

func TestWorldRegisterDuringSweepIsDeferred(t *testing.T) {
	w := NewWorld(WorldOptions{})
	s := &spawner{body: at(0, 0), world: w}
	mustCollider(t)(w.NewCollider(w.AddEntity(s), 2, 2, false))
	mustCollider(t)(w.NewCollider(w.AddEntity(at(0, 0)), 2, 2, false))

	first := w.Sweep()

	if s.spawned == nil {
		t.Fatal("spawner should have created a collider")
	}
	if first.Hits != 1 {
		t.Errorf("new collider should not join the running sweep, got %+v", first)
	}
	if w.Len() != 3 {
		t.Errorf("Len() = %d after sweep, expected 3", w.Len())
	}

	second := w.Sweep()
	if second.Hits != 3 {
		t.Errorf("second sweep should include the new collider, got %+v", second)
	}
}

// replacer removes its own entity when hit and then tries to attach a new
// collider to the removed handle.
type replacer struct {
	*body
	world *World
	id    EntityID
	late  *Collider
}

func (r *replacer) OnCollision(c Collision) {
	r.body.OnCollision(c)
	if r.late != nil {
		return
	}
	r.world.RemoveEntity(r.id)
	r.late, _ = r.world.NewCollider(r.id, 2, 2, false)
}

func TestWorldRegisterForRemovedEntityDropped(t *testing.T) {
	w := NewWorld(WorldOptions{})
	r := &replacer{body: at(0, 0), world: w}
	r.id = w.AddEntity(r)
	mustCollider(t)(w.NewCollider(r.id, 2, 2, false))
	mustCollider(t)(w.NewCollider(w.AddEntity(at(0, 0)), 2, 2, false))

	w.Sweep()

	if r.late == nil {
		t.Fatal("collider should be created while the handle still resolves")
	}
	if _, ok := w.Entity(r.id); ok {
		t.Error("removed entity should no longer resolve")
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d after sweep, expected 1", w.Len())
	}
	if !r.late.Destroyed() {
		t.Error("collider queued for a removed entity should be destroyed")
	}
	if stats := w.Sweep(); stats.Pairs != 0 {
		t.Errorf("Sweep() = %+v, expected no pairs", stats)
	}
}

func TestWorldRemoveEntity(t *testing.T) {
	w := NewWorld(WorldOptions{})
	a := at(0, 0)
	id := w.AddEntity(a)
	c1 := mustCollider(t)(w.NewCollider(id, 1, 1, false))
	c2 := mustCollider(t)(w.NewFastCollider(id, 1, 1, false))
	mustCollider(t)(w.NewCollider(w.AddEntity(at(0, 0)), 1, 1, false))

	w.RemoveEntity(id)

	if !c1.Destroyed() || !c2.Destroyed() {
		t.Error("RemoveEntity should destroy the entity's colliders")
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", w.Len())
	}
	if _, ok := w.Entity(id); ok {
		t.Error("entity handle should no longer resolve")
	}
	if c1.Attached() {
		t.Error("collider should be detached once its owner is gone")
	}
	if stats := w.Sweep(); stats.Pairs != 0 {
		t.Errorf("Sweep() = %+v, expected no pairs", stats)
	}
}

func TestDetachedColliderNeverCollides(t *testing.T) {
	w := NewWorld(WorldOptions{})
	id := w.AddEntity(at(0, 0))
	c1 := mustCollider(t)(w.NewCollider(id, 4, 4, false))
	c2 := mustCollider(t)(w.NewCollider(w.AddEntity(at(0, 0)), 4, 4, false))

	delete(w.entities, id)

	if c1.IsColliding(c2) || c2.IsColliding(c1) {
		t.Error("a collider without an owner should never collide")
	}
	if !c1.Position().Equals(c1.PastPosition()) {
		t.Error("detached positions should both be the zero vector")
	}
}

func TestNewColliderUnknownEntity(t *testing.T) {
	w := NewWorld(WorldOptions{})

	_, err := w.NewCollider(EntityID(42), 1, 1, false)
	if !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("NewCollider() error = %v, expected ErrUnknownEntity", err)
	}
	if w.Len() != 0 {
		t.Error("no collider should be registered")
	}
}

func TestColliderDefaults(t *testing.T) {
	w := NewWorld(WorldOptions{})
	id := w.AddEntity(at(3, 4))

	c := mustCollider(t)(w.NewZeroCollider(id, true))
	if c.Width() != 0 || c.Height() != 0 {
		t.Errorf("zero collider size = %vx%v, expected 0x0", c.Width(), c.Height())
	}
	if !c.Enabled() || !c.Trigger() || c.IsFast() {
		t.Error("zero collider should be enabled, a trigger and static")
	}

	f := mustCollider(t)(w.NewZeroFastCollider(id, false))
	if !f.IsFast() || f.Kind().String() != "swept" {
		t.Error("zero fast collider should be swept")
	}
	if f.Owner() != id || f.ID() == c.ID() {
		t.Error("colliders should share the owner and have distinct ids")
	}

	c.SetSize(2, 6)
	corners := c.Corners()
	if !corners[0].Equals(at(2, 1).pos) || !corners[2].Equals(at(4, 7).pos) {
		t.Errorf("Corners() = %v, expected TL (2, 1) and BR (4, 7)", corners)
	}
}

func TestColliderNegativeSizeClamped(t *testing.T) {
	var buf bytes.Buffer
	w := NewWorld(WorldOptions{Logger: log.New(&buf)})
	c := mustCollider(t)(w.NewCollider(w.AddEntity(at(0, 0)), -4, 3, false))

	if c.Width() != 0 {
		t.Errorf("Width() = %v, expected 0", c.Width())
	}
	if c.Height() != 3 {
		t.Errorf("Height() = %v, expected 3", c.Height())
	}

	c.SetHeight(-1)
	if c.Height() != 0 {
		t.Errorf("Height() = %v, expected 0", c.Height())
	}
	if !strings.Contains(buf.String(), "negative collider size clamped") {
		t.Errorf("expected a clamp warning, got %q", buf.String())
	}
}

func TestColliderDestroyTwice(t *testing.T) {
	w := NewWorld(WorldOptions{})
	c := mustCollider(t)(w.NewCollider(w.AddEntity(at(0, 0)), 1, 1, false))

	c.Destroy()
	c.Destroy()

	if w.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", w.Len())
	}
}
