package collision

// Collision is the notification an owner receives when one of its colliders
// hits another. It is built per detected pair per tick and not retained.
type Collision struct {
	self  *Collider
	other *Collider
}

// NewCollision pairs the receiving collider with the one it hit.
// A pair sharing one owner is logged as an anomaly but still built.
func NewCollision(self, other *Collider) Collision {
	if self.owner == other.owner && self.world != nil {
		self.world.logger.Warn("self-collision",
			"entity", self.owner,
			"self", self.id,
			"other", other.id,
		)
	}
	return Collision{self: self, other: other}
}

// Self returns the collider belonging to the receiving entity.
func (c Collision) Self() *Collider {
	return c.self
}

// Other returns the collider that was hit.
func (c Collision) Other() *Collider {
	return c.other
}
