package core

import "math"

// Vec2 is a 2D vector of float64 components.
// Pointer-receiver methods mutate the vector in place and return it so calls
// can be chained; value-receiver methods leave the receiver untouched.
// Copying a Vec2 is plain assignment.
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a vector from its components.
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Vec2FromArray creates a vector from a two-element array {x, y}.
func Vec2FromArray(a [2]float64) Vec2 {
	return Vec2{X: a[0], Y: a[1]}
}

// Array returns the components as {x, y}.
func (v Vec2) Array() [2]float64 {
	return [2]float64{v.X, v.Y}
}

// Set overwrites both components.
func (v *Vec2) Set(x, y float64) *Vec2 {
	v.X = x
	v.Y = y
	return v
}

// SetVec copies the components of o into v.
func (v *Vec2) SetVec(o Vec2) *Vec2 {
	v.X = o.X
	v.Y = o.Y
	return v
}

// Length returns the Euclidean length.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared Euclidean length.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Add adds o to v.
func (v *Vec2) Add(o Vec2) *Vec2 {
	v.X += o.X
	v.Y += o.Y
	return v
}

// SetSum stores a+b in v.
func (v *Vec2) SetSum(a, b Vec2) *Vec2 {
	v.X = a.X + b.X
	v.Y = a.Y + b.Y
	return v
}

// Sub subtracts o from v.
func (v *Vec2) Sub(o Vec2) *Vec2 {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

// SetDiff stores a-b in v.
func (v *Vec2) SetDiff(a, b Vec2) *Vec2 {
	v.X = a.X - b.X
	v.Y = a.Y - b.Y
	return v
}

// Negate flips the sign of both components.
func (v *Vec2) Negate() *Vec2 {
	v.X = -v.X
	v.Y = -v.Y
	return v
}

// Scale multiplies v by s.
func (v *Vec2) Scale(s float64) *Vec2 {
	v.X *= s
	v.Y *= s
	return v
}

// SetScaled stores s*o in v.
func (v *Vec2) SetScaled(s float64, o Vec2) *Vec2 {
	v.X = s * o.X
	v.Y = s * o.Y
	return v
}

// Normalize divides v by its length.
// A zero vector yields NaN components; callers must not normalize one.
func (v *Vec2) Normalize() *Vec2 {
	l := v.Length()
	v.X /= l
	v.Y /= l
	return v
}

// Angle returns the angle in radians between v and o, in [0, π].
func (v Vec2) Angle(o Vec2) float64 {
	d := v.Dot(o) / (v.Length() * o.Length())
	// rounding can push d just outside [-1, 1]
	if d < -1 {
		d = -1
	} else if d > 1 {
		d = 1
	}
	return math.Acos(d)
}

// Equals reports exact component equality.
func (v Vec2) Equals(o Vec2) bool {
	return v.X == o.X && v.Y == o.Y
}

// EpsilonEquals reports whether the L∞ distance between v and o is at most eps.
func (v Vec2) EpsilonEquals(o Vec2, eps float64) bool {
	if math.Abs(v.X-o.X) > eps {
		return false
	}
	return math.Abs(v.Y-o.Y) <= eps
}

// Clamp limits each component to [lo, hi].
func (v *Vec2) Clamp(lo, hi float64) *Vec2 {
	v.X = ClampF(v.X, lo, hi)
	v.Y = ClampF(v.Y, lo, hi)
	return v
}

// ClampMin raises each component to at least lo.
func (v *Vec2) ClampMin(lo float64) *Vec2 {
	v.X = math.Max(v.X, lo)
	v.Y = math.Max(v.Y, lo)
	return v
}

// ClampMax lowers each component to at most hi.
func (v *Vec2) ClampMax(hi float64) *Vec2 {
	v.X = math.Min(v.X, hi)
	v.Y = math.Min(v.Y, hi)
	return v
}

// Absolute replaces each component with its absolute value.
func (v *Vec2) Absolute() *Vec2 {
	v.X = math.Abs(v.X)
	v.Y = math.Abs(v.Y)
	return v
}

// Interpolate moves v toward o: v = (1-alpha)*v + alpha*o.
func (v *Vec2) Interpolate(o Vec2, alpha float64) *Vec2 {
	v.X = (1-alpha)*v.X + alpha*o.X
	v.Y = (1-alpha)*v.Y + alpha*o.Y
	return v
}

// SetInterpolated stores (1-alpha)*a + alpha*b in v.
func (v *Vec2) SetInterpolated(a, b Vec2, alpha float64) *Vec2 {
	v.X = (1-alpha)*a.X + alpha*b.X
	v.Y = (1-alpha)*a.Y + alpha*b.Y
	return v
}

// Plus returns v+o.
func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Minus returns v-o.
func (v Vec2) Minus(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scaled returns s*v.
func (v Vec2) Scaled(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Normalized returns a unit vector in the direction of v.
// Same zero-length caveat as Normalize.
func (v Vec2) Normalized() Vec2 {
	v.Normalize()
	return v
}

// Lerp returns the linear blend between v and o.
func (v Vec2) Lerp(o Vec2, alpha float64) Vec2 {
	v.Interpolate(o, alpha)
	return v
}

// Cross returns the scalar 2D cross product a.X*b.Y - a.Y*b.X.
func Cross(a, b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}
