// Package vmath provides the 2D vector type shared by the physics and
// steering code. Values are immutable by convention: every operation returns
// a new vector.
package vmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a real-valued (x, y) pair.
type Vec2 mgl64.Vec2

// Zero is the null vector.
var Zero = Vec2{}

// V builds a vector from its components.
func V(x, y float64) Vec2 {
	return Vec2{x, y}
}

func (v Vec2) X() float64 { return v[0] }
func (v Vec2) Y() float64 { return v[1] }

func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2(mgl64.Vec2(v).Add(mgl64.Vec2(w)))
}

func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2(mgl64.Vec2(v).Sub(mgl64.Vec2(w)))
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2(mgl64.Vec2(v).Mul(s))
}

// Div divides both components by s. Division by zero yields the zero vector.
func (v Vec2) Div(s float64) Vec2 {
	if s == 0 {
		return Zero
	}
	return v.Scale(1 / s)
}

func (v Vec2) Len() float64 {
	return mgl64.Vec2(v).Len()
}

func (v Vec2) LenSqr() float64 {
	return mgl64.Vec2(v).LenSqr()
}

func (v Vec2) Dot(w Vec2) float64 {
	return mgl64.Vec2(v).Dot(mgl64.Vec2(w))
}

// Normalize returns the unit vector with the same direction, or the zero
// vector when v has zero length.
func (v Vec2) Normalize() Vec2 {
	if v.Len() == 0 {
		return Zero
	}
	return Vec2(mgl64.Vec2(v).Normalize())
}

// Limit rescales v to length max when it is longer, preserving direction.
func (v Vec2) Limit(max float64) Vec2 {
	if v.LenSqr() > max*max {
		return v.Normalize().Scale(max)
	}
	return v
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v[0] == 0 && v[1] == 0
}

// ApproxEqual compares component-wise within eps.
func (v Vec2) ApproxEqual(w Vec2, eps float64) bool {
	return math.Abs(v[0]-w[0]) <= eps && math.Abs(v[1]-w[1]) <= eps
}

// Clamp confines v to the rectangle [minX,maxX]×[minY,maxY].
func (v Vec2) Clamp(minX, minY, maxX, maxY float64) Vec2 {
	return Vec2{
		math.Max(minX, math.Min(maxX, v[0])),
		math.Max(minY, math.Min(maxY, v[1])),
	}
}

// String formats the vector as "(x,y)" with one decimal.
func (v Vec2) String() string {
	return fmt.Sprintf("(%.1f,%.1f)", v[0], v[1])
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// DistSqr returns the squared distance between a and b.
func DistSqr(a, b Vec2) float64 {
	return a.Sub(b).LenSqr()
}
