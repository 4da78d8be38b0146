// Package math provides the small amount of vector math used to aim cones
// on the grid.
package math

import "math"

// Vec2 is a 2D vector. X runs along columns, Y along rows.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(other Vec2) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// AngleTo returns the unsigned angle between v and other in radians.
func (v Vec2) AngleTo(other Vec2) float64 {
	return math.Abs(math.Atan2(v.Cross(other), v.Dot(other)))
}

// HalfAngle returns the half-angle of a cone that is halfWidth wide at
// the given length.
func HalfAngle(halfWidth, length float64) float64 {
	if length <= 0 {
		return math.Pi
	}
	return math.Atan2(halfWidth, length)
}

// Epsilon absorbs rounding when comparing angles.
const Epsilon = 1e-9
