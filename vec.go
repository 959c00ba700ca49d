package paint

import "math"

// Vec3 represents a point or displacement in world space.
// Contact points delivered by a collision system are Vec3 values.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Mul returns the vector scaled by a scalar.
func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Length returns the length (magnitude) of the vector.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Distance returns the distance between two points.
func (v Vec3) Distance(w Vec3) float64 {
	return v.Sub(w).Length()
}

// Normalize returns a unit vector in the same direction.
// Returns zero vector if the original vector has zero length.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return Vec3{}
	}
	return v.Mul(1 / length)
}

// Abs returns the component-wise absolute value.
func (v Vec3) Abs() Vec3 {
	return Vec3{X: math.Abs(v.X), Y: math.Abs(v.Y), Z: math.Abs(v.Z)}
}

// Axis returns component i (0 = X, 1 = Y, 2 = Z).
func (v Vec3) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Lerp performs linear interpolation between two vectors.
// t=0 returns v, t=1 returns w, intermediate values interpolate.
func (v Vec3) Lerp(w Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (w.X-v.X)*t,
		Y: v.Y + (w.Y-v.Y)*t,
		Z: v.Z + (w.Z-v.Z)*t,
	}
}

// IsZero returns true if the vector is the zero vector.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// unitAxis returns the world basis vector for axis i.
func unitAxis(i int) Vec3 {
	switch i {
	case 0:
		return Vec3{X: 1}
	case 1:
		return Vec3{Y: 1}
	default:
		return Vec3{Z: 1}
	}
}
