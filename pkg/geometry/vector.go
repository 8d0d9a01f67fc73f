// pkg/geometry/vector.go
package geometry

import "math"

// Point2D is a 2D coordinate or displacement in playfield units (y grows upward)
type Point2D struct {
	X float64
	Y float64
}

// Add returns the sum of two points
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{
		X: p.X + other.X,
		Y: p.Y + other.Y,
	}
}

// Sub returns the difference between two points
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{
		X: p.X - other.X,
		Y: p.Y - other.Y,
	}
}

// Scale multiplies both components by a scalar value
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{
		X: p.X * factor,
		Y: p.Y * factor,
	}
}

// Length returns the magnitude of the point seen as a vector
func (p Point2D) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points
func (p Point2D) Distance(other Point2D) float64 {
	return p.Sub(other).Length()
}

// Angle returns the angle of the vector in radians, in (-π, π]
func (p Point2D) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Rotate rotates the vector by angle (in radians)
func (p Point2D) Rotate(angle float64) Point2D {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Point2D{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// FromAngle creates a vector from an angle and magnitude
func FromAngle(angle float64, magnitude float64) Point2D {
	return Point2D{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}

// DegreesToRadians converts an angle in degrees to radians
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts an angle in radians to degrees
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
