// pkg/geometry/vector_test.go
package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func TestPoint2D_AddSub(t *testing.T) {
	tests := []struct {
		name string
		a, b Point2D
		sum  Point2D
		diff Point2D
	}{
		{
			name: "positive_vectors",
			a:    Point2D{X: 3, Y: 4},
			b:    Point2D{X: 1, Y: 2},
			sum:  Point2D{X: 4, Y: 6},
			diff: Point2D{X: 2, Y: 2},
		},
		{
			name: "mixed_signs",
			a:    Point2D{X: 5, Y: -3},
			b:    Point2D{X: -2, Y: 7},
			sum:  Point2D{X: 3, Y: 4},
			diff: Point2D{X: 7, Y: -10},
		},
		{
			name: "zero_vector",
			a:    Point2D{},
			b:    Point2D{X: 5, Y: -3},
			sum:  Point2D{X: 5, Y: -3},
			diff: Point2D{X: -5, Y: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sum, tt.a.Add(tt.b))
			assert.Equal(t, tt.diff, tt.a.Sub(tt.b))
		})
	}
}

func TestPoint2D_Length(t *testing.T) {
	tests := []struct {
		name     string
		p        Point2D
		expected float64
	}{
		{"zero", Point2D{}, 0},
		{"pythagorean", Point2D{X: 3, Y: 4}, 5},
		{"negative", Point2D{X: -6, Y: -8}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.p.Length(), epsilon)
		})
	}
}

func TestPoint2D_Angle(t *testing.T) {
	tests := []struct {
		name     string
		p        Point2D
		expected float64
	}{
		{"positive_x_axis", Point2D{X: 1}, 0},
		{"positive_y_axis", Point2D{Y: 1}, math.Pi / 2},
		{"negative_x_axis", Point2D{X: -1}, math.Pi},
		{"negative_y_axis", Point2D{Y: -1}, -math.Pi / 2},
		{"diagonal", Point2D{X: 1, Y: 1}, math.Pi / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.p.Angle(), epsilon)
		})
	}
}

func TestFromAngle_RoundTrip(t *testing.T) {
	for _, angle := range []float64{0, 0.3, math.Pi / 2, 2.5, -1.2} {
		v := FromAngle(angle, 7)
		assert.InDelta(t, 7, v.Length(), epsilon)
		assert.InDelta(t, angle, v.Angle(), epsilon)
	}
}

func TestPoint2D_Rotate(t *testing.T) {
	r := Point2D{X: 1}.Rotate(math.Pi / 2)
	assert.InDelta(t, 0, r.X, epsilon)
	assert.InDelta(t, 1, r.Y, epsilon)
	assert.InDelta(t, 1, r.Length(), epsilon)
}

func TestDegreesRadians(t *testing.T) {
	assert.InDelta(t, math.Pi/6, DegreesToRadians(30), epsilon)
	assert.InDelta(t, 180, RadiansToDegrees(math.Pi), epsilon)
}

func BenchmarkPoint2D_Rotate(b *testing.B) {
	v := Point2D{X: 3, Y: 4}
	for i := 0; i < b.N; i++ {
		_ = v.Rotate(0.5)
	}
}
