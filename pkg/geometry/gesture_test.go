package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceAndAngle(t *testing.T) {
	a := Point2D{X: 1, Y: 1}
	b := Point2D{X: 4, Y: 5}

	assert.InDelta(t, 5, Distance(a, b), epsilon)
	assert.InDelta(t, math.Atan2(4, 3), AngleRadians(a, b), epsilon)
	assert.InDelta(t, math.Atan2(-4, -3), AngleRadians(b, a), epsilon)
}

func TestDeriveImpulseVector_PointsBackTowardStart(t *testing.T) {
	start := Point2D{X: 200, Y: 200}
	release := Point2D{X: 100, Y: 150}

	iv := DeriveImpulseVector(start, release)

	assert.InDelta(t, 111.803, iv.Magnitude, 1e-3)
	assert.InDelta(t, 26.565, RadiansToDegrees(iv.Angle), 1e-3)

	v := FromAngle(iv.Angle, iv.Magnitude)
	assert.Greater(t, v.X, 0.0, "launch goes right")
	assert.Greater(t, v.Y, 0.0, "launch goes up")
}

func TestDeriveImpulseVector_ZeroDrag(t *testing.T) {
	p := Point2D{X: 10, Y: 10}
	iv := DeriveImpulseVector(p, p)
	assert.Equal(t, 0.0, iv.Magnitude)
}

func TestClampDragEndpoint(t *testing.T) {
	anchor := Point2D{X: 200, Y: 200}

	tests := []struct {
		name string
		raw  Point2D
	}{
		{"far_left", Point2D{X: 0, Y: 200}},
		{"far_down_left", Point2D{X: 20, Y: 40}},
		{"far_up_right", Point2D{X: 500, Y: 620}},
		{"just_outside", Point2D{X: 200, Y: 99.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampDragEndpoint(anchor, tt.raw, 100)
			assert.InDelta(t, 100, Distance(anchor, got), 1e-9)
			assert.InDelta(t, AngleRadians(anchor, tt.raw), AngleRadians(anchor, got), 1e-9)
		})
	}
}

func TestClampDragEndpoint_InsideUnchanged(t *testing.T) {
	anchor := Point2D{X: 200, Y: 200}
	// {200, 100.5} sits 99.5 away and {200, 100} exactly on the circle
	for _, raw := range []Point2D{anchor, {X: 150, Y: 170}, {X: 300, Y: 200}, {X: 200, Y: 100.5}, {X: 200, Y: 100}} {
		assert.Equal(t, raw, ClampDragEndpoint(anchor, raw, 100))
	}
}
