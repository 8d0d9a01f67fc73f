package geometry

// ImpulseVector is a launch impulse derived from a drag gesture.
// Magnitude is not bounded here; the projectile that consumes it applies its own cap.
type ImpulseVector struct {
	Magnitude float64
	Angle     float64 // radians, relative to +x
}

// Distance returns the Euclidean distance between a and b
func Distance(a, b Point2D) float64 {
	return a.Distance(b)
}

// AngleRadians returns the angle of b - a relative to the positive x-axis
func AngleRadians(a, b Point2D) float64 {
	return b.Sub(a).Angle()
}

// DeriveImpulseVector turns a drag gesture into a launch impulse. The launch
// points from the release point back toward the gesture start, so the
// projectile flies opposite to the drag.
func DeriveImpulseVector(dragStart, dragEnd Point2D) ImpulseVector {
	return ImpulseVector{
		Magnitude: Distance(dragStart, dragEnd),
		Angle:     AngleRadians(dragEnd, dragStart),
	}
}

// ClampDragEndpoint keeps rawEnd within maxRadius of anchor. Points farther
// away are projected onto the circle along the anchor->rawEnd direction.
func ClampDragEndpoint(anchor, rawEnd Point2D, maxRadius float64) Point2D {
	if Distance(anchor, rawEnd) <= maxRadius {
		return rawEnd
	}
	return anchor.Add(FromAngle(AngleRadians(anchor, rawEnd), maxRadius))
}
