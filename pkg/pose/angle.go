package pose

import "math"

// Measurement is a joint angle in degrees, or an explicitly invalid value
// when the source landmarks were too uncertain to trust. Invalid
// measurements never advance exercise state.
type Measurement struct {
	Degrees float64
	Valid   bool
}

// Invalid is the sentinel for an unusable measurement.
var Invalid = Measurement{}

// Angle computes the angle at vertex between the rays to a and c, in
// degrees within [0, 180].
//
// The result is invalid when any of the three landmarks has visibility
// below minConfidence, or when either ray has zero length. It never
// panics and never returns a guessed value.
func Angle(a, vertex, c Landmark, minConfidence float64) Measurement {
	if a.Visibility < minConfidence || vertex.Visibility < minConfidence || c.Visibility < minConfidence {
		return Invalid
	}

	ax, ay := a.X-vertex.X, a.Y-vertex.Y
	cx, cy := c.X-vertex.X, c.Y-vertex.Y

	la := math.Hypot(ax, ay)
	lc := math.Hypot(cx, cy)
	if la == 0 || lc == 0 {
		return Invalid
	}

	cos := (ax*cx + ay*cy) / (la * lc)
	// Guard arccos against floating point drift around the endpoints:
	// hypot rounding can push the cosine of parallel rays just inside
	// (-1, 1), and arccos amplifies that into a spurious fraction of a
	// degree. Snap to the exact endpoint instead.
	const eps = 1e-12
	switch {
	case cos >= 1-eps:
		return Measurement{Degrees: 0, Valid: true}
	case cos <= -1+eps:
		return Measurement{Degrees: 180, Valid: true}
	}

	return Measurement{Degrees: cos2deg(cos), Valid: true}
}

func cos2deg(cos float64) float64 {
	return math.Acos(cos) * 180 / math.Pi
}
