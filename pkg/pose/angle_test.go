package pose

import (
	"math"
	"testing"
)

func lm(x, y float64) Landmark {
	return Landmark{X: x, Y: y, Visibility: 1.0}
}

func TestAngle_RightAngle(t *testing.T) {
	// Rays along +x and +y from the vertex.
	m := Angle(lm(1, 0), lm(0, 0), lm(0, 1), 0.5)
	if !m.Valid {
		t.Fatal("expected valid measurement")
	}
	if math.Abs(m.Degrees-90) > 1e-9 {
		t.Errorf("got %v, want 90", m.Degrees)
	}
}

func TestAngle_Collinear(t *testing.T) {
	// A, vertex, C on a straight line with opposite rays.
	m := Angle(lm(0, 0.5), lm(0.5, 0.5), lm(1, 0.5), 0.5)
	if !m.Valid {
		t.Fatal("expected valid measurement")
	}
	if math.Abs(m.Degrees-180) > 1e-9 {
		t.Errorf("got %v, want 180", m.Degrees)
	}
}

func TestAngle_CoincidentRays(t *testing.T) {
	// Rays whose lengths do not round exactly: hypot(1,1)*hypot(2,2)
	// lands a hair above 4, so without endpoint snapping the cosine
	// falls just under 1 and arccos reports a spurious microdegree.
	tests := []struct {
		name    string
		a, b    Landmark
		degrees float64
	}{
		{"same direction diagonal", lm(1, 1), lm(2, 2), 0},
		{"same direction axis", lm(0.3, 0), lm(0.7, 0), 0},
		{"opposite diagonal", lm(1, 1), lm(-2, -2), 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Angle(tt.a, lm(0, 0), tt.b, 0.5)
			if !m.Valid {
				t.Fatal("expected valid measurement")
			}
			if m.Degrees != tt.degrees {
				t.Errorf("got %v, want exactly %v", m.Degrees, tt.degrees)
			}
		})
	}
}

func TestAngle_AlwaysInRange(t *testing.T) {
	// Sweep a point around the vertex; results must stay in [0, 180].
	vertex := lm(0.5, 0.5)
	fixed := lm(0.9, 0.5)
	for i := 0; i < 360; i++ {
		rad := float64(i) * math.Pi / 180
		p := lm(0.5+0.3*math.Cos(rad), 0.5+0.3*math.Sin(rad))
		m := Angle(fixed, vertex, p, 0.5)
		if !m.Valid {
			t.Fatalf("step %d: unexpected invalid measurement", i)
		}
		if m.Degrees < 0 || m.Degrees > 180 {
			t.Fatalf("step %d: angle %v out of [0,180]", i, m.Degrees)
		}
	}
}

func TestAngle_LowConfidence(t *testing.T) {
	cases := []struct {
		name    string
		a, v, c Landmark
	}{
		{"first", Landmark{X: 1, Visibility: 0.2}, lm(0, 0), lm(0, 1)},
		{"vertex", lm(1, 0), Landmark{Visibility: 0.2}, lm(0, 1)},
		{"last", lm(1, 0), lm(0, 0), Landmark{Y: 1, Visibility: 0.2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if m := Angle(tc.a, tc.v, tc.c, 0.5); m.Valid {
				t.Errorf("expected invalid measurement, got %v", m.Degrees)
			}
		})
	}
}

func TestAngle_DegenerateRay(t *testing.T) {
	// A coincides with the vertex: zero-length ray.
	if m := Angle(lm(0.5, 0.5), lm(0.5, 0.5), lm(1, 1), 0.5); m.Valid {
		t.Errorf("expected invalid measurement, got %v", m.Degrees)
	}
}

func TestFrame_Has(t *testing.T) {
	f := Frame{
		LeftShoulder: lm(0.3, 0.3),
		LeftElbow:    lm(0.3, 0.5),
	}
	if !f.Has(LeftShoulder, LeftElbow) {
		t.Error("expected joints present")
	}
	if f.Has(LeftShoulder, LeftWrist) {
		t.Error("expected missing wrist to be reported")
	}
	if f.Empty() {
		t.Error("frame is not empty")
	}
	if !(Frame{}).Empty() {
		t.Error("empty frame not reported empty")
	}
}
