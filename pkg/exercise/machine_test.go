package exercise

import (
	"errors"
	"testing"

	"github.com/formcoach/formcoach/pkg/pose"
)

// curlThresholds matches the bicep-curl reference scenario: rest at
// 160° (extended), active at 45° (curled), 5° hysteresis.
func curlThresholds() Thresholds {
	return Thresholds{RestAngle: 160, ActiveAngle: 45, Hysteresis: 5, MinConfidence: 0.5}
}

func deg(d float64) pose.Measurement {
	return pose.Measurement{Degrees: d, Valid: true}
}

// feedAngles drives the machine through a sequence of angles and
// returns how many completed motions it reported.
func feedAngles(m *Machine, angles []float64) int {
	reps := 0
	for _, a := range angles {
		if m.Update(deg(a)) == TransitionRep {
			reps++
		}
	}
	return reps
}

func TestMachine_SingleSweepReportsExactlyOneRep(t *testing.T) {
	// The same sweep at different frame granularities must always
	// produce exactly one TransitionRep.
	sweeps := map[string][]float64{
		"coarse": {170, 30, 170},
		"fine":   {170, 150, 120, 90, 60, 35, 30, 35, 60, 100, 140, 166, 170},
	}
	for name, angles := range sweeps {
		t.Run(name, func(t *testing.T) {
			m, err := NewMachine(curlThresholds())
			if err != nil {
				t.Fatalf("NewMachine: %v", err)
			}
			if reps := feedAngles(m, angles); reps != 1 {
				t.Errorf("got %d reps, want 1", reps)
			}
			if m.Phase() != PhaseRest {
				t.Errorf("got phase %v, want rest", m.Phase())
			}
		})
	}
}

func TestMachine_ReferenceAngleSequence(t *testing.T) {
	// Elbow angle sequence from a recorded bicep curl.
	m, err := NewMachine(curlThresholds())
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	reps := feedAngles(m, []float64{178, 150, 90, 40, 35, 60, 120, 175})
	if reps != 1 {
		t.Errorf("got %d reps, want exactly 1", reps)
	}
	if m.Phase() != PhaseRest {
		t.Errorf("got phase %v, want rest", m.Phase())
	}
}

func TestMachine_NoiseWithinHysteresisNeverCounts(t *testing.T) {
	m, err := NewMachine(curlThresholds())
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	// Oscillate around the active threshold with amplitude below the
	// hysteresis margin; the machine must stay at rest.
	for i := 0; i < 100; i++ {
		a := 45.0 + 4.0
		if i%2 == 1 {
			a = 45.0 - 4.0
		}
		if m.Update(deg(a)) == TransitionRep {
			t.Fatal("noise produced a rep")
		}
	}
	if m.Phase() != PhaseRest {
		t.Errorf("noise moved phase to %v", m.Phase())
	}

	// Same around the rest threshold while active.
	m.Update(deg(30)) // clear entry into active
	for i := 0; i < 100; i++ {
		a := 160.0 + 4.0
		if i%2 == 1 {
			a = 160.0 - 4.0
		}
		if m.Update(deg(a)) == TransitionRep {
			t.Fatal("noise at rest threshold produced a rep")
		}
	}
}

func TestMachine_PartialMotionDoesNotCount(t *testing.T) {
	m, _ := NewMachine(curlThresholds())
	// Curl up fully, then reverse before reaching the rest threshold.
	reps := feedAngles(m, []float64{170, 30, 100, 30, 100, 30})
	if reps != 0 {
		t.Errorf("partial motion counted %d reps, want 0", reps)
	}
}

func TestMachine_InvalidMeasurementIsSkipped(t *testing.T) {
	m, _ := NewMachine(curlThresholds())
	m.Update(deg(30)) // active

	before := m.Phase()
	if m.Update(pose.Invalid) != TransitionNone {
		t.Error("invalid measurement reported a transition")
	}
	if m.Phase() != before {
		t.Error("invalid measurement changed phase")
	}
}

func TestMachine_Reset(t *testing.T) {
	m, _ := NewMachine(curlThresholds())
	if reps := feedAngles(m, []float64{170, 30, 170, 30}); reps == 0 {
		t.Fatal("setup: expected at least one rep")
	}
	if m.Phase() != PhaseActive {
		t.Fatalf("setup: got phase %v, want active", m.Phase())
	}

	m.Reset()
	if m.Phase() != PhaseRest {
		t.Errorf("reset left phase %v", m.Phase())
	}
}

func TestMachine_AscendingDirection(t *testing.T) {
	// Shoulder-press shape: rest at 90, active at 160.
	m, err := NewMachine(Thresholds{RestAngle: 90, ActiveAngle: 160, Hysteresis: 5, MinConfidence: 0.5})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	if reps := feedAngles(m, []float64{95, 120, 170, 120, 80}); reps != 1 {
		t.Errorf("got %d reps, want 1", reps)
	}
}

func TestNewMachine_RejectsBadThresholds(t *testing.T) {
	cases := []struct {
		name string
		t    Thresholds
		want error
	}{
		{
			"no band",
			Thresholds{RestAngle: 100, ActiveAngle: 100, Hysteresis: 5, MinConfidence: 0.5},
			ErrNoHysteresisBand,
		},
		{
			"band swallowed by hysteresis",
			Thresholds{RestAngle: 100, ActiveAngle: 96, Hysteresis: 5, MinConfidence: 0.5},
			ErrNoHysteresisBand,
		},
		{
			"negative hysteresis",
			Thresholds{RestAngle: 160, ActiveAngle: 60, Hysteresis: -1, MinConfidence: 0.5},
			ErrBadHysteresis,
		},
		{
			"confidence out of range",
			Thresholds{RestAngle: 160, ActiveAngle: 60, Hysteresis: 5, MinConfidence: 1.5},
			ErrBadConfidence,
		},
		{
			"angle out of range",
			Thresholds{RestAngle: 200, ActiveAngle: 60, Hysteresis: 5, MinConfidence: 0.5},
			ErrBadAngle,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewMachine(tc.t); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}
