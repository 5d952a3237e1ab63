package exercise

import (
	"github.com/formcoach/formcoach/pkg/pose"
)

// Phase is the current stage of an exercise's motion cycle. Exactly one
// phase is current at any time.
type Phase int

const (
	// PhaseRest is the starting/return position of the motion.
	PhaseRest Phase = iota

	// PhaseActive is the exerted end of the motion.
	PhaseActive
)

// String returns "rest" or "active".
func (p Phase) String() string {
	if p == PhaseActive {
		return "active"
	}
	return "rest"
}

// Transition reports what a Machine update did.
type Transition int

const (
	// TransitionNone: the frame did not cross a threshold.
	TransitionNone Transition = iota

	// TransitionActive: the motion entered the active phase.
	TransitionActive

	// TransitionRep: the motion returned to rest, completing one rep.
	TransitionRep
)

// Machine is the generic phase automaton behind every rep counter. It
// turns a sequence of angle measurements into phase transitions:
//
//	rest --(angle clears active threshold)--> active
//	active --(angle clears rest threshold)--> rest, TransitionRep
//
// The machine itself keeps no rep count; each TransitionRep is exactly
// one completed motion, and what a completed motion is worth (a counted
// rep, an out-of-order rep) is the owning policy's decision.
//
// Partial motion that reverses before clearing the return threshold
// never yields TransitionRep. Invalid measurements leave the machine
// untouched; that is a skipped frame, not an error.
//
// A Machine is owned by one policy instance and is not safe for
// concurrent use.
type Machine struct {
	thresholds Thresholds
	ascending  bool

	phase Phase
}

// NewMachine validates the thresholds and returns a machine in the rest
// phase.
func NewMachine(t Thresholds) (*Machine, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Machine{thresholds: t, ascending: t.ascending()}, nil
}

// Update advances the machine with a new measurement and reports the
// transition, if any.
func (m *Machine) Update(meas pose.Measurement) Transition {
	tr := m.Probe(meas)
	switch tr {
	case TransitionActive:
		m.phase = PhaseActive
	case TransitionRep:
		m.phase = PhaseRest
	}
	return tr
}

// Probe reports the transition Update would make for this measurement
// without changing any state. Bilateral policies use it to require both
// arms to agree before committing a transition.
func (m *Machine) Probe(meas pose.Measurement) Transition {
	if !meas.Valid {
		return TransitionNone
	}
	switch m.phase {
	case PhaseRest:
		if m.clearsActive(meas.Degrees) {
			return TransitionActive
		}
	case PhaseActive:
		if m.clearsRest(meas.Degrees) {
			return TransitionRep
		}
	}
	return TransitionNone
}

// clearsActive reports whether the angle has crossed the active boundary
// by at least the hysteresis margin.
func (m *Machine) clearsActive(deg float64) bool {
	if m.ascending {
		return deg >= m.thresholds.ActiveAngle+m.thresholds.Hysteresis
	}
	return deg <= m.thresholds.ActiveAngle-m.thresholds.Hysteresis
}

// clearsRest reports whether the angle has crossed back past the rest
// boundary by at least the hysteresis margin.
func (m *Machine) clearsRest(deg float64) bool {
	if m.ascending {
		return deg <= m.thresholds.RestAngle-m.thresholds.Hysteresis
	}
	return deg >= m.thresholds.RestAngle+m.thresholds.Hysteresis
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Thresholds returns the immutable configuration the machine was built
// with.
func (m *Machine) Thresholds() Thresholds {
	return m.thresholds
}

// Reset returns the machine to the rest phase, discarding any in-flight
// phase progress.
func (m *Machine) Reset() {
	m.phase = PhaseRest
}
