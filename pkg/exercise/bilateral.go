package exercise

import (
	"fmt"

	"github.com/formcoach/formcoach/pkg/feedback"
	"github.com/formcoach/formcoach/pkg/pose"
)

// bilateral tracks an exercise where both arms move together (shoulder
// press, two-arm bicep curl). One machine is shared by both arms: a
// transition commits only when both elbow angles clear the boundary on
// the same frame. One arm crossing alone is a form problem, reported as
// a warning without any phase change.
type bilateral struct {
	id      string
	name    string
	machine *Machine
	reps    int

	// Spoken feedback templates.
	repFormat string // fmt with one %d (total reps)
	warnMsg   string
	cueMsg    string // spoken when the active position is reached

	lastLeft, lastRight pose.Measurement
}

func newBilateral(id, name string, t Thresholds, repFormat, warnMsg, cueMsg string) (*bilateral, error) {
	machine, err := NewMachine(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return &bilateral{
		id:        id,
		name:      name,
		machine:   machine,
		repFormat: repFormat,
		warnMsg:   warnMsg,
		cueMsg:    cueMsg,
	}, nil
}

func (b *bilateral) ID() string   { return b.id }
func (b *bilateral) Name() string { return b.name }

func (b *bilateral) RequiredJoints() []pose.Joint {
	return armJoints
}

func (b *bilateral) Update(frame pose.Frame) Status {
	status := b.status()

	if !frame.Has(armJoints...) {
		status.Detected = false
		return status
	}
	status.Detected = true

	minConf := b.machine.Thresholds().MinConfidence
	left, right := elbowAngles(frame, minConf)
	b.lastLeft, b.lastRight = left, right
	status.Left, status.Right = left, right

	// An invalid measurement means a skipped frame, not a form
	// problem. Only two valid angles can disagree.
	if !left.Valid || !right.Valid {
		return status
	}

	lt := b.machine.Probe(left)
	rt := b.machine.Probe(right)

	switch {
	case lt != TransitionNone && rt != TransitionNone:
		// Both arms cleared the boundary: commit using the mean angle.
		// Both individual angles are past the threshold, so the mean is
		// too and the transition is guaranteed to fire.
		switch b.machine.Update(mean(left, right)) {
		case TransitionRep:
			b.reps++
			status.Event = &feedback.Event{
				Category: feedback.CategoryRepComplete,
				Message:  fmt.Sprintf(b.repFormat, b.reps),
				Urgency:  feedback.UrgencyNormal,
			}
		case TransitionActive:
			status.Event = &feedback.Event{
				Category: feedback.CategoryCue,
				Message:  b.cueMsg,
				Urgency:  feedback.UrgencyLow,
			}
		}
	case lt != TransitionNone || rt != TransitionNone:
		// Arms disagree: hold the phase and warn.
		status.Event = &feedback.Event{
			Category: feedback.CategoryFormWarning,
			Message:  b.warnMsg,
			Urgency:  feedback.UrgencyLow,
		}
	}

	status.Phase = b.machine.Phase()
	status.Reps = b.reps
	return status
}

func (b *bilateral) Reset() {
	b.machine.Reset()
	b.reps = 0
	b.lastLeft, b.lastRight = pose.Invalid, pose.Invalid
}

// status builds the carried-over view of the tracker state.
func (b *bilateral) status() Status {
	return Status{
		Exercise: b.id,
		Phase:    b.machine.Phase(),
		Reps:     b.reps,
		Left:     b.lastLeft,
		Right:    b.lastRight,
	}
}

// mean averages two valid measurements.
func mean(a, b pose.Measurement) pose.Measurement {
	return pose.Measurement{Degrees: (a.Degrees + b.Degrees) / 2, Valid: true}
}
