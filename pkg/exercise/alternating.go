package exercise

import (
	"fmt"

	"github.com/formcoach/formcoach/pkg/feedback"
	"github.com/formcoach/formcoach/pkg/pose"
)

// alternating tracks an exercise performed one arm at a time in a strict
// left-right-left pattern (alternating curl, tricep kickback). Each side
// has its own machine; a shared token holds the side expected to move
// next.
//
// A rep completing on the expected side counts and flips the token. A
// rep on the wrong side is recorded as out-of-order and counts nothing,
// but the token stays put, so one wrong motion never deadlocks the set:
// the next correct-side rep counts as usual.
type alternating struct {
	id   string
	name string

	machines [2]*Machine
	next     Side

	total    int
	sideReps [2]int
	missed   int

	// Spoken feedback templates.
	repFormat  string // fmt with side name, total, next side name
	missFormat string // fmt with the expected side name

	lastLeft, lastRight pose.Measurement
}

func newAlternating(id, name string, t Thresholds, repFormat, missFormat string) (*alternating, error) {
	left, err := NewMachine(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	right, err := NewMachine(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return &alternating{
		id:         id,
		name:       name,
		machines:   [2]*Machine{left, right},
		next:       SideLeft,
		repFormat:  repFormat,
		missFormat: missFormat,
	}, nil
}

func (a *alternating) ID() string   { return a.id }
func (a *alternating) Name() string { return a.name }

func (a *alternating) RequiredJoints() []pose.Joint {
	return armJoints
}

func (a *alternating) Update(frame pose.Frame) Status {
	status := a.status()

	if !frame.Has(armJoints...) {
		status.Detected = false
		return status
	}
	status.Detected = true

	minConf := a.machines[SideLeft].Thresholds().MinConfidence
	left, right := elbowAngles(frame, minConf)
	a.lastLeft, a.lastRight = left, right
	status.Left, status.Right = left, right

	// Each side advances independently; only rep completions interact
	// with the alternation token.
	for _, side := range []Side{SideLeft, SideRight} {
		meas := left
		if side == SideRight {
			meas = right
		}
		if a.machines[side].Update(meas) != TransitionRep {
			continue
		}

		if side == a.next {
			a.sideReps[side]++
			a.total++
			a.next = side.Other()
			status.Event = &feedback.Event{
				Category: feedback.CategoryRepComplete,
				Message:  fmt.Sprintf(a.repFormat, side, a.total, a.next),
				Urgency:  feedback.UrgencyNormal,
			}
		} else {
			a.missed++
			// Prefer announcing a counted rep if one landed on the
			// same frame.
			if status.Event == nil {
				status.Event = &feedback.Event{
					Category: feedback.CategoryOutOfOrder,
					Message:  fmt.Sprintf(a.missFormat, a.next),
					Urgency:  feedback.UrgencyNormal,
				}
			}
		}
	}

	a.fill(&status)
	return status
}

func (a *alternating) Reset() {
	a.machines[SideLeft].Reset()
	a.machines[SideRight].Reset()
	a.next = SideLeft
	a.total = 0
	a.sideReps = [2]int{}
	a.missed = 0
	a.lastLeft, a.lastRight = pose.Invalid, pose.Invalid
}

// status builds the carried-over view of the tracker state.
func (a *alternating) status() Status {
	s := Status{
		Exercise: a.id,
		Left:     a.lastLeft,
		Right:    a.lastRight,
	}
	a.fill(&s)
	return s
}

func (a *alternating) fill(s *Status) {
	s.Alternating = true
	s.Reps = a.total
	s.SideReps = a.sideReps
	s.NextSide = a.next
	s.Missed = a.missed
	s.Phase = a.machines[a.next].Phase()
}
