package exercise

import (
	"github.com/formcoach/formcoach/pkg/feedback"
	"github.com/formcoach/formcoach/pkg/pose"
)

// Side identifies a limb in two-sided exercises.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Status is the result of feeding one landmark frame to a policy. It is
// the render model: everything the overlay and the dashboard display.
type Status struct {
	// Exercise is the policy id (e.g. "bicep_curl").
	Exercise string `json:"exercise"`

	// Detected is false when required landmarks were missing; counts
	// and phases are then carried over from the previous frame.
	Detected bool `json:"detected"`

	// Reps is the total counted reps.
	Reps int `json:"reps"`

	// Phase is the current phase. For alternating exercises it is the
	// phase of the side expected to move next.
	Phase Phase `json:"phase"`

	// Left and Right are the most recent per-arm angle measurements.
	Left  pose.Measurement `json:"-"`
	Right pose.Measurement `json:"-"`

	// Alternating marks exercises with per-side state.
	Alternating bool `json:"alternating,omitempty"`

	// SideReps, NextSide and Missed are only meaningful when
	// Alternating is set.
	SideReps [2]int `json:"side_reps,omitempty"`
	NextSide Side   `json:"next_side,omitempty"`
	Missed   int    `json:"missed,omitempty"`

	// Event carries feedback produced by this frame, if any.
	Event *feedback.Event `json:"-"`
}

// Angle returns the left/right angle for display ("--" when invalid is
// the caller's concern).
func (s Status) Angle(side Side) pose.Measurement {
	if side == SideRight {
		return s.Right
	}
	return s.Left
}

// Policy is the per-exercise contract. A policy owns its tracker state
// exclusively; one instance is driven by one frame loop. Adding an
// exercise means adding a Policy implementation, never modifying the rep
// state machine.
type Policy interface {
	// ID returns the stable identifier used in configuration and the
	// CLI ("bicep_curl").
	ID() string

	// Name returns the human-readable exercise name ("Bicep Curl").
	Name() string

	// RequiredJoints lists the joints the policy needs in a frame. If
	// any is absent the policy reports no detection for that frame.
	RequiredJoints() []pose.Joint

	// Update consumes one landmark frame and returns the new status.
	Update(frame pose.Frame) Status

	// Reset returns the policy to its initial state: rest phase, zero
	// reps, expected side LEFT where applicable.
	Reset()
}

// armJoints are the joints every current policy measures: both elbow
// angles via shoulder-elbow-wrist triples.
var armJoints = []pose.Joint{
	pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist,
	pose.RightShoulder, pose.RightElbow, pose.RightWrist,
}

// elbowAngles computes both elbow angles from a frame.
func elbowAngles(frame pose.Frame, minConfidence float64) (left, right pose.Measurement) {
	left = pose.Angle(
		frame[pose.LeftShoulder], frame[pose.LeftElbow], frame[pose.LeftWrist],
		minConfidence,
	)
	right = pose.Angle(
		frame[pose.RightShoulder], frame[pose.RightElbow], frame[pose.RightWrist],
		minConfidence,
	)
	return left, right
}
