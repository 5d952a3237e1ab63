// Package exercise implements the rep-counting engine: a generic
// hysteresis state machine over joint angles and the per-exercise
// policies that drive it.
package exercise

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors returned when a tracker is constructed with unusable
// thresholds. These are fatal: no frame is processed with a bad config.
var (
	ErrNoHysteresisBand = errors.New("exercise: rest and active thresholds leave no hysteresis band")
	ErrBadHysteresis    = errors.New("exercise: hysteresis margin must be >= 0")
	ErrBadConfidence    = errors.New("exercise: min confidence must be in [0,1]")
	ErrBadAngle         = errors.New("exercise: threshold angles must be in [0,180]")
)

// Thresholds configures one rep state machine. Immutable for the
// lifetime of a tracker; supplied at construction.
//
// RestAngle and ActiveAngle are the angles at which the motion is
// considered back at rest and fully in the active phase. Their ordering
// determines the direction of the exercise: a bicep curl is "descending"
// (active angle below rest angle), a shoulder press "ascending".
//
// Hysteresis is the margin the angle must clear beyond each boundary
// before a transition fires, so sensor noise sitting on a threshold can
// never bounce the machine back and forth.
type Thresholds struct {
	RestAngle     float64 `json:"rest_angle"`
	ActiveAngle   float64 `json:"active_angle"`
	Hysteresis    float64 `json:"hysteresis"`
	MinConfidence float64 `json:"min_confidence"`
}

// Validate rejects configurations that cannot produce well-defined
// transitions.
func (t Thresholds) Validate() error {
	for _, a := range []float64{t.RestAngle, t.ActiveAngle} {
		if a < 0 || a > 180 {
			return fmt.Errorf("%w: got %.1f", ErrBadAngle, a)
		}
	}
	if t.Hysteresis < 0 {
		return fmt.Errorf("%w: got %.1f", ErrBadHysteresis, t.Hysteresis)
	}
	if t.MinConfidence < 0 || t.MinConfidence > 1 {
		return fmt.Errorf("%w: got %.2f", ErrBadConfidence, t.MinConfidence)
	}
	if math.Abs(t.RestAngle-t.ActiveAngle) <= t.Hysteresis {
		return fmt.Errorf("%w: rest %.1f, active %.1f, hysteresis %.1f",
			ErrNoHysteresisBand, t.RestAngle, t.ActiveAngle, t.Hysteresis)
	}
	return nil
}

// ascending reports whether the active phase sits at a larger angle than
// rest (press, kickback) rather than a smaller one (curl).
func (t Thresholds) ascending() bool {
	return t.ActiveAngle > t.RestAngle
}
