package exercise

import (
	"fmt"
	"sort"
)

// Exercise ids accepted by New and the --exercise CLI flag.
const (
	ShoulderPress        = "shoulder_press"
	BicepCurl            = "bicep_curl"
	AlternatingBicepCurl = "alternating_bicep_curl"
	TricepKickback       = "tricep_kickback"
)

// DefaultMinConfidence is the landmark visibility floor used when a
// config supplies none.
const DefaultMinConfidence = 0.5

// defaultThresholds holds the tuned angle boundaries per exercise.
// Rest/active ordering encodes direction: the press and kickback extend
// (ascending), the curls flex (descending).
var defaultThresholds = map[string]Thresholds{
	ShoulderPress: {
		RestAngle:     90, // L-shape, elbows at shoulder height
		ActiveAngle:   160,
		Hysteresis:    5,
		MinConfidence: DefaultMinConfidence,
	},
	BicepCurl: {
		RestAngle:     160, // arms extended
		ActiveAngle:   60,  // fully curled
		Hysteresis:    5,
		MinConfidence: DefaultMinConfidence,
	},
	AlternatingBicepCurl: {
		RestAngle:     160,
		ActiveAngle:   60,
		Hysteresis:    5,
		MinConfidence: DefaultMinConfidence,
	},
	TricepKickback: {
		RestAngle:     30, // elbow bent at the side
		ActiveAngle:   150,
		Hysteresis:    5,
		MinConfidence: DefaultMinConfidence,
	},
}

// DefaultThresholds returns the built-in thresholds for an exercise id.
func DefaultThresholds(id string) (Thresholds, error) {
	t, ok := defaultThresholds[id]
	if !ok {
		return Thresholds{}, fmt.Errorf("exercise: unknown exercise %q", id)
	}
	return t, nil
}

// IDs returns the known exercise ids, sorted.
func IDs() []string {
	ids := make([]string, 0, len(defaultThresholds))
	for id := range defaultThresholds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// New builds the policy for an exercise id with the given thresholds.
// Threshold validation errors are returned before any frame is
// processed.
func New(id string, t Thresholds) (Policy, error) {
	switch id {
	case ShoulderPress:
		return newBilateral(id, "Shoulder Press", t,
			"Shoulder press completed! Reps: %d.",
			"Keep both arms moving together.",
			"Arms up fully. Now lower them back down.")
	case BicepCurl:
		return newBilateral(id, "Bicep Curl", t,
			"Bicep curl completed! Reps: %d.",
			"Curl both arms at the same time.",
			"Good curl. Now extend your arms back down.")
	case AlternatingBicepCurl:
		return newAlternating(id, "Alternating Bicep Curl", t,
			"Completed %s arm curl! Total reps: %d. Switch to your %s arm.",
			"Wrong arm! It's your %s arm's turn.")
	case TricepKickback:
		return newAlternating(id, "Tricep Kickback", t,
			"Completed %s arm kickback! Total reps: %d. Switch to your %s arm.",
			"Wrong arm! It's your %s arm's turn.")
	default:
		return nil, fmt.Errorf("exercise: unknown exercise %q", id)
	}
}

// NewDefault builds the policy for an exercise id with its built-in
// thresholds.
func NewDefault(id string) (Policy, error) {
	t, err := DefaultThresholds(id)
	if err != nil {
		return nil, err
	}
	return New(id, t)
}
