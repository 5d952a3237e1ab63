// Package pose defines the body-landmark vocabulary and the geometry used
// to turn landmark positions into joint angles.
//
// Landmarks arrive once per video frame from a pose detector. The rest of
// the system only ever reads them; nothing here mutates a frame after it
// has been built.
package pose

import (
	"encoding/json"
	"fmt"
)

// Joint identifies a tracked anatomical point. The vocabulary matches the
// 17-keypoint COCO layout used by MoveNet-style detectors.
type Joint int

const (
	Nose Joint = iota
	LeftEye
	RightEye
	LeftEar
	RightEar
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle

	jointCount
)

var jointNames = [...]string{
	Nose:          "nose",
	LeftEye:       "left_eye",
	RightEye:      "right_eye",
	LeftEar:       "left_ear",
	RightEar:      "right_ear",
	LeftShoulder:  "left_shoulder",
	RightShoulder: "right_shoulder",
	LeftElbow:     "left_elbow",
	RightElbow:    "right_elbow",
	LeftWrist:     "left_wrist",
	RightWrist:    "right_wrist",
	LeftHip:       "left_hip",
	RightHip:      "right_hip",
	LeftKnee:      "left_knee",
	RightKnee:     "right_knee",
	LeftAnkle:     "left_ankle",
	RightAnkle:    "right_ankle",
}

// String returns the snake_case joint name.
func (j Joint) String() string {
	if j < 0 || int(j) >= len(jointNames) {
		return "unknown"
	}
	return jointNames[j]
}

// NumJoints is the size of the joint vocabulary.
const NumJoints = int(jointCount)

// ParseJoint looks up a joint by its snake_case name.
func ParseJoint(name string) (Joint, bool) {
	for j, n := range jointNames {
		if n == name {
			return Joint(j), true
		}
	}
	return 0, false
}

// Landmark is one tracked point: position normalized to the frame
// (0-1 on both axes) and a visibility score in [0,1].
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Visibility float64 `json:"visibility"`
}

// Frame holds the landmarks detected in one video frame. A frame may be
// partial (occluded joints missing) or empty (no person in view).
type Frame map[Joint]Landmark

// Get returns the landmark for a joint and whether it was detected.
func (f Frame) Get(j Joint) (Landmark, bool) {
	lm, ok := f[j]
	return lm, ok
}

// Has reports whether every listed joint is present in the frame.
func (f Frame) Has(joints ...Joint) bool {
	for _, j := range joints {
		if _, ok := f[j]; !ok {
			return false
		}
	}
	return true
}

// Empty reports whether no person was detected.
func (f Frame) Empty() bool {
	return len(f) == 0
}

// MarshalJSON encodes the frame keyed by joint name, the format used
// by recording and replay files.
func (f Frame) MarshalJSON() ([]byte, error) {
	named := make(map[string]Landmark, len(f))
	for j, lm := range f {
		named[j.String()] = lm
	}
	return json.Marshal(named)
}

// UnmarshalJSON decodes a name-keyed frame. Unknown joint names are
// rejected.
func (f *Frame) UnmarshalJSON(data []byte) error {
	var named map[string]Landmark
	if err := json.Unmarshal(data, &named); err != nil {
		return err
	}
	frame := make(Frame, len(named))
	for name, lm := range named {
		j, ok := ParseJoint(name)
		if !ok {
			return fmt.Errorf("pose: unknown joint %q", name)
		}
		frame[j] = lm
	}
	*f = frame
	return nil
}
