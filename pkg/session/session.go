// Package session records workout statistics for one run of the trainer
// and writes a JSON summary on exit.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/formcoach/formcoach/pkg/exercise"
)

// Session accumulates per-workout statistics. It is owned by the frame
// loop; Summary returns a copy safe to hand elsewhere.
type Session struct {
	id        string
	exercise  string
	startedAt time.Time

	frames      int
	noDetection int
	resets      int

	reps     int
	sideReps [2]int
	missed   int
}

// Summary is the exported session record.
type Summary struct {
	ID          string    `json:"id"`
	Exercise    string    `json:"exercise"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at"`
	DurationSec float64   `json:"duration_sec"`

	Frames      int `json:"frames"`
	NoDetection int `json:"no_detection_frames"`
	Resets      int `json:"resets"`

	Reps      int `json:"reps"`
	LeftReps  int `json:"left_reps,omitempty"`
	RightReps int `json:"right_reps,omitempty"`
	Missed    int `json:"missed,omitempty"`
}

// New starts a session for the given exercise id.
func New(exerciseID string) *Session {
	return &Session{
		id:        uuid.NewString(),
		exercise:  exerciseID,
		startedAt: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// RecordFrame folds one frame's status into the running totals.
func (s *Session) RecordFrame(st exercise.Status) {
	s.frames++
	if !st.Detected {
		s.noDetection++
		return
	}
	// Counters are absolute in Status; keep the latest.
	s.reps = st.Reps
	s.sideReps = st.SideReps
	s.missed = st.Missed
}

// RecordReset notes an explicit counter reset.
func (s *Session) RecordReset() {
	s.resets++
	s.reps = 0
	s.sideReps = [2]int{}
	s.missed = 0
}

// Summary returns the current totals.
func (s *Session) Summary() Summary {
	now := time.Now()
	return Summary{
		ID:          s.id,
		Exercise:    s.exercise,
		StartedAt:   s.startedAt,
		EndedAt:     now,
		DurationSec: now.Sub(s.startedAt).Seconds(),
		Frames:      s.frames,
		NoDetection: s.noDetection,
		Resets:      s.resets,
		Reps:        s.reps,
		LeftReps:    s.sideReps[exercise.SideLeft],
		RightReps:   s.sideReps[exercise.SideRight],
		Missed:      s.missed,
	}
}

// WriteFile writes the summary as JSON into dir and returns the path.
func (s *Session) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create summary dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("session_%s.json", s.id))
	data, err := json.MarshalIndent(s.Summary(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}
