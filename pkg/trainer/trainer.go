// Package trainer wires the per-frame pipeline together: landmarks in,
// rep counting, spoken feedback, session stats, and dashboard updates.
package trainer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/formcoach/formcoach/pkg/exercise"
	"github.com/formcoach/formcoach/pkg/feedback"
	"github.com/formcoach/formcoach/pkg/pose"
	"github.com/formcoach/formcoach/pkg/session"
	"github.com/formcoach/formcoach/pkg/web"
)

// Source supplies landmark frames for headless runs (replay files,
// tests). The live camera path calls Process directly instead.
type Source interface {
	// Next returns the next frame. ok is false when the source is
	// exhausted.
	Next() (pose.Frame, bool)
}

// Config holds trainer settings.
type Config struct {
	// Exercise is the initial exercise id.
	Exercise string

	// Thresholds overrides the built-in angle thresholds per exercise id.
	Thresholds map[string]exercise.Thresholds

	// SessionDir is where session summaries are written; empty disables
	// the summary file.
	SessionDir string

	Logger *slog.Logger
}

// Trainer runs the frame pipeline for one exercise at a time.
type Trainer struct {
	mu      sync.Mutex
	config  Config
	policy  exercise.Policy
	session *session.Session
	gate    *feedback.Gate
	server  *web.Server
	logger  *slog.Logger

	lastCue    string
	lastStatus exercise.Status

	frameCount int
	fpsWindow  time.Time
	fps        float64
}

// New creates a trainer for cfg.Exercise. gate may not be nil; server
// may be nil to run without a dashboard.
func New(cfg Config, gate *feedback.Gate, server *web.Server) (*Trainer, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	t := &Trainer{
		config:    cfg,
		gate:      gate,
		server:    server,
		logger:    cfg.Logger,
		fpsWindow: time.Now(),
	}
	if err := t.SelectExercise(cfg.Exercise); err != nil {
		return nil, err
	}
	if server != nil {
		server.OnReset = t.Reset
		server.OnSelectExercise = t.SelectExercise
		server.ListExercises = exercise.IDs
	}
	return t, nil
}

func (t *Trainer) buildPolicy(id string) (exercise.Policy, error) {
	if th, ok := t.config.Thresholds[id]; ok {
		return exercise.New(id, th)
	}
	return exercise.NewDefault(id)
}

// SelectExercise switches the active exercise, starting a fresh
// session for it. The previous session summary is written first.
func (t *Trainer) SelectExercise(id string) error {
	policy, err := t.buildPolicy(id)
	if err != nil {
		return err
	}

	t.mu.Lock()
	if t.session != nil {
		t.writeSummaryLocked()
	}
	t.policy = policy
	t.session = session.New(id)
	t.lastCue = ""
	t.lastStatus = exercise.Status{}
	// The gate is single-owner; every trainer call into it stays under
	// the same mutex as the frame path.
	if t.gate != nil {
		t.gate.Reset()
		t.gate.Offer(feedback.Event{
			Category: feedback.CategoryStatus,
			Message:  fmt.Sprintf("Now tracking %s", policy.Name()),
			Urgency:  feedback.UrgencyNormal,
		})
	}
	t.mu.Unlock()

	t.logger.Info("exercise selected", "exercise", id)
	return nil
}

// Process runs one landmark frame through the pipeline and returns the
// resulting status for overlay drawing.
func (t *Trainer) Process(frame pose.Frame) exercise.Status {
	t.mu.Lock()
	st := t.policy.Update(frame)
	t.session.RecordFrame(st)
	t.lastStatus = st
	t.tickFPSLocked()

	if ev := st.Event; ev != nil && t.gate != nil {
		if t.gate.Offer(*ev) {
			t.lastCue = ev.Message
		}
	}
	cue := t.lastCue
	fps := t.fps
	name := t.policy.Name()
	t.mu.Unlock()

	if t.server != nil {
		t.pushState(st, name, cue, fps)
	}
	return st
}

func (t *Trainer) tickFPSLocked() {
	t.frameCount++
	if elapsed := time.Since(t.fpsWindow); elapsed >= time.Second {
		t.fps = float64(t.frameCount) / elapsed.Seconds()
		t.frameCount = 0
		t.fpsWindow = time.Now()
	}
}

func (t *Trainer) pushState(st exercise.Status, name, cue string, fps float64) {
	t.server.UpdateState(func(ws *web.TrainerState) {
		ws.Exercise = st.Exercise
		ws.ExerciseName = name
		ws.Detected = st.Detected
		ws.Reps = st.Reps
		ws.Phase = st.Phase.String()
		if st.Left.Valid {
			ws.LeftAngle = st.Left.Degrees
		}
		if st.Right.Valid {
			ws.RightAngle = st.Right.Degrees
		}
		ws.Alternating = st.Alternating
		ws.LeftReps = st.SideReps[exercise.SideLeft]
		ws.RightReps = st.SideReps[exercise.SideRight]
		if st.Alternating {
			ws.NextSide = st.NextSide.String()
		}
		ws.Missed = st.Missed
		ws.LastCue = cue
		ws.FPS = fps
	})
}

// Reset zeroes the rep counters of the active exercise.
func (t *Trainer) Reset() {
	t.mu.Lock()
	t.policy.Reset()
	t.session.RecordReset()
	t.lastCue = ""
	if t.gate != nil {
		t.gate.Reset()
		t.gate.Offer(feedback.Event{
			Category: feedback.CategoryStatus,
			Message:  "Counter reset",
			Urgency:  feedback.UrgencyNormal,
		})
	}
	t.mu.Unlock()

	t.logger.Info("counters reset")
}

// Name returns the display name of the active exercise.
func (t *Trainer) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.policy.Name()
}

// Status returns the most recent pipeline status.
func (t *Trainer) Status() exercise.Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastStatus
}

// LastCue returns the most recent spoken cue.
func (t *Trainer) LastCue() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastCue
}

// Run drains src through the pipeline at the given interval until the
// source is exhausted or ctx is cancelled. An interval of zero runs as
// fast as the source delivers.
func (t *Trainer) Run(ctx context.Context, src Source, interval time.Duration) error {
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}
	for {
		frame, ok := src.Next()
		if !ok {
			return nil
		}
		t.Process(frame)

		if ticker == nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close writes the session summary and releases nothing else; the
// caller owns the gate, server, and camera.
func (t *Trainer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writeSummaryLocked()
}

func (t *Trainer) writeSummaryLocked() error {
	if t.config.SessionDir == "" || t.session == nil {
		return nil
	}
	path, err := t.session.WriteFile(t.config.SessionDir)
	if err != nil {
		t.logger.Warn("session summary not written", "error", err)
		return err
	}
	t.logger.Info("session summary written", "path", path)
	return nil
}

// Summary returns the current session summary.
func (t *Trainer) Summary() session.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.Summary()
}
