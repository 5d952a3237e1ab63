// FormCoach replay - runs recorded landmark frames through the rep
// counting pipeline without a camera.
//
// Input is JSONL: one frame per line, landmarks keyed by joint name.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/formcoach/formcoach/internal/log"
	"github.com/formcoach/formcoach/pkg/exercise"
	"github.com/formcoach/formcoach/pkg/feedback"
	"github.com/formcoach/formcoach/pkg/pose"
	"github.com/formcoach/formcoach/pkg/trainer"
	"github.com/formcoach/formcoach/pkg/tts"
)

func main() {
	exerciseID := flag.String("exercise", exercise.BicepCurl,
		fmt.Sprintf("Exercise to track: %v", exercise.IDs()))
	fps := flag.Float64("fps", 0, "Playback rate; 0 replays as fast as possible")
	sessionDir := flag.String("sessions", "", "Directory for the session summary file")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: formcoach-replay [flags] <frames.jsonl>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	log.Init(*logLevel)

	file, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	echo := tts.NewPrinting(os.Stdout)
	gate := feedback.NewGate(echoSink{echo}, feedback.DefaultRepeatInterval, log.L())

	tr, err := trainer.New(trainer.Config{
		Exercise:   *exerciseID,
		SessionDir: *sessionDir,
		Logger:     log.L(),
	}, gate, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var interval time.Duration
	if *fps > 0 {
		interval = time.Duration(float64(time.Second) / *fps)
	}

	src := &jsonlSource{scanner: bufio.NewScanner(file)}
	if err := tr.Run(context.Background(), src, interval); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if src.err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", src.err)
		os.Exit(1)
	}
	if err := tr.Close(); err != nil {
		os.Exit(1)
	}

	summary := tr.Summary()
	fmt.Printf("\n%s: %d reps over %d frames", summary.Exercise, summary.Reps, summary.Frames)
	if summary.Missed > 0 {
		fmt.Printf(", %d out of order", summary.Missed)
	}
	fmt.Println()
}

// jsonlSource yields one frame per input line. Blank lines are skipped;
// a malformed line stops the replay.
type jsonlSource struct {
	scanner *bufio.Scanner
	line    int
	err     error
}

func (s *jsonlSource) Next() (pose.Frame, bool) {
	for s.scanner.Scan() {
		s.line++
		text := s.scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var frame pose.Frame
		if err := json.Unmarshal(text, &frame); err != nil {
			s.err = fmt.Errorf("line %d: %w", s.line, err)
			return nil, false
		}
		return frame, true
	}
	s.err = s.scanner.Err()
	return nil, false
}

// echoSink prints cues through the console speech mock.
type echoSink struct {
	mock *tts.Mock
}

func (e echoSink) Say(req feedback.SpeechRequest) {
	e.mock.Speak(context.Background(), req.Text)
}
