// FormCoach - camera-based exercise form tracker with spoken feedback.
//
// Counts reps from webcam pose estimation and coaches pacing and form.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gocv.io/x/gocv"

	"github.com/formcoach/formcoach/internal/config"
	"github.com/formcoach/formcoach/internal/log"
	"github.com/formcoach/formcoach/pkg/exercise"
	"github.com/formcoach/formcoach/pkg/feedback"
	"github.com/formcoach/formcoach/pkg/pose"
	"github.com/formcoach/formcoach/pkg/pose/detection"
	"github.com/formcoach/formcoach/pkg/trainer"
	"github.com/formcoach/formcoach/pkg/tts"
	"github.com/formcoach/formcoach/pkg/video"
	"github.com/formcoach/formcoach/pkg/web"
)

func main() {
	cfg, showWindow, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.LogLevel)
	logger := log.L()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Speech pipeline: provider -> speaker worker -> gate.
	provider := buildTTS(cfg)
	defer provider.Close()
	speaker := feedback.NewSpeaker(provider, logger)
	defer speaker.Close()
	gate := feedback.NewGate(speaker,
		time.Duration(cfg.RepeatIntervalSec*float64(time.Second)), logger)

	var server *web.Server
	if cfg.WebAddr != "" {
		server = web.NewServer(cfg.WebAddr, logger)
	}

	gate.Offer(feedback.Event{
		Category: feedback.CategoryStatus,
		Message:  "Welcome to Form Coach!",
		Urgency:  feedback.UrgencyNormal,
	})

	tr, err := trainer.New(trainer.Config{
		Exercise:   cfg.Exercise,
		Thresholds: cfg.Thresholds,
		SessionDir: cfg.SessionDir,
		Logger:     logger,
	}, gate, server)
	if err != nil {
		logger.Error("trainer setup failed", "error", err)
		os.Exit(1)
	}
	defer tr.Close()

	if server != nil {
		server.StartAsync()
		defer server.Shutdown()
	}

	detector, err := detection.NewMoveNet(detection.Config{
		ModelPath:        cfg.ModelPath,
		ConfidenceThresh: cfg.MinConfidence,
		InputSize:        detection.DefaultConfig().InputSize,
	})
	if err != nil {
		logger.Error("pose model load failed", "error", err)
		os.Exit(1)
	}
	defer detector.Close()

	camera, err := video.Open(video.Config{
		Device:  cfg.CameraDevice,
		Width:   cfg.CameraWidth,
		Height:  cfg.CameraHeight,
		Quality: cfg.JPEGQuality,
	})
	if err != nil {
		logger.Error("camera open failed", "error", err)
		os.Exit(1)
	}
	defer camera.Close()

	logger.Info("formcoach started",
		"exercise", cfg.Exercise,
		"camera", cfg.CameraDevice,
		"dashboard", cfg.WebAddr)

	if err := run(ctx, tr, detector, camera, server, showWindow, logger); err != nil {
		logger.Error("trainer loop failed", "error", err)
	}

	summary := tr.Summary()
	fmt.Printf("\nSession: %d reps in %.0fs (%d frames)\n",
		summary.Reps, summary.DurationSec, summary.Frames)
}

func run(ctx context.Context, tr *trainer.Trainer, detector *detection.MoveNetDetector,
	camera *video.Camera, server *web.Server, showWindow bool, logger *slog.Logger) error {

	var window *gocv.Window
	if showWindow {
		window = gocv.NewWindow("FormCoach")
		defer window.Close()
	}

	img := gocv.NewMat()
	defer img.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !camera.Read(&img) {
			logger.Warn("camera read failed")
			continue
		}

		frame, err := detector.DetectMat(img)
		if err != nil {
			logger.Warn("pose detection failed", "error", err)
			frame = pose.Frame{}
		}

		st := tr.Process(frame)

		video.DrawPose(&img, frame)
		video.DrawHUD(&img, tr.Name(), st, tr.LastCue())

		if server != nil {
			if jpeg, err := camera.EncodeJPEG(img); err == nil {
				server.SendFrame(jpeg)
			}
		}

		if window == nil {
			continue
		}
		window.IMShow(img)
		switch window.WaitKey(1) {
		case 'q', 27: // Esc
			return nil
		case 'r':
			tr.Reset()
		}
	}
}

// buildTTS assembles the speech provider chain: ElevenLabs when an API
// key is present, the local espeak binary as fallback, and a console
// echo when neither is usable or speech is disabled.
func buildTTS(cfg config.Config) tts.Provider {
	if !cfg.TTSEnabled {
		return tts.NewPrinting(os.Stdout)
	}

	var providers []tts.Provider
	if cfg.TTSAPIKey != "" {
		voice := cfg.TTSVoiceID
		if voice == "" {
			voice = tts.DefaultElevenLabsVoice
		}
		eleven, err := tts.NewElevenLabs(
			tts.WithAPIKey(cfg.TTSAPIKey),
			tts.WithVoice(voice),
			tts.WithPlayer(cfg.SpeechPlayer),
			tts.WithLogger(log.L()),
		)
		if err == nil {
			providers = append(providers, eleven)
		} else {
			log.Warn("elevenlabs unavailable", "error", err)
		}
	}
	if command, err := tts.NewCommand(tts.WithLogger(log.L())); err == nil {
		providers = append(providers, command)
	}
	providers = append(providers, tts.NewPrinting(os.Stdout))

	chain, err := tts.NewChainWithLogger(log.L(), providers...)
	if err != nil {
		return tts.NewPrinting(os.Stdout)
	}
	return chain
}

func parseFlags() (config.Config, bool, error) {
	configPath := flag.String("config", "", "Path to JSON config file")
	exerciseID := flag.String("exercise", "", fmt.Sprintf("Exercise to track: %v", exercise.IDs()))
	camera := flag.Int("camera", -1, "Camera device index")
	model := flag.String("model", "", "Path to pose model ONNX file")
	webAddr := flag.String("web", "", "Dashboard listen address (empty for config default)")
	noWeb := flag.Bool("no-web", false, "Disable the web dashboard")
	noTTS := flag.Bool("no-tts", false, "Print cues instead of speaking them")
	noWindow := flag.Bool("no-window", false, "Run headless without the preview window")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return config.Config{}, false, err
	}

	if *exerciseID != "" {
		cfg.Exercise = *exerciseID
	}
	if *camera >= 0 {
		cfg.CameraDevice = *camera
	}
	if *model != "" {
		cfg.ModelPath = *model
	}
	if *webAddr != "" {
		cfg.WebAddr = *webAddr
	}
	if *noWeb {
		cfg.WebAddr = ""
	}
	if *noTTS {
		cfg.TTSEnabled = false
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, false, err
	}
	return cfg, !*noWindow, nil
}
