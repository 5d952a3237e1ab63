// Package config loads the application configuration for formcoach
// commands: defaults, an optional JSON file, then environment
// overrides, in that order.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/formcoach/formcoach/pkg/exercise"
)

// Config is the full application configuration.
type Config struct {
	// Exercise is the exercise id tracked at startup.
	Exercise string `json:"exercise"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`

	// Camera settings.
	CameraDevice int `json:"camera_device"`
	CameraWidth  int `json:"camera_width"`
	CameraHeight int `json:"camera_height"`
	JPEGQuality  int `json:"jpeg_quality"`

	// Pose model.
	ModelPath     string  `json:"model_path"`
	MinConfidence float64 `json:"min_confidence"`

	// Dashboard listen address; empty disables the dashboard.
	WebAddr string `json:"web_addr"`

	// SessionDir receives session summary files; empty disables them.
	SessionDir string `json:"session_dir"`

	// Speech settings. APIKey and VoiceID come from the environment
	// only, never the file.
	TTSEnabled   bool   `json:"tts_enabled"`
	TTSAPIKey    string `json:"-"`
	TTSVoiceID   string `json:"-"`
	SpeechPlayer string `json:"speech_player"`

	// RepeatIntervalSec throttles identical spoken cues.
	RepeatIntervalSec float64 `json:"repeat_interval_sec"`

	// Thresholds overrides the built-in angle boundaries per exercise.
	Thresholds map[string]exercise.Thresholds `json:"thresholds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Exercise:          exercise.BicepCurl,
		LogLevel:          "info",
		CameraDevice:      0,
		CameraWidth:       1280,
		CameraHeight:      720,
		JPEGQuality:       80,
		ModelPath:         "models/movenet_singlepose_lightning.onnx",
		MinConfidence:     0.5,
		WebAddr:           ":8090",
		SessionDir:        "sessions",
		TTSEnabled:        true,
		SpeechPlayer:      "aplay",
		RepeatIntervalSec: 3,
	}
}

// Load builds the configuration from defaults, the JSON file at path
// (skipped when path is empty), and environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FORMCOACH_EXERCISE"); v != "" {
		c.Exercise = v
	}
	if v := os.Getenv("FORMCOACH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("FORMCOACH_WEB_ADDR"); v != "" {
		c.WebAddr = v
	}
	if v := os.Getenv("FORMCOACH_MODEL"); v != "" {
		c.ModelPath = v
	}
	if v := os.Getenv("FORMCOACH_CAMERA"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CameraDevice = n
		}
	}
	c.TTSAPIKey = os.Getenv("ELEVENLABS_API_KEY")
	c.TTSVoiceID = os.Getenv("ELEVENLABS_VOICE_ID")
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if _, err := exercise.DefaultThresholds(c.Exercise); err != nil {
		return err
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("config: min_confidence %v out of range", c.MinConfidence)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("config: jpeg_quality %d out of range", c.JPEGQuality)
	}
	if c.RepeatIntervalSec < 0 {
		return fmt.Errorf("config: repeat_interval_sec %v negative", c.RepeatIntervalSec)
	}
	for id, t := range c.Thresholds {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("config: thresholds for %s: %w", id, err)
		}
	}
	return nil
}
