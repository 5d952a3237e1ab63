package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/formcoach/formcoach/pkg/exercise"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"exercise": "shoulder_press",
		"web_addr": ":9000",
		"thresholds": {
			"shoulder_press": {
				"rest_angle": 85,
				"active_angle": 165,
				"hysteresis": 8,
				"min_confidence": 0.6
			}
		}
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Exercise != exercise.ShoulderPress {
		t.Errorf("Exercise = %q", cfg.Exercise)
	}
	if cfg.WebAddr != ":9000" {
		t.Errorf("WebAddr = %q", cfg.WebAddr)
	}
	th, ok := cfg.Thresholds[exercise.ShoulderPress]
	if !ok || th.RestAngle != 85 || th.Hysteresis != 8 {
		t.Errorf("Thresholds = %+v", cfg.Thresholds)
	}
	// Unset fields keep defaults.
	if cfg.CameraWidth != 1280 {
		t.Errorf("CameraWidth = %d", cfg.CameraWidth)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FORMCOACH_EXERCISE", exercise.TricepKickback)
	t.Setenv("FORMCOACH_CAMERA", "2")
	t.Setenv("ELEVENLABS_API_KEY", "xi-test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Exercise != exercise.TricepKickback {
		t.Errorf("Exercise = %q", cfg.Exercise)
	}
	if cfg.CameraDevice != 2 {
		t.Errorf("CameraDevice = %d", cfg.CameraDevice)
	}
	if cfg.TTSAPIKey != "xi-test" {
		t.Errorf("TTSAPIKey = %q", cfg.TTSAPIKey)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown exercise", func(c *Config) { c.Exercise = "handstand" }},
		{"bad confidence", func(c *Config) { c.MinConfidence = 1.5 }},
		{"bad quality", func(c *Config) { c.JPEGQuality = 0 }},
		{"negative repeat", func(c *Config) { c.RepeatIntervalSec = -1 }},
		{"bad thresholds", func(c *Config) {
			c.Thresholds = map[string]exercise.Thresholds{
				exercise.BicepCurl: {RestAngle: 90, ActiveAngle: 90, Hysteresis: 5, MinConfidence: 0.5},
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
