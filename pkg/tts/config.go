package tts

import (
	"log/slog"
	"time"
)

// Config holds TTS provider configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// Provider credentials (ElevenLabs).
	APIKey  string
	BaseURL string

	// Voice configuration.
	VoiceID string
	ModelID string

	// Local engine tuning (espeak/say).
	Rate   int     // Words per minute.
	Volume float64 // 0.0 to 1.0.

	// PlayerCommand plays raw PCM piped to stdin (used by the
	// ElevenLabs providers). Defaults to aplay.
	PlayerCommand string

	// Timeouts.
	Timeout time.Duration

	// Retry configuration for API providers.
	MaxRetries int
	RetryDelay time.Duration

	// Observability.
	Logger *slog.Logger
}

// Option is a functional option for configuring TTS providers.
type Option func(*Config)

// WithAPIKey sets the API key for the provider.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithVoice sets the voice ID.
func WithVoice(voiceID string) Option {
	return func(c *Config) { c.VoiceID = voiceID }
}

// WithModel sets the model ID.
func WithModel(modelID string) Option {
	return func(c *Config) { c.ModelID = modelID }
}

// WithRate sets the speech rate in words per minute.
func WithRate(wpm int) Option {
	return func(c *Config) { c.Rate = wpm }
}

// WithVolume sets the speech volume (0.0 to 1.0).
func WithVolume(v float64) Option {
	return func(c *Config) { c.Volume = v }
}

// WithPlayer sets the command used to play piped PCM audio.
func WithPlayer(cmd string) Option {
	return func(c *Config) { c.PlayerCommand = cmd }
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) { c.Timeout = timeout }
}

// WithRetry configures retry behavior for failed API requests.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryDelay = delay
	}
}

// WithLogger sets the structured logger for the provider.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// DefaultElevenLabsVoice is used when no voice id is configured.
const DefaultElevenLabsVoice = "21m00Tcm4TlvDq8ikWAM"

// DefaultConfig returns sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		ModelID:       "eleven_flash_v2_5",
		Rate:          150,
		Volume:        0.9,
		PlayerCommand: "aplay",
		Timeout:       15 * time.Second,
		MaxRetries:    2,
		RetryDelay:    100 * time.Millisecond,
		Logger:        slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks that required API configuration is present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	if c.VoiceID == "" {
		return ErrNoVoiceID
	}
	return nil
}
