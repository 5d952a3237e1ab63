package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
)

const providerCommand = "command"

// Command implements Provider using a local speech binary. It tries
// espeak-ng, espeak, and (on macOS) say, in that order, and plays audio
// synchronously the way the binary does.
type Command struct {
	config *Config
	logger *slog.Logger
	binary string
}

// NewCommand creates a local command-line TTS provider. It fails with
// ErrNoEngine when no speech binary is installed.
func NewCommand(opts ...Option) (*Command, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	binary, err := findSpeechBinary()
	if err != nil {
		return nil, err
	}

	return &Command{
		config: cfg,
		logger: cfg.Logger.With("component", "tts.command", "binary", binary),
		binary: binary,
	}, nil
}

func findSpeechBinary() (string, error) {
	candidates := []string{"espeak-ng", "espeak"}
	if runtime.GOOS == "darwin" {
		candidates = append([]string{"say"}, candidates...)
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNoEngine
}

// Speak runs the speech binary and waits for playback to finish.
func (c *Command) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, c.binary, c.args(text)...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return WrapError(providerCommand, fmt.Errorf("run %s: %w", c.binary, err))
	}

	c.logger.Debug("spoke", "chars", len(text))
	return nil
}

// args builds the engine-specific argument list.
func (c *Command) args(text string) []string {
	if filepath.Base(c.binary) == "say" {
		return []string{"-r", strconv.Itoa(c.config.Rate), text}
	}
	// espeak: -s words per minute, -a amplitude 0-200
	amplitude := int(c.config.Volume * 200)
	return []string{"-s", strconv.Itoa(c.config.Rate), "-a", strconv.Itoa(amplitude), text}
}

// Health verifies the binary is still reachable.
func (c *Command) Health(ctx context.Context) error {
	if _, err := exec.LookPath(c.binary); err != nil {
		return WrapError(providerCommand, ErrNoEngine)
	}
	return nil
}

// Close releases resources (none held).
func (c *Command) Close() error {
	return nil
}

// Verify Command implements Provider at compile time.
var _ Provider = (*Command)(nil)
