package tts

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/exec"

	"github.com/gorilla/websocket"
)

const (
	elevenLabsWSBaseURL  = "wss://api.elevenlabs.io/v1/text-to-speech"
	providerElevenLabsWS = "elevenlabs_ws"
)

// ElevenLabsStream implements Provider over the ElevenLabs websocket
// streaming API. Audio chunks are piped to the player as they arrive,
// which cuts time-to-first-sound compared to the HTTP provider. One
// connection is opened per utterance; feedback phrases are short enough
// that holding a connection open between reps buys nothing.
type ElevenLabsStream struct {
	config *Config
	logger *slog.Logger
}

// NewElevenLabsStream creates a websocket-streaming ElevenLabs provider.
func NewElevenLabsStream(opts ...Option) (*ElevenLabsStream, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &ElevenLabsStream{
		config: cfg,
		logger: cfg.Logger.With("component", "tts.elevenlabs_ws"),
	}, nil
}

// wsMessage is the server-to-client frame format.
type wsMessage struct {
	Audio   string `json:"audio,omitempty"`
	IsFinal bool   `json:"isFinal,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Speak streams synthesis for the text and plays chunks as they arrive.
func (s *ElevenLabsStream) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	url := fmt.Sprintf("%s/%s/stream-input?model_id=%s&output_format=%s",
		elevenLabsWSBaseURL, s.config.VoiceID, s.config.ModelID, pcmFormat)

	header := http.Header{}
	header.Set("xi-api-key", s.config.APIKey)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return WrapError(providerElevenLabsWS, fmt.Errorf("dial: %w", err))
	}
	defer conn.Close()

	// The protocol wants the text message followed by an empty flush.
	for _, msg := range []map[string]any{
		{"text": text + " ", "flush": true},
		{"text": ""},
	} {
		if err := conn.WriteJSON(msg); err != nil {
			return WrapError(providerElevenLabsWS, fmt.Errorf("send: %w", err))
		}
	}

	player, stdin, err := s.startPlayer(ctx)
	if err != nil {
		return err
	}

	if err := s.pump(ctx, conn, stdin); err != nil {
		stdin.Close()
		player.Wait()
		return err
	}

	stdin.Close()
	if err := player.Wait(); err != nil && ctx.Err() == nil {
		return WrapError(providerElevenLabsWS, fmt.Errorf("play audio: %w", err))
	}
	return ctx.Err()
}

// pump copies decoded audio chunks from the websocket into the player.
func (s *ElevenLabsStream) pump(ctx context.Context, conn *websocket.Conn, out io.Writer) error {
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return WrapError(providerElevenLabsWS, fmt.Errorf("read: %w", err))
		}

		if msg.Error != "" {
			return WrapError(providerElevenLabsWS, fmt.Errorf("server: %s", msg.Error))
		}

		if msg.Audio != "" {
			pcm, err := base64.StdEncoding.DecodeString(msg.Audio)
			if err != nil {
				return WrapError(providerElevenLabsWS, fmt.Errorf("decode audio: %w", err))
			}
			if _, err := out.Write(pcm); err != nil {
				return WrapError(providerElevenLabsWS, fmt.Errorf("write audio: %w", err))
			}
		}

		if msg.IsFinal {
			return nil
		}
	}
}

func (s *ElevenLabsStream) startPlayer(ctx context.Context) (*exec.Cmd, io.WriteCloser, error) {
	cmd := exec.CommandContext(ctx, s.config.PlayerCommand,
		"-q", "-f", "S16_LE", "-r", "24000", "-c", "1", "-")
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, WrapError(providerElevenLabsWS, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, WrapError(providerElevenLabsWS, fmt.Errorf("start player: %w", err))
	}
	return cmd, stdin, nil
}

// Health verifies the API key over the HTTP endpoint; the websocket API
// has no cheap health probe.
func (s *ElevenLabsStream) Health(ctx context.Context) error {
	fallback, err := NewElevenLabs(
		WithAPIKey(s.config.APIKey),
		WithVoice(s.config.VoiceID),
		WithLogger(s.logger),
	)
	if err != nil {
		return err
	}
	return fallback.Health(ctx)
}

// Close releases resources (connections are per-utterance).
func (s *ElevenLabsStream) Close() error {
	return nil
}

// Verify ElevenLabsStream implements Provider at compile time.
var _ Provider = (*ElevenLabsStream)(nil)
