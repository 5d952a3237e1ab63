// Package tts provides text-to-speech for spoken exercise feedback.
//
// All backends implement the Provider interface: a local command-line
// engine (espeak, say), the ElevenLabs API over HTTP or websocket, and a
// chain that falls back between them. Machines without an audio stack use
// the Mock provider, which records instead of speaking.
//
// Example:
//
//	provider, _ := tts.NewCommand()
//	defer provider.Close()
//	_ = provider.Speak(ctx, "Bicep curl completed! Reps: 3")
package tts

import "context"

// Provider speaks text aloud. Speak blocks until playback finishes (or
// ctx is cancelled), so callers that must not stall run it from a
// dedicated goroutine.
type Provider interface {
	// Speak synthesizes and plays the given text.
	Speak(ctx context.Context, text string) error

	// Health checks that the provider can actually produce audio
	// (binary present, API key valid).
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}
