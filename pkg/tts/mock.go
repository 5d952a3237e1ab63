package tts

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// Mock implements Provider for testing and for machines without an audio
// stack. Behavior can be customized via function fields; every call is
// recorded for verification.
type Mock struct {
	// SpeakFunc is called when Speak is invoked. If nil, the text is
	// optionally echoed to Output and the call succeeds.
	SpeakFunc func(ctx context.Context, text string) error

	// HealthFunc is called when Health is invoked. If nil, returns nil.
	HealthFunc func(ctx context.Context) error

	// Output, when set, receives "TTS: <text>" lines instead of audio.
	Output io.Writer

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation for verification.
type MockCall struct {
	Method string
	Text   string
	Time   time.Time
}

// NewMock creates a mock provider that succeeds silently.
func NewMock() *Mock {
	return &Mock{}
}

// NewPrinting creates a mock provider that writes spoken text to w.
// This mirrors the "no speech engine installed" fallback: feedback still
// appears, just on the terminal.
func NewPrinting(w io.Writer) *Mock {
	return &Mock{Output: w}
}

// Speak records the call and runs SpeakFunc or the echo fallback.
func (m *Mock) Speak(ctx context.Context, text string) error {
	m.record("Speak", text)
	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, text)
	}
	if m.Output != nil {
		fmt.Fprintf(m.Output, "TTS: %s\n", text)
	}
	return nil
}

// Health records the call and runs HealthFunc.
func (m *Mock) Health(ctx context.Context) error {
	m.record("Health", "")
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// Close records the call.
func (m *Mock) Close() error {
	m.record("Close", "")
	return nil
}

func (m *Mock) record(method, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Text: text, Time: time.Now()})
}

// Calls returns all recorded method calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of times a method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

// Spoken returns the text of every Speak call, in order.
func (m *Mock) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, c := range m.calls {
		if c.Method == "Speak" {
			out = append(out, c.Text)
		}
	}
	return out
}

// Reset clears all recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// WithError returns a mock whose every method fails with err.
func WithError(err error) *Mock {
	return &Mock{
		SpeakFunc:  func(ctx context.Context, text string) error { return err },
		HealthFunc: func(ctx context.Context) error { return err },
	}
}

// WithDelay returns a mock that takes d to speak, for exercising
// busy-speaker paths in tests.
func WithDelay(d time.Duration) *Mock {
	m := NewMock()
	m.SpeakFunc = func(ctx context.Context, text string) error {
		select {
		case <-time.After(d):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return m
}

// Verify Mock implements Provider at compile time.
var _ Provider = (*Mock)(nil)
