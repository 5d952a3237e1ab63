package feedback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/formcoach/formcoach/pkg/tts"
)

// DefaultSpeechTimeout bounds one utterance; a wedged audio stack must
// not hold the worker forever.
const DefaultSpeechTimeout = 10 * time.Second

// Speaker is the speech sink behind the gate. Say hands the request to a
// worker goroutine and returns immediately; at most one utterance is in
// flight, and requests arriving while the worker is busy are dropped.
type Speaker struct {
	provider tts.Provider
	logger   *slog.Logger
	timeout  time.Duration

	requests chan SpeechRequest
	done     chan struct{}
	once     sync.Once

	mu      sync.Mutex
	dropped int
}

// NewSpeaker starts a speaker over the given TTS provider.
func NewSpeaker(provider tts.Provider, logger *slog.Logger) *Speaker {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Speaker{
		provider: provider,
		logger:   logger.With("component", "feedback.speaker"),
		timeout:  DefaultSpeechTimeout,
		requests: make(chan SpeechRequest, 1),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

// Say enqueues a speech request without blocking. If the speaker is busy
// the request is dropped.
func (s *Speaker) Say(req SpeechRequest) {
	select {
	case s.requests <- req:
	default:
		s.mu.Lock()
		s.dropped++
		s.mu.Unlock()
		s.logger.Debug("dropped speech request, speaker busy", "text", req.Text)
	}
}

// Dropped returns how many requests were discarded because the speaker
// was busy.
func (s *Speaker) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Close stops the worker after the current utterance finishes.
func (s *Speaker) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *Speaker) run() {
	for {
		select {
		case <-s.done:
			return
		case req := <-s.requests:
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			if err := s.provider.Speak(ctx, req.Text); err != nil {
				s.logger.Warn("speech failed", "error", err, "text", req.Text)
			}
			cancel()
		}
	}
}

// Verify Speaker implements Sink at compile time.
var _ Sink = (*Speaker)(nil)
