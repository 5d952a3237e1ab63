package feedback

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/formcoach/formcoach/pkg/tts"
)

func TestSpeaker_SayNeverBlocks(t *testing.T) {
	// A provider that blocks until released.
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(1)
	var startOnce sync.Once

	mock := tts.NewMock()
	mock.SpeakFunc = func(ctx context.Context, text string) error {
		startOnce.Do(started.Done)
		select {
		case <-release:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s := NewSpeaker(mock, nil)
	defer s.Close()

	s.Say(SpeechRequest{Text: "one"})
	started.Wait()

	// The queue holds one pending request; subsequent requests while the
	// worker is busy must return immediately and be dropped.
	s.Say(SpeechRequest{Text: "two"})

	done := make(chan struct{})
	go func() {
		s.Say(SpeechRequest{Text: "three"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Say blocked while speaker was busy")
	}

	if s.Dropped() == 0 {
		t.Error("expected at least one dropped request")
	}
	close(release)
}

func TestSpeaker_SpeaksQueuedRequests(t *testing.T) {
	mock := tts.NewMock()
	s := NewSpeaker(mock, nil)
	defer s.Close()

	s.Say(SpeechRequest{Text: "Welcome to FormCoach"})

	deadline := time.Now().Add(time.Second)
	for mock.CallCount("Speak") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("speech was never delivered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	spoken := mock.Spoken()
	if spoken[0] != "Welcome to FormCoach" {
		t.Errorf("unexpected text: %q", spoken[0])
	}
}

func TestSpeaker_CloseIsIdempotent(t *testing.T) {
	s := NewSpeaker(tts.NewMock(), nil)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
