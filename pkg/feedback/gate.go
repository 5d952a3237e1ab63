package feedback

import (
	"log/slog"
	"time"
)

// SpeechRequest is what the gate forwards to the speech sink.
type SpeechRequest struct {
	Text    string
	Urgency Urgency
}

// Sink accepts speech requests. Implementations must return immediately;
// queueing or dropping overlapping requests is the sink's problem, never
// the frame loop's.
type Sink interface {
	Say(req SpeechRequest)
}

// DefaultRepeatInterval is the minimum gap before the same event is
// spoken again.
const DefaultRepeatInterval = 3 * time.Second

// Gate suppresses duplicate and rapid-fire feedback events. An event
// identical to the immediately preceding one is dropped unless the repeat
// interval has elapsed; everything else passes through.
//
// A Gate is owned by one frame loop and is not safe for concurrent use.
type Gate struct {
	sink     Sink
	interval time.Duration
	logger   *slog.Logger

	lastCategory Category
	lastMessage  string
	lastEmit     time.Time

	now func() time.Time // stubbed in tests
}

// NewGate creates a gate in front of the given sink. A zero repeatInterval
// uses DefaultRepeatInterval.
func NewGate(sink Sink, repeatInterval time.Duration, logger *slog.Logger) *Gate {
	if repeatInterval <= 0 {
		repeatInterval = DefaultRepeatInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		sink:     sink,
		interval: repeatInterval,
		logger:   logger.With("component", "feedback.gate"),
		now:      time.Now,
	}
}

// Offer passes an event through the gate. Returns true if the event was
// forwarded to the sink.
func (g *Gate) Offer(ev Event) bool {
	if ev.Message == "" {
		return false
	}

	now := g.now()
	if ev.Category == g.lastCategory && ev.Message == g.lastMessage &&
		now.Sub(g.lastEmit) < g.interval {
		g.logger.Debug("suppressed duplicate feedback", "category", ev.Category)
		return false
	}

	g.lastCategory = ev.Category
	g.lastMessage = ev.Message
	g.lastEmit = now

	g.sink.Say(SpeechRequest{Text: ev.Message, Urgency: ev.Urgency})
	return true
}

// Reset clears the duplicate-suppression state, so the next event always
// passes. Used when switching exercises.
func (g *Gate) Reset() {
	g.lastCategory = ""
	g.lastMessage = ""
	g.lastEmit = time.Time{}
}
