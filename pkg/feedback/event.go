// Package feedback turns exercise transitions into spoken coaching.
//
// Policies emit Events; the Gate de-duplicates them; the Speaker hands the
// survivors to a TTS provider without ever blocking the frame loop.
package feedback

// Category classifies a feedback event.
type Category string

const (
	// CategoryRepComplete announces a counted rep.
	CategoryRepComplete Category = "rep_complete"

	// CategoryFormWarning flags incorrect form (e.g. arms out of sync).
	CategoryFormWarning Category = "form_warning"

	// CategoryOutOfOrder flags a rep on the wrong side of an
	// alternating exercise.
	CategoryOutOfOrder Category = "out_of_order"

	// CategoryCue is a coaching prompt ("push your arms up fully").
	CategoryCue Category = "cue"

	// CategoryStatus covers session announcements (welcome, reset).
	CategoryStatus Category = "status"
)

// Urgency orders events when the speaker is busy. Higher-urgency events
// are worth interrupting for; lower ones are droppable.
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyHigh
)

// Event is one piece of feedback produced by an exercise policy. Events
// are ephemeral: consumed once by the gate, never persisted.
type Event struct {
	Category Category
	Message  string
	Urgency  Urgency
}
