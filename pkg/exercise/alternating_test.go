package exercise

import (
	"testing"

	"github.com/formcoach/formcoach/pkg/feedback"
)

// performRep drives one side of an alternating curl through a complete
// curl-and-return cycle while the other arm stays extended at rest.
func performRep(t *testing.T, p Policy, side Side) []Status {
	t.Helper()
	var out []Status
	for _, a := range []float64{170, 40, 170} {
		left, right := 170.0, 170.0
		if side == SideLeft {
			left = a
		} else {
			right = a
		}
		out = append(out, p.Update(armFrame(left, right, 1.0)))
	}
	return out
}

func lastEvent(statuses []Status) *feedback.Event {
	for i := len(statuses) - 1; i >= 0; i-- {
		if statuses[i].Event != nil {
			return statuses[i].Event
		}
	}
	return nil
}

func TestAlternating_StartsExpectingLeft(t *testing.T) {
	p, err := NewDefault(AlternatingBicepCurl)
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	st := p.Update(armFrame(170, 170, 1.0))
	if st.NextSide != SideLeft {
		t.Errorf("expected LEFT first, got %v", st.NextSide)
	}
	if !st.Alternating {
		t.Error("expected alternating status")
	}
}

func TestAlternating_CorrectOrderCounts(t *testing.T) {
	p, _ := NewDefault(AlternatingBicepCurl)

	sts := performRep(t, p, SideLeft)
	if ev := lastEvent(sts); ev == nil || ev.Category != feedback.CategoryRepComplete {
		t.Errorf("expected rep-complete event, got %+v", ev)
	}

	sts = performRep(t, p, SideRight)
	final := sts[len(sts)-1]
	if final.Reps != 2 {
		t.Errorf("got %d total reps, want 2", final.Reps)
	}
	if final.SideReps != [2]int{1, 1} {
		t.Errorf("got side reps %v, want [1 1]", final.SideReps)
	}
	if final.NextSide != SideLeft {
		t.Errorf("expected token back to LEFT, got %v", final.NextSide)
	}
	if final.Missed != 0 {
		t.Errorf("got %d missed, want 0", final.Missed)
	}
}

func TestAlternating_WrongSideIsMissedNotCounted(t *testing.T) {
	// LEFT rep, LEFT rep, RIGHT rep: the second LEFT is out of order.
	p, _ := NewDefault(AlternatingBicepCurl)

	performRep(t, p, SideLeft)
	sts := performRep(t, p, SideLeft)
	if ev := lastEvent(sts); ev == nil || ev.Category != feedback.CategoryOutOfOrder {
		t.Errorf("expected out-of-order event, got %+v", ev)
	}

	sts = performRep(t, p, SideRight)
	final := sts[len(sts)-1]

	if final.Reps != 2 {
		t.Errorf("got %d total reps, want 2 (1 missed excluded)", final.Reps)
	}
	if final.Missed != 1 {
		t.Errorf("got %d missed, want 1", final.Missed)
	}
	// The left arm completed two motions but only one was in order;
	// the side tally reflects counted reps, not motions.
	if final.SideReps != [2]int{1, 1} {
		t.Errorf("got side reps %v, want [1 1]", final.SideReps)
	}
	if final.NextSide != SideLeft {
		t.Errorf("expected token at LEFT after counted RIGHT rep, got %v", final.NextSide)
	}
}

func TestAlternating_TokenHoldsAfterMismatch(t *testing.T) {
	// The token must not advance on a wrong-side rep, so a single wrong
	// motion cannot deadlock the sequence.
	p, _ := NewDefault(AlternatingBicepCurl)

	performRep(t, p, SideRight) // wrong: LEFT expected
	st := p.Update(armFrame(170, 170, 1.0))
	if st.NextSide != SideLeft {
		t.Errorf("token advanced on mismatch: %v", st.NextSide)
	}
	if st.Reps != 0 {
		t.Errorf("mismatch counted %d reps", st.Reps)
	}

	// The correct side still counts immediately afterwards.
	sts := performRep(t, p, SideLeft)
	if final := sts[len(sts)-1]; final.Reps != 1 {
		t.Errorf("got %d reps after recovery, want 1", final.Reps)
	}
}

func TestAlternating_MixedOrderSequence(t *testing.T) {
	// LEFT-rep, LEFT-rep, RIGHT-rep => 2 counted + 1 missed.
	p, _ := NewDefault(AlternatingBicepCurl)

	performRep(t, p, SideLeft)         // counted, token -> RIGHT
	performRep(t, p, SideLeft)         // missed, token stays RIGHT
	sts := performRep(t, p, SideRight) // counted, token -> LEFT

	final := sts[len(sts)-1]
	if final.Reps != 2 || final.Missed != 1 {
		t.Fatalf("got %d counted %d missed, want 2 and 1", final.Reps, final.Missed)
	}
}

func TestAlternating_Reset(t *testing.T) {
	p, _ := NewDefault(TricepKickback)

	// Kickback: rest bent (30), active extended (150+).
	for _, a := range []float64{25, 160, 25} {
		p.Update(armFrame(a, 25, 1.0))
	}

	p.Reset()
	st := p.Update(armFrame(25, 25, 1.0))
	if st.Reps != 0 || st.Missed != 0 {
		t.Errorf("reset left reps=%d missed=%d", st.Reps, st.Missed)
	}
	if st.NextSide != SideLeft {
		t.Errorf("reset left token at %v", st.NextSide)
	}
	if st.Phase != PhaseRest {
		t.Errorf("reset left phase %v", st.Phase)
	}
}

func TestTricepKickback_CountsExtensionReps(t *testing.T) {
	p, _ := NewDefault(TricepKickback)

	// Left arm: bent -> extended -> bent; right stays bent at rest.
	var final Status
	for _, a := range []float64{25, 90, 160, 90, 20} {
		final = p.Update(armFrame(a, 25, 1.0))
	}
	if final.Reps != 1 {
		t.Errorf("got %d reps, want 1", final.Reps)
	}
	if final.NextSide != SideRight {
		t.Errorf("expected RIGHT next, got %v", final.NextSide)
	}
}
