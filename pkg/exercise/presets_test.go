package exercise

import "testing"

func TestIDs_CoverAllExercises(t *testing.T) {
	want := []string{
		AlternatingBicepCurl,
		BicepCurl,
		ShoulderPress,
		TricepKickback,
	}
	got := IDs()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewDefault_BuildsEveryExercise(t *testing.T) {
	for _, id := range IDs() {
		t.Run(id, func(t *testing.T) {
			p, err := NewDefault(id)
			if err != nil {
				t.Fatalf("NewDefault(%q): %v", id, err)
			}
			if p.ID() != id {
				t.Errorf("policy id %q, want %q", p.ID(), id)
			}
			if len(p.RequiredJoints()) == 0 {
				t.Error("expected required joints")
			}
		})
	}
}

func TestNew_UnknownExercise(t *testing.T) {
	if _, err := NewDefault("deadlift"); err == nil {
		t.Error("expected error for unknown exercise")
	}
}

func TestDefaultThresholds_AllValid(t *testing.T) {
	for _, id := range IDs() {
		thr, err := DefaultThresholds(id)
		if err != nil {
			t.Fatalf("DefaultThresholds(%q): %v", id, err)
		}
		if err := thr.Validate(); err != nil {
			t.Errorf("%s: invalid defaults: %v", id, err)
		}
	}
}
