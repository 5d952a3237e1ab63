package web

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
)

func TestStatusEndpoint(t *testing.T) {
	s := NewServer(":0", nil)
	s.UpdateState(func(st *TrainerState) {
		st.Exercise = "bicep_curl"
		st.Reps = 4
		st.Phase = "active"
	})

	resp, err := s.app.Test(httptest.NewRequest("GET", "/api/status", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got TrainerState
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Exercise != "bicep_curl" || got.Reps != 4 || got.Phase != "active" {
		t.Errorf("state = %+v", got)
	}
}

func TestSelectExercise(t *testing.T) {
	s := NewServer(":0", nil)

	t.Run("unconfigured", func(t *testing.T) {
		resp, err := s.app.Test(httptest.NewRequest("POST", "/api/exercise/bicep_curl", nil))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != 503 {
			t.Errorf("status = %d, want 503", resp.StatusCode)
		}
	})

	var selected string
	s.OnSelectExercise = func(id string) error {
		if id == "unknown" {
			return errors.New("unknown exercise")
		}
		selected = id
		return nil
	}

	t.Run("valid", func(t *testing.T) {
		resp, err := s.app.Test(httptest.NewRequest("POST", "/api/exercise/shoulder_press", nil))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Errorf("status = %d", resp.StatusCode)
		}
		if selected != "shoulder_press" {
			t.Errorf("selected = %q", selected)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		resp, err := s.app.Test(httptest.NewRequest("POST", "/api/exercise/unknown", nil))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != 400 {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestReset(t *testing.T) {
	s := NewServer(":0", nil)
	called := false
	s.OnReset = func() { called = true }

	resp, err := s.app.Test(httptest.NewRequest("POST", "/api/reset", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if !called {
		t.Error("reset callback not invoked")
	}
}

func TestListExercises(t *testing.T) {
	s := NewServer(":0", nil)
	s.ListExercises = func() []string { return []string{"bicep_curl", "shoulder_press"} }

	resp, err := s.app.Test(httptest.NewRequest("GET", "/api/exercises", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	var ids []string
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ids = %v", ids)
	}
}
