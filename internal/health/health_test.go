package health

import (
	"errors"
	"testing"
)

func TestStateStartsHealthy(t *testing.T) {
	s := NewState(3)
	if s.Degraded() {
		t.Error("New state should not be degraded")
	}
}

func TestStateDegradesAtThreshold(t *testing.T) {
	s := NewState(3)
	err := errors.New("connection refused")

	s.RecordFailure(err)
	s.RecordFailure(err)
	if s.Degraded() {
		t.Error("Should not degrade before threshold")
	}

	s.RecordFailure(err)
	if !s.Degraded() {
		t.Error("Should degrade at threshold")
	}

	report := s.Snapshot()
	if report.Failures != 3 {
		t.Errorf("Expected 3 failures, got %d", report.Failures)
	}
	if report.LastError != "connection refused" {
		t.Errorf("Unexpected last error: %s", report.LastError)
	}
}

func TestStateResetsOnSuccess(t *testing.T) {
	s := NewState(1)
	s.RecordFailure(errors.New("down"))
	if !s.Degraded() {
		t.Fatal("Expected degraded state")
	}

	s.RecordSuccess()
	if s.Degraded() {
		t.Error("Success should clear degraded state")
	}
	if s.Snapshot().Failures != 0 {
		t.Error("Success should reset the failure counter")
	}
}

func TestStateDefaultThreshold(t *testing.T) {
	s := NewState(0)
	for i := 0; i < DefaultFailureThreshold-1; i++ {
		s.RecordFailure(nil)
	}
	if s.Degraded() {
		t.Error("Should not degrade before default threshold")
	}
	s.RecordFailure(nil)
	if !s.Degraded() {
		t.Error("Should degrade at default threshold")
	}
}
