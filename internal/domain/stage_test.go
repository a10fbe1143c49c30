package domain

import "testing"

func TestHasReachedStage(t *testing.T) {
	tests := []struct {
		current Stage
		target  Stage
		want    bool
	}{
		{StageCompleted, StageLead, true},
		{StageLead, StageOperations, false},
		{StageConfirmed, StagePricing, true},
		{StageOperations, StageConfirmed, true},
		{StagePricing, StagePricing, true},
		{StageLead, StageLead, true},
		{Stage("bogus"), StageLead, false},
		{StageLead, Stage("bogus"), false},
	}
	for _, tt := range tests {
		if got := HasReachedStage(tt.current, tt.target); got != tt.want {
			t.Errorf("HasReachedStage(%q, %q) = %v, want %v", tt.current, tt.target, got, tt.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Stage
		to   Stage
		want bool
	}{
		{StageLead, StagePricing, true},
		{StagePricing, StageConfirmed, true},
		{StageConfirmed, StageOperations, true},
		{StageOperations, StageCompleted, true},
		{StageLead, StageOperations, false},
		{StagePricing, StageLead, false},
		{StageCompleted, StageLead, false},
		{StageCompleted, StageCompleted, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestPreviousStage(t *testing.T) {
	prev, ok := PreviousStage(StageOperations)
	if !ok || prev != StageConfirmed {
		t.Fatalf("PreviousStage(operations) = %q, %v; want confirmed, true", prev, ok)
	}
	if _, ok := PreviousStage(StageLead); ok {
		t.Errorf("PreviousStage(lead) should report no predecessor")
	}
	if _, ok := PreviousStage(Stage("bogus")); ok {
		t.Errorf("PreviousStage(bogus) should report no predecessor")
	}
}

func TestValidStage(t *testing.T) {
	for _, s := range []Stage{StageLead, StagePricing, StageConfirmed, StageOperations, StageCompleted} {
		if !ValidStage(s) {
			t.Errorf("ValidStage(%q) = false, want true", s)
		}
	}
	if ValidStage(Stage("shipped")) {
		t.Errorf("ValidStage(shipped) = true, want false")
	}
}
