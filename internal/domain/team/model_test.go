package team

import "testing"

func TestTeam_ValidateAndDisplayName(t *testing.T) {
	t.Parallel()

	if err := (Team{ID: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero id")
	}

	tm := Team{ID: 3, Members: []string{" Ana ", "", "Bo"}}
	if err := tm.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := tm.DisplayName(); got != "Ana / Bo" {
		t.Fatalf("unexpected display name: %q", got)
	}
	if got := (Team{ID: 8}).DisplayName(); got != "Team 8" {
		t.Fatalf("unexpected fallback name: %q", got)
	}

	clone := tm.Clone()
	clone.Members[0] = "Changed"
	if tm.Members[0] != " Ana " {
		t.Fatalf("clone shares members slice")
	}
}
