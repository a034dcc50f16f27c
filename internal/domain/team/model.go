package team

import (
	"fmt"
	"slices"
	"strings"
)

// Team is one doubles pairing (or single player) entered in the round robin.
type Team struct {
	ID      int
	Members []string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id must be > 0, got %d", t.ID)
	}

	return nil
}

// Clone returns a copy that does not share the members slice.
func (t Team) Clone() Team {
	t.Members = slices.Clone(t.Members)
	return t
}

// DisplayName joins member names; teams without members fall back to their id.
func (t Team) DisplayName() string {
	names := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		if name := strings.TrimSpace(m); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("Team %d", t.ID)
	}

	return strings.Join(names, " / ")
}

// CloneAll copies a roster so callers can sort or edit it freely.
func CloneAll(teams []Team) []Team {
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.Clone())
	}
	return out
}
