package memory

import "github.com/riskibarqy/tennis-roundrobin/internal/domain/team"

// SeedTeams is a small demo roster for local runs.
func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 1, Members: []string{"Alya", "Bima"}},
		{ID: 2, Members: []string{"Citra", "Dimas"}},
		{ID: 3, Members: []string{"Eka", "Fajar"}},
		{ID: 4, Members: []string{"Gita", "Hadi"}},
	}
}
