package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type teamTableModel struct {
	ID        int            `db:"id"`
	Members   pq.StringArray `db:"members"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type teamInsertModel struct {
	ID      int            `db:"id"`
	Members pq.StringArray `db:"members"`
}

type matchResultTableModel struct {
	TeamAID      int           `db:"team_a_id"`
	TeamBID      int           `db:"team_b_id"`
	ScoreA       sql.NullInt64 `db:"score_a"`
	ScoreB       sql.NullInt64 `db:"score_b"`
	WinnerTeamID sql.NullInt64 `db:"winner_team_id"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

type matchResultInsertModel struct {
	TeamAID      int           `db:"team_a_id"`
	TeamBID      int           `db:"team_b_id"`
	ScoreA       sql.NullInt64 `db:"score_a"`
	ScoreB       sql.NullInt64 `db:"score_b"`
	WinnerTeamID sql.NullInt64 `db:"winner_team_id"`
}

type participationTableModel struct {
	TeamID int  `db:"team_id"`
	Active bool `db:"active"`
}

type settingsTableModel struct {
	ID         int `db:"id"`
	MatchPoint int `db:"match_point"`
}
