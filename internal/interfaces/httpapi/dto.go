package httpapi

import (
	"slices"

	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/participation"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/standings"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
	"github.com/riskibarqy/tennis-roundrobin/internal/usecase"
)

type saveTeamRequest struct {
	Members []string `json:"members" validate:"max=4,dive,max=100"`
}

type setParticipationRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// Scores are pointers so an omitted score is rejected while 0 stays valid.
type submitMatchRequest struct {
	ScoreA *int `json:"score_a" validate:"required"`
	ScoreB *int `json:"score_b" validate:"required"`
}

type importMatchItemRequest struct {
	TeamA  int  `json:"team_a" validate:"required,gt=0"`
	TeamB  int  `json:"team_b" validate:"required,gt=0"`
	ScoreA *int `json:"score_a" validate:"required"`
	ScoreB *int `json:"score_b" validate:"required"`
}

type importMatchesRequest struct {
	Results []importMatchItemRequest `json:"results" validate:"required,min=1,max=500,dive"`
}

type updateSettingsRequest struct {
	MatchPoint int `json:"match_point" validate:"required,min=1,max=99"`
}

type teamDTO struct {
	ID          int      `json:"id"`
	Members     []string `json:"members"`
	DisplayName string   `json:"display_name"`
	Active      bool     `json:"active"`
}

type participationEntryDTO struct {
	TeamID int  `json:"team_id"`
	Active bool `json:"active"`
}

type matchDTO struct {
	TeamA        int    `json:"team_a"`
	TeamB        int    `json:"team_b"`
	ScoreA       *int   `json:"score_a"`
	ScoreB       *int   `json:"score_b"`
	WinnerTeamID *int   `json:"winner_team_id"`
	Status       string `json:"status"`
}

type statsDTO struct {
	Played        int     `json:"played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Draws         int     `json:"draws"`
	PointsFor     int     `json:"points_for"`
	PointsAgainst int     `json:"points_against"`
	PointDiff     int     `json:"point_diff"`
	WinRate       float64 `json:"win_rate"`
}

type standingRowDTO struct {
	Position    int      `json:"position"`
	TeamID      int      `json:"team_id"`
	Members     []string `json:"members"`
	DisplayName string   `json:"display_name"`
	Stats       statsDTO `json:"stats"`
}

type importFailureDTO struct {
	Index  int    `json:"index"`
	TeamA  int    `json:"team_a"`
	TeamB  int    `json:"team_b"`
	Reason string `json:"reason"`
}

type importReportDTO struct {
	Imported int                `json:"imported"`
	Failures []importFailureDTO `json:"failures"`
}

type gridCellDTO struct {
	TeamID       int  `json:"team_id"`
	OpponentID   int  `json:"opponent_id"`
	Self         bool `json:"self"`
	Inactive     bool `json:"inactive"`
	Played       bool `json:"played"`
	ScoreFor     *int `json:"score_for"`
	ScoreAgainst *int `json:"score_against"`
	WinnerTeamID *int `json:"winner_team_id"`
}

type gridDTO struct {
	Teams []teamDTO       `json:"teams"`
	Rows  [][]gridCellDTO `json:"rows"`
}

type settingsDTO struct {
	MatchPoint int `json:"match_point"`
}

type exportBundleDTO struct {
	StandingsCSV string `json:"standings_csv"`
	MatchesCSV   string `json:"matches_csv"`
}

func teamToDTO(t team.Team, state participation.State) teamDTO {
	return teamDTO{
		ID:          t.ID,
		Members:     membersOrEmpty(t.Members),
		DisplayName: t.DisplayName(),
		Active:      participation.IsActive(t.ID, state),
	}
}

// participationToDTO lists explicit entries only, ordered by team id.
func participationToDTO(state participation.State) []participationEntryDTO {
	ids := make([]int, 0, len(state))
	for id := range state {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]participationEntryDTO, 0, len(ids))
	for _, id := range ids {
		out = append(out, participationEntryDTO{TeamID: id, Active: state[id].Active})
	}
	return out
}

func matchToDTO(res match.Result) matchDTO {
	return matchDTO{
		TeamA:        res.TeamA,
		TeamB:        res.TeamB,
		ScoreA:       res.ScoreA,
		ScoreB:       res.ScoreB,
		WinnerTeamID: res.Winner,
		Status:       usecase.ResultStatus(res),
	}
}

func statsToDTO(s standings.Stats) statsDTO {
	return statsDTO{
		Played:        s.Played(),
		Wins:          s.Wins,
		Losses:        s.Losses,
		Draws:         s.Draws,
		PointsFor:     s.PointsFor,
		PointsAgainst: s.PointsAgainst,
		PointDiff:     s.PointDiff,
		WinRate:       s.WinRate,
	}
}

func standingRowToDTO(row standings.Row) standingRowDTO {
	return standingRowDTO{
		Position:    row.Position,
		TeamID:      row.Team.ID,
		Members:     membersOrEmpty(row.Team.Members),
		DisplayName: row.Team.DisplayName(),
		Stats:       statsToDTO(row.Stats),
	}
}

func importReportToDTO(report usecase.ImportReport) importReportDTO {
	failures := make([]importFailureDTO, 0, len(report.Failures))
	for _, f := range report.Failures {
		failures = append(failures, importFailureDTO{
			Index:  f.Index,
			TeamA:  f.TeamA,
			TeamB:  f.TeamB,
			Reason: f.Reason,
		})
	}

	return importReportDTO{Imported: report.Imported, Failures: failures}
}

func gridToDTO(grid usecase.Grid) gridDTO {
	teams := make([]teamDTO, 0, len(grid.Teams))
	for _, gt := range grid.Teams {
		teams = append(teams, teamDTO{
			ID:          gt.Team.ID,
			Members:     membersOrEmpty(gt.Team.Members),
			DisplayName: gt.Team.DisplayName(),
			Active:      gt.Active,
		})
	}

	rows := make([][]gridCellDTO, 0, len(grid.Rows))
	for _, row := range grid.Rows {
		cells := make([]gridCellDTO, 0, len(row))
		for _, cell := range row {
			cells = append(cells, gridCellDTO{
				TeamID:       cell.RowTeamID,
				OpponentID:   cell.ColumnTeamID,
				Self:         cell.Self,
				Inactive:     cell.Inactive,
				Played:       cell.Played,
				ScoreFor:     cell.ScoreFor,
				ScoreAgainst: cell.ScoreAgainst,
				WinnerTeamID: cell.WinnerID,
			})
		}
		rows = append(rows, cells)
	}

	return gridDTO{Teams: teams, Rows: rows}
}

func membersOrEmpty(members []string) []string {
	if members == nil {
		return []string{}
	}
	return members
}
