package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/match"
	qb "github.com/riskibarqy/tennis-roundrobin/internal/platform/querybuilder"
)

const matchResultColumns = "team_a_id, team_b_id, score_a, score_b, winner_team_id, updated_at"

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) (match.Results, error) {
	query, args, err := qb.Select(matchResultColumns).From("match_results").
		OrderBy("team_a_id", "team_b_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match results query: %w", err)
	}

	var rows []matchResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match results: %w", err)
	}

	out := make(match.Results, len(rows))
	for _, row := range rows {
		res, err := matchResultFromRow(row)
		if err != nil {
			return nil, err
		}
		out[res.Key()] = res
	}

	return out, nil
}

func (r *MatchRepository) Get(ctx context.Context, key match.PairKey) (match.Result, bool, error) {
	query, args, err := qb.Select(matchResultColumns).From("match_results").
		Where(
			qb.Eq("team_a_id", key.Low),
			qb.Eq("team_b_id", key.High),
		).
		ToSQL()
	if err != nil {
		return match.Result{}, false, fmt.Errorf("build select match result query: %w", err)
	}

	var row matchResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Result{}, false, nil
		}
		return match.Result{}, false, fmt.Errorf("select match result %s: %w", key, err)
	}

	res, err := matchResultFromRow(row)
	if err != nil {
		return match.Result{}, false, err
	}
	return res, true, nil
}

func (r *MatchRepository) Upsert(ctx context.Context, item match.Result) error {
	item = item.Canonical()
	query, args, err := qb.UpsertModel("match_results", matchResultInsertModel{
		TeamAID:      item.TeamA,
		TeamBID:      item.TeamB,
		ScoreA:       intPtrToNullInt64(item.ScoreA),
		ScoreB:       intPtrToNullInt64(item.ScoreB),
		WinnerTeamID: intPtrToNullInt64(item.Winner),
	}, "team_a_id", "team_b_id").Touch("updated_at").ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert match result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match result %s: %w", item.Key(), err)
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, key match.PairKey) error {
	query, args, err := qb.DeleteFrom("match_results").
		Where(
			qb.Eq("team_a_id", key.Low),
			qb.Eq("team_b_id", key.High),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match result %s: %w", key, err)
	}
	return nil
}

func (r *MatchRepository) DeleteByTeam(ctx context.Context, teamID int) error {
	query, args, err := qb.DeleteFrom("match_results").
		Where(qb.Or(
			qb.Eq("team_a_id", teamID),
			qb.Eq("team_b_id", teamID),
		)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match results by team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match results of team=%d: %w", teamID, err)
	}
	return nil
}

func matchResultFromRow(row matchResultTableModel) (match.Result, error) {
	res, err := match.NewResult(
		row.TeamAID,
		row.TeamBID,
		nullInt64ToIntPtr(row.ScoreA),
		nullInt64ToIntPtr(row.ScoreB),
		nullInt64ToIntPtr(row.WinnerTeamID),
	)
	if err != nil {
		return match.Result{}, fmt.Errorf("decode match result %d-%d: %w", row.TeamAID, row.TeamBID, err)
	}
	return res.Canonical(), nil
}
