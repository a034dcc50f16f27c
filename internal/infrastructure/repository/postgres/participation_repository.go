package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/participation"
	qb "github.com/riskibarqy/tennis-roundrobin/internal/platform/querybuilder"
)

type ParticipationRepository struct {
	db *sqlx.DB
}

func NewParticipationRepository(db *sqlx.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

func (r *ParticipationRepository) Get(ctx context.Context) (participation.State, error) {
	query, args, err := qb.Select("team_id", "active").From("team_participation").
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participation query: %w", err)
	}

	var rows []participationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participation: %w", err)
	}

	out := make(participation.State, len(rows))
	for _, row := range rows {
		out.Set(row.TeamID, row.Active)
	}
	return out, nil
}

func (r *ParticipationRepository) SetActive(ctx context.Context, teamID int, active bool) error {
	query, args, err := qb.UpsertModel("team_participation", participationTableModel{
		TeamID: teamID,
		Active: active,
	}, "team_id").Touch("updated_at").ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert participation query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert participation team=%d: %w", teamID, err)
	}
	return nil
}

func (r *ParticipationRepository) Delete(ctx context.Context, teamID int) error {
	query, args, err := qb.DeleteFrom("team_participation").
		Where(qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete participation query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete participation team=%d: %w", teamID, err)
	}
	return nil
}
