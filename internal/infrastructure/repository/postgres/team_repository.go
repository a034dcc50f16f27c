package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/team"
	qb "github.com/riskibarqy/tennis-roundrobin/internal/platform/querybuilder"
)

const teamColumns = "id, members, created_at, updated_at"

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns).From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns).From("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by id: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	members := item.Members
	if members == nil {
		members = []string{}
	}

	query, args, err := qb.UpsertModel("teams", teamInsertModel{
		ID:      item.ID,
		Members: pq.StringArray(members),
	}, "id").Touch("updated_at").ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team id=%d: %w", item.ID, err)
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID int) error {
	query, args, err := qb.DeleteFrom("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete team id=%d: %w", teamID, err)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	members := []string(row.Members)
	if len(members) == 0 {
		members = nil
	}
	return team.Team{ID: row.ID, Members: members}
}
