package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tennis-roundrobin/internal/domain/settings"
	qb "github.com/riskibarqy/tennis-roundrobin/internal/platform/querybuilder"
)

// settingsRowID is the id of the single tournament_settings row.
const settingsRowID = 1

type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.Settings, bool, error) {
	query, args, err := qb.Select("id", "match_point").From("tournament_settings").
		Where(qb.Eq("id", settingsRowID)).
		ToSQL()
	if err != nil {
		return settings.Settings{}, false, fmt.Errorf("build select settings query: %w", err)
	}

	var row settingsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return settings.Settings{}, false, nil
		}
		return settings.Settings{}, false, fmt.Errorf("select settings: %w", err)
	}

	return settings.Settings{MatchPoint: row.MatchPoint}, true, nil
}

func (r *SettingsRepository) Save(ctx context.Context, item settings.Settings) error {
	query, args, err := qb.UpsertModel("tournament_settings", settingsTableModel{
		ID:         settingsRowID,
		MatchPoint: item.MatchPoint,
	}, "id").Touch("updated_at").ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert settings query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
