package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/matchpulse/matchpulse-api/internal/domain/match"
	qb "github.com/matchpulse/matchpulse-api/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Upsert writes one record, replacing the existing row for the same
// (external_id, data_source) pair. Reruns with identical input are no-ops
// beyond touching updated_at.
func (r *MatchRepository) Upsert(ctx context.Context, rec match.Record) error {
	insertModel, err := newMatchInsertModel(rec)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("matches", insertModel, `ON CONFLICT (external_id, data_source)
DO UPDATE SET
    match_date = EXCLUDED.match_date,
    status = EXCLUDED.status,
    league = EXCLUDED.league,
    sport = EXCLUDED.sport,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    odds = EXCLUDED.odds,
    stats = EXCLUDED.stats,
    source_priority = EXCLUDED.source_priority,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match %s/%s: %w", rec.ExternalID, rec.DataSource, err)
	}
	return nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Record, error) {
	conditions := make([]qb.Condition, 0, 3)
	if filter.Sport != "" {
		conditions = append(conditions, qb.Eq("sport", filter.Sport))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", filter.Status))
	}
	if filter.League != "" {
		conditions = append(conditions, qb.Eq("league", filter.League))
	}

	builder := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("match_date", "id")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
