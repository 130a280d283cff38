package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/matchpulse/matchpulse-api/internal/domain/prediction"
	qb "github.com/matchpulse/matchpulse-api/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Create(ctx context.Context, p prediction.Prediction) error {
	query, args, err := qb.InsertModel("predictions", newPredictionInsertModel(p), "")
	if err != nil {
		return fmt.Errorf("build insert prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("prediction %s already exists: %w", p.ID, err)
		}
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) Update(ctx context.Context, p prediction.Prediction) error {
	query, args, err := qb.Update("predictions").
		Set("match_title", p.MatchTitle).
		Set("league", p.League).
		Set("match_date", p.MatchDate).
		Set("prediction", p.Pick).
		Set("odds", p.Odds).
		Set("confidence", p.Confidence).
		Set("is_premium", p.IsPremium).
		Set("result", p.Result).
		Set("archived", p.Archived).
		Set("updated_at", p.UpdatedAt).
		Where(qb.Eq("public_id", p.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update prediction %s: %w", p.ID, err)
	}
	return nil
}

func (r *PredictionRepository) GetByID(ctx context.Context, predictionID string) (prediction.Prediction, bool, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(qb.Eq("public_id", predictionID)).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build get prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("get prediction %s: %w", predictionID, err)
	}
	return row.toDomain(), true, nil
}

func (r *PredictionRepository) List(ctx context.Context, filter prediction.Filter) ([]prediction.Prediction, error) {
	conditions := make([]qb.Condition, 0, 3)
	if !filter.IncludeArchived {
		conditions = append(conditions, qb.Eq("archived", false))
	}
	if filter.League != "" {
		conditions = append(conditions, qb.Eq("league", filter.League))
	}
	if filter.PremiumOnly {
		conditions = append(conditions, qb.Eq("is_premium", true))
	}

	builder := qb.Select("*").From("predictions").
		Where(conditions...).
		OrderBy("match_date", "id")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select predictions query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PredictionRepository) Archive(ctx context.Context, predictionID string) error {
	query, args, err := qb.Update("predictions").
		Set("archived", true).
		Where(qb.Eq("public_id", predictionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build archive prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("archive prediction %s: %w", predictionID, err)
	}
	return nil
}
