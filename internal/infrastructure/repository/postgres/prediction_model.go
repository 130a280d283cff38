package postgres

import (
	"time"

	"github.com/matchpulse/matchpulse-api/internal/domain/prediction"
)

type predictionTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	MatchTitle string    `db:"match_title"`
	League     string    `db:"league"`
	MatchDate  time.Time `db:"match_date"`
	Pick       string    `db:"prediction"`
	Odds       float64   `db:"odds"`
	Confidence int       `db:"confidence"`
	IsPremium  bool      `db:"is_premium"`
	Result     string    `db:"result"`
	Archived   bool      `db:"archived"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type predictionInsertModel struct {
	PublicID   string    `db:"public_id"`
	MatchTitle string    `db:"match_title"`
	League     string    `db:"league"`
	MatchDate  time.Time `db:"match_date"`
	Pick       string    `db:"prediction"`
	Odds       float64   `db:"odds"`
	Confidence int       `db:"confidence"`
	IsPremium  bool      `db:"is_premium"`
	Result     string    `db:"result"`
	Archived   bool      `db:"archived"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func newPredictionInsertModel(p prediction.Prediction) predictionInsertModel {
	return predictionInsertModel{
		PublicID:   p.ID,
		MatchTitle: p.MatchTitle,
		League:     p.League,
		MatchDate:  p.MatchDate,
		Pick:       p.Pick,
		Odds:       p.Odds,
		Confidence: p.Confidence,
		IsPremium:  p.IsPremium,
		Result:     p.Result,
		Archived:   p.Archived,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (m predictionTableModel) toDomain() prediction.Prediction {
	return prediction.Prediction{
		ID:         m.PublicID,
		MatchTitle: m.MatchTitle,
		League:     m.League,
		MatchDate:  m.MatchDate,
		Pick:       m.Pick,
		Odds:       m.Odds,
		Confidence: m.Confidence,
		IsPremium:  m.IsPremium,
		Result:     m.Result,
		Archived:   m.Archived,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
