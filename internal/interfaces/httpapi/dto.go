package httpapi

import (
	"time"

	"github.com/matchpulse/matchpulse-api/internal/domain/match"
	"github.com/matchpulse/matchpulse-api/internal/domain/prediction"
)

type matchDTO struct {
	ExternalID     string                `json:"external_id"`
	DataSource     string                `json:"data_source"`
	MatchDate      time.Time             `json:"match_date"`
	Status         string                `json:"status"`
	League         string                `json:"league"`
	Sport          string                `json:"sport"`
	HomeTeam       string                `json:"home_team"`
	AwayTeam       string                `json:"away_team"`
	HomeScore      *int                  `json:"home_score"`
	AwayScore      *int                  `json:"away_score"`
	Odds           []match.BookmakerOdds `json:"odds"`
	Stats          map[string]any        `json:"stats"`
	SourcePriority int                   `json:"source_priority"`
}

func matchToDTO(rec match.Record) matchDTO {
	odds := rec.Odds
	if odds == nil {
		odds = []match.BookmakerOdds{}
	}
	stats := rec.Stats
	if stats == nil {
		stats = map[string]any{}
	}
	return matchDTO{
		ExternalID:     rec.ExternalID,
		DataSource:     rec.DataSource,
		MatchDate:      rec.MatchDate,
		Status:         rec.Status,
		League:         rec.League,
		Sport:          rec.Sport,
		HomeTeam:       rec.HomeTeam,
		AwayTeam:       rec.AwayTeam,
		HomeScore:      rec.HomeScore,
		AwayScore:      rec.AwayScore,
		Odds:           odds,
		Stats:          stats,
		SourcePriority: rec.SourcePriority,
	}
}

type predictionDTO struct {
	ID         string    `json:"id"`
	MatchTitle string    `json:"match_title"`
	League     string    `json:"league"`
	MatchDate  time.Time `json:"match_date"`
	Prediction string    `json:"prediction"`
	Odds       float64   `json:"odds"`
	Confidence int       `json:"confidence"`
	IsPremium  bool      `json:"is_premium"`
	Result     string    `json:"result"`
	Archived   bool      `json:"archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func predictionToDTO(p prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:         p.ID,
		MatchTitle: p.MatchTitle,
		League:     p.League,
		MatchDate:  p.MatchDate,
		Prediction: p.Pick,
		Odds:       p.Odds,
		Confidence: p.Confidence,
		IsPremium:  p.IsPremium,
		Result:     p.Result,
		Archived:   p.Archived,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

type upsertPredictionRequest struct {
	MatchTitle string    `json:"match_title" validate:"required,max=200"`
	League     string    `json:"league" validate:"max=100"`
	MatchDate  time.Time `json:"match_date" validate:"required"`
	Prediction string    `json:"prediction" validate:"required,max=200"`
	Odds       float64   `json:"odds" validate:"required,gte=1.01"`
	Confidence int       `json:"confidence" validate:"gte=0,lte=100"`
	IsPremium  bool      `json:"is_premium"`
	Result     string    `json:"result" validate:"omitempty,oneof=pending won lost void"`
}

func (req upsertPredictionRequest) toDomain() prediction.Prediction {
	return prediction.Prediction{
		MatchTitle: req.MatchTitle,
		League:     req.League,
		MatchDate:  req.MatchDate,
		Pick:       req.Prediction,
		Odds:       req.Odds,
		Confidence: req.Confidence,
		IsPremium:  req.IsPremium,
		Result:     req.Result,
	}
}
