package postgres

import (
	"database/sql"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/matchpulse/matchpulse-api/internal/domain/match"
)

type matchTableModel struct {
	ID             int64         `db:"id"`
	ExternalID     string        `db:"external_id"`
	DataSource     string        `db:"data_source"`
	MatchDate      time.Time     `db:"match_date"`
	Status         string        `db:"status"`
	League         string        `db:"league"`
	Sport          string        `db:"sport"`
	HomeTeam       string        `db:"home_team"`
	AwayTeam       string        `db:"away_team"`
	HomeScore      sql.NullInt64 `db:"home_score"`
	AwayScore      sql.NullInt64 `db:"away_score"`
	Odds           string        `db:"odds"`
	Stats          string        `db:"stats"`
	SourcePriority int           `db:"source_priority"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

type matchInsertModel struct {
	ExternalID     string        `db:"external_id"`
	DataSource     string        `db:"data_source"`
	MatchDate      time.Time     `db:"match_date"`
	Status         string        `db:"status"`
	League         string        `db:"league"`
	Sport          string        `db:"sport"`
	HomeTeam       string        `db:"home_team"`
	AwayTeam       string        `db:"away_team"`
	HomeScore      sql.NullInt64 `db:"home_score"`
	AwayScore      sql.NullInt64 `db:"away_score"`
	Odds           string        `db:"odds"`
	Stats          string        `db:"stats"`
	SourcePriority int           `db:"source_priority"`
}

func newMatchInsertModel(rec match.Record) (matchInsertModel, error) {
	odds := rec.Odds
	if odds == nil {
		odds = []match.BookmakerOdds{}
	}
	oddsJSON, err := sonic.MarshalString(odds)
	if err != nil {
		return matchInsertModel{}, fmt.Errorf("marshal odds: %w", err)
	}

	stats := rec.Stats
	if stats == nil {
		stats = map[string]any{}
	}
	statsJSON, err := sonic.MarshalString(stats)
	if err != nil {
		return matchInsertModel{}, fmt.Errorf("marshal stats: %w", err)
	}

	return matchInsertModel{
		ExternalID:     rec.ExternalID,
		DataSource:     rec.DataSource,
		MatchDate:      rec.MatchDate,
		Status:         rec.Status,
		League:         rec.League,
		Sport:          rec.Sport,
		HomeTeam:       rec.HomeTeam,
		AwayTeam:       rec.AwayTeam,
		HomeScore:      intPtrToNullInt64(rec.HomeScore),
		AwayScore:      intPtrToNullInt64(rec.AwayScore),
		Odds:           oddsJSON,
		Stats:          statsJSON,
		SourcePriority: rec.SourcePriority,
	}, nil
}

func (m matchTableModel) toDomain() (match.Record, error) {
	var odds []match.BookmakerOdds
	if m.Odds != "" {
		if err := sonic.UnmarshalString(m.Odds, &odds); err != nil {
			return match.Record{}, fmt.Errorf("unmarshal odds for %s/%s: %w", m.ExternalID, m.DataSource, err)
		}
	}
	if odds == nil {
		odds = []match.BookmakerOdds{}
	}

	stats := map[string]any{}
	if m.Stats != "" {
		if err := sonic.UnmarshalString(m.Stats, &stats); err != nil {
			return match.Record{}, fmt.Errorf("unmarshal stats for %s/%s: %w", m.ExternalID, m.DataSource, err)
		}
	}

	return match.Record{
		ExternalID:     m.ExternalID,
		DataSource:     m.DataSource,
		MatchDate:      m.MatchDate,
		Status:         m.Status,
		League:         m.League,
		Sport:          m.Sport,
		HomeTeam:       m.HomeTeam,
		AwayTeam:       m.AwayTeam,
		HomeScore:      nullInt64ToIntPtr(m.HomeScore),
		AwayScore:      nullInt64ToIntPtr(m.AwayScore),
		Odds:           odds,
		Stats:          stats,
		SourcePriority: m.SourcePriority,
	}, nil
}

func intPtrToNullInt64(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}
