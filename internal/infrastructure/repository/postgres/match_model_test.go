package postgres

import (
	"testing"
	"time"

	"github.com/matchpulse/matchpulse-api/internal/domain/match"
)

func TestNewMatchInsertModelDefaultsEmptyDocuments(t *testing.T) {
	t.Parallel()

	rec := match.Record{
		ExternalID: "ev-1",
		DataSource: "odds-api",
		MatchDate:  time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
		Status:     match.StatusUpcoming,
		HomeTeam:   "Arsenal",
		AwayTeam:   "Chelsea",
	}

	model, err := newMatchInsertModel(rec)
	if err != nil {
		t.Fatalf("newMatchInsertModel: %v", err)
	}
	if model.Odds != "[]" {
		t.Fatalf("nil odds should serialize as an empty array, got %s", model.Odds)
	}
	if model.Stats != "{}" {
		t.Fatalf("nil stats should serialize as an empty object, got %s", model.Stats)
	}
	if model.HomeScore.Valid || model.AwayScore.Valid {
		t.Fatalf("unset scores must stay null: %+v", model)
	}
}

func TestMatchTableModelToDomain(t *testing.T) {
	t.Parallel()

	row := matchTableModel{
		ExternalID:     "ev-1",
		DataSource:     "odds-api",
		MatchDate:      time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
		Status:         match.StatusLive,
		League:         "Premier League",
		Sport:          "football",
		HomeTeam:       "Arsenal",
		AwayTeam:       "Chelsea",
		Odds:           `[{"bookmaker":"Pinnacle","last_update":"2026-08-30T12:00:00Z","markets":[{"key":"h2h","outcomes":[{"name":"Arsenal","price":1.95}]}]}]`,
		Stats:          `{"possession_home":61}`,
		SourcePriority: 1,
	}

	rec, err := row.toDomain()
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}
	if len(rec.Odds) != 1 || rec.Odds[0].Bookmaker != "Pinnacle" {
		t.Fatalf("unexpected odds: %+v", rec.Odds)
	}
	if len(rec.Odds[0].Markets) != 1 || rec.Odds[0].Markets[0].Outcomes[0].Price != 1.95 {
		t.Fatalf("unexpected market decoding: %+v", rec.Odds[0].Markets)
	}
	if rec.Stats["possession_home"] == nil {
		t.Fatalf("stats should survive decoding, got %v", rec.Stats)
	}
	if rec.HomeScore != nil {
		t.Fatal("null score must decode as nil pointer")
	}
}
