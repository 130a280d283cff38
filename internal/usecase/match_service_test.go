package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchpulse/matchpulse-api/internal/domain/match"
	"github.com/matchpulse/matchpulse-api/internal/infrastructure/repository/memory"
	"github.com/matchpulse/matchpulse-api/internal/platform/cache"
	"github.com/matchpulse/matchpulse-api/internal/platform/logging"
)

func seedRecords() []match.Record {
	base := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	return []match.Record{
		{ExternalID: "a", DataSource: "odds-api", MatchDate: base, Status: match.StatusUpcoming, League: "Premier League", Sport: "football", HomeTeam: "Arsenal", AwayTeam: "Chelsea"},
		{ExternalID: "b", DataSource: "odds-api", MatchDate: base.Add(time.Hour), Status: match.StatusLive, League: "La Liga", Sport: "football", HomeTeam: "Barcelona", AwayTeam: "Sevilla"},
		{ExternalID: "c", DataSource: "odds-api", MatchDate: base.Add(2 * time.Hour), Status: match.StatusUpcoming, League: "NBA", Sport: "basketball", HomeTeam: "Celtics", AwayTeam: "Nuggets"},
	}
}

func TestMatchListFilters(t *testing.T) {
	t.Parallel()

	svc := NewMatchService(memory.NewMatchRepository(seedRecords()), nil, logging.NewNop())

	bySport, err := svc.List(context.Background(), match.Filter{Sport: "Football"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(bySport) != 2 {
		t.Fatalf("expected 2 football matches, got %d", len(bySport))
	}

	byStatus, err := svc.List(context.Background(), match.Filter{Status: "live"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ExternalID != "b" {
		t.Fatalf("unexpected live matches: %+v", byStatus)
	}

	limited, err := svc.List(context.Background(), match.Filter{Limit: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(limited) != 1 || limited[0].ExternalID != "a" {
		t.Fatalf("expected the earliest match only, got %+v", limited)
	}
}

func TestMatchListRejectsBadFilter(t *testing.T) {
	t.Parallel()

	svc := NewMatchService(memory.NewMatchRepository(nil), nil, logging.NewNop())

	if _, err := svc.List(context.Background(), match.Filter{Sport: "handball"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown sport, got %v", err)
	}
	if _, err := svc.List(context.Background(), match.Filter{Status: "postponed"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
	if _, err := svc.List(context.Background(), match.Filter{Limit: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative limit, got %v", err)
	}
}

func TestMatchListUsesCacheUntilInvalidated(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository(seedRecords())
	store := cache.NewStore(time.Minute)
	svc := NewMatchService(repo, store, logging.NewNop())

	first, err := svc.List(context.Background(), match.Filter{Sport: "football"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	extra := match.Record{ExternalID: "d", DataSource: "odds-api", MatchDate: time.Now(), Status: match.StatusUpcoming, League: "Serie A", Sport: "football", HomeTeam: "Inter", AwayTeam: "Milan"}
	if err := repo.Upsert(context.Background(), extra); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	cached, err := svc.List(context.Background(), match.Filter{Sport: "football"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cached) != len(first) {
		t.Fatalf("cached listing should not see the new row yet, got %d", len(cached))
	}

	svc.InvalidateListings(context.Background())

	fresh, err := svc.List(context.Background(), match.Filter{Sport: "football"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(fresh) != len(first)+1 {
		t.Fatalf("expected the new row after invalidation, got %d", len(fresh))
	}
}
