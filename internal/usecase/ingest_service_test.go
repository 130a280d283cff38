package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/matchpulse/matchpulse-api/external/oddsapi"
	"github.com/matchpulse/matchpulse-api/internal/infrastructure/repository/memory"
	"github.com/matchpulse/matchpulse-api/internal/platform/logging"
)

func ptrFloat(v float64) *float64 { return &v }

type stubOddsFetcher struct {
	events map[string][]oddsapi.Event
	raw    map[string][]byte
	errs   map[string]error
	calls  []string
}

func (s *stubOddsFetcher) FetchLeagueOdds(_ context.Context, leagueCode string) ([]oddsapi.Event, []byte, error) {
	s.calls = append(s.calls, leagueCode)
	if err := s.errs[leagueCode]; err != nil {
		return nil, nil, err
	}
	return s.events[leagueCode], s.raw[leagueCode], nil
}

func providerEvent(id, home, away string, commence time.Time) oddsapi.Event {
	return oddsapi.Event{
		ID:           id,
		CommenceTime: commence,
		HomeTeam:     home,
		AwayTeam:     away,
		Bookmakers: []oddsapi.Bookmaker{
			{
				Title:      "Pinnacle",
				LastUpdate: commence.Add(-time.Hour),
				Markets: []oddsapi.MarketData{
					{
						Key: "h2h",
						Outcomes: []oddsapi.OutcomeData{
							{Name: home, Price: ptrFloat(1.9)},
							{Name: away, Price: ptrFloat(3.8)},
						},
					},
				},
			},
		},
	}
}

func TestIngestRunCollectsAcrossLeagues(t *testing.T) {
	t.Parallel()

	commence := time.Now().Add(24 * time.Hour)
	provider := &stubOddsFetcher{
		events: map[string][]oddsapi.Event{
			"soccer_epl": {
				providerEvent("ev-1", "Arsenal", "Chelsea", commence),
				providerEvent("ev-2", "Everton", "Fulham", commence),
			},
		},
		raw: map[string][]byte{
			"soccer_epl": []byte(`[{"id":"ev-1"},{"id":"ev-2"}]`),
		},
		errs: map[string]error{
			"basketball_nba": fmt.Errorf("%w: 3 attempts exhausted", oddsapi.ErrRateLimitExceeded),
		},
	}
	matchRepo := memory.NewMatchRepository(nil)
	snapshotRepo := memory.NewSnapshotRepository()

	svc := NewIngestService(provider, matchRepo, snapshotRepo,
		[]string{"soccer_epl", "basketball_nba"}, logging.NewNop())

	result := svc.Run(context.Background())

	if !result.Success {
		t.Fatalf("per-league failure must not fail the run: %+v", result)
	}
	if result.Fetched != 2 || result.Upserted != 2 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "basketball_nba") {
		t.Fatalf("expected one basketball error, got %v", result.Errors)
	}
	if got := provider.calls; len(got) != 2 || got[0] != "soccer_epl" || got[1] != "basketball_nba" {
		t.Fatalf("leagues must be fetched sequentially in order, got %v", got)
	}
	if matchRepo.Len() != 2 {
		t.Fatalf("expected 2 stored records, got %d", matchRepo.Len())
	}
	if _, ok := snapshotRepo.Get(oddsapi.DataSource, "soccer_epl"); !ok {
		t.Fatal("raw payload should be archived for the successful league")
	}
}

func TestIngestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	commence := time.Now().Add(24 * time.Hour)
	provider := &stubOddsFetcher{
		events: map[string][]oddsapi.Event{
			"soccer_epl": {providerEvent("ev-1", "Arsenal", "Chelsea", commence)},
		},
		raw: map[string][]byte{"soccer_epl": []byte(`[]`)},
	}
	matchRepo := memory.NewMatchRepository(nil)
	svc := NewIngestService(provider, matchRepo, nil, []string{"soccer_epl"}, logging.NewNop())

	first := svc.Run(context.Background())
	second := svc.Run(context.Background())

	if first.Upserted != 1 || second.Upserted != 1 {
		t.Fatalf("both runs should report one upsert: first=%+v second=%+v", first, second)
	}
	if matchRepo.Len() != 1 {
		t.Fatalf("reruns must not duplicate rows, got %d", matchRepo.Len())
	}
}

func TestIngestRunSkipsMalformedEvents(t *testing.T) {
	t.Parallel()

	commence := time.Now().Add(24 * time.Hour)
	broken := providerEvent("", "Arsenal", "Chelsea", commence)
	provider := &stubOddsFetcher{
		events: map[string][]oddsapi.Event{
			"soccer_epl": {broken, providerEvent("ev-2", "Everton", "Fulham", commence)},
		},
	}
	matchRepo := memory.NewMatchRepository(nil)
	svc := NewIngestService(provider, matchRepo, nil, []string{"soccer_epl"}, logging.NewNop())

	result := svc.Run(context.Background())

	if result.Fetched != 2 || result.Upserted != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one normalization error, got %v", result.Errors)
	}
}

func TestIngestRunRejectsUncatalogedLeague(t *testing.T) {
	t.Parallel()

	provider := &stubOddsFetcher{}
	svc := NewIngestService(provider, memory.NewMatchRepository(nil), nil,
		[]string{"foo_bar_league"}, logging.NewNop())

	result := svc.Run(context.Background())

	if len(provider.calls) != 0 {
		t.Fatalf("uncataloged league must not be fetched, got calls %v", provider.calls)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "foo_bar_league") {
		t.Fatalf("expected a catalog error, got %v", result.Errors)
	}
}

func TestIngestRunStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	provider := &stubOddsFetcher{}
	svc := NewIngestService(provider, memory.NewMatchRepository(nil), nil,
		[]string{"soccer_epl", "soccer_spain_la_liga"}, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := svc.Run(ctx)

	if result.Success {
		t.Fatalf("canceled run must not report success: %+v", result)
	}
	if len(provider.calls) != 0 {
		t.Fatalf("no league should be fetched after cancellation, got %v", provider.calls)
	}
}

func TestIngestDefaultsToCatalogLeagues(t *testing.T) {
	t.Parallel()

	provider := &stubOddsFetcher{
		errs: map[string]error{},
	}
	svc := NewIngestService(provider, memory.NewMatchRepository(nil), nil, nil, logging.NewNop())

	svc.Run(context.Background())

	if len(provider.calls) != 7 {
		t.Fatalf("expected the full catalog of 7 leagues, got %v", provider.calls)
	}
	if provider.calls[0] != "soccer_epl" {
		t.Fatalf("football leagues should come first, got %v", provider.calls)
	}
}

type unreadyOddsFetcher struct {
	stubOddsFetcher
}

func (f *unreadyOddsFetcher) Ready() error {
	return fmt.Errorf("odds provider api key is not configured")
}

func TestIngestRunFailsFastWithoutCredentials(t *testing.T) {
	t.Parallel()

	provider := &unreadyOddsFetcher{}
	svc := NewIngestService(provider, memory.NewMatchRepository(nil), nil,
		[]string{"soccer_epl"}, logging.NewNop())

	result := svc.Run(context.Background())

	if result.Success {
		t.Fatalf("missing credentials must fail the run: %+v", result)
	}
	if result.Fetched != 0 || result.Upserted != 0 {
		t.Fatalf("failed preflight must report zero counts: %+v", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "api key") {
		t.Fatalf("expected a single credentials error, got %v", result.Errors)
	}
	if len(provider.calls) != 0 {
		t.Fatalf("no network call may happen before preflight passes, got %v", provider.calls)
	}
}

func TestIngestRunFailsFastWithoutStore(t *testing.T) {
	t.Parallel()

	provider := &stubOddsFetcher{}
	svc := NewIngestService(provider, nil, nil, []string{"soccer_epl"}, logging.NewNop())

	result := svc.Run(context.Background())

	if result.Success || len(result.Errors) != 1 {
		t.Fatalf("missing store must fail the run with one error: %+v", result)
	}
	if len(provider.calls) != 0 {
		t.Fatalf("no league should be fetched without a store, got %v", provider.calls)
	}
}
