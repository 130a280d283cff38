package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/matchpulse/matchpulse-api/external/oddsapi"
	"github.com/matchpulse/matchpulse-api/internal/infrastructure/repository/memory"
	"github.com/matchpulse/matchpulse-api/internal/platform/cache"
	"github.com/matchpulse/matchpulse-api/internal/platform/logging"
	"github.com/matchpulse/matchpulse-api/internal/usecase"
)

const testJobToken = "job-secret"

type fixedOddsFetcher struct {
	events []oddsapi.Event
	err    error
}

func (f fixedOddsFetcher) FetchLeagueOdds(_ context.Context, _ string) ([]oddsapi.Event, []byte, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.events, []byte(`[]`), nil
}

func price(v float64) *float64 { return &v }

func newTestRouter(t *testing.T, fetcher usecase.OddsFetcher) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	matchRepo := memory.NewMatchRepository(nil)
	matchService := usecase.NewMatchService(matchRepo, cache.NewStore(time.Minute), logger)
	predictionService := usecase.NewPredictionService(memory.NewPredictionRepository(nil), nil, logger)
	ingestService := usecase.NewIngestService(fetcher, matchRepo, memory.NewSnapshotRepository(),
		[]string{"soccer_epl"}, logger)

	handler := NewHandler(matchService, predictionService, ingestService, logger)
	return NewRouter(handler, logger, false, nil, testJobToken)
}

func decodeEnvelope(t *testing.T, body string) googleResponseEnvelope {
	t.Helper()

	var envelope googleResponseEnvelope
	if err := sonic.UnmarshalString(body, &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body=%s)", err, body)
	}
	return envelope
}

func TestFetchMatchesJobReturnsSummary(t *testing.T) {
	t.Parallel()

	fetcher := fixedOddsFetcher{
		events: []oddsapi.Event{
			{
				ID:           "ev-1",
				CommenceTime: time.Now().Add(24 * time.Hour),
				HomeTeam:     "Arsenal",
				AwayTeam:     "Chelsea",
				Bookmakers: []oddsapi.Bookmaker{
					{
						Title: "Pinnacle",
						Markets: []oddsapi.MarketData{
							{Key: "h2h", Outcomes: []oddsapi.OutcomeData{{Name: "Arsenal", Price: price(1.9)}}},
						},
					},
				},
			},
		},
	}
	router := newTestRouter(t, fetcher)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/fetch-matches", nil)
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var summary usecase.IngestResult
	if err := sonic.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if !summary.Success || summary.Fetched != 1 || summary.Upserted != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Errors == nil || len(summary.Errors) != 0 {
		t.Fatalf("errors must be an empty array, got %v", summary.Errors)
	}

	// The new match must be visible on the public listing right away.
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, "/v1/matches?sport=football", nil))
	if listRec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing, got %d", listRec.Code)
	}
	if !strings.Contains(listRec.Body.String(), `"external_id":"ev-1"`) {
		t.Fatalf("ingested match missing from listing: %s", listRec.Body.String())
	}
}

func TestFetchMatchesJobRequiresToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, fixedOddsFetcher{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/fetch-matches", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec.Body.String())
	if envelope.Error == nil || envelope.Error.Status != "UNAUTHENTICATED" {
		t.Fatalf("unexpected error envelope: %+v", envelope.Error)
	}
}

func TestListMatchesRejectsUnknownSport(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, fixedOddsFetcher{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches?sport=handball", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec.Body.String())
	if envelope.Error == nil || envelope.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error envelope: %+v", envelope.Error)
	}
}

func TestPredictionLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, fixedOddsFetcher{})

	body := `{"match_title":"Arsenal vs Chelsea","league":"Premier League",` +
		`"match_date":"2026-09-01T18:00:00Z","prediction":"Over 2.5 goals","odds":1.85,"confidence":70}`
	createRec := httptest.NewRecorder()
	createReq := httptest.NewRequest(http.MethodPost, "/v1/internal/predictions", strings.NewReader(body))
	createReq.Header.Set("X-Internal-Job-Token", testJobToken)
	router.ServeHTTP(createRec, createReq)

	if createRec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", createRec.Code, createRec.Body.String())
	}

	var created struct {
		Data predictionDTO `json:"data"`
	}
	if err := sonic.Unmarshal(createRec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created prediction: %v", err)
	}
	if created.Data.ID == "" || created.Data.Result != "pending" {
		t.Fatalf("unexpected created prediction: %+v", created.Data)
	}

	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, "/v1/predictions", nil))
	if listRec.Code != http.StatusOK || !strings.Contains(listRec.Body.String(), created.Data.ID) {
		t.Fatalf("prediction missing from listing: %d %s", listRec.Code, listRec.Body.String())
	}

	archiveRec := httptest.NewRecorder()
	archiveReq := httptest.NewRequest(http.MethodDelete, "/v1/internal/predictions/"+created.Data.ID, nil)
	archiveReq.Header.Set("X-Internal-Job-Token", testJobToken)
	router.ServeHTTP(archiveRec, archiveReq)
	if archiveRec.Code != http.StatusOK {
		t.Fatalf("expected 200 archive, got %d", archiveRec.Code)
	}

	afterRec := httptest.NewRecorder()
	router.ServeHTTP(afterRec, httptest.NewRequest(http.MethodGet, "/v1/predictions", nil))
	if strings.Contains(afterRec.Body.String(), created.Data.ID) {
		t.Fatalf("archived prediction still listed: %s", afterRec.Body.String())
	}
}

func TestCreatePredictionValidation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, fixedOddsFetcher{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/predictions",
		strings.NewReader(`{"match_title":"","prediction":"x","odds":0.5}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestHealthzBypassesAuth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, fixedOddsFetcher{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}
}
