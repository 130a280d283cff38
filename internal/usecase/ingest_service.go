package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/matchpulse/matchpulse-api/external/oddsapi"
	"github.com/matchpulse/matchpulse-api/internal/domain/league"
	"github.com/matchpulse/matchpulse-api/internal/domain/match"
	"github.com/matchpulse/matchpulse-api/internal/domain/snapshot"
	"github.com/matchpulse/matchpulse-api/internal/platform/logging"
)

// OddsFetcher is the provider side of the ingestion pipeline. It returns the
// decoded events for one league along with the raw response body.
type OddsFetcher interface {
	FetchLeagueOdds(ctx context.Context, leagueCode string) ([]oddsapi.Event, []byte, error)
}

// IngestResult is the run summary returned to callers and serialized verbatim
// by the internal job endpoint.
type IngestResult struct {
	Success  bool     `json:"success"`
	Fetched  int      `json:"fetched"`
	Upserted int      `json:"upserted"`
	Errors   []string `json:"errors"`
}

// IngestService pulls odds for every configured league, normalizes the events
// and upserts them through the match repository. Leagues are processed
// sequentially so a single provider key is never hammered in parallel.
type IngestService struct {
	provider     OddsFetcher
	matchRepo    match.Repository
	snapshotRepo snapshot.Repository
	leagueCodes  []string
	logger       *logging.Logger
	now          func() time.Time
}

func NewIngestService(
	provider OddsFetcher,
	matchRepo match.Repository,
	snapshotRepo snapshot.Repository,
	leagueCodes []string,
	logger *logging.Logger,
) *IngestService {
	if logger == nil {
		logger = logging.Default()
	}
	cleaned := make([]string, 0, len(leagueCodes))
	for _, code := range leagueCodes {
		code = strings.TrimSpace(code)
		if code != "" {
			cleaned = append(cleaned, code)
		}
	}
	if len(cleaned) == 0 {
		cleaned = league.Codes()
	}
	return &IngestService{
		provider:     provider,
		matchRepo:    matchRepo,
		snapshotRepo: snapshotRepo,
		leagueCodes:  cleaned,
		logger:       logger,
		now:          time.Now,
	}
}

// Run executes one full ingestion sweep. Per-league and per-event failures are
// collected into the summary and never abort the remaining work; only a
// canceled context stops the sweep early.
func (s *IngestService) Run(ctx context.Context) IngestResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.Run")
	defer span.End()

	if err := s.preflight(); err != nil {
		s.logger.ErrorContext(ctx, "ingestion preflight failed", "error", err)
		return IngestResult{Success: false, Errors: []string{err.Error()}}
	}

	result := IngestResult{Success: true, Errors: []string{}}
	startedAt := s.now()

	for _, code := range s.leagueCodes {
		if err := ctx.Err(); err != nil {
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("ingestion aborted: %v", err))
			break
		}

		if _, err := league.SportForCode(code); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", code, err))
			s.logger.WarnContext(ctx, "skipping uncataloged league", "league", code, "error", err)
			continue
		}

		events, raw, err := s.provider.FetchLeagueOdds(ctx, code)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", code, err))
			s.logger.WarnContext(ctx, "league fetch failed", "league", code, "error", err)
			continue
		}
		result.Fetched += len(events)

		s.archiveSnapshot(ctx, code, raw)

		for _, ev := range events {
			rec, err := oddsapi.NormalizeEvent(ev, code, s.now())
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", code, err))
				continue
			}
			if err := s.matchRepo.Upsert(ctx, rec); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: upsert %s: %v", code, rec.ExternalID, err))
				s.logger.WarnContext(ctx, "match upsert failed",
					"league", code, "external_id", rec.ExternalID, "error", err)
				continue
			}
			result.Upserted++
		}
	}

	s.logger.InfoContext(ctx, "ingestion sweep finished",
		"leagues", len(s.leagueCodes),
		"fetched", result.Fetched,
		"upserted", result.Upserted,
		"errors", len(result.Errors),
		"duration", s.now().Sub(startedAt).String())
	return result
}

// preflight verifies the sweep can run at all. Configuration holes abort the
// run with a single top-level error before any network call is made.
func (s *IngestService) preflight() error {
	if s.provider == nil {
		return fmt.Errorf("odds provider is not configured")
	}
	if s.matchRepo == nil {
		return fmt.Errorf("match store is not configured")
	}
	if p, ok := s.provider.(interface{ Ready() error }); ok {
		if err := p.Ready(); err != nil {
			return err
		}
	}
	return nil
}

// archiveSnapshot keeps the provider's raw response for replay and debugging.
// Failures are logged and swallowed: the archive must never block ingestion.
func (s *IngestService) archiveSnapshot(ctx context.Context, leagueCode string, raw []byte) {
	if s.snapshotRepo == nil || len(raw) == 0 {
		return
	}
	sum := sha256.Sum256(raw)
	snap := snapshot.Snapshot{
		Source:      oddsapi.DataSource,
		LeagueCode:  leagueCode,
		Payload:     string(raw),
		PayloadHash: hex.EncodeToString(sum[:]),
		FetchedAt:   s.now(),
	}
	if err := s.snapshotRepo.Upsert(ctx, snap); err != nil {
		s.logger.WarnContext(ctx, "snapshot archive failed", "league", leagueCode, "error", err)
	}
}
