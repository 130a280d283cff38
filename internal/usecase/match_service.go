package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchpulse/matchpulse-api/internal/domain/league"
	"github.com/matchpulse/matchpulse-api/internal/domain/match"
	"github.com/matchpulse/matchpulse-api/internal/platform/cache"
	"github.com/matchpulse/matchpulse-api/internal/platform/logging"
)

const (
	matchCachePrefix  = "matches|"
	maxMatchLimit     = 200
	defaultMatchLimit = 50
)

// MatchService serves the public match listing. Reads go through a short TTL
// cache so a popular listing does not hit the database on every request.
type MatchService struct {
	matchRepo match.Repository
	cache     *cache.Store
	logger    *logging.Logger
}

func NewMatchService(matchRepo match.Repository, store *cache.Store, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matchRepo: matchRepo,
		cache:     store,
		logger:    logger,
	}
}

func (s *MatchService) List(ctx context.Context, filter match.Filter) ([]match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	filter.Sport = strings.TrimSpace(strings.ToLower(filter.Sport))
	filter.Status = strings.TrimSpace(strings.ToLower(filter.Status))
	filter.League = strings.TrimSpace(filter.League)

	if filter.Sport != "" && filter.Sport != league.SportFootball && filter.Sport != league.SportBasketball {
		return nil, fmt.Errorf("%w: unsupported sport %q", ErrInvalidInput, filter.Sport)
	}
	switch filter.Status {
	case "", match.StatusUpcoming, match.StatusLive, match.StatusFinished:
	default:
		return nil, fmt.Errorf("%w: unsupported status %q", ErrInvalidInput, filter.Status)
	}
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if filter.Limit == 0 {
		filter.Limit = defaultMatchLimit
	}
	if filter.Limit > maxMatchLimit {
		filter.Limit = maxMatchLimit
	}

	if s.cache == nil {
		return s.matchRepo.List(ctx, filter)
	}

	key := fmt.Sprintf("%s%s|%s|%s|%d", matchCachePrefix, filter.Sport, filter.Status, filter.League, filter.Limit)
	value, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		records, loadErr := s.matchRepo.List(ctx, filter)
		if loadErr != nil {
			return nil, fmt.Errorf("list matches: %w", loadErr)
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	records, ok := value.([]match.Record)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload type %T", value)
	}
	return records, nil
}

// InvalidateListings drops cached listings after new data lands.
func (s *MatchService) InvalidateListings(ctx context.Context) {
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, matchCachePrefix)
	}
}
