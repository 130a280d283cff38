package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matchpulse/matchpulse-api/internal/domain/prediction"
	"github.com/matchpulse/matchpulse-api/internal/platform/id"
	"github.com/matchpulse/matchpulse-api/internal/platform/logging"
)

const (
	maxPredictionLimit     = 200
	defaultPredictionLimit = 50
)

// PredictionService manages the editorial betting tips shown next to matches.
type PredictionService struct {
	predictionRepo prediction.Repository
	idGen          id.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewPredictionService(repo prediction.Repository, idGen id.Generator, logger *logging.Logger) *PredictionService {
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		predictionRepo: repo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *PredictionService) Create(ctx context.Context, input prediction.Prediction) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Create")
	defer span.End()

	input.ID = ""
	if err := s.sanitize(&input); err != nil {
		return prediction.Prediction{}, err
	}
	if input.Result == "" {
		input.Result = prediction.ResultPending
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("generate prediction id: %w", err)
	}

	now := s.now()
	input.ID = newID
	input.CreatedAt = now
	input.UpdatedAt = now

	if err := s.predictionRepo.Create(ctx, input); err != nil {
		return prediction.Prediction{}, fmt.Errorf("create prediction: %w", err)
	}
	return input, nil
}

func (s *PredictionService) Update(ctx context.Context, input prediction.Prediction) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Update")
	defer span.End()

	input.ID = strings.TrimSpace(input.ID)
	if input.ID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction id is required", ErrInvalidInput)
	}
	if err := s.sanitize(&input); err != nil {
		return prediction.Prediction{}, err
	}

	existing, found, err := s.predictionRepo.GetByID(ctx, input.ID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("load prediction: %w", err)
	}
	if !found {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction %s", ErrNotFound, input.ID)
	}

	if input.Result == "" {
		input.Result = existing.Result
	}
	input.CreatedAt = existing.CreatedAt
	input.UpdatedAt = s.now()

	if err := s.predictionRepo.Update(ctx, input); err != nil {
		return prediction.Prediction{}, fmt.Errorf("update prediction: %w", err)
	}
	return input, nil
}

func (s *PredictionService) Get(ctx context.Context, predictionID string) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Get")
	defer span.End()

	predictionID = strings.TrimSpace(predictionID)
	if predictionID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction id is required", ErrInvalidInput)
	}

	found, ok, err := s.predictionRepo.GetByID(ctx, predictionID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("load prediction: %w", err)
	}
	if !ok {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction %s", ErrNotFound, predictionID)
	}
	return found, nil
}

func (s *PredictionService) List(ctx context.Context, filter prediction.Filter) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.List")
	defer span.End()

	filter.League = strings.TrimSpace(filter.League)
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if filter.Limit == 0 {
		filter.Limit = defaultPredictionLimit
	}
	if filter.Limit > maxPredictionLimit {
		filter.Limit = maxPredictionLimit
	}

	items, err := s.predictionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return items, nil
}

// Archive hides a prediction from listings without deleting its record.
func (s *PredictionService) Archive(ctx context.Context, predictionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Archive")
	defer span.End()

	predictionID = strings.TrimSpace(predictionID)
	if predictionID == "" {
		return fmt.Errorf("%w: prediction id is required", ErrInvalidInput)
	}

	_, ok, err := s.predictionRepo.GetByID(ctx, predictionID)
	if err != nil {
		return fmt.Errorf("load prediction: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: prediction %s", ErrNotFound, predictionID)
	}

	if err := s.predictionRepo.Archive(ctx, predictionID); err != nil {
		return fmt.Errorf("archive prediction: %w", err)
	}
	return nil
}

func (s *PredictionService) sanitize(p *prediction.Prediction) error {
	p.MatchTitle = strings.TrimSpace(p.MatchTitle)
	p.League = strings.TrimSpace(p.League)
	p.Pick = strings.TrimSpace(p.Pick)
	p.Result = strings.TrimSpace(strings.ToLower(p.Result))

	if p.MatchTitle == "" {
		return fmt.Errorf("%w: match title is required", ErrInvalidInput)
	}
	if p.Pick == "" {
		return fmt.Errorf("%w: pick is required", ErrInvalidInput)
	}
	if p.MatchDate.IsZero() {
		return fmt.Errorf("%w: match date is required", ErrInvalidInput)
	}
	if p.Odds < 1.01 {
		return fmt.Errorf("%w: odds must be at least 1.01", ErrInvalidInput)
	}
	if p.Confidence < 0 || p.Confidence > 100 {
		return fmt.Errorf("%w: confidence must be between 0 and 100", ErrInvalidInput)
	}
	switch p.Result {
	case "", prediction.ResultPending, prediction.ResultWon, prediction.ResultLost, prediction.ResultVoid:
	default:
		return fmt.Errorf("%w: unsupported result %q", ErrInvalidInput, p.Result)
	}
	return nil
}
