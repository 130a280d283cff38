package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/matchpulse/matchpulse-api/internal/domain/prediction"
	predictionmock "github.com/matchpulse/matchpulse-api/internal/mocks/domain/prediction"
)

func TestPredictionService_Update_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	predictionRepo := predictionmock.NewRepository(t)
	service := NewPredictionService(predictionRepo, nil, nil)

	predictionRepo.
		On("GetByID", mock.Anything, "missing-prediction").
		Return(prediction.Prediction{}, false, nil).
		Once()

	_, err := service.Update(ctx, prediction.Prediction{
		ID:         "missing-prediction",
		MatchTitle: "Arsenal vs Chelsea",
		MatchDate:  time.Now().Add(24 * time.Hour),
		Pick:       "Over 2.5 goals",
		Odds:       1.85,
		Confidence: 70,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPredictionService_Archive_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	predictionRepo := predictionmock.NewRepository(t)
	service := NewPredictionService(predictionRepo, nil, nil)

	repoErr := errors.New("connection reset")
	predictionRepo.
		On("GetByID", mock.Anything, "p-1").
		Return(prediction.Prediction{ID: "p-1"}, true, nil).
		Once()
	predictionRepo.
		On("Archive", mock.Anything, "p-1").
		Return(repoErr).
		Once()

	if err := service.Archive(ctx, "p-1"); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
