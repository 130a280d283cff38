package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchpulse/matchpulse-api/internal/domain/prediction"
	"github.com/matchpulse/matchpulse-api/internal/infrastructure/repository/memory"
	"github.com/matchpulse/matchpulse-api/internal/platform/logging"
)

func validPrediction() prediction.Prediction {
	return prediction.Prediction{
		MatchTitle: "Arsenal vs Chelsea",
		League:     "Premier League",
		MatchDate:  time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
		Pick:       "Over 2.5 goals",
		Odds:       1.85,
		Confidence: 70,
	}
}

func newPredictionService() *PredictionService {
	return NewPredictionService(memory.NewPredictionRepository(nil), nil, logging.NewNop())
}

func TestPredictionCreateAssignsIdentity(t *testing.T) {
	t.Parallel()

	svc := newPredictionService()
	created, err := svc.Create(context.Background(), validPrediction())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}
	if created.Result != prediction.ResultPending {
		t.Fatalf("expected pending result by default, got %s", created.Result)
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("timestamps not set: %+v", created)
	}

	loaded, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loaded.Pick != "Over 2.5 goals" {
		t.Fatalf("unexpected stored prediction: %+v", loaded)
	}
}

func TestPredictionCreateValidation(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*prediction.Prediction){
		"missing title":      func(p *prediction.Prediction) { p.MatchTitle = " " },
		"missing pick":       func(p *prediction.Prediction) { p.Pick = "" },
		"missing match date": func(p *prediction.Prediction) { p.MatchDate = time.Time{} },
		"odds below minimum": func(p *prediction.Prediction) { p.Odds = 1.0 },
		"confidence too big": func(p *prediction.Prediction) { p.Confidence = 101 },
		"bad result":         func(p *prediction.Prediction) { p.Result = "maybe" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			svc := newPredictionService()
			input := validPrediction()
			mutate(&input)
			if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPredictionUpdateSettlesResult(t *testing.T) {
	t.Parallel()

	svc := newPredictionService()
	created, err := svc.Create(context.Background(), validPrediction())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Result = prediction.ResultWon
	updated, err := svc.Update(context.Background(), created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Result != prediction.ResultWon {
		t.Fatalf("expected won result, got %s", updated.Result)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("update must not rewrite the creation timestamp")
	}
}

func TestPredictionUpdateUnknownID(t *testing.T) {
	t.Parallel()

	svc := newPredictionService()
	input := validPrediction()
	input.ID = "missing"
	if _, err := svc.Update(context.Background(), input); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPredictionArchiveHidesFromListing(t *testing.T) {
	t.Parallel()

	svc := newPredictionService()
	created, err := svc.Create(context.Background(), validPrediction())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Archive(context.Background(), created.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	visible, err := svc.List(context.Background(), prediction.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("archived prediction should be hidden, got %+v", visible)
	}

	all, err := svc.List(context.Background(), prediction.Filter{IncludeArchived: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 || !all[0].Archived {
		t.Fatalf("archived prediction should remain retrievable, got %+v", all)
	}
}

func TestPredictionListPremiumFilter(t *testing.T) {
	t.Parallel()

	svc := newPredictionService()
	free := validPrediction()
	premium := validPrediction()
	premium.IsPremium = true
	premium.MatchTitle = "Barcelona vs Sevilla"

	if _, err := svc.Create(context.Background(), free); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), premium); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.List(context.Background(), prediction.Filter{PremiumOnly: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].MatchTitle != "Barcelona vs Sevilla" {
		t.Fatalf("expected only the premium prediction, got %+v", got)
	}
}
