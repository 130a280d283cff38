package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/matchpulse/matchpulse-api/internal/domain/prediction"
)

type PredictionRepository struct {
	mu    sync.RWMutex
	items map[string]prediction.Prediction
}

func NewPredictionRepository(items []prediction.Prediction) *PredictionRepository {
	byID := make(map[string]prediction.Prediction, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &PredictionRepository{items: byID}
}

func (r *PredictionRepository) Create(_ context.Context, p prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; exists {
		return fmt.Errorf("prediction %s already exists", p.ID)
	}
	r.items[p.ID] = p
	return nil
}

func (r *PredictionRepository) Update(_ context.Context, p prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; !exists {
		return fmt.Errorf("prediction %s does not exist", p.ID)
	}
	r.items[p.ID] = p
	return nil
}

func (r *PredictionRepository) GetByID(_ context.Context, predictionID string) (prediction.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[predictionID]
	return item, ok, nil
}

func (r *PredictionRepository) List(_ context.Context, filter prediction.Filter) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0, len(r.items))
	for _, item := range r.items {
		if item.Archived && !filter.IncludeArchived {
			continue
		}
		if filter.League != "" && item.League != filter.League {
			continue
		}
		if filter.PremiumOnly && !item.IsPremium {
			continue
		}
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.Before(out[j].MatchDate)
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *PredictionRepository) Archive(_ context.Context, predictionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[predictionID]
	if !ok {
		return fmt.Errorf("prediction %s does not exist", predictionID)
	}
	item.Archived = true
	r.items[predictionID] = item
	return nil
}
