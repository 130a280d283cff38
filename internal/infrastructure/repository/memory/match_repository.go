package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/matchpulse/matchpulse-api/internal/domain/match"
)

// MatchRepository keeps records in memory, keyed the same way the database
// is: one row per (external_id, data_source) pair.
type MatchRepository struct {
	mu      sync.RWMutex
	records map[string]match.Record
}

func NewMatchRepository(records []match.Record) *MatchRepository {
	byKey := make(map[string]match.Record, len(records))
	for _, rec := range records {
		byKey[rec.Key()] = rec
	}
	return &MatchRepository{records: byKey}
}

func (r *MatchRepository) Upsert(_ context.Context, rec match.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.Key()] = rec
	return nil
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter) ([]match.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Record, 0, len(r.records))
	for _, rec := range r.records {
		if filter.Sport != "" && rec.Sport != filter.Sport {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.League != "" && rec.League != filter.League {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.Before(out[j].MatchDate)
		}
		return out[i].Key() < out[j].Key()
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Len reports how many distinct records the store holds.
func (r *MatchRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
