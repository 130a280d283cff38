package memory

import (
	"context"
	"sync"

	"github.com/matchpulse/matchpulse-api/internal/domain/snapshot"
)

// SnapshotRepository keeps the latest raw payload per (source, league).
type SnapshotRepository struct {
	mu    sync.RWMutex
	items map[string]snapshot.Snapshot
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{items: make(map[string]snapshot.Snapshot)}
}

func (r *SnapshotRepository) Upsert(_ context.Context, snap snapshot.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[snap.Source+"|"+snap.LeagueCode] = snap
	return nil
}

func (r *SnapshotRepository) Get(source, leagueCode string) (snapshot.Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, ok := r.items[source+"|"+leagueCode]
	return snap, ok
}
