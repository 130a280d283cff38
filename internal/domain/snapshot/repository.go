package snapshot

import "context"

type Repository interface {
	Upsert(ctx context.Context, s Snapshot) error
}
