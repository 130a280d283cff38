package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/matchpulse/matchpulse-api/internal/domain/snapshot"
	qb "github.com/matchpulse/matchpulse-api/internal/platform/querybuilder"
)

type snapshotInsertModel struct {
	Source      string    `db:"source"`
	LeagueCode  string    `db:"league_code"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}

// SnapshotRepository stores the latest raw provider payload per league so an
// ingestion run can be replayed without another API call.
type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Upsert(ctx context.Context, snap snapshot.Snapshot) error {
	insertModel := snapshotInsertModel{
		Source:      snap.Source,
		LeagueCode:  snap.LeagueCode,
		Payload:     snap.Payload,
		PayloadHash: snap.PayloadHash,
		FetchedAt:   snap.FetchedAt,
	}
	query, args, err := qb.InsertModel("provider_snapshots", insertModel, `ON CONFLICT (source, league_code)
DO UPDATE SET
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = EXCLUDED.fetched_at`)
	if err != nil {
		return fmt.Errorf("build upsert snapshot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert snapshot %s/%s: %w", snap.Source, snap.LeagueCode, err)
	}
	return nil
}
