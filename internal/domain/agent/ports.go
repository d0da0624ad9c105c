package agent

import (
	"context"

	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
)

// RecordRepository persists agent records in the state store.
// Records are single-writer: only the tick orchestrator writes them.
type RecordRepository interface {
	Save(ctx context.Context, rec *Record) error
	FindByID(ctx context.Context, id string) (*Record, error)
	ListByWorld(ctx context.Context, worldID string) ([]*Record, error)
	ListAll(ctx context.Context) ([]*Record, error)
	Delete(ctx context.Context, id string) error

	// DeleteMissing removes records whose id is not in the live set,
	// returning how many were reconciled away
	DeleteMissing(ctx context.Context, liveIDs []string) (int64, error)

	// ClearStalePaths drops cached paths written before the cutoff tick,
	// bounding persistent-store growth
	ClearStalePaths(ctx context.Context, writtenBefore shared.Tick) (int64, error)
}
