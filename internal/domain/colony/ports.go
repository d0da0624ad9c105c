package colony

import (
	"context"

	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
)

// WorldRepository persists world records in the state store.
type WorldRepository interface {
	Save(ctx context.Context, rec *WorldRecord) error
	FindByID(ctx context.Context, id string) (*WorldRecord, error)
	ListAll(ctx context.Context) ([]*WorldRecord, error)
	Delete(ctx context.Context, id string) error

	// DeleteUnseen prunes worlds not observed since the cutoff tick
	DeleteUnseen(ctx context.Context, seenBefore shared.Tick) (int64, error)
}

// CounterRepository persists global counters (ticks run, agents produced,
// orders created) in the state store.
type CounterRepository interface {
	Increment(ctx context.Context, name string, delta int64) (int64, error)
	Get(ctx context.Context, name string) (int64, error)
}

// Well-known global counter names.
const (
	CounterTicksRun       = "ticks_run"
	CounterAgentsProduced = "agents_produced"
	CounterOrdersCreated  = "orders_created"
	CounterAgentErrors    = "agent_errors"
)
