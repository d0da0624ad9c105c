package tick

import (
	"time"

	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
)

// TickSummary is the compute-usage and work summary returned by one tick.
type TickSummary struct {
	Tick shared.Tick

	WorldsProcessed int
	AgentsProcessed int
	AgentErrors     int
	WorldErrors     int
	SpawnsRequested int
	OrdersCreated   int
	RecordsRemoved  int64

	Duration       time.Duration
	BudgetFraction float64
	OverHighWater  bool
}

// TelemetryRecorder receives the per-tick summary for metrics export.
type TelemetryRecorder interface {
	RecordTick(summary *TickSummary)
}
