package colony

import (
	"fmt"

	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
)

// RelayTopology is the cached classification of the world's relay network.
// Classification is expensive to recompute and stable once set, so it is
// persisted and refreshed only every N ticks.
type RelayTopology struct {
	ExtractorRelayIDs []string
	HubRelayID        string
	ControllerRelayID string
	RefreshedAt       shared.Tick
}

// SynthesisConfig names the reaction run by this world's synthesis pipeline.
type SynthesisConfig struct {
	InputA shared.ResourceType
	InputB shared.ResourceType
	Output shared.ResourceType
}

// DefaultSynthesisConfig returns the standard compound reaction.
func DefaultSynthesisConfig() SynthesisConfig {
	return SynthesisConfig{
		InputA: shared.ResourceCompoundA,
		InputB: shared.ResourceCompoundB,
		Output: shared.ResourceCompoundAB,
	}
}

// Statistics is the per-world rolling statistics snapshot.
type Statistics struct {
	EnergyHarvested int64
	AgentsProduced  int64
	OrdersCreated   int64
	UpdatedAt       shared.Tick
}

// WorldRecord is the persistent per-world state. Created on the first tick
// a world becomes owned; pruned from the store when no longer observed.
type WorldRecord struct {
	ID string

	// Tier is monotonically non-decreasing over the world's lifetime
	Tier int

	// ExtractionNodeIDs caches the world's node ids (stable geography)
	ExtractionNodeIDs []string

	Relays    RelayTopology
	Synthesis SynthesisConfig
	Stats     Statistics

	// RoadPlanLastRun gates the periodic road planning pass
	RoadPlanLastRun shared.Tick

	// SeenAt is the last tick this world was observed as owned
	SeenAt shared.Tick
}

// NewWorldRecord creates a world record with validation.
func NewWorldRecord(id string, tier int, seenAt shared.Tick) (*WorldRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("world id cannot be empty")
	}
	if tier < 0 {
		return nil, fmt.Errorf("world tier cannot be negative: %d", tier)
	}
	return &WorldRecord{
		ID:        id,
		Tier:      tier,
		Synthesis: DefaultSynthesisConfig(),
		SeenAt:    seenAt,
	}, nil
}

// ObserveTier records the tier reported by this tick's snapshot. The tier
// never decreases; a lower observation is ignored as a stale read.
func (w *WorldRecord) ObserveTier(tier int) {
	if tier > w.Tier {
		w.Tier = tier
	}
}

// MarkSeen stamps the record with the current tick for pruning purposes.
func (w *WorldRecord) MarkSeen(tick shared.Tick) {
	w.SeenAt = tick
}

// RelaysStale reports whether the relay classification is due for refresh.
func (w *WorldRecord) RelaysStale(now, period shared.Tick) bool {
	return w.Relays.RefreshedAt == 0 || now.Age(w.Relays.RefreshedAt) >= period
}

// RoadPlanDue reports whether the periodic road planning pass should run.
func (w *WorldRecord) RoadPlanDue(now, period shared.Tick) bool {
	return w.RoadPlanLastRun == 0 || now.Age(w.RoadPlanLastRun) >= period
}
