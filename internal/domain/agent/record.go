package agent

import (
	"fmt"

	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
)

// Record is the persistent per-agent state surviving across ticks. It is
// created at production time, mutated every tick by the agent's role
// behavior, and deleted by reconciliation once the world stops reporting
// the agent as alive.
type Record struct {
	ID      string
	Name    string
	WorldID string
	Role    Role
	State   State

	// TargetID is the cached current target; empty means re-evaluate
	TargetID string

	// CachedPath holds the serialized route; PathWrittenAt is its age stamp
	CachedPath    []byte
	PathWrittenAt shared.Tick

	// AssignedNodeID is the extractor's permanent node assignment
	AssignedNodeID string

	// AnchorX/AnchorY is the mineral extractor's safe idle point
	AnchorX int
	AnchorY int

	SpawnedAt shared.Tick
}

// NewRecord creates an agent record with validation.
func NewRecord(id, name, worldID string, role Role, spawnedAt shared.Tick) (*Record, error) {
	if id == "" {
		return nil, fmt.Errorf("agent id cannot be empty")
	}
	if worldID == "" {
		return nil, fmt.Errorf("agent world id cannot be empty")
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}
	return &Record{
		ID:        id,
		Name:      name,
		WorldID:   worldID,
		Role:      role,
		State:     initialState(role),
		SpawnedAt: spawnedAt,
	}, nil
}

func initialState(role Role) State {
	switch role {
	case RoleHauler, RoleGeneralist:
		return StateCollecting
	case RoleUpgrader, RoleBuilder:
		return StateRefilling
	case RoleMineralExtractor:
		return StateMining
	}
	return StateIdle
}

// SetTarget caches a target id.
func (r *Record) SetTarget(id string) {
	r.TargetID = id
}

// ClearTarget drops the cached target so the next tick re-evaluates.
func (r *Record) ClearTarget() {
	r.TargetID = ""
}

// HasPath reports whether a cached path exists.
func (r *Record) HasPath() bool {
	return len(r.CachedPath) > 0
}

// SetPath stores a serialized path with its age stamp.
func (r *Record) SetPath(steps []byte, tick shared.Tick) {
	r.CachedPath = steps
	r.PathWrittenAt = tick
}

// ClearPath deletes the cached path and its age stamp.
func (r *Record) ClearPath() {
	r.CachedPath = nil
	r.PathWrittenAt = 0
}

// ConsumeStep drops the first serialized step after a successful follow,
// keeping the age stamp so staleness is measured from the original
// computation. A fully walked path clears.
func (r *Record) ConsumeStep() {
	if len(r.CachedPath) <= 1 {
		r.ClearPath()
		return
	}
	r.CachedPath = r.CachedPath[1:]
}

// PathStale reports whether the cached path is older than maxAge ticks.
func (r *Record) PathStale(now, maxAge shared.Tick) bool {
	return r.HasPath() && now.Age(r.PathWrittenAt) >= maxAge
}

// Anchor returns the mineral extractor's safe idle position.
func (r *Record) Anchor() shared.Position {
	return shared.Position{WorldID: r.WorldID, X: r.AnchorX, Y: r.AnchorY}
}
