package pathing

import (
	"fmt"

	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// RecomputePolicy controls what happens in the same tick after a cached
// path fails to follow.
type RecomputePolicy int

const (
	// RecomputeSameTick recomputes and moves in the same tick.
	// Used by exploratory roles where a lost tick matters.
	RecomputeSameTick RecomputePolicy = iota

	// RecomputeDeferred clears the cache and waits for next tick.
	// Used by bulk haulers where the recompute is too expensive to
	// justify immediately.
	RecomputeDeferred
)

// PathFinder is the pathfinding primitive of the world snapshot provider.
type PathFinder interface {
	FindPath(from, to shared.Position) ([]snapshot.Step, error)
}

// Mover is the movement primitive of the world snapshot provider.
type Mover interface {
	MoveAlongPath(agentID string, steps []snapshot.Step) shared.ActionResult
}

// Resolver consumes and maintains the per-agent path cache. Each successful
// follow trims the walked step off the record so the remainder resumes next
// tick; any consumption failure deletes the cache outright, never reusing a
// path beyond the failing step.
type Resolver struct {
	finder PathFinder

	// MaxAge treats older cached paths as absent; the global cleanup
	// sweep deletes them from the store
	MaxAge shared.Tick
}

// NewResolver creates a path cache resolver.
func NewResolver(finder PathFinder, maxAge shared.Tick) (*Resolver, error) {
	if finder == nil {
		return nil, fmt.Errorf("path finder cannot be nil")
	}
	if maxAge <= 0 {
		return nil, fmt.Errorf("path max age must be positive: %d", maxAge)
	}
	return &Resolver{finder: finder, MaxAge: maxAge}, nil
}

// ResolveMovement moves the agent toward dest, consuming the cached path
// when one exists and recomputing per policy when it fails.
func (r *Resolver) ResolveMovement(
	mover Mover,
	rec *agent.Record,
	current, dest shared.Position,
	tick shared.Tick,
	policy RecomputePolicy,
) shared.ActionResult {
	if current.IsAdjacent(dest) {
		return shared.ResultOK
	}

	if rec.PathStale(tick, r.MaxAge) {
		rec.ClearPath()
	}

	if rec.HasPath() {
		steps, err := DecodeSteps(rec.CachedPath)
		if err == nil {
			result := mover.MoveAlongPath(rec.ID, steps)
			if result.OK() {
				rec.ConsumeStep()
				return result
			}
			// fall through to recompute below
		}
		rec.ClearPath()
		if policy == RecomputeDeferred {
			return shared.ResultOnCooldown
		}
	}

	return r.computeAndMove(mover, rec, current, dest, tick)
}

func (r *Resolver) computeAndMove(
	mover Mover,
	rec *agent.Record,
	current, dest shared.Position,
	tick shared.Tick,
) shared.ActionResult {
	steps, err := r.finder.FindPath(current, dest)
	if err != nil || len(steps) == 0 {
		return shared.ResultInvalid
	}

	encoded, err := EncodeSteps(steps)
	if err != nil {
		return shared.ResultInvalid
	}
	rec.SetPath(encoded, tick)

	result := mover.MoveAlongPath(rec.ID, steps)
	if !result.OK() {
		rec.ClearPath()
		return result
	}
	rec.ConsumeStep()
	return result
}
