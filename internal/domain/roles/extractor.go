package roles

import (
	"context"

	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/pathing"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// Extractor is the static harvester parked on its permanently assigned
// extraction node. Once adjacent it keeps the local buffer healthy, builds
// a pending buffer order, and otherwise extracts every tick.
type Extractor struct{}

// Role identifies the behavior's role.
func (e *Extractor) Role() agent.Role {
	return agent.RoleExtractor
}

// Decide runs the extractor logic for one tick.
func (e *Extractor) Decide(ctx context.Context, rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record) (Outcome, error) {
	node, ok := rc.View.Node(rec.AssignedNodeID)
	if !ok {
		// node ids are stable geography; a missing one means the
		// snapshot is partial this tick, not a reassignment
		return idle(), nil
	}

	if !snap.Pos.IsAdjacent(node.Pos) {
		result := rc.Mover.ResolveMovement(rc.Actions, rec, snap.Pos, node.Pos, rc.Tick, pathing.RecomputeSameTick)
		return Outcome{Action: "move", TargetID: node.ID, Result: result}, nil
	}

	buffer := e.adjacentBuffer(rc, snap.Pos)

	if buffer != nil && buffer.IntegrityFraction() < rc.Tuning.BufferRepairFraction && snap.Load > 0 {
		result := rc.Actions.Repair(snap.ID, buffer.ID)
		return Outcome{Action: "repair", TargetID: buffer.ID, Result: result}, nil
	}

	if order := e.adjacentBufferOrder(rc, snap.Pos); order != nil && snap.Load > 0 {
		result := rc.Actions.Build(snap.ID, order.ID)
		return Outcome{Action: "build", TargetID: order.ID, Result: result}, nil
	}

	if snap.Full() {
		if buffer != nil && buffer.FreeCapacity() > 0 {
			result := rc.Actions.Transfer(snap.ID, buffer.ID, shared.ResourceEnergy, snap.Load)
			return Outcome{Action: "deliver", TargetID: buffer.ID, Result: result}, nil
		}
		if sink := e.adjacentNeedFacility(rc, snap.Pos); sink != nil {
			result := rc.Actions.Transfer(snap.ID, sink.ID, shared.ResourceEnergy, snap.Load)
			return Outcome{Action: "deliver", TargetID: sink.ID, Result: result}, nil
		}
		// both agent and buffer full with nowhere to put it: extract
		// anyway and let the overflow drop for haulers
	}

	result := rc.Actions.Harvest(snap.ID, node.ID)
	return Outcome{Action: "harvest", TargetID: node.ID, Result: result}, nil
}

func (e *Extractor) adjacentBuffer(rc *TickContext, pos shared.Position) *snapshot.FacilitySnapshot {
	buffers := rc.View.FacilitiesInRange(snapshot.FacilityBuffer, pos, 1)
	if len(buffers) == 0 {
		return nil
	}
	return buffers[0]
}

func (e *Extractor) adjacentBufferOrder(rc *TickContext, pos shared.Position) *snapshot.ConstructionOrder {
	for i := range rc.View.Orders {
		o := &rc.View.Orders[i]
		if o.Type == snapshot.FacilityBuffer && o.Pos.InRange(pos, 1) {
			return o
		}
	}
	return nil
}

func (e *Extractor) adjacentNeedFacility(rc *TickContext, pos shared.Position) *snapshot.FacilitySnapshot {
	for _, t := range []snapshot.FacilityType{snapshot.FacilitySpawn, snapshot.FacilityExpansion} {
		for _, f := range rc.View.FacilitiesInRange(t, pos, 1) {
			if f.FreeCapacity() > 0 {
				return f
			}
		}
	}
	return nil
}
