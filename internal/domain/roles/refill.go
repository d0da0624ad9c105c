package roles

import (
	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/pathing"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// refill tops up a working agent from the best available energy source:
// the dedicated relay when present and non-empty, then any buffer or
// central storage holding energy, then a raw extraction node as last
// resort. Shared by upgraders and builders.
func refill(rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record, dedicatedRelayID string) Outcome {
	if dedicatedRelayID != "" {
		if f, ok := rc.View.Facility(dedicatedRelayID); ok && f.Stored(shared.ResourceEnergy) > 0 {
			return withdrawOrMove(rc, snap, rec, f)
		}
	}

	for _, f := range rc.View.OfType(snapshot.FacilityBuffer) {
		if f.Stored(shared.ResourceEnergy) > 0 {
			return withdrawOrMove(rc, snap, rec, f)
		}
	}
	if storage := rc.View.Storage(); storage != nil && storage.Stored(shared.ResourceEnergy) > 0 {
		return withdrawOrMove(rc, snap, rec, storage)
	}

	for i := range rc.View.Nodes {
		node := &rc.View.Nodes[i]
		if node.Remaining == 0 {
			continue
		}
		if !snap.Pos.IsAdjacent(node.Pos) {
			result := rc.Mover.ResolveMovement(rc.Actions, rec, snap.Pos, node.Pos, rc.Tick, pathing.RecomputeSameTick)
			return Outcome{Action: "move", TargetID: node.ID, Result: result}
		}
		result := rc.Actions.Harvest(snap.ID, node.ID)
		return Outcome{Action: "harvest", TargetID: node.ID, Result: result}
	}

	return idle()
}

func withdrawOrMove(rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record, f *snapshot.FacilitySnapshot) Outcome {
	if !snap.Pos.IsAdjacent(f.Pos) {
		result := rc.Mover.ResolveMovement(rc.Actions, rec, snap.Pos, f.Pos, rc.Tick, pathing.RecomputeSameTick)
		return Outcome{Action: "move", TargetID: f.ID, Result: result}
	}
	result := rc.Actions.Withdraw(snap.ID, f.ID, shared.ResourceEnergy, snap.Capacity-snap.Load)
	return Outcome{Action: "withdraw", TargetID: f.ID, Result: result}
}
