package roles

import (
	"context"

	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/pathing"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// Generalist is the emergency bootstrap agent: harvest from the nearest
// node until full, carry it straight to a production facility. It exists
// only to restart a collapsed economy and is replaced by specialists as
// soon as the scheduler can afford them.
type Generalist struct{}

// Role identifies the behavior's role.
func (g *Generalist) Role() agent.Role {
	return agent.RoleGeneralist
}

// Decide runs the generalist logic for one tick.
func (g *Generalist) Decide(ctx context.Context, rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record) (Outcome, error) {
	switch {
	case rec.State == agent.StateCollecting && snap.Full():
		rec.State = agent.StateDelivering
		rec.ClearPath()
	case rec.State == agent.StateDelivering && snap.Empty():
		rec.State = agent.StateCollecting
		rec.ClearPath()
	}

	if rec.State == agent.StateDelivering {
		for _, t := range []snapshot.FacilityType{snapshot.FacilitySpawn, snapshot.FacilityExpansion} {
			for _, f := range rc.View.OfType(t) {
				if f.FreeCapacity() == 0 {
					continue
				}
				if !snap.Pos.IsAdjacent(f.Pos) {
					result := rc.Mover.ResolveMovement(rc.Actions, rec, snap.Pos, f.Pos, rc.Tick, pathing.RecomputeSameTick)
					return Outcome{Action: "move", TargetID: f.ID, Result: result}, nil
				}
				result := rc.Actions.Transfer(snap.ID, f.ID, shared.ResourceEnergy, snap.Load)
				return Outcome{Action: "deliver", TargetID: f.ID, Result: result}, nil
			}
		}
		return idle(), nil
	}

	var node *snapshot.NodeSnapshot
	bestRange := 0
	for i := range rc.View.Nodes {
		n := &rc.View.Nodes[i]
		if n.Remaining == 0 {
			continue
		}
		r := n.Pos.RangeTo(snap.Pos)
		if node == nil || r < bestRange {
			node = n
			bestRange = r
		}
	}
	if node == nil {
		return idle(), nil
	}
	if !snap.Pos.IsAdjacent(node.Pos) {
		result := rc.Mover.ResolveMovement(rc.Actions, rec, snap.Pos, node.Pos, rc.Tick, pathing.RecomputeSameTick)
		return Outcome{Action: "move", TargetID: node.ID, Result: result}, nil
	}
	result := rc.Actions.Harvest(snap.ID, node.ID)
	return Outcome{Action: "harvest", TargetID: node.ID, Result: result}, nil
}
