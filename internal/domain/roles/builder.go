package roles

import (
	"context"

	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/pathing"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// Builder works pending construction orders, nearest first. Same boolean
// state machine as the upgrader; refilling has no dedicated relay.
type Builder struct{}

// Role identifies the behavior's role.
func (b *Builder) Role() agent.Role {
	return agent.RoleBuilder
}

// Decide runs the builder logic for one tick.
func (b *Builder) Decide(ctx context.Context, rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record) (Outcome, error) {
	switch {
	case rec.State == agent.StateActing && snap.Empty():
		rec.State = agent.StateRefilling
		rec.ClearTarget()
		rec.ClearPath()
	case rec.State == agent.StateRefilling && snap.Full():
		rec.State = agent.StateActing
		rec.ClearPath()
	}

	if rec.State == agent.StateRefilling {
		return refill(rc, snap, rec, ""), nil
	}

	order := b.resolveOrder(rc, rec, snap)
	if order == nil {
		rec.ClearTarget()
		return idle(), nil
	}
	rec.SetTarget(order.ID)

	if !snap.Pos.InRange(order.Pos, rc.Tuning.BuildRange) {
		result := rc.Mover.ResolveMovement(rc.Actions, rec, snap.Pos, order.Pos, rc.Tick, pathing.RecomputeSameTick)
		return Outcome{Action: "move", TargetID: order.ID, Result: result}, nil
	}
	result := rc.Actions.Build(snap.ID, order.ID)
	if result.StaleReference() {
		rec.ClearTarget()
	}
	return Outcome{Action: "build", TargetID: order.ID, Result: result}, nil
}

func (b *Builder) resolveOrder(rc *TickContext, rec *agent.Record, snap snapshot.AgentSnapshot) *snapshot.ConstructionOrder {
	if rec.TargetID != "" {
		for i := range rc.View.Orders {
			if rc.View.Orders[i].ID == rec.TargetID {
				return &rc.View.Orders[i]
			}
		}
		rec.ClearTarget()
	}

	var best *snapshot.ConstructionOrder
	bestRange := 0
	for i := range rc.View.Orders {
		o := &rc.View.Orders[i]
		r := o.Pos.RangeTo(snap.Pos)
		if best == nil || r < bestRange {
			best = o
			bestRange = r
		}
	}
	return best
}
