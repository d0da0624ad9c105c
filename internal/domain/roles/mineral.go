package roles

import (
	"context"

	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/pathing"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// MineralExtractor harvests the world's depletable deposit through the
// extraction facility and carries the ore to central storage. Two guard
// preconditions short-circuit the machine: a depleted deposit parks the
// agent at its safe anchor, and a missing or cooling extraction facility
// is signaled without retrying the harvest.
type MineralExtractor struct{}

// Role identifies the behavior's role.
func (m *MineralExtractor) Role() agent.Role {
	return agent.RoleMineralExtractor
}

// Decide runs the mineral extractor logic for one tick.
func (m *MineralExtractor) Decide(ctx context.Context, rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record) (Outcome, error) {
	switch {
	case rec.State == agent.StateMining && snap.Full():
		rec.State = agent.StateDepositing
		rec.ClearPath()
	case rec.State == agent.StateDepositing && snap.Empty():
		rec.State = agent.StateMining
		rec.ClearPath()
	}

	if rec.State == agent.StateDepositing {
		return m.deposit(rc, snap, rec), nil
	}
	return m.mine(rc, snap, rec), nil
}

func (m *MineralExtractor) mine(rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record) Outcome {
	if len(rc.View.Deposits) == 0 {
		return idle()
	}
	deposit := &rc.View.Deposits[0]

	if deposit.Remaining == 0 {
		// deposit depleted: wait near the anchor until it regenerates
		anchor := rec.Anchor()
		if !snap.Pos.InRange(anchor, 2) {
			result := rc.Mover.ResolveMovement(rc.Actions, rec, snap.Pos, anchor, rc.Tick, pathing.RecomputeSameTick)
			return Outcome{Action: "move", Result: result}
		}
		return idle()
	}

	extractor := rc.View.FirstOfType(snapshot.FacilityExtractor)
	if extractor == nil || extractor.Cooldown > 0 {
		// signaled, not retried: the tick boundary is the retry interval
		return Outcome{Action: "wait-extractor", TargetID: deposit.ID, Result: shared.ResultOnCooldown}
	}

	if !snap.Pos.IsAdjacent(deposit.Pos) {
		result := rc.Mover.ResolveMovement(rc.Actions, rec, snap.Pos, deposit.Pos, rc.Tick, pathing.RecomputeSameTick)
		return Outcome{Action: "move", TargetID: deposit.ID, Result: result}
	}
	result := rc.Actions.HarvestDeposit(snap.ID, deposit.ID)
	return Outcome{Action: "harvest", TargetID: deposit.ID, Result: result}
}

func (m *MineralExtractor) deposit(rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record) Outcome {
	storage := rc.View.NearestFacility(snapshot.FacilityStorage, snap.Pos)
	if storage == nil {
		return idle()
	}
	if !snap.Pos.IsAdjacent(storage.Pos) {
		result := rc.Mover.ResolveMovement(rc.Actions, rec, snap.Pos, storage.Pos, rc.Tick, pathing.RecomputeSameTick)
		return Outcome{Action: "move", TargetID: storage.ID, Result: result}
	}
	res := shared.ResourceOre
	if len(rc.View.Deposits) > 0 && rc.View.Deposits[0].Resource != "" {
		res = rc.View.Deposits[0].Resource
	}
	result := rc.Actions.Transfer(snap.ID, storage.ID, res, snap.Load)
	return Outcome{Action: "deliver", TargetID: storage.ID, Result: result}
}
