package roles

import (
	"context"

	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/pathing"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// Upgrader feeds energy into the world controller. A single boolean state:
// acting while it has load, refilling once it runs dry.
type Upgrader struct{}

// Role identifies the behavior's role.
func (u *Upgrader) Role() agent.Role {
	return agent.RoleUpgrader
}

// Decide runs the upgrader logic for one tick.
func (u *Upgrader) Decide(ctx context.Context, rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record) (Outcome, error) {
	switch {
	case rec.State == agent.StateActing && snap.Empty():
		rec.State = agent.StateRefilling
		rec.ClearPath()
	case rec.State == agent.StateRefilling && snap.Full():
		rec.State = agent.StateActing
		rec.ClearPath()
	}

	if rec.State == agent.StateRefilling {
		return refill(rc, snap, rec, rc.Signals.ControllerRelayID), nil
	}

	controller := rc.View.Controller()
	if controller == nil {
		return idle(), nil
	}
	if !snap.Pos.InRange(controller.Pos, rc.Tuning.UpgradeRange) {
		result := rc.Mover.ResolveMovement(rc.Actions, rec, snap.Pos, controller.Pos, rc.Tick, pathing.RecomputeSameTick)
		return Outcome{Action: "move", TargetID: controller.ID, Result: result}, nil
	}
	result := rc.Actions.Upgrade(snap.ID, controller.ID)
	return Outcome{Action: "upgrade", TargetID: controller.ID, Result: result}, nil
}
