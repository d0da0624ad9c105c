package helpers

import (
	"fmt"

	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// ActionCall records one invocation of an action primitive.
type ActionCall struct {
	Method string
	Args   []string
	Amount int
}

// RecordingActions is a configurable fake for the action surface. Every
// primitive returns ResultOK unless a result is stubbed for its method
// name, and every call is recorded in order.
type RecordingActions struct {
	Calls   []ActionCall
	Results map[string]shared.ActionResult
}

// NewRecordingActions creates an empty recording fake.
func NewRecordingActions() *RecordingActions {
	return &RecordingActions{Results: make(map[string]shared.ActionResult)}
}

// Stub sets the result returned by the named method.
func (r *RecordingActions) Stub(method string, result shared.ActionResult) {
	r.Results[method] = result
}

// CallsTo returns the recorded calls for one method.
func (r *RecordingActions) CallsTo(method string) []ActionCall {
	var out []ActionCall
	for _, c := range r.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (r *RecordingActions) record(method string, amount int, args ...string) shared.ActionResult {
	r.Calls = append(r.Calls, ActionCall{Method: method, Args: args, Amount: amount})
	if result, ok := r.Results[method]; ok {
		return result
	}
	return shared.ResultOK
}

func (r *RecordingActions) MoveAlongPath(agentID string, steps []snapshot.Step) shared.ActionResult {
	return r.record("MoveAlongPath", len(steps), agentID)
}

func (r *RecordingActions) Harvest(agentID, nodeID string) shared.ActionResult {
	return r.record("Harvest", 0, agentID, nodeID)
}

func (r *RecordingActions) HarvestDeposit(agentID, depositID string) shared.ActionResult {
	return r.record("HarvestDeposit", 0, agentID, depositID)
}

func (r *RecordingActions) Transfer(agentID, facilityID string, res shared.ResourceType, amount int) shared.ActionResult {
	return r.record("Transfer", amount, agentID, facilityID, string(res))
}

func (r *RecordingActions) Withdraw(agentID, sourceID string, res shared.ResourceType, amount int) shared.ActionResult {
	return r.record("Withdraw", amount, agentID, sourceID, string(res))
}

func (r *RecordingActions) Pickup(agentID, droppedID string) shared.ActionResult {
	return r.record("Pickup", 0, agentID, droppedID)
}

func (r *RecordingActions) Build(agentID, orderID string) shared.ActionResult {
	return r.record("Build", 0, agentID, orderID)
}

func (r *RecordingActions) Repair(agentID, targetID string) shared.ActionResult {
	return r.record("Repair", 0, agentID, targetID)
}

func (r *RecordingActions) Upgrade(agentID, controllerID string) shared.ActionResult {
	return r.record("Upgrade", 0, agentID, controllerID)
}

func (r *RecordingActions) TowerAttack(towerID, targetID string) shared.ActionResult {
	return r.record("TowerAttack", 0, towerID, targetID)
}

func (r *RecordingActions) TowerHeal(towerID, agentID string) shared.ActionResult {
	return r.record("TowerHeal", 0, towerID, agentID)
}

func (r *RecordingActions) TowerRepair(towerID, facilityID string) shared.ActionResult {
	return r.record("TowerRepair", 0, towerID, facilityID)
}

func (r *RecordingActions) RelayPush(senderID, receiverID string, amount int) shared.ActionResult {
	return r.record("RelayPush", amount, senderID, receiverID)
}

func (r *RecordingActions) RunReaction(outputID, inputAID, inputBID string) shared.ActionResult {
	return r.record("RunReaction", 0, outputID, inputAID, inputBID)
}

func (r *RecordingActions) ProduceAgent(spawnID, name string, body []snapshot.BodyPart) shared.ActionResult {
	return r.record("ProduceAgent", len(body), spawnID, name)
}

func (r *RecordingActions) CreateConstructionOrder(pos shared.Position, t snapshot.FacilityType) shared.ActionResult {
	return r.record("CreateConstructionOrder", 0, fmt.Sprintf("%d:%d", pos.X, pos.Y), string(t))
}

var _ snapshot.Actions = (*RecordingActions)(nil)

// LinePathFinder computes straight-line Chebyshev walks, matching the
// simulator's pathfinding.
type LinePathFinder struct{}

func (LinePathFinder) FindPath(from, to shared.Position) ([]snapshot.Step, error) {
	if from.WorldID != to.WorldID {
		return nil, shared.ErrNoPath
	}
	var steps []snapshot.Step
	x, y := from.X, from.Y
	for x != to.X || y != to.Y {
		step := snapshot.Step{DX: stepSign(to.X - x), DY: stepSign(to.Y - y)}
		steps = append(steps, step)
		x += int(step.DX)
		y += int(step.DY)
	}
	if len(steps) == 0 {
		return nil, shared.ErrNoPath
	}
	return steps, nil
}

func stepSign(v int) int8 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
