package sim

import (
	"fmt"

	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// simActions implements the action primitives against the simulator state.
// Semantics mirror the real world surface: out-of-range, missing-object and
// full-store conditions come back as result codes, never as errors.
type simActions struct {
	sim *Simulator
}

const (
	harvestPerWork = 2
	buildPerWork   = 5
	repairPerHit   = 100
	towerDamage    = 150
	towerHealing   = 100
	reactionBatch  = 5
)

func (a *simActions) findAgent(agentID string) (*worldState, *agentState) {
	for _, w := range a.sim.worlds {
		if ag, ok := w.agents[agentID]; ok {
			return w, ag
		}
	}
	return nil, nil
}

func (a *simActions) MoveAlongPath(agentID string, steps []snapshot.Step) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	_, ag := a.findAgent(agentID)
	if ag == nil {
		return shared.ResultNotFound
	}
	if len(steps) == 0 {
		return shared.ResultInvalid
	}
	ag.snap.Pos.X += int(steps[0].DX)
	ag.snap.Pos.Y += int(steps[0].DY)
	return shared.ResultOK
}

func (a *simActions) Harvest(agentID, nodeID string) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, ag := a.findAgent(agentID)
	if ag == nil {
		return shared.ResultNotFound
	}
	node, ok := w.nodes[nodeID]
	if !ok {
		return shared.ResultNotFound
	}
	if !ag.snap.Pos.IsAdjacent(node.Pos) {
		return shared.ResultNotInRange
	}
	if node.Remaining == 0 {
		return shared.ResultNotEnough
	}
	if ag.snap.Full() {
		return shared.ResultFull
	}

	amount := min3(harvestPerWork*workParts(ag.body), node.Remaining, ag.snap.Capacity-ag.snap.Load)
	node.Remaining -= amount
	ag.snap.Load += amount
	return shared.ResultOK
}

func (a *simActions) HarvestDeposit(agentID, depositID string) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, ag := a.findAgent(agentID)
	if ag == nil {
		return shared.ResultNotFound
	}
	dep, ok := w.deposits[depositID]
	if !ok {
		return shared.ResultNotFound
	}
	if !ag.snap.Pos.IsAdjacent(dep.Pos) {
		return shared.ResultNotInRange
	}
	if dep.Remaining == 0 {
		return shared.ResultNotEnough
	}
	if ag.snap.Full() {
		return shared.ResultFull
	}

	amount := min3(harvestPerWork*workParts(ag.body), dep.Remaining, ag.snap.Capacity-ag.snap.Load)
	dep.Remaining -= amount
	ag.snap.Load += amount
	if dep.Remaining == 0 {
		delete(w.deposits, depositID)
	}
	return shared.ResultOK
}

func (a *simActions) Transfer(agentID, facilityID string, res shared.ResourceType, amount int) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, ag := a.findAgent(agentID)
	if ag == nil {
		return shared.ResultNotFound
	}
	f, ok := w.facilities[facilityID]
	if !ok {
		return shared.ResultNotFound
	}
	if !ag.snap.Pos.IsAdjacent(f.Pos) {
		return shared.ResultNotInRange
	}
	if ag.snap.Empty() {
		return shared.ResultNotEnough
	}
	if f.FreeCapacity() == 0 {
		return shared.ResultFull
	}

	moved := min3(amount, ag.snap.Load, f.FreeCapacity())
	if moved <= 0 {
		return shared.ResultInvalid
	}
	ag.snap.Load -= moved
	addToStore(f, res, moved)
	return shared.ResultOK
}

func (a *simActions) Withdraw(agentID, sourceID string, res shared.ResourceType, amount int) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, ag := a.findAgent(agentID)
	if ag == nil {
		return shared.ResultNotFound
	}
	f, ok := w.facilities[sourceID]
	if !ok {
		return shared.ResultNotFound
	}
	if !ag.snap.Pos.IsAdjacent(f.Pos) {
		return shared.ResultNotInRange
	}
	if f.Stored(res) == 0 {
		return shared.ResultNotEnough
	}
	if ag.snap.Full() {
		return shared.ResultFull
	}

	moved := min3(amount, f.Stored(res), ag.snap.Capacity-ag.snap.Load)
	if moved <= 0 {
		return shared.ResultInvalid
	}
	f.Store[res] -= moved
	ag.snap.Load += moved
	return shared.ResultOK
}

func (a *simActions) Pickup(agentID, droppedID string) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, ag := a.findAgent(agentID)
	if ag == nil {
		return shared.ResultNotFound
	}
	d, ok := w.dropped[droppedID]
	if !ok {
		return shared.ResultNotFound
	}
	if !ag.snap.Pos.IsAdjacent(d.Pos) {
		return shared.ResultNotInRange
	}
	if ag.snap.Full() {
		return shared.ResultFull
	}

	moved := minInt(d.Amount, ag.snap.Capacity-ag.snap.Load)
	ag.snap.Load += moved
	d.Amount -= moved
	if d.Amount == 0 {
		delete(w.dropped, droppedID)
	}
	return shared.ResultOK
}

func (a *simActions) Build(agentID, orderID string) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, ag := a.findAgent(agentID)
	if ag == nil {
		return shared.ResultNotFound
	}
	order, ok := w.orders[orderID]
	if !ok {
		return shared.ResultNotFound
	}
	if ag.snap.Pos.RangeTo(order.Pos) > 3 {
		return shared.ResultNotInRange
	}
	if ag.snap.Empty() {
		return shared.ResultNotEnough
	}

	work := min3(buildPerWork*workParts(ag.body), ag.snap.Load, order.Total-order.Progress)
	ag.snap.Load -= work
	order.Progress += work
	if order.Progress >= order.Total {
		delete(w.orders, orderID)
		w.info.PendingConstruction = len(w.orders)
		f := builtFacility(order)
		w.facilities[f.ID] = f
	}
	return shared.ResultOK
}

func (a *simActions) Repair(agentID, targetID string) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, ag := a.findAgent(agentID)
	if ag == nil {
		return shared.ResultNotFound
	}
	f, ok := w.facilities[targetID]
	if !ok {
		return shared.ResultNotFound
	}
	if ag.snap.Pos.RangeTo(f.Pos) > 3 {
		return shared.ResultNotInRange
	}
	if ag.snap.Empty() {
		return shared.ResultNotEnough
	}

	ag.snap.Load--
	f.Integrity = minInt(f.Integrity+repairPerHit, f.MaxIntegrity)
	return shared.ResultOK
}

func (a *simActions) Upgrade(agentID, controllerID string) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, ag := a.findAgent(agentID)
	if ag == nil {
		return shared.ResultNotFound
	}
	ctrl, ok := w.facilities[controllerID]
	if !ok || ctrl.Type != snapshot.FacilityController {
		return shared.ResultNotFound
	}
	if ag.snap.Pos.RangeTo(ctrl.Pos) > 3 {
		return shared.ResultNotInRange
	}
	if ag.snap.Empty() {
		return shared.ResultNotEnough
	}

	spent := min3(workParts(ag.body), ag.snap.Load, 50)
	ag.snap.Load -= spent
	w.upgradeProgress += spent
	if w.upgradeProgress >= 1000*w.info.Tier {
		w.upgradeProgress = 0
		w.info.Tier++
		w.info.ProductionCapacityMax += 250
	}
	return shared.ResultOK
}

func (a *simActions) TowerAttack(towerID, targetID string) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, tower := a.findFacility(towerID)
	if tower == nil {
		return shared.ResultNotFound
	}
	h, ok := w.hostiles[targetID]
	if !ok {
		return shared.ResultNotFound
	}
	if tower.Stored(shared.ResourceEnergy) < 10 {
		return shared.ResultNotEnough
	}
	tower.Store[shared.ResourceEnergy] -= 10
	h.Health -= towerDamage
	if h.Health <= 0 {
		delete(w.hostiles, targetID)
	}
	return shared.ResultOK
}

func (a *simActions) TowerHeal(towerID, agentID string) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, tower := a.findFacility(towerID)
	if tower == nil {
		return shared.ResultNotFound
	}
	ag, ok := w.agents[agentID]
	if !ok {
		return shared.ResultNotFound
	}
	if tower.Stored(shared.ResourceEnergy) < 10 {
		return shared.ResultNotEnough
	}
	tower.Store[shared.ResourceEnergy] -= 10
	ag.snap.Health = minInt(ag.snap.Health+towerHealing, ag.snap.MaxHealth)
	return shared.ResultOK
}

func (a *simActions) TowerRepair(towerID, facilityID string) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, tower := a.findFacility(towerID)
	if tower == nil {
		return shared.ResultNotFound
	}
	f, ok := w.facilities[facilityID]
	if !ok {
		return shared.ResultNotFound
	}
	if tower.Stored(shared.ResourceEnergy) < 10 {
		return shared.ResultNotEnough
	}
	tower.Store[shared.ResourceEnergy] -= 10
	f.Integrity = minInt(f.Integrity+2*repairPerHit, f.MaxIntegrity)
	return shared.ResultOK
}

func (a *simActions) RelayPush(senderID, receiverID string, amount int) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, sender := a.findFacility(senderID)
	if sender == nil {
		return shared.ResultNotFound
	}
	receiver, ok := w.facilities[receiverID]
	if !ok {
		return shared.ResultNotFound
	}
	if sender.Cooldown > 0 {
		return shared.ResultOnCooldown
	}
	moved := min3(amount, sender.Stored(shared.ResourceEnergy), receiver.FreeCapacity())
	if moved <= 0 {
		return shared.ResultNotEnough
	}
	sender.Store[shared.ResourceEnergy] -= moved
	addToStore(receiver, shared.ResourceEnergy, moved)
	sender.Cooldown = 1
	return shared.ResultOK
}

func (a *simActions) RunReaction(outputID, inputAID, inputBID string) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, output := a.findFacility(outputID)
	if output == nil {
		return shared.ResultNotFound
	}
	inputA, okA := w.facilities[inputAID]
	inputB, okB := w.facilities[inputBID]
	if !okA || !okB {
		return shared.ResultNotFound
	}
	if output.Cooldown > 0 {
		return shared.ResultOnCooldown
	}
	if inputA.Stored(shared.ResourceCompoundA) < reactionBatch || inputB.Stored(shared.ResourceCompoundB) < reactionBatch {
		return shared.ResultNotEnough
	}
	if output.FreeCapacity() < reactionBatch {
		return shared.ResultFull
	}
	inputA.Store[shared.ResourceCompoundA] -= reactionBatch
	inputB.Store[shared.ResourceCompoundB] -= reactionBatch
	addToStore(output, shared.ResourceCompoundAB, reactionBatch)
	output.Cooldown = 5
	return shared.ResultOK
}

func (a *simActions) ProduceAgent(spawnID, name string, body []snapshot.BodyPart) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, spawn := a.findFacility(spawnID)
	if spawn == nil || spawn.Type != snapshot.FacilitySpawn {
		return shared.ResultNotFound
	}
	if spawn.Cooldown > 0 {
		return shared.ResultOnCooldown
	}
	cost := snapshot.BodyCost(body)
	if cost > w.info.ProductionCapacity {
		return shared.ResultNotEnough
	}
	if _, exists := w.agents[name]; exists {
		return shared.ResultInvalid
	}

	w.info.ProductionCapacity -= cost
	spawn.Cooldown = shared.Tick(3 * len(body))

	capacity := 0
	for _, p := range body {
		if p == snapshot.PartCarry {
			capacity += 50
		}
	}
	w.agents[name] = &agentState{
		snap: snapshot.AgentSnapshot{
			ID:            name,
			Name:          name,
			Pos:           shared.Position{WorldID: w.info.ID, X: spawn.Pos.X + 1, Y: spawn.Pos.Y},
			Capacity:      capacity,
			RemainingLife: shared.Tick(a.sim.agentLife),
			Health:        100 * len(body),
			MaxHealth:     100 * len(body),
		},
		body: body,
	}
	w.agentOrder = append(w.agentOrder, name)
	return shared.ResultOK
}

func (a *simActions) CreateConstructionOrder(pos shared.Position, t snapshot.FacilityType) shared.ActionResult {
	a.sim.mu.Lock()
	defer a.sim.mu.Unlock()

	w, ok := a.sim.worlds[pos.WorldID]
	if !ok {
		return shared.ResultNotFound
	}
	id := fmt.Sprintf("%s-order-%d", pos.WorldID, w.orderSeq)
	w.orderSeq++
	w.orders[id] = &snapshot.ConstructionOrder{
		ID:    id,
		Pos:   pos,
		Type:  t,
		Total: orderTotal(t),
	}
	w.info.PendingConstruction = len(w.orders)
	return shared.ResultOK
}

func (a *simActions) findFacility(id string) (*worldState, *snapshot.FacilitySnapshot) {
	for _, w := range a.sim.worlds {
		if f, ok := w.facilities[id]; ok {
			return w, f
		}
	}
	return nil, nil
}

func builtFacility(order *snapshot.ConstructionOrder) *snapshot.FacilitySnapshot {
	f := &snapshot.FacilitySnapshot{
		ID:           order.ID + "-built",
		Type:         order.Type,
		Pos:          order.Pos,
		Integrity:    order.Total,
		MaxIntegrity: order.Total,
	}
	switch order.Type {
	case snapshot.FacilityBuffer, snapshot.FacilityRelay:
		f.Store = map[shared.ResourceType]int{}
		f.StoreCapacity = 2000
	case snapshot.FacilityStorage:
		f.Store = map[shared.ResourceType]int{}
		f.StoreCapacity = 100000
	}
	return f
}

func orderTotal(t snapshot.FacilityType) int {
	switch t {
	case snapshot.FacilityRoad:
		return 300
	case snapshot.FacilityWall, snapshot.FacilityRampart:
		return 1
	}
	return 3000
}

func workParts(body []snapshot.BodyPart) int {
	count := 0
	for _, p := range body {
		if p == snapshot.PartWork {
			count++
		}
	}
	if count == 0 {
		count = 1
	}
	return count
}

func addToStore(f *snapshot.FacilitySnapshot, res shared.ResourceType, amount int) {
	if f.Store == nil {
		f.Store = map[shared.ResourceType]int{}
	}
	f.Store[res] += amount
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func min3(a, b, c int) int {
	return minInt(a, minInt(b, c))
}
