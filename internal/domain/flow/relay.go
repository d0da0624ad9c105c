package flow

import (
	"github.com/andrescamacho/colonycore-go/internal/domain/colony"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
	"github.com/andrescamacho/colonycore-go/pkg/utils"
)

// RelayCoordinator classifies the relay network and runs the per-tick
// energy pushes. Classification is cached on the world record and only
// refreshed every RefreshPeriod ticks; pushes are idempotent and safe to
// call every tick.
type RelayCoordinator struct {
	// RefreshPeriod is how often the cached classification is rebuilt
	RefreshPeriod shared.Tick

	// PushThreshold is the minimum balance before a relay pushes, and
	// also the per-push amount cap
	PushThreshold int

	// ClassifyRange is the proximity range used by classification rules
	ClassifyRange int
}

// NewRelayCoordinator creates a relay coordinator with standard settings.
func NewRelayCoordinator() *RelayCoordinator {
	return &RelayCoordinator{
		RefreshPeriod: 100,
		PushThreshold: 400,
		ClassifyRange: 2,
	}
}

// Run refreshes classification when due, then executes eligible pushes.
func (c *RelayCoordinator) Run(view *snapshot.View, world *colony.WorldRecord, actions snapshot.Actions, tick shared.Tick) {
	if world.RelaysStale(tick, c.RefreshPeriod) {
		world.Relays = c.classify(view, tick)
	}
	c.push(view, world, actions)
}

// classify assigns each relay exactly one role by spatial proximity,
// first match wins: near an extraction node, then near the controller,
// then near central storage.
func (c *RelayCoordinator) classify(view *snapshot.View, tick shared.Tick) colony.RelayTopology {
	topo := colony.RelayTopology{RefreshedAt: tick}

	for _, relay := range view.OfType(snapshot.FacilityRelay) {
		if c.nearNode(view, relay.Pos) {
			topo.ExtractorRelayIDs = append(topo.ExtractorRelayIDs, relay.ID)
			continue
		}
		if ctrl := view.Controller(); ctrl != nil && relay.Pos.InRange(ctrl.Pos, c.ClassifyRange) {
			topo.ControllerRelayID = relay.ID
			continue
		}
		if storage := view.Storage(); storage != nil && relay.Pos.InRange(storage.Pos, c.ClassifyRange) {
			topo.HubRelayID = relay.ID
		}
	}
	return topo
}

func (c *RelayCoordinator) nearNode(view *snapshot.View, pos shared.Position) bool {
	for i := range view.Nodes {
		if view.Nodes[i].Pos.InRange(pos, c.ClassifyRange) {
			return true
		}
	}
	return false
}

// push moves energy downstream. A push never exceeds the sender's balance
// nor the receiver's free room, and is skipped entirely while the sender
// is on cooldown.
func (c *RelayCoordinator) push(view *snapshot.View, world *colony.WorldRecord, actions snapshot.Actions) {
	controller, _ := view.Facility(world.Relays.ControllerRelayID)
	hub, _ := view.Facility(world.Relays.HubRelayID)

	for _, id := range world.Relays.ExtractorRelayIDs {
		sender, ok := view.Facility(id)
		if !ok || sender.Cooldown > 0 {
			continue
		}
		balance := sender.Stored(shared.ResourceEnergy)
		if balance < c.PushThreshold {
			continue
		}

		receiver := controller
		if receiver == nil || receiver.FreeCapacity() == 0 {
			receiver = hub
		}
		if receiver == nil || receiver.FreeCapacity() == 0 {
			continue
		}

		amount := PushAmount(balance, receiver.FreeCapacity(), c.PushThreshold)
		actions.RelayPush(sender.ID, receiver.ID, amount)
	}

	// hub forwards surplus toward the controller when both are eligible
	if hub != nil && controller != nil && hub.Cooldown == 0 {
		balance := hub.Stored(shared.ResourceEnergy)
		if balance >= c.PushThreshold && controller.FreeCapacity() > 0 {
			amount := PushAmount(balance, controller.FreeCapacity(), c.PushThreshold)
			actions.RelayPush(hub.ID, controller.ID, amount)
		}
	}
}

// PushAmount clamps a relay push to sender balance, receiver free room and
// the threshold cap.
func PushAmount(senderBalance, receiverFree, thresholdCap int) int {
	return utils.Min3(senderBalance, receiverFree, thresholdCap)
}
