package roles

import (
	"context"

	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/pathing"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// Hauler moves resources between buffers, dropped piles, salvage and the
// facilities that need them. Two states: collecting until full, delivering
// until empty. Cached targets are re-evaluated only when they become
// invalid; a finished delivery clears the target immediately so the next
// tick re-evaluates against current priorities.
type Hauler struct{}

// Role identifies the behavior's role.
func (h *Hauler) Role() agent.Role {
	return agent.RoleHauler
}

// Decide runs the hauler state machine for one tick.
func (h *Hauler) Decide(ctx context.Context, rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record) (Outcome, error) {
	h.transition(snap, rec)

	if rec.State == agent.StateDelivering {
		return h.deliver(rc, snap, rec), nil
	}
	return h.collect(rc, snap, rec), nil
}

// transition flips the state on the load thresholds. It clears the cached
// target only when the state actually changes, so repeated calls at the
// same load are no-ops beyond the first.
func (h *Hauler) transition(snap snapshot.AgentSnapshot, rec *agent.Record) {
	switch {
	case rec.State == agent.StateCollecting && snap.Full():
		rec.State = agent.StateDelivering
		rec.ClearTarget()
		rec.ClearPath()
	case rec.State == agent.StateDelivering && snap.Empty():
		rec.State = agent.StateCollecting
		rec.ClearTarget()
		rec.ClearPath()
	}
}

// --- collecting ---

type sourceKind int

const (
	sourceFacility sourceKind = iota
	sourceDropped
	sourceSalvage
)

type collectSource struct {
	id   string
	kind sourceKind
	pos  shared.Position
}

func (h *Hauler) collect(rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record) Outcome {
	src := h.resolveSource(rc, rec)
	if src == nil {
		rec.ClearTarget()
		return idle()
	}
	rec.SetTarget(src.id)

	if !snap.Pos.IsAdjacent(src.pos) {
		result := rc.Mover.ResolveMovement(rc.Actions, rec, snap.Pos, src.pos, rc.Tick, pathing.RecomputeDeferred)
		return Outcome{Action: "move", TargetID: src.id, Result: result}
	}

	var result shared.ActionResult
	action := "withdraw"
	switch src.kind {
	case sourceDropped:
		action = "pickup"
		result = rc.Actions.Pickup(snap.ID, src.id)
	default:
		result = rc.Actions.Withdraw(snap.ID, src.id, shared.ResourceEnergy, snap.Capacity-snap.Load)
	}

	if result.StaleReference() {
		rec.ClearTarget()
	}
	return Outcome{Action: action, TargetID: src.id, Result: result}
}

// resolveSource returns the cached collection target while it stays valid,
// otherwise walks the fixed priority list:
// buffers above the high-fill threshold, dropped piles above the minimum,
// any non-empty buffer, salvage containers, flagged synthesis draw-downs,
// and finally emergency draw-down from an overfull central storage.
func (h *Hauler) resolveSource(rc *TickContext, rec *agent.Record) *collectSource {
	if rec.TargetID != "" {
		if src := h.lookupSource(rc, rec.TargetID); src != nil {
			return src
		}
		// stale or exhausted: delete the reference, re-derive below
		rec.ClearTarget()
	}

	for _, f := range rc.View.OfType(snapshot.FacilityBuffer) {
		if f.FillFraction() > rc.Tuning.BufferHighFill {
			return &collectSource{id: f.ID, kind: sourceFacility, pos: f.Pos}
		}
	}
	for i := range rc.View.Dropped {
		d := &rc.View.Dropped[i]
		if d.Amount >= rc.Tuning.MinDroppedAmount {
			return &collectSource{id: d.ID, kind: sourceDropped, pos: d.Pos}
		}
	}
	for _, f := range rc.View.OfType(snapshot.FacilityBuffer) {
		if f.StoredTotal() > 0 {
			return &collectSource{id: f.ID, kind: sourceFacility, pos: f.Pos}
		}
	}
	for i := range rc.View.Salvage {
		s := &rc.View.Salvage[i]
		if s.StoredTotal() > 0 {
			return &collectSource{id: s.ID, kind: sourceSalvage, pos: s.Pos}
		}
	}
	for _, id := range rc.Signals.DrawDownIDs {
		if f, ok := rc.View.Facility(id); ok && f.StoredTotal() > 0 {
			return &collectSource{id: f.ID, kind: sourceFacility, pos: f.Pos}
		}
	}
	if storage := rc.View.Storage(); storage != nil &&
		storage.Stored(shared.ResourceEnergy) > rc.Tuning.StorageEmergencyLevel {
		return &collectSource{id: storage.ID, kind: sourceFacility, pos: storage.Pos}
	}
	return nil
}

func (h *Hauler) lookupSource(rc *TickContext, id string) *collectSource {
	if f, ok := rc.View.Facility(id); ok {
		if f.StoredTotal() > 0 {
			return &collectSource{id: f.ID, kind: sourceFacility, pos: f.Pos}
		}
		return nil
	}
	for i := range rc.View.Dropped {
		if rc.View.Dropped[i].ID == id {
			return &collectSource{id: id, kind: sourceDropped, pos: rc.View.Dropped[i].Pos}
		}
	}
	for i := range rc.View.Salvage {
		if rc.View.Salvage[i].ID == id && rc.View.Salvage[i].StoredTotal() > 0 {
			return &collectSource{id: id, kind: sourceSalvage, pos: rc.View.Salvage[i].Pos}
		}
	}
	return nil
}

// --- delivering ---

func (h *Hauler) deliver(rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record) Outcome {
	sink := h.resolveSink(rc, rec)
	if sink == nil {
		rec.ClearTarget()
		return idle()
	}
	rec.SetTarget(sink.ID)

	if !snap.Pos.IsAdjacent(sink.Pos) {
		result := rc.Mover.ResolveMovement(rc.Actions, rec, snap.Pos, sink.Pos, rc.Tick, pathing.RecomputeDeferred)
		return Outcome{Action: "move", TargetID: sink.ID, Result: result}
	}

	result := rc.Actions.Transfer(snap.ID, sink.ID, shared.ResourceEnergy, snap.Load)
	if result.OK() || result.StaleReference() || result == shared.ResultFull {
		// a finished or dead-ended delivery always re-evaluates next tick
		// so a stale low-value sink is never reused once a higher-priority
		// need appears
		rec.ClearTarget()
	}
	return Outcome{Action: "deliver", TargetID: sink.ID, Result: result}
}

// resolveSink returns the cached delivery target while it still needs
// resource, otherwise walks the fixed priority list: production facilities,
// expansion facilities, defensive facilities below reserve, the exchange
// when flagged, and finally central storage.
func (h *Hauler) resolveSink(rc *TickContext, rec *agent.Record) *snapshot.FacilitySnapshot {
	if rec.TargetID != "" {
		if f, ok := rc.View.Facility(rec.TargetID); ok && f.FreeCapacity() > 0 {
			return f
		}
		rec.ClearTarget()
	}

	for _, f := range rc.View.OfType(snapshot.FacilitySpawn) {
		if f.FreeCapacity() > 0 {
			return f
		}
	}
	for _, f := range rc.View.OfType(snapshot.FacilityExpansion) {
		if f.FreeCapacity() > 0 {
			return f
		}
	}
	for _, f := range rc.View.OfType(snapshot.FacilityTower) {
		if f.Stored(shared.ResourceEnergy) < rc.Tuning.TowerReserve && f.FreeCapacity() > 0 {
			return f
		}
	}
	if rc.Signals.ExchangeNeedsEnergy {
		if f, ok := rc.View.Facility(rc.Signals.ExchangeID); ok && f.FreeCapacity() > 0 {
			return f
		}
	}
	if storage := rc.View.Storage(); storage != nil && storage.FreeCapacity() > 0 {
		return storage
	}
	return nil
}
