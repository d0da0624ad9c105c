package defense

import (
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// TargetKind says what a defensive structure should do to its target.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetAttack
	TargetHeal
	TargetRepair
)

// Target is the arbiter's decision for one defensive structure.
type Target struct {
	Kind TargetKind
	ID   string
}

// Arbiter selects one action per defensive structure per tick by fixed
// priority. Hostiles always outrank maintenance; among hostiles, heal
// capability outranks ranged outranks melee.
type Arbiter struct {
	// WallFloorPerTier scales the perimeter repair floor with tier,
	// capped at WallFloorCap
	WallFloorPerTier int
	WallFloorCap     int

	// StructureRepairFraction is the integrity fraction below which
	// non-perimeter structures become repair targets
	StructureRepairFraction float64

	// RoadRepairFraction is the integrity fraction below which roads and
	// buffers become repair targets
	RoadRepairFraction float64
}

// NewArbiter creates an arbiter with standard thresholds.
func NewArbiter() *Arbiter {
	return &Arbiter{
		WallFloorPerTier:        10000,
		WallFloorCap:            300000,
		StructureRepairFraction: 0.5,
		RoadRepairFraction:      0.9,
	}
}

// Run selects and executes one action per tower.
func (a *Arbiter) Run(view *snapshot.View, tier int, agents []snapshot.AgentSnapshot, actions snapshot.Actions) {
	for _, tower := range view.OfType(snapshot.FacilityTower) {
		target := a.SelectTarget(view, tier, agents)
		switch target.Kind {
		case TargetAttack:
			actions.TowerAttack(tower.ID, target.ID)
		case TargetHeal:
			actions.TowerHeal(tower.ID, target.ID)
		case TargetRepair:
			actions.TowerRepair(tower.ID, target.ID)
		}
	}
}

// SelectTarget walks the strict priority ladder; the first non-empty
// category wins.
func (a *Arbiter) SelectTarget(view *snapshot.View, tier int, agents []snapshot.AgentSnapshot) Target {
	if id := a.selectHostile(view); id != "" {
		return Target{Kind: TargetAttack, ID: id}
	}
	if id := a.selectDamagedAgent(agents); id != "" {
		return Target{Kind: TargetHeal, ID: id}
	}
	if id := a.selectRepair(view, tier); id != "" {
		return Target{Kind: TargetRepair, ID: id}
	}
	return Target{Kind: TargetNone}
}

// selectHostile prefers heal-capable, then ranged, then melee, then any
// hostile; ties break toward the hostile closest to a production facility.
func (a *Arbiter) selectHostile(view *snapshot.View) string {
	if len(view.Hostiles) == 0 {
		return ""
	}
	categories := []func(h *snapshot.HostileSnapshot) bool{
		func(h *snapshot.HostileSnapshot) bool { return h.HealParts > 0 },
		func(h *snapshot.HostileSnapshot) bool { return h.RangedParts > 0 },
		func(h *snapshot.HostileSnapshot) bool { return h.MeleeParts > 0 },
		func(h *snapshot.HostileSnapshot) bool { return true },
	}
	for _, matches := range categories {
		if id := a.closestToSpawn(view, matches); id != "" {
			return id
		}
	}
	return ""
}

func (a *Arbiter) closestToSpawn(view *snapshot.View, matches func(h *snapshot.HostileSnapshot) bool) string {
	spawn := view.FirstOfType(snapshot.FacilitySpawn)

	var best *snapshot.HostileSnapshot
	bestRange := 0
	for i := range view.Hostiles {
		h := &view.Hostiles[i]
		if !matches(h) {
			continue
		}
		r := 0
		if spawn != nil {
			r = h.Pos.RangeTo(spawn.Pos)
		}
		if best == nil || r < bestRange {
			best = h
			bestRange = r
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

// selectDamagedAgent heals the friendly agent with the lowest absolute
// health.
func (a *Arbiter) selectDamagedAgent(agents []snapshot.AgentSnapshot) string {
	var best *snapshot.AgentSnapshot
	for i := range agents {
		ag := &agents[i]
		if ag.Health >= ag.MaxHealth {
			continue
		}
		if best == nil || ag.Health < best.Health {
			best = ag
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

// selectRepair walks the three maintenance tiers: damaged non-perimeter
// structures by lowest absolute health, then perimeter below the
// tier-scaled floor by lowest absolute health, then roads and buffers
// below the wear fraction by lowest health fraction.
func (a *Arbiter) selectRepair(view *snapshot.View, tier int) string {
	if id := a.damagedStructure(view); id != "" {
		return id
	}
	if id := a.wornPerimeter(view, tier); id != "" {
		return id
	}
	return a.wornRoad(view)
}

func (a *Arbiter) damagedStructure(view *snapshot.View) string {
	var best *snapshot.FacilitySnapshot
	for i := range view.Facilities {
		f := &view.Facilities[i]
		if f.Type.IsPerimeter() || f.Type == snapshot.FacilityRoad || f.Type == snapshot.FacilityBuffer {
			continue
		}
		if f.MaxIntegrity == 0 || f.IntegrityFraction() >= a.StructureRepairFraction {
			continue
		}
		if best == nil || f.Integrity < best.Integrity {
			best = f
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

// WallFloor returns the tier-scaled perimeter repair floor.
func (a *Arbiter) WallFloor(tier int) int {
	floor := a.WallFloorPerTier * tier
	if floor > a.WallFloorCap {
		return a.WallFloorCap
	}
	return floor
}

func (a *Arbiter) wornPerimeter(view *snapshot.View, tier int) string {
	floor := a.WallFloor(tier)
	var best *snapshot.FacilitySnapshot
	for i := range view.Facilities {
		f := &view.Facilities[i]
		if !f.Type.IsPerimeter() || f.Integrity >= floor {
			continue
		}
		if best == nil || f.Integrity < best.Integrity {
			best = f
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

func (a *Arbiter) wornRoad(view *snapshot.View) string {
	var best *snapshot.FacilitySnapshot
	for i := range view.Facilities {
		f := &view.Facilities[i]
		if f.Type != snapshot.FacilityRoad && f.Type != snapshot.FacilityBuffer {
			continue
		}
		if f.MaxIntegrity == 0 || f.IntegrityFraction() >= a.RoadRepairFraction {
			continue
		}
		if best == nil || f.IntegrityFraction() < best.IntegrityFraction() {
			best = f
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}
