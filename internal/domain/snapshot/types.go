package snapshot

import (
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
)

// FacilityType classifies a live facility.
type FacilityType string

const (
	FacilityRelay      FacilityType = "RELAY"
	FacilityExchange   FacilityType = "EXCHANGE"
	FacilitySynthesis  FacilityType = "SYNTHESIS"
	FacilityTower      FacilityType = "TOWER"
	FacilityBuffer     FacilityType = "BUFFER"
	FacilityStorage    FacilityType = "STORAGE"
	FacilitySpawn      FacilityType = "SPAWN"
	FacilityExpansion  FacilityType = "EXPANSION"
	FacilityController FacilityType = "CONTROLLER"
	FacilityExtractor  FacilityType = "EXTRACTOR"
	FacilityRoad       FacilityType = "ROAD"
	FacilityWall       FacilityType = "WALL"
	FacilityRampart    FacilityType = "RAMPART"
)

// IsPerimeter reports whether the facility type is a perimeter defense
// (walls and ramparts), which follow separate repair thresholds.
func (t FacilityType) IsPerimeter() bool {
	return t == FacilityWall || t == FacilityRampart
}

// WorldInfo describes one owned controller area as observed this tick.
type WorldInfo struct {
	ID string

	// Tier is the current development tier of the world's controller
	Tier int

	// ProductionCapacity is the energy currently available to the
	// production facilities; ProductionCapacityMax is the tier-bound cap
	ProductionCapacity    int
	ProductionCapacityMax int

	// PendingConstruction counts open construction orders
	PendingConstruction int
}

// AgentSnapshot is the ephemeral per-tick handle for one live agent.
type AgentSnapshot struct {
	ID            string
	Name          string
	Pos           shared.Position
	Load          int
	Capacity      int
	RemainingLife shared.Tick
	Health        int
	MaxHealth     int
}

// Full reports whether the agent's load has reached capacity.
func (a AgentSnapshot) Full() bool {
	return a.Load >= a.Capacity
}

// Empty reports whether the agent carries nothing.
func (a AgentSnapshot) Empty() bool {
	return a.Load == 0
}

// FacilitySnapshot is the transient per-tick handle for one live facility.
// Facilities are re-resolved from live ids every tick; only role
// classification is persisted on the world record.
type FacilitySnapshot struct {
	ID            string
	Type          FacilityType
	Pos           shared.Position
	Store         map[shared.ResourceType]int
	StoreCapacity int
	Cooldown      shared.Tick
	Integrity     int
	MaxIntegrity  int
}

// Stored returns the stored amount of a resource (0 if absent).
func (f *FacilitySnapshot) Stored(res shared.ResourceType) int {
	return f.Store[res]
}

// StoredTotal returns the total stored across all resources.
func (f *FacilitySnapshot) StoredTotal() int {
	total := 0
	for _, v := range f.Store {
		total += v
	}
	return total
}

// FreeCapacity returns the remaining room in the facility's store.
func (f *FacilitySnapshot) FreeCapacity() int {
	free := f.StoreCapacity - f.StoredTotal()
	if free < 0 {
		return 0
	}
	return free
}

// FillFraction returns stored/capacity in [0,1]. A facility with no store
// capacity reports 0.
func (f *FacilitySnapshot) FillFraction() float64 {
	if f.StoreCapacity == 0 {
		return 0
	}
	return float64(f.StoredTotal()) / float64(f.StoreCapacity)
}

// IntegrityFraction returns hits/maxHits in [0,1].
func (f *FacilitySnapshot) IntegrityFraction() float64 {
	if f.MaxIntegrity == 0 {
		return 0
	}
	return float64(f.Integrity) / float64(f.MaxIntegrity)
}

// NodeSnapshot is a fixed, regenerating extraction node.
type NodeSnapshot struct {
	ID        string
	Pos       shared.Position
	Remaining int
}

// DepositSnapshot is a depletable mineral deposit.
type DepositSnapshot struct {
	ID        string
	Pos       shared.Position
	Resource  shared.ResourceType
	Remaining int
}

// HostileSnapshot is an enemy agent observed this tick.
type HostileSnapshot struct {
	ID          string
	Pos         shared.Position
	Health      int
	HealParts   int
	RangedParts int
	MeleeParts  int
}

// DroppedSnapshot is loose resource lying on the ground.
type DroppedSnapshot struct {
	ID       string
	Pos      shared.Position
	Resource shared.ResourceType
	Amount   int
}

// SalvageSnapshot is a container left behind by a dead agent or destroyed
// structure, holding recoverable resources.
type SalvageSnapshot struct {
	ID       string
	Pos      shared.Position
	Store    map[shared.ResourceType]int
}

// StoredTotal returns the total recoverable amount in the salvage.
func (s SalvageSnapshot) StoredTotal() int {
	total := 0
	for _, v := range s.Store {
		total += v
	}
	return total
}

// ConstructionOrder is a pending build site.
type ConstructionOrder struct {
	ID       string
	Pos      shared.Position
	Type     FacilityType
	Progress int
	Total    int
}

// Step is one movement step of a computed path.
type Step struct {
	DX int8
	DY int8
}

// BodyPart is one part of an agent body produced by a production facility.
type BodyPart string

const (
	PartWork  BodyPart = "WORK"
	PartCarry BodyPart = "CARRY"
	PartMove  BodyPart = "MOVE"
)

// PartCost returns the production energy cost of a body part.
func PartCost(p BodyPart) int {
	switch p {
	case PartWork:
		return 100
	case PartCarry, PartMove:
		return 50
	}
	return 0
}

// BodyCost returns the total production cost of a body.
func BodyCost(body []BodyPart) int {
	total := 0
	for _, p := range body {
		total += PartCost(p)
	}
	return total
}
