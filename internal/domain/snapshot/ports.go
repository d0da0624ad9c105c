package snapshot

import (
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
)

// WorldProvider is the external source of truth consumed once per tick.
// The world is reconstructed fresh from it every tick; objects observed on
// one tick may be gone on the next.
type WorldProvider interface {
	// CurrentTick returns the authoritative tick counter
	CurrentTick() shared.Tick

	// OwnedWorlds lists the controller areas owned this tick
	OwnedWorlds() []WorldInfo

	// LiveAgents lists the live agents in one world
	LiveAgents(worldID string) []AgentSnapshot

	// AllLiveAgentIDs lists every live agent id across all worlds,
	// used for state store reconciliation
	AllLiveAgentIDs() []string

	// Facilities lists the live facilities in one world
	Facilities(worldID string) []FacilitySnapshot

	// ExtractionNodes lists the regenerating resource nodes in one world
	ExtractionNodes(worldID string) []NodeSnapshot

	// MineralDeposits lists the depletable deposits in one world
	MineralDeposits(worldID string) []DepositSnapshot

	// Hostiles lists enemy agents observed in one world
	Hostiles(worldID string) []HostileSnapshot

	// Dropped lists loose resources on the ground in one world
	Dropped(worldID string) []DroppedSnapshot

	// Salvage lists recoverable containers in one world
	Salvage(worldID string) []SalvageSnapshot

	// ConstructionOrders lists pending build sites in one world
	ConstructionOrders(worldID string) []ConstructionOrder

	// FindPath computes a step sequence between two positions
	FindPath(from, to shared.Position) ([]Step, error)

	// Actions returns the action primitives for this tick
	Actions() Actions

	// Market returns the market view for exchange facility decisions
	Market() Market
}

// Actions are the physical action primitives. Execution is external; the
// core only decides. Every primitive returns a small result code and never
// an error: failures are data, not faults.
type Actions interface {
	MoveAlongPath(agentID string, steps []Step) shared.ActionResult
	Harvest(agentID, nodeID string) shared.ActionResult
	HarvestDeposit(agentID, depositID string) shared.ActionResult
	Transfer(agentID, facilityID string, res shared.ResourceType, amount int) shared.ActionResult
	Withdraw(agentID, sourceID string, res shared.ResourceType, amount int) shared.ActionResult
	Pickup(agentID, droppedID string) shared.ActionResult
	Build(agentID, orderID string) shared.ActionResult
	Repair(agentID, targetID string) shared.ActionResult
	Upgrade(agentID, controllerID string) shared.ActionResult

	// Tower primitives (defensive structures act without moving)
	TowerAttack(towerID, targetID string) shared.ActionResult
	TowerHeal(towerID, agentID string) shared.ActionResult
	TowerRepair(towerID, facilityID string) shared.ActionResult

	// Facility primitives
	RelayPush(senderID, receiverID string, amount int) shared.ActionResult
	RunReaction(outputID, inputAID, inputBID string) shared.ActionResult
	ProduceAgent(spawnID, name string, body []BodyPart) shared.ActionResult
	CreateConstructionOrder(pos shared.Position, t FacilityType) shared.ActionResult
}

// MarketListing is a counter-party order visible on the market.
type MarketListing struct {
	ID           string
	Resource     shared.ResourceType
	PricePerUnit int
	Amount       int

	// TransferCost is the energy cost of moving the goods to this world,
	// folded into effective price comparisons
	TransferCost int
}

// MarketOrder is one of our own active orders.
type MarketOrder struct {
	ID        string
	WorldID   string
	Resource  shared.ResourceType
	Sell      bool
	Remaining int
	Price     int
}

// Market is the external trade interface used by the exchange facility.
// Price discovery mechanics are out of scope; the core only decides when
// to place orders.
type Market interface {
	// BestBuyPrice returns the highest counter-order price for selling
	// the given resource, or ok=false when no counter-order exists
	BestBuyPrice(res shared.ResourceType) (price int, ok bool)

	// SellListings returns counter-orders we could buy from
	SellListings(res shared.ResourceType) []MarketListing

	// ActiveOrders returns our own open orders for one world
	ActiveOrders(worldID string) []MarketOrder

	// CreateSellOrder places a sell order for the given world's exchange
	CreateSellOrder(worldID string, res shared.ResourceType, amount, price int) shared.ActionResult

	// AcceptListing buys from an existing counter-order
	AcceptListing(worldID, listingID string, amount int) shared.ActionResult
}
