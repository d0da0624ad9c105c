package flow

import (
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
	"github.com/andrescamacho/colonycore-go/pkg/utils"
)

// ExchangeStatus is the per-tick signal set published for haulers: the
// exchange never moves resource itself, it only flags needs and excess.
type ExchangeStatus struct {
	FacilityID  string
	NeedsEnergy bool
	HasExcess   bool

	// OrdersCreated counts the market orders opened this tick
	OrdersCreated int
}

// ExchangeCoordinator keeps the exchange facility inside its target energy
// band and periodically evaluates market opportunities.
type ExchangeCoordinator struct {
	// BandMin / BandMax is the target energy band; below min raises the
	// needs-resource flag, above max the has-excess flag
	BandMin int
	BandMax int

	// SellThreshold is the stored amount above which the surplus of a
	// resource is offered for sale
	SellThreshold int

	// MaxOrderSize caps one sell order
	MaxOrderSize int

	// BuyMinimum is the stored amount below which a buy is considered
	BuyMinimum int

	// SellPeriod / BuyPeriod gate the coarse market evaluations
	SellPeriod shared.Tick
	BuyPeriod  shared.Tick
}

// NewExchangeCoordinator creates an exchange coordinator with standard
// settings.
func NewExchangeCoordinator() *ExchangeCoordinator {
	return &ExchangeCoordinator{
		BandMin:       2000,
		BandMax:       10000,
		SellThreshold: 5000,
		MaxOrderSize:  2000,
		BuyMinimum:    1000,
		SellPeriod:    50,
		BuyPeriod:     500,
	}
}

// Run recomputes the hauler-facing flags every tick and, on the coarse
// periods, evaluates sell and buy opportunities. Idempotent per tick.
func (c *ExchangeCoordinator) Run(view *snapshot.View, market snapshot.Market, tick shared.Tick) ExchangeStatus {
	exchange := view.FirstOfType(snapshot.FacilityExchange)
	if exchange == nil {
		return ExchangeStatus{}
	}

	status := ExchangeStatus{
		FacilityID:  exchange.ID,
		NeedsEnergy: exchange.Stored(shared.ResourceEnergy) < c.BandMin,
		HasExcess:   exchange.Stored(shared.ResourceEnergy) > c.BandMax,
	}

	if tick%c.SellPeriod == 0 {
		status.OrdersCreated += c.evaluateSells(view.Info.ID, exchange, market)
	}
	if tick%c.BuyPeriod == 0 {
		status.OrdersCreated += c.evaluateBuy(view.Info.ID, exchange, market)
	}
	return status
}

// evaluateSells offers the surplus of each tradable resource above the
// sell threshold, one active order per resource per world, price anchored
// just below the best counter-order.
func (c *ExchangeCoordinator) evaluateSells(worldID string, exchange *snapshot.FacilitySnapshot, market snapshot.Market) int {
	active := make(map[shared.ResourceType]bool)
	for _, o := range market.ActiveOrders(worldID) {
		if o.Sell {
			active[o.Resource] = true
		}
	}

	created := 0
	for _, res := range shared.TradableResources() {
		if active[res] {
			continue
		}
		surplus := exchange.Stored(res) - c.SellThreshold
		if surplus <= 0 {
			continue
		}
		best, ok := market.BestBuyPrice(res)
		if !ok || best <= 1 {
			continue
		}
		amount := utils.Min(surplus, c.MaxOrderSize)
		if market.CreateSellOrder(worldID, res, amount, best-1).OK() {
			created++
		}
	}
	return created
}

// evaluateBuy restocks at most one resource per evaluation, choosing the
// cheapest effective price including transfer cost, to bound the
// order-creation cost per pass.
func (c *ExchangeCoordinator) evaluateBuy(worldID string, exchange *snapshot.FacilitySnapshot, market snapshot.Market) int {
	for _, res := range shared.TradableResources() {
		if exchange.Stored(res) >= c.BuyMinimum {
			continue
		}

		var best *snapshot.MarketListing
		bestEffective := 0
		for _, listing := range market.SellListings(res) {
			l := listing
			effective := l.PricePerUnit + l.TransferCost
			if best == nil || effective < bestEffective {
				best = &l
				bestEffective = effective
			}
		}
		if best == nil {
			continue
		}

		amount := utils.Min(c.BuyMinimum-exchange.Stored(res), best.Amount)
		if market.AcceptListing(worldID, best.ID, amount).OK() {
			return 1
		}
		return 0
	}
	return 0
}
