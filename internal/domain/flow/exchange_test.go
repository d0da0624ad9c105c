package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonycore-go/internal/domain/flow"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// fakeMarket records order placements against a static book.
type fakeMarket struct {
	buyPrices map[shared.ResourceType]int
	listings  map[shared.ResourceType][]snapshot.MarketListing
	active    []snapshot.MarketOrder

	sellOrders []snapshot.MarketOrder
	accepted   []string
}

func (m *fakeMarket) BestBuyPrice(res shared.ResourceType) (int, bool) {
	p, ok := m.buyPrices[res]
	return p, ok
}

func (m *fakeMarket) SellListings(res shared.ResourceType) []snapshot.MarketListing {
	return m.listings[res]
}

func (m *fakeMarket) ActiveOrders(worldID string) []snapshot.MarketOrder {
	return m.active
}

func (m *fakeMarket) CreateSellOrder(worldID string, res shared.ResourceType, amount, price int) shared.ActionResult {
	m.sellOrders = append(m.sellOrders, snapshot.MarketOrder{
		WorldID: worldID, Resource: res, Sell: true, Remaining: amount, Price: price,
	})
	return shared.ResultOK
}

func (m *fakeMarket) AcceptListing(worldID, listingID string, amount int) shared.ActionResult {
	m.accepted = append(m.accepted, listingID)
	return shared.ResultOK
}

func exchangeView(energy int, extra map[shared.ResourceType]int) *snapshot.View {
	store := map[shared.ResourceType]int{shared.ResourceEnergy: energy}
	for res, amount := range extra {
		store[res] = amount
	}
	return snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 5}, []snapshot.FacilitySnapshot{
		{
			ID: "exch-1", Type: snapshot.FacilityExchange,
			Pos:           shared.Position{WorldID: "W1", X: 10, Y: 10},
			Store:         store,
			StoreCapacity: 50000,
		},
	})
}

func TestExchangeCoordinator_BandFlags(t *testing.T) {
	coordinator := flow.NewExchangeCoordinator()
	market := &fakeMarket{}

	low := coordinator.Run(exchangeView(500, nil), market, 1)
	assert.True(t, low.NeedsEnergy)
	assert.False(t, low.HasExcess)
	assert.Equal(t, "exch-1", low.FacilityID)

	mid := coordinator.Run(exchangeView(5000, nil), market, 2)
	assert.False(t, mid.NeedsEnergy)
	assert.False(t, mid.HasExcess)

	high := coordinator.Run(exchangeView(20000, nil), market, 3)
	assert.False(t, high.NeedsEnergy)
	assert.True(t, high.HasExcess)
}

func TestExchangeCoordinator_NoExchangeFacility(t *testing.T) {
	coordinator := flow.NewExchangeCoordinator()
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1"}, nil)

	status := coordinator.Run(view, &fakeMarket{}, 1)

	assert.Equal(t, flow.ExchangeStatus{}, status)
}

func TestExchangeCoordinator_SellsSurplusAboveThreshold(t *testing.T) {
	coordinator := flow.NewExchangeCoordinator()
	market := &fakeMarket{
		buyPrices: map[shared.ResourceType]int{shared.ResourceOre: 12},
	}
	view := exchangeView(5000, map[shared.ResourceType]int{shared.ResourceOre: 6000})

	// tick 50 lands on the sell period
	status := coordinator.Run(view, market, 50)

	assert.Equal(t, 1, status.OrdersCreated)
	require.Len(t, market.sellOrders, 1)
	order := market.sellOrders[0]
	assert.Equal(t, shared.ResourceOre, order.Resource)
	assert.Equal(t, 1000, order.Remaining, "surplus over the threshold, not the whole stock")
	assert.Equal(t, 11, order.Price, "anchored one below the best counter-order")
}

func TestExchangeCoordinator_SellSkippedOffPeriod(t *testing.T) {
	coordinator := flow.NewExchangeCoordinator()
	market := &fakeMarket{
		buyPrices: map[shared.ResourceType]int{shared.ResourceOre: 12},
	}
	view := exchangeView(5000, map[shared.ResourceType]int{shared.ResourceOre: 6000})

	coordinator.Run(view, market, 51)

	assert.Empty(t, market.sellOrders)
}

func TestExchangeCoordinator_OneActiveOrderPerResource(t *testing.T) {
	coordinator := flow.NewExchangeCoordinator()
	market := &fakeMarket{
		buyPrices: map[shared.ResourceType]int{shared.ResourceOre: 12},
		active: []snapshot.MarketOrder{
			{ID: "o1", WorldID: "W1", Resource: shared.ResourceOre, Sell: true, Remaining: 500},
		},
	}
	view := exchangeView(5000, map[shared.ResourceType]int{shared.ResourceOre: 6000})

	coordinator.Run(view, market, 50)

	assert.Empty(t, market.sellOrders, "an open sell order blocks a new one")
}

func TestExchangeCoordinator_BuysCheapestEffectivePrice(t *testing.T) {
	coordinator := flow.NewExchangeCoordinator()
	market := &fakeMarket{
		listings: map[shared.ResourceType][]snapshot.MarketListing{
			shared.ResourceOre: {
				{ID: "cheap-far", Resource: shared.ResourceOre, PricePerUnit: 10, Amount: 3000, TransferCost: 8},
				{ID: "fair-near", Resource: shared.ResourceOre, PricePerUnit: 12, Amount: 3000, TransferCost: 1},
			},
		},
	}
	// ore stock below the buy minimum
	view := exchangeView(5000, map[shared.ResourceType]int{shared.ResourceOre: 100})

	// tick 500 lands on the buy period
	coordinator.Run(view, market, 500)

	require.Len(t, market.accepted, 1)
	assert.Equal(t, "fair-near", market.accepted[0], "transfer cost folds into the comparison")
}
