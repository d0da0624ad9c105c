package sim

import (
	"fmt"
	"sync"

	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// marketState is a static counter-party book plus our own open orders.
// Counter-party prices never move; the simulator is about exercising the
// decision logic, not price discovery.
type marketState struct {
	mu       sync.Mutex
	listings map[shared.ResourceType][]snapshot.MarketListing
	buyBook  map[shared.ResourceType]int
	orders   []snapshot.MarketOrder
	orderSeq int
}

func newMarketState() *marketState {
	return &marketState{
		listings: map[shared.ResourceType][]snapshot.MarketListing{
			shared.ResourceOre: {
				{ID: "L-ore-1", Resource: shared.ResourceOre, PricePerUnit: 12, Amount: 5000, TransferCost: 2},
			},
			shared.ResourceCompoundA: {
				{ID: "L-ca-1", Resource: shared.ResourceCompoundA, PricePerUnit: 30, Amount: 2000, TransferCost: 3},
			},
			shared.ResourceCompoundB: {
				{ID: "L-cb-1", Resource: shared.ResourceCompoundB, PricePerUnit: 28, Amount: 2000, TransferCost: 3},
			},
		},
		buyBook: map[shared.ResourceType]int{
			shared.ResourceOre:        10,
			shared.ResourceCompoundA:  25,
			shared.ResourceCompoundB:  24,
			shared.ResourceCompoundAB: 80,
		},
	}
}

func (m *marketState) BestBuyPrice(res shared.ResourceType) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	price, ok := m.buyBook[res]
	return price, ok
}

func (m *marketState) SellListings(res shared.ResourceType) []snapshot.MarketListing {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]snapshot.MarketListing, len(m.listings[res]))
	copy(out, m.listings[res])
	return out
}

func (m *marketState) ActiveOrders(worldID string) []snapshot.MarketOrder {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []snapshot.MarketOrder
	for _, o := range m.orders {
		if o.WorldID == worldID && o.Remaining > 0 {
			out = append(out, o)
		}
	}
	return out
}

func (m *marketState) CreateSellOrder(worldID string, res shared.ResourceType, amount, price int) shared.ActionResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	if amount <= 0 || price <= 0 {
		return shared.ResultInvalid
	}
	m.orderSeq++
	m.orders = append(m.orders, snapshot.MarketOrder{
		ID:        fmt.Sprintf("O-%d", m.orderSeq),
		WorldID:   worldID,
		Resource:  res,
		Sell:      true,
		Remaining: amount,
		Price:     price,
	})
	return shared.ResultOK
}

func (m *marketState) AcceptListing(worldID, listingID string, amount int) shared.ActionResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	if amount <= 0 {
		return shared.ResultInvalid
	}
	for res, listings := range m.listings {
		for i := range listings {
			if listings[i].ID != listingID {
				continue
			}
			if listings[i].Amount < amount {
				return shared.ResultNotEnough
			}
			m.listings[res][i].Amount -= amount
			return shared.ResultOK
		}
	}
	return shared.ResultNotFound
}
