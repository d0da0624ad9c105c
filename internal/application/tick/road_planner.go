package tick

import (
	"fmt"

	"github.com/andrescamacho/colonycore-go/internal/application/common"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// roadPlanner requests road construction along the extractor routes. It
// runs on a coarse period; path computations are memoized in the ephemeral
// cache because node and storage positions are stable geography.
type roadPlanner struct {
	cache common.EphemeralCache

	// maxOrdersPerRun bounds the per-pass construction request cost
	maxOrdersPerRun int
}

func newRoadPlanner(cache common.EphemeralCache) *roadPlanner {
	return &roadPlanner{cache: cache, maxOrdersPerRun: 10}
}

// plan requests road orders for unpaved tiles along each storage-to-node
// route, up to the per-run bound.
func (p *roadPlanner) plan(view *snapshot.View, provider snapshot.WorldProvider, tick shared.Tick) int {
	storage := view.Storage()
	if storage == nil {
		return 0
	}

	paved := pavedTiles(view)
	actions := provider.Actions()
	created := 0

	for i := range view.Nodes {
		node := &view.Nodes[i]
		steps := p.routeSteps(provider, storage.Pos, node.Pos, tick)
		if steps == nil {
			continue
		}

		pos := storage.Pos
		for _, step := range steps {
			pos = shared.Position{WorldID: pos.WorldID, X: pos.X + int(step.DX), Y: pos.Y + int(step.DY)}
			key := tileKey(pos)
			if paved[key] {
				continue
			}
			if actions.CreateConstructionOrder(pos, snapshot.FacilityRoad).OK() {
				paved[key] = true
				created++
				if created >= p.maxOrdersPerRun {
					return created
				}
			}
		}
	}
	return created
}

func (p *roadPlanner) routeSteps(provider snapshot.WorldProvider, from, to shared.Position, tick shared.Tick) []snapshot.Step {
	key := fmt.Sprintf("roadplan:%s:%d:%d:%d:%d", from.WorldID, from.X, from.Y, to.X, to.Y)
	if cached, ok := p.cache.Get(key, tick); ok {
		if steps, ok := cached.([]snapshot.Step); ok {
			return steps
		}
	}

	steps, err := provider.FindPath(from, to)
	if err != nil {
		return nil
	}
	p.cache.Put(key, steps, tick)
	return steps
}

// pavedTiles indexes every tile already holding a road, another facility,
// or a pending order, so planning never double-requests.
func pavedTiles(view *snapshot.View) map[string]bool {
	paved := make(map[string]bool)
	for i := range view.Facilities {
		paved[tileKey(view.Facilities[i].Pos)] = true
	}
	for i := range view.Orders {
		paved[tileKey(view.Orders[i].Pos)] = true
	}
	return paved
}

func tileKey(pos shared.Position) string {
	return fmt.Sprintf("%d:%d", pos.X, pos.Y)
}
