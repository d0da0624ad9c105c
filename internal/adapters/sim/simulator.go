package sim

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// Simulator is a deterministic in-memory world used by the daemon's
// simulation mode and the acceptance tests. It implements the full
// snapshot provider surface: a seeded world, simplistic physics, and
// synchronous actions that mutate state immediately.
type Simulator struct {
	mu sync.Mutex

	tick      shared.Tick
	rng       *rand.Rand
	worlds    map[string]*worldState
	agentLife int

	market *marketState
}

type worldState struct {
	info       snapshot.WorldInfo
	agents     map[string]*agentState
	facilities map[string]*snapshot.FacilitySnapshot
	nodes      map[string]*snapshot.NodeSnapshot
	deposits   map[string]*snapshot.DepositSnapshot
	hostiles   map[string]*snapshot.HostileSnapshot
	dropped    map[string]*snapshot.DroppedSnapshot
	orders     map[string]*snapshot.ConstructionOrder
	agentOrder []string

	orderSeq        int
	upgradeProgress int
}

type agentState struct {
	snap snapshot.AgentSnapshot
	body []snapshot.BodyPart
}

// Config seeds the simulated world.
type Config struct {
	Seed       int64
	WorldCount int
	GridSize   int
	NodeCount  int
	AgentLife  int
}

// DefaultConfig returns a single small world.
func DefaultConfig() Config {
	return Config{
		Seed:       1,
		WorldCount: 1,
		GridSize:   50,
		NodeCount:  2,
		AgentLife:  1500,
	}
}

// New creates a simulator with a deterministically generated world layout.
func New(cfg Config) (*Simulator, error) {
	if cfg.WorldCount <= 0 {
		return nil, fmt.Errorf("world count must be positive: %d", cfg.WorldCount)
	}
	if cfg.GridSize < 10 {
		return nil, fmt.Errorf("grid size must be at least 10: %d", cfg.GridSize)
	}
	life := cfg.AgentLife
	if life <= 0 {
		life = 1500
	}
	s := &Simulator{
		tick:      1,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		worlds:    make(map[string]*worldState),
		agentLife: life,
		market:    newMarketState(),
	}
	for i := 0; i < cfg.WorldCount; i++ {
		id := fmt.Sprintf("W%d", i+1)
		s.worlds[id] = s.generateWorld(id, cfg)
	}
	return s, nil
}

func (s *Simulator) generateWorld(id string, cfg Config) *worldState {
	w := &worldState{
		info: snapshot.WorldInfo{
			ID:                    id,
			Tier:                  1,
			ProductionCapacity:    300,
			ProductionCapacityMax: 300,
		},
		agents:     make(map[string]*agentState),
		facilities: make(map[string]*snapshot.FacilitySnapshot),
		nodes:      make(map[string]*snapshot.NodeSnapshot),
		deposits:   make(map[string]*snapshot.DepositSnapshot),
		hostiles:   make(map[string]*snapshot.HostileSnapshot),
		dropped:    make(map[string]*snapshot.DroppedSnapshot),
		orders:     make(map[string]*snapshot.ConstructionOrder),
	}

	center := cfg.GridSize / 2
	spawn := &snapshot.FacilitySnapshot{
		ID:            id + "-spawn",
		Type:          snapshot.FacilitySpawn,
		Pos:           shared.Position{WorldID: id, X: center, Y: center},
		Store:         map[shared.ResourceType]int{shared.ResourceEnergy: 300},
		StoreCapacity: 300,
		Integrity:     5000,
		MaxIntegrity:  5000,
	}
	w.facilities[spawn.ID] = spawn

	controller := &snapshot.FacilitySnapshot{
		ID:           id + "-controller",
		Type:         snapshot.FacilityController,
		Pos:          shared.Position{WorldID: id, X: center + 5, Y: center - 5},
		Integrity:    1,
		MaxIntegrity: 1,
	}
	w.facilities[controller.ID] = controller

	for n := 0; n < cfg.NodeCount; n++ {
		node := &snapshot.NodeSnapshot{
			ID: fmt.Sprintf("%s-node%d", id, n+1),
			Pos: shared.Position{
				WorldID: id,
				X:       2 + s.rng.Intn(cfg.GridSize-4),
				Y:       2 + s.rng.Intn(cfg.GridSize-4),
			},
			Remaining: 3000,
		}
		w.nodes[node.ID] = node
	}
	return w
}

// Advance moves the simulation one tick forward: cooldowns decay, node
// stocks regenerate, agents age out.
func (s *Simulator) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick++
	for _, w := range s.worlds {
		if w.info.ProductionCapacity < w.info.ProductionCapacityMax {
			w.info.ProductionCapacity += 10
			if w.info.ProductionCapacity > w.info.ProductionCapacityMax {
				w.info.ProductionCapacity = w.info.ProductionCapacityMax
			}
		}
		for _, f := range w.facilities {
			if f.Cooldown > 0 {
				f.Cooldown--
			}
		}
		for _, n := range w.nodes {
			if n.Remaining < 3000 {
				n.Remaining += 10
			}
		}
		for id, a := range w.agents {
			a.snap.RemainingLife--
			if a.snap.RemainingLife <= 0 {
				delete(w.agents, id)
				w.agentOrder = removeID(w.agentOrder, id)
			}
		}
	}
}

// CurrentTick returns the simulation tick.
func (s *Simulator) CurrentTick() shared.Tick {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// OwnedWorlds lists every simulated world.
func (s *Simulator) OwnedWorlds() []snapshot.WorldInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	infos := make([]snapshot.WorldInfo, 0, len(s.worlds))
	for _, id := range sortedWorldIDs(s.worlds) {
		infos = append(infos, s.worlds[id].info)
	}
	return infos
}

// LiveAgents lists the live agents of one world in spawn order.
func (s *Simulator) LiveAgents(worldID string) []snapshot.AgentSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.worlds[worldID]
	if !ok {
		return nil
	}
	agents := make([]snapshot.AgentSnapshot, 0, len(w.agentOrder))
	for _, id := range w.agentOrder {
		if a, ok := w.agents[id]; ok {
			agents = append(agents, a.snap)
		}
	}
	return agents
}

// AllLiveAgentIDs lists every live agent id across all worlds.
func (s *Simulator) AllLiveAgentIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, wid := range sortedWorldIDs(s.worlds) {
		ids = append(ids, s.worlds[wid].agentOrder...)
	}
	return ids
}

// Facilities lists one world's facilities.
func (s *Simulator) Facilities(worldID string) []snapshot.FacilitySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.worlds[worldID]
	if !ok {
		return nil
	}
	out := make([]snapshot.FacilitySnapshot, 0, len(w.facilities))
	for _, id := range sortedKeys(w.facilities) {
		out = append(out, *w.facilities[id])
	}
	return out
}

// ExtractionNodes lists one world's extraction nodes.
func (s *Simulator) ExtractionNodes(worldID string) []snapshot.NodeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.worlds[worldID]
	if !ok {
		return nil
	}
	out := make([]snapshot.NodeSnapshot, 0, len(w.nodes))
	for _, id := range sortedKeys(w.nodes) {
		out = append(out, *w.nodes[id])
	}
	return out
}

// MineralDeposits lists one world's mineral deposits.
func (s *Simulator) MineralDeposits(worldID string) []snapshot.DepositSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.worlds[worldID]
	if !ok {
		return nil
	}
	out := make([]snapshot.DepositSnapshot, 0, len(w.deposits))
	for _, id := range sortedKeys(w.deposits) {
		out = append(out, *w.deposits[id])
	}
	return out
}

// Hostiles lists one world's hostiles.
func (s *Simulator) Hostiles(worldID string) []snapshot.HostileSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.worlds[worldID]
	if !ok {
		return nil
	}
	out := make([]snapshot.HostileSnapshot, 0, len(w.hostiles))
	for _, id := range sortedKeys(w.hostiles) {
		out = append(out, *w.hostiles[id])
	}
	return out
}

// Dropped lists one world's dropped resource piles.
func (s *Simulator) Dropped(worldID string) []snapshot.DroppedSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.worlds[worldID]
	if !ok {
		return nil
	}
	out := make([]snapshot.DroppedSnapshot, 0, len(w.dropped))
	for _, id := range sortedKeys(w.dropped) {
		out = append(out, *w.dropped[id])
	}
	return out
}

// Salvage lists one world's salvageable remains. The simulator never
// produces salvage; agents simply vanish at end of life.
func (s *Simulator) Salvage(worldID string) []snapshot.SalvageSnapshot {
	return nil
}

// ConstructionOrders lists one world's pending construction orders.
func (s *Simulator) ConstructionOrders(worldID string) []snapshot.ConstructionOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.worlds[worldID]
	if !ok {
		return nil
	}
	out := make([]snapshot.ConstructionOrder, 0, len(w.orders))
	for _, id := range sortedKeys(w.orders) {
		out = append(out, *w.orders[id])
	}
	return out
}

// FindPath returns a straight-line Chebyshev walk from from to to.
func (s *Simulator) FindPath(from, to shared.Position) ([]snapshot.Step, error) {
	if from.WorldID != to.WorldID {
		return nil, shared.ErrNoPath
	}
	var steps []snapshot.Step
	x, y := from.X, from.Y
	for x != to.X || y != to.Y {
		step := snapshot.Step{DX: sign(to.X - x), DY: sign(to.Y - y)}
		steps = append(steps, step)
		x += int(step.DX)
		y += int(step.DY)
	}
	if len(steps) == 0 {
		return nil, shared.ErrNoPath
	}
	return steps, nil
}

// Actions returns the simulator's action surface.
func (s *Simulator) Actions() snapshot.Actions {
	return &simActions{sim: s}
}

// Market returns the simulator's market surface.
func (s *Simulator) Market() snapshot.Market {
	return s.market
}

func sign(v int) int8 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
