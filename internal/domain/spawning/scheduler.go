package spawning

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/colony"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// Request is the production decision: what the facility should build this
// tick, with the agent's initial persistent record.
type Request struct {
	Role   agent.Role
	Body   []snapshot.BodyPart
	Name   string
	Record *agent.Record
}

// Scheduler computes the single highest-priority unit to produce per tick.
// The ladder is deterministic: identical census and need signals always
// yield the same decision.
type Scheduler struct {
	// MinHaulers floors the hauler count regardless of node count
	MinHaulers int

	// BacklogFillFraction marks a buffer as backlogged, justifying an
	// extra hauler beyond the base allotment
	BacklogFillFraction float64

	// MineralTier gates mineral extraction on development tier
	MineralTier int
}

// NewScheduler creates a production scheduler with standard thresholds.
func NewScheduler() *Scheduler {
	return &Scheduler{
		MinHaulers:          2,
		BacklogFillFraction: 0.75,
		MineralTier:         6,
	}
}

// NextToProduce evaluates the priority ladder top to bottom; first match
// wins. Returns nil when nothing needs producing.
func (s *Scheduler) NextToProduce(
	view *snapshot.View,
	world *colony.WorldRecord,
	census Census,
	tick shared.Tick,
) *Request {
	capacity := view.Info.ProductionCapacity
	tier := world.Tier

	// 1. Emergency bootstrap: total economic collapse
	if census.Haulers == 0 && census.Extractors == 0 && census.Generalists == 0 {
		return s.request(agent.RoleGeneralist, EmergencyBody(), world, tick, "")
	}

	// 2. One static extractor per unassigned extraction node
	for i := range view.Nodes {
		node := &view.Nodes[i]
		if !census.AssignedNodeIDs[node.ID] {
			return s.request(agent.RoleExtractor, BodyFor(agent.RoleExtractor, capacity, tier), world, tick, node.ID)
		}
	}

	// 3. Haulers up to max(MinHaulers, node count)
	wantHaulers := len(view.Nodes)
	if wantHaulers < s.MinHaulers {
		wantHaulers = s.MinHaulers
	}
	if census.Haulers < wantHaulers {
		return s.request(agent.RoleHauler, BodyFor(agent.RoleHauler, capacity, tier), world, tick, "")
	}

	// 4. Upgraders up to the tier-dependent minimum
	if census.Upgraders < minUpgraders(tier) {
		return s.request(agent.RoleUpgrader, BodyFor(agent.RoleUpgrader, capacity, tier), world, tick, "")
	}

	// 5. Builders, only while construction is pending
	if census.Builders < minBuilders(len(view.Orders)) {
		return s.request(agent.RoleBuilder, BodyFor(agent.RoleBuilder, capacity, tier), world, tick, "")
	}

	// 6. One mineral extractor per deposit, tier- and facility-gated
	if tier >= s.MineralTier &&
		len(view.Deposits) > 0 &&
		view.FirstOfType(snapshot.FacilityExtractor) != nil &&
		census.MineralExtractors < len(view.Deposits) {
		return s.request(agent.RoleMineralExtractor, BodyFor(agent.RoleMineralExtractor, capacity, tier), world, tick, "")
	}

	// 7. Extra haulers on buffer backlog
	if s.buffersBacklogged(view) && census.Haulers < wantHaulers*2 {
		return s.request(agent.RoleHauler, BodyFor(agent.RoleHauler, capacity, tier), world, tick, "")
	}

	return nil
}

func (s *Scheduler) buffersBacklogged(view *snapshot.View) bool {
	for _, f := range view.OfType(snapshot.FacilityBuffer) {
		if f.FillFraction() >= s.BacklogFillFraction {
			return true
		}
	}
	return false
}

func (s *Scheduler) request(role agent.Role, body []snapshot.BodyPart, world *colony.WorldRecord, tick shared.Tick, nodeID string) *Request {
	name := agentName(role)
	rec, err := agent.NewRecord(name, name, world.ID, role, tick)
	if err != nil {
		// role constants are always valid; reaching this is a
		// programming error
		panic(err)
	}
	rec.AssignedNodeID = nodeID
	return &Request{Role: role, Body: body, Name: name, Record: rec}
}

// agentName builds a unique, readable agent name. The name doubles as the
// agent id reported by the world snapshot after production.
func agentName(role agent.Role) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s", strings.ToLower(string(role)), suffix)
}

// minUpgraders is higher at low tier and drops to one at max tier, where
// upgrade throughput becomes part-count-limited.
func minUpgraders(tier int) int {
	switch {
	case tier >= 8:
		return 1
	case tier >= 4:
		return 2
	default:
		return 3
	}
}

// minBuilders is zero when nothing is pending.
func minBuilders(pendingOrders int) int {
	if pendingOrders == 0 {
		return 0
	}
	return 1
}
