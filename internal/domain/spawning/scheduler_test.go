package spawning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/colony"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
	"github.com/andrescamacho/colonycore-go/internal/domain/spawning"
)

func testView(tier int, nodes int) *snapshot.View {
	view := snapshot.NewView(snapshot.WorldInfo{
		ID:                 "W1",
		Tier:               tier,
		ProductionCapacity: 550,
	}, nil)
	for i := 0; i < nodes; i++ {
		view.Nodes = append(view.Nodes, snapshot.NodeSnapshot{
			ID:        "node-" + string(rune('a'+i)),
			Pos:       shared.Position{WorldID: "W1", X: 10 + i, Y: 10},
			Remaining: 3000,
		})
	}
	return view
}

func testWorld(t *testing.T, tier int) *colony.WorldRecord {
	t.Helper()
	world, err := colony.NewWorldRecord("W1", tier, 1)
	require.NoError(t, err)
	return world
}

func TestScheduler_EmergencyBootstrap(t *testing.T) {
	// Arrange: two nodes, no live agents at all
	scheduler := spawning.NewScheduler()
	view := testView(3, 2)
	world := testWorld(t, 3)
	census := spawning.TakeCensus(nil)

	// Act
	req := scheduler.NextToProduce(view, world, census, 100)

	// Assert: collapse produces the minimal generalist before anything else
	require.NotNil(t, req)
	assert.Equal(t, agent.RoleGeneralist, req.Role)
	assert.Equal(t, spawning.EmergencyBody(), req.Body)
	assert.Equal(t, 200, snapshot.BodyCost(req.Body))
}

func TestScheduler_ExtractorPerUnassignedNode(t *testing.T) {
	scheduler := spawning.NewScheduler()
	view := testView(3, 2)
	world := testWorld(t, 3)

	hauler, err := agent.NewRecord("h1", "h1", "W1", agent.RoleHauler, 1)
	require.NoError(t, err)
	extractor, err := agent.NewRecord("e1", "e1", "W1", agent.RoleExtractor, 1)
	require.NoError(t, err)
	extractor.AssignedNodeID = "node-a"

	req := scheduler.NextToProduce(view, world, spawning.TakeCensus([]*agent.Record{hauler, extractor}), 100)

	require.NotNil(t, req)
	assert.Equal(t, agent.RoleExtractor, req.Role)
	assert.Equal(t, "node-b", req.Record.AssignedNodeID)
}

func TestScheduler_HaulersAfterExtractors(t *testing.T) {
	scheduler := spawning.NewScheduler()
	view := testView(3, 2)
	world := testWorld(t, 3)

	var records []*agent.Record
	for i, nodeID := range []string{"node-a", "node-b"} {
		rec, err := agent.NewRecord("e"+string(rune('1'+i)), "", "W1", agent.RoleExtractor, 1)
		require.NoError(t, err)
		rec.AssignedNodeID = nodeID
		records = append(records, rec)
	}
	hauler, err := agent.NewRecord("h1", "h1", "W1", agent.RoleHauler, 1)
	require.NoError(t, err)
	records = append(records, hauler)

	req := scheduler.NextToProduce(view, world, spawning.TakeCensus(records), 100)

	// one hauler exists, two nodes want two haulers
	require.NotNil(t, req)
	assert.Equal(t, agent.RoleHauler, req.Role)
}

func TestScheduler_Deterministic(t *testing.T) {
	// identical census and view must always yield the same role decision
	scheduler := spawning.NewScheduler()
	view := testView(3, 2)
	world := testWorld(t, 3)
	census := spawning.TakeCensus(nil)

	first := scheduler.NextToProduce(view, world, census, 100)
	second := scheduler.NextToProduce(view, world, census, 100)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Role, second.Role)
	assert.Equal(t, first.Body, second.Body)
}

func TestScheduler_MineralGatedOnTierAndFacility(t *testing.T) {
	scheduler := spawning.NewScheduler()
	world := testWorld(t, 6)
	world.ObserveTier(6)

	// fully staffed colony with a deposit but no extractor facility
	var records []*agent.Record
	add := func(id string, role agent.Role, nodeID string) {
		rec, err := agent.NewRecord(id, id, "W1", role, 1)
		require.NoError(t, err)
		rec.AssignedNodeID = nodeID
		records = append(records, rec)
	}
	add("e1", agent.RoleExtractor, "node-a")
	add("e2", agent.RoleExtractor, "node-b")
	add("h1", agent.RoleHauler, "")
	add("h2", agent.RoleHauler, "")
	add("u1", agent.RoleUpgrader, "")
	add("u2", agent.RoleUpgrader, "")

	view := testView(6, 2)
	view.Deposits = append(view.Deposits, snapshot.DepositSnapshot{
		ID: "dep-1", Resource: shared.ResourceOre, Remaining: 5000,
	})

	req := scheduler.NextToProduce(view, world, spawning.TakeCensus(records), 100)
	assert.Nil(t, req, "no extractor facility means no mineral extractor")

	// with the facility present the mineral extractor is next
	view = testView(6, 2)
	view.Deposits = append(view.Deposits, snapshot.DepositSnapshot{
		ID: "dep-1", Resource: shared.ResourceOre, Remaining: 5000,
	})
	viewWithFacility := snapshot.NewView(view.Info, []snapshot.FacilitySnapshot{
		{ID: "x1", Type: snapshot.FacilityExtractor, Pos: shared.Position{WorldID: "W1", X: 5, Y: 5}},
	})
	viewWithFacility.Nodes = view.Nodes
	viewWithFacility.Deposits = view.Deposits

	req = scheduler.NextToProduce(viewWithFacility, world, spawning.TakeCensus(records), 100)
	require.NotNil(t, req)
	assert.Equal(t, agent.RoleMineralExtractor, req.Role)
}

func TestScheduler_ExtraHaulersOnBacklog(t *testing.T) {
	scheduler := spawning.NewScheduler()
	world := testWorld(t, 3)

	var records []*agent.Record
	add := func(id string, role agent.Role, nodeID string) {
		rec, err := agent.NewRecord(id, id, "W1", role, 1)
		require.NoError(t, err)
		rec.AssignedNodeID = nodeID
		records = append(records, rec)
	}
	add("e1", agent.RoleExtractor, "node-a")
	add("e2", agent.RoleExtractor, "node-b")
	add("h1", agent.RoleHauler, "")
	add("h2", agent.RoleHauler, "")
	add("u1", agent.RoleUpgrader, "")
	add("u2", agent.RoleUpgrader, "")
	add("u3", agent.RoleUpgrader, "")

	backlogged := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3, ProductionCapacity: 550},
		[]snapshot.FacilitySnapshot{
			{
				ID: "buf-1", Type: snapshot.FacilityBuffer,
				Pos:           shared.Position{WorldID: "W1", X: 11, Y: 10},
				Store:         map[shared.ResourceType]int{shared.ResourceEnergy: 1600},
				StoreCapacity: 2000,
			},
		})
	backlogged.Nodes = testView(3, 2).Nodes

	req := scheduler.NextToProduce(backlogged, world, spawning.TakeCensus(records), 100)

	require.NotNil(t, req)
	assert.Equal(t, agent.RoleHauler, req.Role)
}
