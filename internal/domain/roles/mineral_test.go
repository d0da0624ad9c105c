package roles_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/pathing"
	"github.com/andrescamacho/colonycore-go/internal/domain/roles"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
	"github.com/andrescamacho/colonycore-go/test/helpers"
)

func mineralRecord(t *testing.T) *agent.Record {
	t.Helper()
	rec, err := agent.NewRecord("m1", "m1", "W1", agent.RoleMineralExtractor, 1)
	require.NoError(t, err)
	return rec
}

func mineralContext(t *testing.T, view *snapshot.View, actions snapshot.Actions) *roles.TickContext {
	t.Helper()
	mover, err := pathing.NewResolver(helpers.LinePathFinder{}, 50)
	require.NoError(t, err)
	return &roles.TickContext{
		Tick:    10,
		View:    view,
		Actions: actions,
		Mover:   mover,
		Tuning:  roles.DefaultTuning(),
	}
}

func TestMineralExtractor_DeliversToNearestStorage(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 6}, []snapshot.FacilitySnapshot{
		{ID: "store-far", Type: snapshot.FacilityStorage, Pos: haulerPos(30, 30),
			Store: map[shared.ResourceType]int{}, StoreCapacity: 100000},
		{ID: "store-near", Type: snapshot.FacilityStorage, Pos: haulerPos(6, 5),
			Store: map[shared.ResourceType]int{}, StoreCapacity: 100000},
	})
	view.Deposits = []snapshot.DepositSnapshot{
		{ID: "dep-1", Pos: haulerPos(4, 5), Resource: shared.ResourceOre, Remaining: 500},
	}
	actions := helpers.NewRecordingActions()
	rc := mineralContext(t, view, actions)
	rec := mineralRecord(t)
	snap := snapshot.AgentSnapshot{ID: "m1", Pos: haulerPos(5, 5), Load: 200, Capacity: 200}

	outcome, err := (&roles.MineralExtractor{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, agent.StateDepositing, rec.State)
	assert.Equal(t, "deliver", outcome.Action)
	assert.Equal(t, "store-near", outcome.TargetID, "closer storage wins")
}

func TestMineralExtractor_DepletedDepositParksAtAnchor(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 6}, nil)
	view.Deposits = []snapshot.DepositSnapshot{
		{ID: "dep-1", Pos: haulerPos(4, 5), Resource: shared.ResourceOre, Remaining: 0},
	}
	actions := helpers.NewRecordingActions()
	rc := mineralContext(t, view, actions)
	rec := mineralRecord(t)
	rec.AnchorX, rec.AnchorY = 5, 5
	snap := snapshot.AgentSnapshot{ID: "m1", Pos: haulerPos(5, 5), Load: 0, Capacity: 200}

	outcome, err := (&roles.MineralExtractor{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, "idle", outcome.Action)
	assert.Empty(t, actions.Calls)
}

func TestMineralExtractor_WaitsOnExtractionCooldown(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 6}, []snapshot.FacilitySnapshot{
		{ID: "extr-1", Type: snapshot.FacilityExtractor, Pos: haulerPos(4, 5), Cooldown: 3},
	})
	view.Deposits = []snapshot.DepositSnapshot{
		{ID: "dep-1", Pos: haulerPos(4, 5), Resource: shared.ResourceOre, Remaining: 500},
	}
	actions := helpers.NewRecordingActions()
	rc := mineralContext(t, view, actions)
	rec := mineralRecord(t)
	snap := snapshot.AgentSnapshot{ID: "m1", Pos: haulerPos(5, 5), Load: 0, Capacity: 200}

	outcome, err := (&roles.MineralExtractor{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, "wait-extractor", outcome.Action)
	assert.Equal(t, shared.ResultOnCooldown, outcome.Result)
}
