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

func haulerPos(x, y int) shared.Position {
	return shared.Position{WorldID: "W1", X: x, Y: y}
}

func haulerContext(t *testing.T, view *snapshot.View, actions snapshot.Actions) *roles.TickContext {
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

func haulerRecord(t *testing.T) *agent.Record {
	t.Helper()
	rec, err := agent.NewRecord("h1", "h1", "W1", agent.RoleHauler, 1)
	require.NoError(t, err)
	return rec
}

func TestHauler_HighFillBufferBeatsDroppedPile(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3}, []snapshot.FacilitySnapshot{
		{
			ID: "buf-1", Type: snapshot.FacilityBuffer, Pos: haulerPos(6, 5),
			Store:         map[shared.ResourceType]int{shared.ResourceEnergy: 1600},
			StoreCapacity: 2000,
		},
	})
	view.Dropped = []snapshot.DroppedSnapshot{
		{ID: "drop-1", Pos: haulerPos(5, 6), Amount: 500},
	}
	actions := helpers.NewRecordingActions()
	rc := haulerContext(t, view, actions)
	rec := haulerRecord(t)
	snap := snapshot.AgentSnapshot{ID: "h1", Pos: haulerPos(5, 5), Load: 0, Capacity: 300}

	outcome, err := (&roles.Hauler{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, "withdraw", outcome.Action)
	assert.Equal(t, "buf-1", outcome.TargetID)
	assert.Equal(t, "buf-1", rec.TargetID)
	withdraws := actions.CallsTo("Withdraw")
	require.Len(t, withdraws, 1)
	assert.Equal(t, 300, withdraws[0].Amount, "withdraw asks for the free carry room")
}

func TestHauler_PicksUpDroppedWhenBuffersLow(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3}, []snapshot.FacilitySnapshot{
		{
			ID: "buf-1", Type: snapshot.FacilityBuffer, Pos: haulerPos(20, 20),
			Store:         map[shared.ResourceType]int{shared.ResourceEnergy: 100},
			StoreCapacity: 2000,
		},
	})
	view.Dropped = []snapshot.DroppedSnapshot{
		{ID: "drop-1", Pos: haulerPos(5, 6), Amount: 500},
	}
	actions := helpers.NewRecordingActions()
	rc := haulerContext(t, view, actions)
	rec := haulerRecord(t)
	snap := snapshot.AgentSnapshot{ID: "h1", Pos: haulerPos(5, 5), Load: 0, Capacity: 300}

	outcome, err := (&roles.Hauler{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, "pickup", outcome.Action)
	assert.Equal(t, "drop-1", outcome.TargetID)
}

func TestHauler_MovesTowardDistantSource(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3}, []snapshot.FacilitySnapshot{
		{
			ID: "buf-1", Type: snapshot.FacilityBuffer, Pos: haulerPos(15, 5),
			Store:         map[shared.ResourceType]int{shared.ResourceEnergy: 1600},
			StoreCapacity: 2000,
		},
	})
	actions := helpers.NewRecordingActions()
	rc := haulerContext(t, view, actions)
	rec := haulerRecord(t)
	snap := snapshot.AgentSnapshot{ID: "h1", Pos: haulerPos(5, 5), Load: 0, Capacity: 300}

	outcome, err := (&roles.Hauler{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, "move", outcome.Action)
	assert.True(t, rec.HasPath())
	assert.Len(t, actions.CallsTo("MoveAlongPath"), 1)
}

func TestHauler_TransitionClearsTargetOnceOnFull(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3}, []snapshot.FacilitySnapshot{
		{ID: "spawn-1", Type: snapshot.FacilitySpawn, Pos: haulerPos(6, 5),
			Store: map[shared.ResourceType]int{}, StoreCapacity: 300},
	})
	actions := helpers.NewRecordingActions()
	rc := haulerContext(t, view, actions)
	rec := haulerRecord(t)
	rec.SetTarget("buf-stale")
	snap := snapshot.AgentSnapshot{ID: "h1", Pos: haulerPos(5, 5), Load: 300, Capacity: 300}

	outcome, err := (&roles.Hauler{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, agent.StateDelivering, rec.State)
	assert.Equal(t, "deliver", outcome.Action)
	assert.Equal(t, "spawn-1", outcome.TargetID, "old collect target dropped on the flip")
}

func TestHauler_DeliverLadderPrefersSpawn(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3}, []snapshot.FacilitySnapshot{
		{ID: "storage", Type: snapshot.FacilityStorage, Pos: haulerPos(6, 6),
			Store: map[shared.ResourceType]int{}, StoreCapacity: 100000},
		{ID: "spawn-1", Type: snapshot.FacilitySpawn, Pos: haulerPos(6, 5),
			Store: map[shared.ResourceType]int{shared.ResourceEnergy: 100}, StoreCapacity: 300},
	})
	actions := helpers.NewRecordingActions()
	rc := haulerContext(t, view, actions)
	rec := haulerRecord(t)
	rec.State = agent.StateDelivering
	snap := snapshot.AgentSnapshot{ID: "h1", Pos: haulerPos(5, 5), Load: 200, Capacity: 300}

	outcome, err := (&roles.Hauler{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, "deliver", outcome.Action)
	assert.Equal(t, "spawn-1", outcome.TargetID)
}

func TestHauler_ExchangeSinkWhenFlagged(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 5}, []snapshot.FacilitySnapshot{
		{ID: "exch-1", Type: snapshot.FacilityExchange, Pos: haulerPos(6, 5),
			Store: map[shared.ResourceType]int{}, StoreCapacity: 50000},
		{ID: "storage", Type: snapshot.FacilityStorage, Pos: haulerPos(6, 6),
			Store: map[shared.ResourceType]int{}, StoreCapacity: 100000},
	})
	actions := helpers.NewRecordingActions()
	rc := haulerContext(t, view, actions)
	rc.Signals = roles.Signals{ExchangeNeedsEnergy: true, ExchangeID: "exch-1"}
	rec := haulerRecord(t)
	rec.State = agent.StateDelivering
	snap := snapshot.AgentSnapshot{ID: "h1", Pos: haulerPos(5, 5), Load: 200, Capacity: 300}

	outcome, err := (&roles.Hauler{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, "exch-1", outcome.TargetID)
}

func TestHauler_TargetClearedAfterCompletedDelivery(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3}, []snapshot.FacilitySnapshot{
		{ID: "spawn-1", Type: snapshot.FacilitySpawn, Pos: haulerPos(6, 5),
			Store: map[shared.ResourceType]int{}, StoreCapacity: 300},
	})
	actions := helpers.NewRecordingActions()
	rc := haulerContext(t, view, actions)
	rec := haulerRecord(t)
	rec.State = agent.StateDelivering
	snap := snapshot.AgentSnapshot{ID: "h1", Pos: haulerPos(5, 5), Load: 200, Capacity: 300}

	_, err := (&roles.Hauler{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Empty(t, rec.TargetID, "completed transfer forces re-evaluation next tick")
}

func TestHauler_FullSinkClearsTarget(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3}, []snapshot.FacilitySnapshot{
		{ID: "spawn-1", Type: snapshot.FacilitySpawn, Pos: haulerPos(6, 5),
			Store: map[shared.ResourceType]int{}, StoreCapacity: 300},
	})
	actions := helpers.NewRecordingActions()
	actions.Stub("Transfer", shared.ResultFull)
	rc := haulerContext(t, view, actions)
	rec := haulerRecord(t)
	rec.State = agent.StateDelivering
	snap := snapshot.AgentSnapshot{ID: "h1", Pos: haulerPos(5, 5), Load: 200, Capacity: 300}

	outcome, err := (&roles.Hauler{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, shared.ResultFull, outcome.Result)
	assert.Empty(t, rec.TargetID)
}

func TestHauler_DrawDownSourceWhenNothingElse(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 6}, []snapshot.FacilitySnapshot{
		{ID: "lab-full", Type: snapshot.FacilitySynthesis, Pos: haulerPos(6, 5),
			Store:         map[shared.ResourceType]int{shared.ResourceCompoundAB: 3000},
			StoreCapacity: 3000},
	})
	actions := helpers.NewRecordingActions()
	rc := haulerContext(t, view, actions)
	rc.Signals = roles.Signals{DrawDownIDs: []string{"lab-full"}}
	rec := haulerRecord(t)
	snap := snapshot.AgentSnapshot{ID: "h1", Pos: haulerPos(5, 5), Load: 0, Capacity: 300}

	outcome, err := (&roles.Hauler{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, "withdraw", outcome.Action)
	assert.Equal(t, "lab-full", outcome.TargetID)
}

func TestHauler_IdlesWithNothingToCollect(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3}, nil)
	actions := helpers.NewRecordingActions()
	rc := haulerContext(t, view, actions)
	rec := haulerRecord(t)
	snap := snapshot.AgentSnapshot{ID: "h1", Pos: haulerPos(5, 5), Load: 0, Capacity: 300}

	outcome, err := (&roles.Hauler{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, "idle", outcome.Action)
	assert.Empty(t, actions.Calls)
}
