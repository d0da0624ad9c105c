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

func upgraderRecord(t *testing.T) *agent.Record {
	t.Helper()
	rec, err := agent.NewRecord("u1", "u1", "W1", agent.RoleUpgrader, 1)
	require.NoError(t, err)
	return rec
}

func upgraderContext(t *testing.T, view *snapshot.View, actions snapshot.Actions) *roles.TickContext {
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

func TestUpgrader_RefillsFromDedicatedRelayFirst(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3}, []snapshot.FacilitySnapshot{
		{ID: "relay-ctrl", Type: snapshot.FacilityRelay, Pos: haulerPos(6, 5),
			Store: map[shared.ResourceType]int{shared.ResourceEnergy: 800}, StoreCapacity: 2000},
		{ID: "buf-1", Type: snapshot.FacilityBuffer, Pos: haulerPos(5, 6),
			Store: map[shared.ResourceType]int{shared.ResourceEnergy: 800}, StoreCapacity: 2000},
		{ID: "ctrl", Type: snapshot.FacilityController, Pos: haulerPos(20, 20)},
	})
	actions := helpers.NewRecordingActions()
	rc := upgraderContext(t, view, actions)
	rc.Signals = roles.Signals{ControllerRelayID: "relay-ctrl"}
	rec := upgraderRecord(t)
	snap := snapshot.AgentSnapshot{ID: "u1", Pos: haulerPos(5, 5), Load: 0, Capacity: 200}

	outcome, err := (&roles.Upgrader{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, "withdraw", outcome.Action)
	assert.Equal(t, "relay-ctrl", outcome.TargetID, "dedicated relay beats the buffer")
}

func TestUpgrader_FallsBackToBufferWhenRelayEmpty(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3}, []snapshot.FacilitySnapshot{
		{ID: "relay-ctrl", Type: snapshot.FacilityRelay, Pos: haulerPos(6, 5),
			Store: map[shared.ResourceType]int{}, StoreCapacity: 2000},
		{ID: "buf-1", Type: snapshot.FacilityBuffer, Pos: haulerPos(5, 6),
			Store: map[shared.ResourceType]int{shared.ResourceEnergy: 800}, StoreCapacity: 2000},
	})
	actions := helpers.NewRecordingActions()
	rc := upgraderContext(t, view, actions)
	rc.Signals = roles.Signals{ControllerRelayID: "relay-ctrl"}
	rec := upgraderRecord(t)
	snap := snapshot.AgentSnapshot{ID: "u1", Pos: haulerPos(5, 5), Load: 0, Capacity: 200}

	outcome, err := (&roles.Upgrader{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, "withdraw", outcome.Action)
	assert.Equal(t, "buf-1", outcome.TargetID)
}

func TestUpgrader_UpgradesWithinWorkingRange(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3}, []snapshot.FacilitySnapshot{
		{ID: "ctrl", Type: snapshot.FacilityController, Pos: haulerPos(7, 5)},
	})
	actions := helpers.NewRecordingActions()
	rc := upgraderContext(t, view, actions)
	rec := upgraderRecord(t)
	rec.State = agent.StateActing
	snap := snapshot.AgentSnapshot{ID: "u1", Pos: haulerPos(5, 5), Load: 150, Capacity: 200}

	outcome, err := (&roles.Upgrader{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, "upgrade", outcome.Action)
	assert.Len(t, actions.CallsTo("Upgrade"), 1)
}

func TestUpgrader_MovesTowardDistantController(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3}, []snapshot.FacilitySnapshot{
		{ID: "ctrl", Type: snapshot.FacilityController, Pos: haulerPos(20, 20)},
	})
	actions := helpers.NewRecordingActions()
	rc := upgraderContext(t, view, actions)
	rec := upgraderRecord(t)
	rec.State = agent.StateActing
	snap := snapshot.AgentSnapshot{ID: "u1", Pos: haulerPos(5, 5), Load: 150, Capacity: 200}

	outcome, err := (&roles.Upgrader{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, "move", outcome.Action)
	assert.True(t, rec.HasPath())
}

func TestUpgrader_EmptyLoadFlipsToRefilling(t *testing.T) {
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 3}, []snapshot.FacilitySnapshot{
		{ID: "ctrl", Type: snapshot.FacilityController, Pos: haulerPos(7, 5)},
	})
	view.Nodes = []snapshot.NodeSnapshot{{ID: "node-a", Pos: haulerPos(6, 5), Remaining: 3000}}
	actions := helpers.NewRecordingActions()
	rc := upgraderContext(t, view, actions)
	rec := upgraderRecord(t)
	rec.State = agent.StateActing
	snap := snapshot.AgentSnapshot{ID: "u1", Pos: haulerPos(5, 5), Load: 0, Capacity: 200}

	outcome, err := (&roles.Upgrader{}).Decide(context.Background(), rc, snap, rec)

	require.NoError(t, err)
	assert.Equal(t, agent.StateRefilling, rec.State)
	assert.Equal(t, "harvest", outcome.Action, "raw node is the refill of last resort")
}
