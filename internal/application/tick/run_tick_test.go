package tick

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonycore-go/internal/adapters/memcache"
	"github.com/andrescamacho/colonycore-go/internal/adapters/persistence"
	"github.com/andrescamacho/colonycore-go/internal/adapters/sim"
	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/colony"
	"github.com/andrescamacho/colonycore-go/internal/domain/roles"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
	"github.com/andrescamacho/colonycore-go/test/helpers"
)

type tickFixture struct {
	handler   *RunTickHandler
	sim       *sim.Simulator
	agentRepo *persistence.GormAgentRecordRepository
	worldRepo *persistence.GormWorldRepository
	counters  *persistence.GormCounterRepository
}

func newTickFixture(t *testing.T) *tickFixture {
	t.Helper()
	db := helpers.NewTestDB(t)
	agentRepo := persistence.NewGormAgentRecordRepository(db)
	worldRepo := persistence.NewGormWorldRepository(db)
	counters := persistence.NewGormCounterRepository(db)

	cache, err := memcache.NewTickCache(64, 10)
	require.NoError(t, err)

	simulator, err := sim.New(sim.DefaultConfig())
	require.NoError(t, err)

	handler := NewRunTickHandler(agentRepo, worldRepo, counters, cache, nil, nil, DefaultSettings())
	return &tickFixture{
		handler:   handler,
		sim:       simulator,
		agentRepo: agentRepo,
		worldRepo: worldRepo,
		counters:  counters,
	}
}

func (f *tickFixture) runTick(t *testing.T) *TickSummary {
	t.Helper()
	resp, err := f.handler.Handle(context.Background(), &RunTickCommand{Provider: f.sim})
	require.NoError(t, err)
	summary, ok := resp.(*TickSummary)
	require.True(t, ok)
	return summary
}

func TestRunTickHandler_FirstTickBootstrapsColony(t *testing.T) {
	f := newTickFixture(t)
	ctx := context.Background()

	summary := f.runTick(t)

	assert.Equal(t, 1, summary.WorldsProcessed)
	assert.Equal(t, 1, summary.SpawnsRequested, "empty colony starts emergency production")
	assert.Zero(t, summary.WorldErrors)
	assert.Zero(t, summary.AgentErrors)

	records, err := f.agentRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1, "the record persists before the agent first appears live")
	assert.Equal(t, agent.RoleGeneralist, records[0].Role)

	world, err := f.worldRepo.FindByID(ctx, "W1")
	require.NoError(t, err)
	assert.Equal(t, f.sim.CurrentTick(), world.SeenAt)
	assert.Len(t, world.ExtractionNodeIDs, 2)

	ticks, err := f.counters.Get(ctx, colony.CounterTicksRun)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ticks)

	produced, err := f.counters.Get(ctx, colony.CounterAgentsProduced)
	require.NoError(t, err)
	assert.Equal(t, int64(1), produced)
}

func TestRunTickHandler_LiveAgentsRunTheirRole(t *testing.T) {
	f := newTickFixture(t)

	f.runTick(t)
	f.sim.Advance()
	summary := f.runTick(t)

	assert.Equal(t, 1, summary.AgentsProcessed)
	assert.Zero(t, summary.AgentErrors)
}

func TestRunTickHandler_OrphanRecordsReconciled(t *testing.T) {
	f := newTickFixture(t)
	ctx := context.Background()

	ghost, err := agent.NewRecord("ghost-1", "ghost-1", "W1", agent.RoleHauler, 1)
	require.NoError(t, err)
	require.NoError(t, f.agentRepo.Save(ctx, ghost))

	summary := f.runTick(t)

	assert.Equal(t, int64(1), summary.RecordsRemoved)
	_, err = f.agentRepo.FindByID(ctx, "ghost-1")
	assert.Error(t, err)
}

type panicBehavior struct{}

func (panicBehavior) Role() agent.Role { return agent.RoleGeneralist }

func (panicBehavior) Decide(context.Context, *roles.TickContext, snapshot.AgentSnapshot, *agent.Record) (roles.Outcome, error) {
	panic("deliberate failure")
}

func TestRunTickHandler_AgentPanicIsIsolated(t *testing.T) {
	f := newTickFixture(t)
	ctx := context.Background()

	f.runTick(t)
	f.sim.Advance()

	engine, err := roles.NewEngine(panicBehavior{})
	require.NoError(t, err)
	f.handler.engine = engine

	summary := f.runTick(t)

	assert.Equal(t, 1, summary.AgentsProcessed)
	assert.Equal(t, 1, summary.AgentErrors, "the panic surfaces as a per-agent error")
	assert.Equal(t, 1, summary.WorldsProcessed, "the tick itself completes")

	errCount, err := f.counters.Get(ctx, colony.CounterAgentErrors)
	require.NoError(t, err)
	assert.Equal(t, int64(1), errCount)
}

func TestRunTickHandler_RejectsBadRequests(t *testing.T) {
	f := newTickFixture(t)

	_, err := f.handler.Handle(context.Background(), "not a command")
	assert.Error(t, err)

	_, err = f.handler.Handle(context.Background(), &RunTickCommand{})
	assert.Error(t, err)
}
