package tick

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/colonycore-go/internal/application/common"
	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/colony"
	"github.com/andrescamacho/colonycore-go/internal/domain/defense"
	"github.com/andrescamacho/colonycore-go/internal/domain/flow"
	"github.com/andrescamacho/colonycore-go/internal/domain/pathing"
	"github.com/andrescamacho/colonycore-go/internal/domain/roles"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
	"github.com/andrescamacho/colonycore-go/internal/domain/spawning"
)

// RunTickCommand performs one tick of scheduling and decision work against
// the given world snapshot provider.
type RunTickCommand struct {
	Provider snapshot.WorldProvider
}

// Settings are the orchestrator thresholds, loaded from configuration.
type Settings struct {
	// Budget is the hard per-tick compute budget; HighWaterFraction of
	// it triggers a warning, never an abort
	Budget            time.Duration
	HighWaterFraction float64

	// PathStaleness bounds cached path age; older entries are swept
	PathStaleness shared.Tick

	// WorldStaleAfter prunes world records not observed for this long
	WorldStaleAfter shared.Tick

	// RoadPlanPeriod gates the periodic road planning pass
	RoadPlanPeriod shared.Tick

	Tuning roles.Tuning
}

// DefaultSettings returns the standard orchestrator thresholds.
func DefaultSettings() Settings {
	return Settings{
		Budget:            500 * time.Millisecond,
		HighWaterFraction: 0.85,
		PathStaleness:     50,
		WorldStaleAfter:   1000,
		RoadPlanPeriod:    200,
		Tuning:            roles.DefaultTuning(),
	}
}

// RunTickHandler is the top-level tick orchestrator. Execution is
// single-threaded and sequential: cleanup, then per-world facility logic,
// then per-agent role logic. Per-agent failures are isolated; budget
// exhaustion is detected at this boundary only and never aborts the tick.
type RunTickHandler struct {
	agentRepo agent.RecordRepository
	worldRepo colony.WorldRepository
	counters  colony.CounterRepository

	engine    *roles.Engine
	scheduler *spawning.Scheduler
	relays    *flow.RelayCoordinator
	exchange  *flow.ExchangeCoordinator
	synthesis *flow.SynthesisCoordinator
	arbiter   *defense.Arbiter
	roads     *roadPlanner

	cache     common.EphemeralCache
	clock     shared.Clock
	telemetry TelemetryRecorder
	settings  Settings
}

// NewRunTickHandler wires the tick orchestrator.
func NewRunTickHandler(
	agentRepo agent.RecordRepository,
	worldRepo colony.WorldRepository,
	counters colony.CounterRepository,
	cache common.EphemeralCache,
	clock shared.Clock,
	telemetry TelemetryRecorder,
	settings Settings,
) *RunTickHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RunTickHandler{
		agentRepo: agentRepo,
		worldRepo: worldRepo,
		counters:  counters,
		engine:    roles.NewDefaultEngine(),
		scheduler: spawning.NewScheduler(),
		relays:    flow.NewRelayCoordinator(),
		exchange:  flow.NewExchangeCoordinator(),
		synthesis: flow.NewSynthesisCoordinator(),
		arbiter:   defense.NewArbiter(),
		roads:     newRoadPlanner(cache),
		cache:     cache,
		clock:     clock,
		telemetry: telemetry,
		settings:  settings,
	}
}

// Handle executes one tick.
func (h *RunTickHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunTickCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	provider := cmd.Provider
	if provider == nil {
		return nil, fmt.Errorf("world snapshot provider cannot be nil")
	}

	logger := common.LoggerFromContext(ctx)
	now := provider.CurrentTick()
	started := h.clock.Now()
	summary := &TickSummary{Tick: now}

	h.cleanup(ctx, provider, now, summary, logger)

	resolver, err := pathing.NewResolver(provider, h.settings.PathStaleness)
	if err != nil {
		return nil, fmt.Errorf("failed to build path resolver: %w", err)
	}

	for _, info := range provider.OwnedWorlds() {
		if err := h.processWorld(ctx, provider, resolver, info, now, summary); err != nil {
			summary.WorldErrors++
			logger.Log("ERROR", "world processing failed", map[string]interface{}{
				"world_id": info.ID,
				"tick":     int64(now),
				"error":    err.Error(),
			})
			continue
		}
		summary.WorldsProcessed++
	}

	summary.Duration = h.clock.Now().Sub(started)
	if h.settings.Budget > 0 {
		summary.BudgetFraction = float64(summary.Duration) / float64(h.settings.Budget)
	}
	if summary.BudgetFraction >= h.settings.HighWaterFraction {
		summary.OverHighWater = true
		logger.Log("WARN", "tick exceeded budget high-water mark", map[string]interface{}{
			"tick":            int64(now),
			"duration_ms":     summary.Duration.Milliseconds(),
			"budget_fraction": summary.BudgetFraction,
		})
	}

	if _, err := h.counters.Increment(ctx, colony.CounterTicksRun, 1); err != nil {
		logger.Log("ERROR", "failed to increment tick counter", map[string]interface{}{"error": err.Error()})
	}
	if h.telemetry != nil {
		h.telemetry.RecordTick(summary)
	}
	return summary, nil
}

// cleanup reconciles the state store against the live snapshot and sweeps
// stale entries. Cleanup failures are logged, never fatal: stale records
// only cost space until the next tick retries.
func (h *RunTickHandler) cleanup(ctx context.Context, provider snapshot.WorldProvider, now shared.Tick, summary *TickSummary, logger common.Logger) {
	removed, err := h.agentRepo.DeleteMissing(ctx, provider.AllLiveAgentIDs())
	if err != nil {
		logger.Log("ERROR", "agent reconciliation failed", map[string]interface{}{"error": err.Error()})
	}
	summary.RecordsRemoved = removed

	if now > h.settings.PathStaleness {
		if _, err := h.agentRepo.ClearStalePaths(ctx, now-h.settings.PathStaleness); err != nil {
			logger.Log("ERROR", "path cache sweep failed", map[string]interface{}{"error": err.Error()})
		}
	}
	if now > h.settings.WorldStaleAfter {
		if _, err := h.worldRepo.DeleteUnseen(ctx, now-h.settings.WorldStaleAfter); err != nil {
			logger.Log("ERROR", "world pruning failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// processWorld runs the facility logic then the role logic for one world.
func (h *RunTickHandler) processWorld(
	ctx context.Context,
	provider snapshot.WorldProvider,
	resolver *pathing.Resolver,
	info snapshot.WorldInfo,
	now shared.Tick,
	summary *TickSummary,
) error {
	logger := common.LoggerFromContext(ctx)

	world, err := h.loadOrCreateWorld(ctx, info, now)
	if err != nil {
		return err
	}
	world.ObserveTier(info.Tier)
	world.MarkSeen(now)

	view := snapshot.BuildView(provider, info)
	agents := provider.LiveAgents(info.ID)
	actions := provider.Actions()

	if len(world.ExtractionNodeIDs) != len(view.Nodes) {
		world.ExtractionNodeIDs = nodeIDs(view)
	}

	// facility logic, in dependency order: flow feeds the signals the
	// role engine consumes
	h.relays.Run(view, world, actions, now)
	status := h.exchange.Run(view, provider.Market(), now)
	if status.OrdersCreated > 0 {
		summary.OrdersCreated += status.OrdersCreated
		world.Stats.OrdersCreated += int64(status.OrdersCreated)
		if _, err := h.counters.Increment(ctx, colony.CounterOrdersCreated, int64(status.OrdersCreated)); err != nil {
			logger.Log("ERROR", "failed to increment order counter", map[string]interface{}{"error": err.Error()})
		}
	}
	drawDown := h.synthesis.Run(view, world.Synthesis, actions)
	h.arbiter.Run(view, world.Tier, agents, actions)

	h.produceAgent(ctx, view, world, actions, now, summary, logger)

	if world.RoadPlanDue(now, h.settings.RoadPlanPeriod) {
		h.roads.plan(view, provider, now)
		world.RoadPlanLastRun = now
	}

	rc := &roles.TickContext{
		Tick:    now,
		View:    view,
		Actions: actions,
		Mover:   resolver,
		Tuning:  h.settings.Tuning,
		Signals: roles.Signals{
			ExchangeNeedsEnergy: status.NeedsEnergy,
			ExchangeID:          status.FacilityID,
			ControllerRelayID:   world.Relays.ControllerRelayID,
			DrawDownIDs:         drawDown,
		},
	}

	delivered := 0
	for _, snap := range agents {
		delivered += h.processAgent(ctx, rc, snap, summary, logger)
	}

	world.Stats.EnergyHarvested += int64(delivered)
	world.Stats.UpdatedAt = now
	if err := h.worldRepo.Save(ctx, world); err != nil {
		return fmt.Errorf("failed to save world record: %w", err)
	}
	return nil
}

func (h *RunTickHandler) loadOrCreateWorld(ctx context.Context, info snapshot.WorldInfo, now shared.Tick) (*colony.WorldRecord, error) {
	world, err := h.worldRepo.FindByID(ctx, info.ID)
	if err == nil {
		return world, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to load world record: %w", err)
	}
	return colony.NewWorldRecord(info.ID, info.Tier, now)
}

// produceAgent asks the scheduler for the highest-priority unit and starts
// production on the first idle facility. The record persists before the
// agent first appears in a snapshot.
func (h *RunTickHandler) produceAgent(
	ctx context.Context,
	view *snapshot.View,
	world *colony.WorldRecord,
	actions snapshot.Actions,
	now shared.Tick,
	summary *TickSummary,
	logger common.Logger,
) {
	spawn := idleSpawn(view)
	if spawn == nil {
		return
	}

	records, err := h.agentRepo.ListByWorld(ctx, world.ID)
	if err != nil {
		logger.Log("ERROR", "failed to list agent records", map[string]interface{}{
			"world_id": world.ID,
			"error":    err.Error(),
		})
		return
	}

	req := h.scheduler.NextToProduce(view, world, spawning.TakeCensus(records), now)
	if req == nil {
		return
	}
	if snapshot.BodyCost(req.Body) > view.Info.ProductionCapacity {
		return
	}

	result := actions.ProduceAgent(spawn.ID, req.Name, req.Body)
	if !result.OK() {
		return
	}
	if err := h.agentRepo.Save(ctx, req.Record); err != nil {
		logger.Log("ERROR", "failed to persist produced agent record", map[string]interface{}{
			"agent_id": req.Name,
			"error":    err.Error(),
		})
		return
	}
	world.Stats.AgentsProduced++
	summary.SpawnsRequested++
	if _, err := h.counters.Increment(ctx, colony.CounterAgentsProduced, 1); err != nil {
		logger.Log("ERROR", "failed to increment production counter", map[string]interface{}{"error": err.Error()})
	}
	logger.Log("INFO", "agent production started", map[string]interface{}{
		"world_id": world.ID,
		"agent_id": req.Name,
		"role":     string(req.Role),
	})
}

// processAgent runs one agent through its role behavior with full
// isolation: a panic or error is logged with the agent identity and does
// not abort the remaining agents. It returns the amount the agent
// delivered this tick, for the world's rolling statistics.
func (h *RunTickHandler) processAgent(
	ctx context.Context,
	rc *roles.TickContext,
	snap snapshot.AgentSnapshot,
	summary *TickSummary,
	logger common.Logger,
) int {
	rec, err := h.agentRepo.FindByID(ctx, snap.ID)
	if errors.Is(err, shared.ErrNotFound) {
		// not ours: foreign agent or record already reconciled away
		return 0
	}
	if err != nil {
		summary.AgentErrors++
		logger.Log("ERROR", "failed to load agent record", map[string]interface{}{
			"agent_id": snap.ID,
			"error":    err.Error(),
		})
		return 0
	}

	outcome, err := h.decideSafely(ctx, rc, snap, rec)
	summary.AgentsProcessed++
	if err != nil {
		summary.AgentErrors++
		if _, cErr := h.counters.Increment(ctx, colony.CounterAgentErrors, 1); cErr != nil {
			logger.Log("ERROR", "failed to increment error counter", map[string]interface{}{"error": cErr.Error()})
		}
		logger.Log("ERROR", "agent decision failed", map[string]interface{}{
			"agent_id": snap.ID,
			"role":     string(rec.Role),
			"error":    err.Error(),
		})
		return 0
	}

	if err := h.agentRepo.Save(ctx, rec); err != nil {
		summary.AgentErrors++
		logger.Log("ERROR", "failed to save agent record", map[string]interface{}{
			"agent_id": snap.ID,
			"error":    err.Error(),
		})
		return 0
	}

	logger.Log("DEBUG", "agent decided", map[string]interface{}{
		"agent_id": snap.ID,
		"action":   outcome.Action,
		"target":   outcome.TargetID,
		"result":   string(outcome.Result),
	})

	if outcome.Action == "deliver" && outcome.Result.OK() {
		return snap.Load
	}
	return 0
}

// decideSafely converts a role behavior panic into an error at the
// per-agent boundary.
func (h *RunTickHandler) decideSafely(
	ctx context.Context,
	rc *roles.TickContext,
	snap snapshot.AgentSnapshot,
	rec *agent.Record,
) (outcome roles.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("role behavior panicked: %v", r)
		}
	}()
	return h.engine.Decide(ctx, rc, snap, rec)
}

func idleSpawn(view *snapshot.View) *snapshot.FacilitySnapshot {
	for _, f := range view.OfType(snapshot.FacilitySpawn) {
		if f.Cooldown == 0 {
			return f
		}
	}
	return nil
}

func nodeIDs(view *snapshot.View) []string {
	ids := make([]string, len(view.Nodes))
	for i := range view.Nodes {
		ids[i] = view.Nodes[i].ID
	}
	return ids
}
