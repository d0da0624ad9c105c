package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/colonycore-go/internal/adapters/memcache"
	"github.com/andrescamacho/colonycore-go/internal/adapters/persistence"
	"github.com/andrescamacho/colonycore-go/internal/adapters/sim"
	"github.com/andrescamacho/colonycore-go/internal/application/tick"
	"github.com/andrescamacho/colonycore-go/internal/infrastructure/database"
)

type tickLifecycleContext struct {
	simulator *sim.Simulator
	handler   *tick.RunTickHandler
	agentRepo *persistence.GormAgentRecordRepository
	worldRepo *persistence.GormWorldRepository
	counters  *persistence.GormCounterRepository

	lastSummary *tick.TickSummary
	err         error
}

func InitializeTickLifecycleScenario(ctx *godog.ScenarioContext) {
	c := &tickLifecycleContext{}

	// Given steps
	ctx.Step(`^a fresh simulated colony$`, c.aFreshSimulatedColony)

	// When steps
	ctx.Step(`^the daemon runs (\d+) ticks?$`, c.theDaemonRunsNTicks)

	// Then steps
	ctx.Step(`^the tick should complete without world errors$`, c.theTickShouldCompleteWithoutWorldErrors)
	ctx.Step(`^agent production should have been requested$`, c.agentProductionShouldHaveBeenRequested)
	ctx.Step(`^(\d+) agent records? should be persisted$`, c.nAgentRecordsShouldBePersisted)
	ctx.Step(`^the "([^"]*)" counter should be (\d+)$`, c.theCounterShouldBe)
	ctx.Step(`^the world record "([^"]*)" should be tracked$`, c.theWorldRecordShouldBeTracked)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, c.setup()
	})
}

func (c *tickLifecycleContext) setup() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open test database: %w", err)
	}
	c.agentRepo = persistence.NewGormAgentRecordRepository(db)
	c.worldRepo = persistence.NewGormWorldRepository(db)
	c.counters = persistence.NewGormCounterRepository(db)

	cache, err := memcache.NewTickCache(64, 10)
	if err != nil {
		return fmt.Errorf("failed to create tick cache: %w", err)
	}

	c.handler = tick.NewRunTickHandler(
		c.agentRepo, c.worldRepo, c.counters,
		cache, nil, nil, tick.DefaultSettings(),
	)
	c.lastSummary = nil
	c.err = nil
	c.simulator = nil
	return nil
}

func (c *tickLifecycleContext) aFreshSimulatedColony() error {
	simulator, err := sim.New(sim.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to create simulator: %w", err)
	}
	c.simulator = simulator
	return nil
}

func (c *tickLifecycleContext) theDaemonRunsNTicks(count int) error {
	if c.simulator == nil {
		return fmt.Errorf("no simulated colony set up")
	}
	for i := 0; i < count; i++ {
		resp, err := c.handler.Handle(context.Background(), &tick.RunTickCommand{Provider: c.simulator})
		c.err = err
		if err != nil {
			return nil
		}
		summary, ok := resp.(*tick.TickSummary)
		if !ok {
			return fmt.Errorf("unexpected response type: %T", resp)
		}
		c.lastSummary = summary
		c.simulator.Advance()
	}
	return nil
}

func (c *tickLifecycleContext) theTickShouldCompleteWithoutWorldErrors() error {
	if c.err != nil {
		return fmt.Errorf("tick should not return error: %w", c.err)
	}
	if c.lastSummary == nil {
		return fmt.Errorf("no tick summary recorded")
	}
	if c.lastSummary.WorldErrors != 0 {
		return fmt.Errorf("expected no world errors, got %d", c.lastSummary.WorldErrors)
	}
	return nil
}

func (c *tickLifecycleContext) agentProductionShouldHaveBeenRequested() error {
	if c.lastSummary == nil {
		return fmt.Errorf("no tick summary recorded")
	}
	produced, err := c.counters.Get(context.Background(), "agents_produced")
	if err != nil {
		return err
	}
	if produced == 0 {
		return fmt.Errorf("expected at least one production request")
	}
	return nil
}

func (c *tickLifecycleContext) nAgentRecordsShouldBePersisted(count int) error {
	records, err := c.agentRepo.ListAll(context.Background())
	if err != nil {
		return err
	}
	if len(records) != count {
		return fmt.Errorf("expected %d agent records, got %d", count, len(records))
	}
	return nil
}

func (c *tickLifecycleContext) theCounterShouldBe(name string, expected int) error {
	value, err := c.counters.Get(context.Background(), name)
	if err != nil {
		return err
	}
	if value != int64(expected) {
		return fmt.Errorf("expected counter %s to be %d, got %d", name, expected, value)
	}
	return nil
}

func (c *tickLifecycleContext) theWorldRecordShouldBeTracked(worldID string) error {
	world, err := c.worldRepo.FindByID(context.Background(), worldID)
	if err != nil {
		return fmt.Errorf("world record %s should exist: %w", worldID, err)
	}
	if world.SeenAt == 0 {
		return fmt.Errorf("world record %s was never marked seen", worldID)
	}
	return nil
}
