package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/colonycore-go/internal/adapters/memcache"
	"github.com/andrescamacho/colonycore-go/internal/adapters/persistence"
	"github.com/andrescamacho/colonycore-go/internal/adapters/sim"
	"github.com/andrescamacho/colonycore-go/internal/application/tick"
	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/infrastructure/database"
)

type reconciliationContext struct {
	simulator *sim.Simulator
	handler   *tick.RunTickHandler
	agentRepo *persistence.GormAgentRecordRepository

	lastSummary *tick.TickSummary
}

func InitializeReconciliationScenario(ctx *godog.ScenarioContext) {
	c := &reconciliationContext{}

	// Given steps
	ctx.Step(`^a stored agent record "([^"]*)" with no live agent$`, c.aStoredAgentRecordWithNoLiveAgent)

	// When steps
	ctx.Step(`^reconciliation runs for one tick$`, c.reconciliationRunsForOneTick)

	// Then steps
	ctx.Step(`^the agent record "([^"]*)" should be removed$`, c.theAgentRecordShouldBeRemoved)
	ctx.Step(`^(\d+) record removals? should be reported$`, c.nRecordRemovalsShouldBeReported)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, c.setup()
	})
}

func (c *reconciliationContext) setup() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open test database: %w", err)
	}
	c.agentRepo = persistence.NewGormAgentRecordRepository(db)

	cache, err := memcache.NewTickCache(64, 10)
	if err != nil {
		return fmt.Errorf("failed to create tick cache: %w", err)
	}

	c.handler = tick.NewRunTickHandler(
		c.agentRepo,
		persistence.NewGormWorldRepository(db),
		persistence.NewGormCounterRepository(db),
		cache, nil, nil, tick.DefaultSettings(),
	)

	c.simulator, err = sim.New(sim.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to create simulator: %w", err)
	}
	c.lastSummary = nil
	return nil
}

func (c *reconciliationContext) aStoredAgentRecordWithNoLiveAgent(id string) error {
	rec, err := agent.NewRecord(id, id, "W1", agent.RoleHauler, 1)
	if err != nil {
		return err
	}
	return c.agentRepo.Save(context.Background(), rec)
}

func (c *reconciliationContext) reconciliationRunsForOneTick() error {
	resp, err := c.handler.Handle(context.Background(), &tick.RunTickCommand{Provider: c.simulator})
	if err != nil {
		return fmt.Errorf("tick failed: %w", err)
	}
	summary, ok := resp.(*tick.TickSummary)
	if !ok {
		return fmt.Errorf("unexpected response type: %T", resp)
	}
	c.lastSummary = summary
	return nil
}

func (c *reconciliationContext) theAgentRecordShouldBeRemoved(id string) error {
	_, err := c.agentRepo.FindByID(context.Background(), id)
	if err == nil {
		return fmt.Errorf("agent record %s should have been removed", id)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("unexpected lookup error: %w", err)
	}
	return nil
}

func (c *reconciliationContext) nRecordRemovalsShouldBeReported(count int) error {
	if c.lastSummary == nil {
		return fmt.Errorf("no tick summary recorded")
	}
	if c.lastSummary.RecordsRemoved != int64(count) {
		return fmt.Errorf("expected %d removals, got %d", count, c.lastSummary.RecordsRemoved)
	}
	return nil
}
