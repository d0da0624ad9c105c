package cli

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/colonycore-go/internal/adapters/memcache"
	"github.com/andrescamacho/colonycore-go/internal/adapters/metrics"
	"github.com/andrescamacho/colonycore-go/internal/adapters/persistence"
	"github.com/andrescamacho/colonycore-go/internal/adapters/sim"
	"github.com/andrescamacho/colonycore-go/internal/application/common"
	"github.com/andrescamacho/colonycore-go/internal/application/tick"
	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/colony"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/infrastructure/config"
	"github.com/andrescamacho/colonycore-go/internal/infrastructure/database"
	"github.com/andrescamacho/colonycore-go/internal/infrastructure/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// Container wires the full application object graph from configuration.
type Container struct {
	Config   *config.Config
	DB       *gorm.DB
	Logger   *logging.ZapLogger
	Mediator common.Mediator

	AgentRepo agent.RecordRepository
	WorldRepo colony.WorldRepository
	Counters  colony.CounterRepository

	Simulator *sim.Simulator

	MetricsRegistry *prometheus.Registry
	MetricsServer   *metrics.Server
}

// NewContainer builds the object graph: database, repositories, cache,
// telemetry and the tick handler, all from configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	agentRepo := persistence.NewGormAgentRecordRepository(db)
	worldRepo := persistence.NewGormWorldRepository(db)
	counters := persistence.NewGormCounterRepository(db)

	cache, err := memcache.NewTickCache(cfg.Tick.CacheSize, shared.Tick(cfg.Tick.CacheTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to build cache: %w", err)
	}

	var telemetry tick.TelemetryRecorder
	var registry *prometheus.Registry
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		telemetry = metrics.NewTickMetricsCollector(registry)
		metricsServer = metrics.NewServer(registry, cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
	}

	simulator, err := sim.New(sim.Config{
		Seed:       cfg.Simulation.Seed,
		WorldCount: cfg.Simulation.WorldCount,
		GridSize:   cfg.Simulation.GridSize,
		NodeCount:  cfg.Simulation.NodeCount,
		AgentLife:  cfg.Simulation.AgentLife,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build simulator: %w", err)
	}

	handler := tick.NewRunTickHandler(
		agentRepo,
		worldRepo,
		counters,
		cache,
		shared.NewRealClock(),
		telemetry,
		tick.Settings{
			Budget:            cfg.Tick.Budget,
			HighWaterFraction: cfg.Tick.HighWaterFraction,
			PathStaleness:     shared.Tick(cfg.Tick.PathStaleness),
			WorldStaleAfter:   shared.Tick(cfg.Tick.WorldStaleAfter),
			RoadPlanPeriod:    shared.Tick(cfg.Tick.RoadPlanPeriod),
			Tuning:            tick.DefaultSettings().Tuning,
		},
	)

	m := common.NewMediator()
	if err := common.RegisterHandler[*tick.RunTickCommand](m, handler); err != nil {
		return nil, fmt.Errorf("failed to register tick handler: %w", err)
	}

	return &Container{
		Config:          cfg,
		DB:              db,
		Logger:          logger,
		Mediator:        m,
		AgentRepo:       agentRepo,
		WorldRepo:       worldRepo,
		Counters:        counters,
		Simulator:       simulator,
		MetricsRegistry: registry,
		MetricsServer:   metricsServer,
	}, nil
}

// Close releases the container's resources.
func (c *Container) Close() error {
	_ = c.Logger.Sync()
	return database.Close(c.DB)
}
