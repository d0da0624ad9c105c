package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "colonycore"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "colonycore"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "colonycore.db"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/colonycore-daemon.pid"
	}
	if cfg.Daemon.TickInterval == 0 {
		cfg.Daemon.TickInterval = 1 * time.Second
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}

	// Tick defaults
	if cfg.Tick.Budget == 0 {
		cfg.Tick.Budget = 500 * time.Millisecond
	}
	if cfg.Tick.HighWaterFraction == 0 {
		cfg.Tick.HighWaterFraction = 0.85
	}
	if cfg.Tick.PathStaleness == 0 {
		cfg.Tick.PathStaleness = 50
	}
	if cfg.Tick.WorldStaleAfter == 0 {
		cfg.Tick.WorldStaleAfter = 1000
	}
	if cfg.Tick.RoadPlanPeriod == 0 {
		cfg.Tick.RoadPlanPeriod = 200
	}
	if cfg.Tick.CacheSize == 0 {
		cfg.Tick.CacheSize = 1024
	}
	if cfg.Tick.CacheTTL == 0 {
		cfg.Tick.CacheTTL = 10
	}

	// Simulation defaults
	if cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = 1
	}
	if cfg.Simulation.WorldCount == 0 {
		cfg.Simulation.WorldCount = 1
	}
	if cfg.Simulation.GridSize == 0 {
		cfg.Simulation.GridSize = 50
	}
	if cfg.Simulation.NodeCount == 0 {
		cfg.Simulation.NodeCount = 2
	}
	if cfg.Simulation.AgentLife == 0 {
		cfg.Simulation.AgentLife = 1500
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9464
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
