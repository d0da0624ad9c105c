package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonycore-go/internal/infrastructure/config"
)

func TestSetDefaults(t *testing.T) {
	cfg := &config.Config{}

	config.SetDefaults(cfg)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "colonycore.db", cfg.Database.Path)
	assert.Equal(t, 1*time.Second, cfg.Daemon.TickInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Tick.Budget)
	assert.Equal(t, 0.85, cfg.Tick.HighWaterFraction)
	assert.Equal(t, 50, cfg.Simulation.GridSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 9464, cfg.Metrics.Port)
}

func TestSetDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Type = "postgres"
	cfg.Tick.Budget = 250 * time.Millisecond

	config.SetDefaults(cfg)

	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 250*time.Millisecond, cfg.Tick.Budget)
}

func TestValidateConfig(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	require.NoError(t, config.ValidateConfig(cfg))

	cfg.Tick.HighWaterFraction = 1.5
	assert.Error(t, config.ValidateConfig(cfg), "fraction above one is rejected")

	config.SetDefaults(cfg)
	cfg.Tick.HighWaterFraction = 0.85
	cfg.Simulation.GridSize = 5
	assert.Error(t, config.ValidateConfig(cfg), "grid too small to place facilities")
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := config.LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 1024, cfg.Tick.CacheSize)
}
