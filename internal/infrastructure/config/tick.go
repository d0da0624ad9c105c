package config

import "time"

// TickConfig holds the orchestrator thresholds
type TickConfig struct {
	// Budget is the hard per-tick compute budget
	Budget time.Duration `mapstructure:"budget" validate:"required"`

	// HighWaterFraction of the budget triggers a warning
	HighWaterFraction float64 `mapstructure:"high_water_fraction" validate:"gt=0,lte=1"`

	// PathStaleness bounds cached path age in ticks
	PathStaleness int64 `mapstructure:"path_staleness" validate:"min=1"`

	// WorldStaleAfter prunes world records not observed for this many ticks
	WorldStaleAfter int64 `mapstructure:"world_stale_after" validate:"min=1"`

	// RoadPlanPeriod gates the periodic road planning pass
	RoadPlanPeriod int64 `mapstructure:"road_plan_period" validate:"min=1"`

	// CacheSize bounds the ephemeral cache entry count
	CacheSize int `mapstructure:"cache_size" validate:"min=1"`

	// CacheTTL is the ephemeral cache entry lifetime in ticks
	CacheTTL int64 `mapstructure:"cache_ttl" validate:"min=1"`
}
