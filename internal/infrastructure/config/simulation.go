package config

// SimulationConfig seeds the built-in deterministic world used when the
// daemon runs without an external world provider.
type SimulationConfig struct {
	// Seed drives all random layout generation
	Seed int64 `mapstructure:"seed"`

	// WorldCount is how many controller areas to generate
	WorldCount int `mapstructure:"world_count" validate:"min=1"`

	// GridSize is the square world edge length in tiles
	GridSize int `mapstructure:"grid_size" validate:"min=10"`

	// NodeCount is the number of extraction nodes per world
	NodeCount int `mapstructure:"node_count" validate:"min=1"`

	// AgentLife is the produced agent lifetime in ticks
	AgentLife int `mapstructure:"agent_life" validate:"min=1"`
}
