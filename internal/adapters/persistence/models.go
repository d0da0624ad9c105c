package persistence

// AgentRecordModel represents the agent_records table
type AgentRecordModel struct {
	ID             string `gorm:"column:id;primaryKey"`
	Name           string `gorm:"column:name;not null"`
	WorldID        string `gorm:"column:world_id;index;not null"`
	Role           string `gorm:"column:role;not null"`
	State          string `gorm:"column:state;not null"`
	TargetID       string `gorm:"column:target_id"`
	CachedPath     []byte `gorm:"column:cached_path;type:blob"`
	PathWrittenAt  int64  `gorm:"column:path_written_at;not null;default:0"`
	AssignedNodeID string `gorm:"column:assigned_node_id"`
	AnchorX        int    `gorm:"column:anchor_x;not null;default:0"`
	AnchorY        int    `gorm:"column:anchor_y;not null;default:0"`
	SpawnedAt      int64  `gorm:"column:spawned_at;not null"`
}

func (AgentRecordModel) TableName() string {
	return "agent_records"
}

// WorldRecordModel represents the world_records table.
// Relay topology, synthesis config and statistics are JSON stored as text
// (JSONB on PostgreSQL, TEXT on SQLite).
type WorldRecordModel struct {
	ID                string `gorm:"column:id;primaryKey"`
	Tier              int    `gorm:"column:tier;not null"`
	ExtractionNodeIDs string `gorm:"column:extraction_node_ids;type:text"`
	Relays            string `gorm:"column:relays;type:text"`
	Synthesis         string `gorm:"column:synthesis;type:text"`
	Stats             string `gorm:"column:stats;type:text"`
	RoadPlanLastRun   int64  `gorm:"column:road_plan_last_run;not null;default:0"`
	SeenAt            int64  `gorm:"column:seen_at;index;not null"`
}

func (WorldRecordModel) TableName() string {
	return "world_records"
}

// GlobalCounterModel represents the global_counters table
type GlobalCounterModel struct {
	Name  string `gorm:"column:name;primaryKey"`
	Value int64  `gorm:"column:value;not null;default:0"`
}

func (GlobalCounterModel) TableName() string {
	return "global_counters"
}
