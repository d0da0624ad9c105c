package spawning

import (
	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
)

// Census counts the live agents of one world by role, plus which extraction
// nodes already have a permanent extractor assigned.
type Census struct {
	Haulers           int
	Extractors        int
	Upgraders         int
	Builders          int
	MineralExtractors int
	Generalists       int

	AssignedNodeIDs map[string]bool
}

// TakeCensus builds a census from the world's persisted agent records.
// Records are already reconciled against the live snapshot before the
// scheduler runs, so counting records counts live agents.
func TakeCensus(records []*agent.Record) Census {
	c := Census{AssignedNodeIDs: make(map[string]bool)}
	for _, r := range records {
		switch r.Role {
		case agent.RoleHauler:
			c.Haulers++
		case agent.RoleExtractor:
			c.Extractors++
			if r.AssignedNodeID != "" {
				c.AssignedNodeIDs[r.AssignedNodeID] = true
			}
		case agent.RoleUpgrader:
			c.Upgraders++
		case agent.RoleBuilder:
			c.Builders++
		case agent.RoleMineralExtractor:
			c.MineralExtractors++
		case agent.RoleGeneralist:
			c.Generalists++
		}
	}
	return c
}
