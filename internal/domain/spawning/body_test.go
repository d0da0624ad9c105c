package spawning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
	"github.com/andrescamacho/colonycore-go/internal/domain/spawning"
)

func TestBodyFor_MonotonicInCapacity(t *testing.T) {
	roles := []agent.Role{
		agent.RoleExtractor,
		agent.RoleHauler,
		agent.RoleUpgrader,
		agent.RoleBuilder,
		agent.RoleMineralExtractor,
	}

	for _, role := range roles {
		prev := 0
		for capacity := 200; capacity <= 2000; capacity += 50 {
			body := spawning.BodyFor(role, capacity, 8)
			assert.GreaterOrEqual(t, len(body), prev,
				"role %s shrank from capacity %d", role, capacity)
			prev = len(body)
		}
	}
}

func TestBodyFor_AffordableAtDeclaredCapacity(t *testing.T) {
	for capacity := 300; capacity <= 2000; capacity += 100 {
		for _, role := range []agent.Role{agent.RoleExtractor, agent.RoleHauler, agent.RoleUpgrader} {
			body := spawning.BodyFor(role, capacity, 8)
			assert.LessOrEqual(t, snapshot.BodyCost(body), capacity,
				"role %s body costs more than capacity %d", role, capacity)
		}
	}
}

func TestExtractorBody_WorkCap(t *testing.T) {
	body := spawning.BodyFor(agent.RoleExtractor, 5000, 8)

	works := 0
	for _, p := range body {
		if p == snapshot.PartWork {
			works++
		}
	}
	assert.Equal(t, 6, works, "extractor work parts are capped")
}

func TestWorkerBody_TierCap(t *testing.T) {
	// huge capacity at tier 1 still yields a small worker
	lowTier := spawning.BodyFor(agent.RoleUpgrader, 2000, 1)
	highTier := spawning.BodyFor(agent.RoleUpgrader, 2000, 8)

	assert.Equal(t, 2*3, len(lowTier))
	assert.Equal(t, 6*3, len(highTier))
}

func TestEmergencyBody_MinimalCost(t *testing.T) {
	assert.Equal(t, 200, snapshot.BodyCost(spawning.EmergencyBody()))
}
