package defense_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/colonycore-go/internal/domain/defense"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
	"github.com/andrescamacho/colonycore-go/test/helpers"
)

func defensePos(x, y int) shared.Position {
	return shared.Position{WorldID: "W1", X: x, Y: y}
}

func defenseView(extra ...snapshot.FacilitySnapshot) *snapshot.View {
	facilities := append([]snapshot.FacilitySnapshot{
		{ID: "tower-1", Type: snapshot.FacilityTower, Pos: defensePos(25, 25)},
		{ID: "spawn-1", Type: snapshot.FacilitySpawn, Pos: defensePos(25, 25)},
	}, extra...)
	return snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 4}, facilities)
}

func TestArbiter_HealersOutrankOtherHostiles(t *testing.T) {
	arbiter := defense.NewArbiter()
	view := defenseView()
	view.Hostiles = []snapshot.HostileSnapshot{
		{ID: "melee", Pos: defensePos(26, 25), MeleeParts: 4},
		{ID: "ranged", Pos: defensePos(27, 25), RangedParts: 3},
		{ID: "healer", Pos: defensePos(40, 40), HealParts: 2},
	}

	target := arbiter.SelectTarget(view, 4, nil)

	assert.Equal(t, defense.TargetAttack, target.Kind)
	assert.Equal(t, "healer", target.ID, "a distant healer still outranks closer attackers")
}

func TestArbiter_TiesBreakTowardSpawn(t *testing.T) {
	arbiter := defense.NewArbiter()
	view := defenseView()
	view.Hostiles = []snapshot.HostileSnapshot{
		{ID: "far", Pos: defensePos(40, 40), MeleeParts: 2},
		{ID: "near", Pos: defensePos(26, 26), MeleeParts: 2},
	}

	target := arbiter.SelectTarget(view, 4, nil)

	assert.Equal(t, "near", target.ID)
}

func TestArbiter_HealsBeforeRepairing(t *testing.T) {
	arbiter := defense.NewArbiter()
	view := defenseView(snapshot.FacilitySnapshot{
		ID: "ext-1", Type: snapshot.FacilityExtractor, Pos: defensePos(10, 10),
		Integrity: 100, MaxIntegrity: 1000,
	})
	agents := []snapshot.AgentSnapshot{
		{ID: "a-hurt", Health: 150, MaxHealth: 300},
		{ID: "a-worse", Health: 50, MaxHealth: 300},
		{ID: "a-fine", Health: 300, MaxHealth: 300},
	}

	target := arbiter.SelectTarget(view, 4, agents)

	assert.Equal(t, defense.TargetHeal, target.Kind)
	assert.Equal(t, "a-worse", target.ID, "lowest absolute health first")
}

func TestArbiter_RepairsDamagedStructureBeforePerimeter(t *testing.T) {
	arbiter := defense.NewArbiter()
	view := defenseView(
		snapshot.FacilitySnapshot{
			ID: "ext-1", Type: snapshot.FacilityExtractor, Pos: defensePos(10, 10),
			Integrity: 400, MaxIntegrity: 1000,
		},
		snapshot.FacilitySnapshot{
			ID: "wall-1", Type: snapshot.FacilityWall, Pos: defensePos(5, 5),
			Integrity: 100, MaxIntegrity: 3000000,
		},
	)

	target := arbiter.SelectTarget(view, 4, nil)

	assert.Equal(t, defense.TargetRepair, target.Kind)
	assert.Equal(t, "ext-1", target.ID)
}

func TestArbiter_HealthyStructureNotRepaired(t *testing.T) {
	arbiter := defense.NewArbiter()
	view := defenseView(snapshot.FacilitySnapshot{
		ID: "ext-1", Type: snapshot.FacilityExtractor, Pos: defensePos(10, 10),
		Integrity: 600, MaxIntegrity: 1000,
	})

	target := arbiter.SelectTarget(view, 4, nil)

	assert.Equal(t, defense.TargetNone, target.Kind)
}

func TestArbiter_WallFloorScalesWithTierAndCaps(t *testing.T) {
	arbiter := defense.NewArbiter()

	assert.Equal(t, 10000, arbiter.WallFloor(1))
	assert.Equal(t, 80000, arbiter.WallFloor(8))
	assert.Equal(t, 300000, arbiter.WallFloor(40), "floor is capped")
}

func TestArbiter_PerimeterRepairedOnlyBelowFloor(t *testing.T) {
	arbiter := defense.NewArbiter()
	view := defenseView(
		snapshot.FacilitySnapshot{
			ID: "wall-low", Type: snapshot.FacilityWall, Pos: defensePos(5, 5),
			Integrity: 30000, MaxIntegrity: 3000000,
		},
		snapshot.FacilitySnapshot{
			ID: "wall-ok", Type: snapshot.FacilityRampart, Pos: defensePos(6, 5),
			Integrity: 50000, MaxIntegrity: 3000000,
		},
	)

	// tier 4 floor is 40000: only wall-low qualifies
	target := arbiter.SelectTarget(view, 4, nil)

	assert.Equal(t, defense.TargetRepair, target.Kind)
	assert.Equal(t, "wall-low", target.ID)
}

func TestArbiter_WornRoadIsLastResort(t *testing.T) {
	arbiter := defense.NewArbiter()
	view := defenseView(
		snapshot.FacilitySnapshot{
			ID: "road-worn", Type: snapshot.FacilityRoad, Pos: defensePos(12, 12),
			Integrity: 200, MaxIntegrity: 300,
		},
		snapshot.FacilitySnapshot{
			ID: "buffer-worse", Type: snapshot.FacilityBuffer, Pos: defensePos(13, 12),
			Integrity: 1000, MaxIntegrity: 2000,
		},
	)

	target := arbiter.SelectTarget(view, 4, nil)

	assert.Equal(t, defense.TargetRepair, target.Kind)
	assert.Equal(t, "buffer-worse", target.ID, "lowest wear fraction wins among roads and buffers")
}

func TestArbiter_RunIssuesOneActionPerTower(t *testing.T) {
	arbiter := defense.NewArbiter()
	actions := helpers.NewRecordingActions()
	view := snapshot.NewView(snapshot.WorldInfo{ID: "W1", Tier: 4}, []snapshot.FacilitySnapshot{
		{ID: "tower-1", Type: snapshot.FacilityTower, Pos: defensePos(25, 25)},
		{ID: "tower-2", Type: snapshot.FacilityTower, Pos: defensePos(30, 25)},
		{ID: "spawn-1", Type: snapshot.FacilitySpawn, Pos: defensePos(25, 25)},
	})
	view.Hostiles = []snapshot.HostileSnapshot{
		{ID: "h1", Pos: defensePos(28, 25), MeleeParts: 2},
	}

	arbiter.Run(view, 4, nil, actions)

	attacks := actions.CallsTo("TowerAttack")
	assert.Len(t, attacks, 2)
	for _, call := range attacks {
		assert.Equal(t, "h1", call.Args[1])
	}
}
