package spawning

import (
	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
	"github.com/andrescamacho/colonycore-go/pkg/utils"
)

// Body shapes are a pure function of (capacity, tier, role) with no side
// effects. More capacity yields strictly more or equal parts, never fewer:
// every shape below is built from floor divisions of the capacity, which
// are monotonic, clamped by tier-independent caps.

// EmergencyBody is the minimal generalist produced during economic
// collapse. It must be affordable from a freshly reset production facility.
func EmergencyBody() []snapshot.BodyPart {
	return []snapshot.BodyPart{snapshot.PartWork, snapshot.PartCarry, snapshot.PartMove}
}

// BodyFor computes the body shape for a role at the given production
// capacity and development tier.
func BodyFor(role agent.Role, capacity, tier int) []snapshot.BodyPart {
	switch role {
	case agent.RoleExtractor:
		return extractorBody(capacity, 6)
	case agent.RoleMineralExtractor:
		return extractorBody(capacity, 8)
	case agent.RoleHauler:
		return haulerBody(capacity)
	case agent.RoleUpgrader, agent.RoleBuilder:
		return workerBody(capacity, tier)
	case agent.RoleGeneralist:
		return EmergencyBody()
	}
	return EmergencyBody()
}

// extractorBody is one carry, one move, and as many work parts as the
// capacity affords up to maxWork. A static extractor barely moves, so it
// never needs more than one move part.
func extractorBody(capacity, maxWork int) []snapshot.BodyPart {
	works := utils.Clamp((capacity-100)/100, 1, maxWork)
	body := make([]snapshot.BodyPart, 0, works+2)
	for i := 0; i < works; i++ {
		body = append(body, snapshot.PartWork)
	}
	return append(body, snapshot.PartCarry, snapshot.PartMove)
}

// haulerBody repeats carry-carry-move segments, up to eight.
func haulerBody(capacity int) []snapshot.BodyPart {
	segments := utils.Clamp(capacity/150, 1, 8)
	body := make([]snapshot.BodyPart, 0, segments*3)
	for i := 0; i < segments; i++ {
		body = append(body, snapshot.PartCarry, snapshot.PartCarry, snapshot.PartMove)
	}
	return body
}

// workerBody repeats work-carry-move segments. The tier cap keeps low-tier
// worlds from sinking their whole economy into one agent.
func workerBody(capacity, tier int) []snapshot.BodyPart {
	maxSegments := utils.Min(tier+1, 6)
	segments := utils.Clamp(capacity/200, 1, maxSegments)
	body := make([]snapshot.BodyPart, 0, segments*3)
	for i := 0; i < segments; i++ {
		body = append(body, snapshot.PartWork, snapshot.PartCarry, snapshot.PartMove)
	}
	return body
}
