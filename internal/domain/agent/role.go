package agent

import "fmt"

// Role is the closed set of agent archetypes. A role is fixed at production
// time for the agent's lifetime; behavior dispatch happens over this enum,
// never over open-ended strings.
type Role string

const (
	// RoleHauler moves resources between buffers, facilities and storage
	RoleHauler Role = "HAULER"

	// RoleExtractor sits on a permanently assigned extraction node
	RoleExtractor Role = "EXTRACTOR"

	// RoleUpgrader feeds energy into the world controller
	RoleUpgrader Role = "UPGRADER"

	// RoleBuilder works pending construction orders
	RoleBuilder Role = "BUILDER"

	// RoleMineralExtractor harvests the depletable mineral deposit
	RoleMineralExtractor Role = "MINERAL_EXTRACTOR"

	// RoleGeneralist is the minimal emergency bootstrap agent, produced
	// only when the economy has fully collapsed
	RoleGeneralist Role = "GENERALIST"
)

// ParseRole validates a stored role string against the closed enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleHauler, RoleExtractor, RoleUpgrader, RoleBuilder,
		RoleMineralExtractor, RoleGeneralist:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// State is the per-role behavior state persisted between ticks.
type State string

const (
	// StateCollecting / StateDelivering are the hauler states
	StateCollecting State = "COLLECTING"
	StateDelivering State = "DELIVERING"

	// StateActing / StateRefilling are the upgrader and builder states
	StateActing    State = "ACTING"
	StateRefilling State = "REFILLING"

	// StateMining / StateDepositing are the mineral extractor states
	StateMining     State = "MINING"
	StateDepositing State = "DEPOSITING"

	// StateIdle is the initial state for roles without a richer machine
	StateIdle State = "IDLE"
)
