package roles

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonycore-go/internal/domain/agent"
	"github.com/andrescamacho/colonycore-go/internal/domain/pathing"
	"github.com/andrescamacho/colonycore-go/internal/domain/shared"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// Signals are the per-tick flags published by the resource flow coordinator
// and consumed by role behaviors. They are recomputed every tick before any
// agent runs.
type Signals struct {
	// ExchangeNeedsEnergy asks haulers to top up the exchange facility
	ExchangeNeedsEnergy bool

	// ExchangeID is the facility to deliver to when the flag is set
	ExchangeID string

	// ControllerRelayID is the upgraders' dedicated refill relay
	ControllerRelayID string

	// DrawDownIDs lists full synthesis reactors awaiting hauler pickup
	DrawDownIDs []string
}

// TickContext carries everything one role decision may read. It is built
// once per world per tick and shared read-only across that world's agents.
type TickContext struct {
	Tick    shared.Tick
	View    *snapshot.View
	Actions snapshot.Actions
	Mover   *pathing.Resolver
	Tuning  Tuning
	Signals Signals
}

// Outcome describes the single action intent an agent produced this tick.
type Outcome struct {
	// Action names what the agent did ("harvest", "deliver", "move", ...)
	Action string

	// TargetID is the object acted on, if any
	TargetID string

	Result shared.ActionResult
}

func idle() Outcome {
	return Outcome{Action: "idle", Result: shared.ResultOK}
}

// Behavior is one role's state machine: given the agent's live snapshot and
// persistent record, produce exactly one action intent and mutate the record.
type Behavior interface {
	Role() agent.Role
	Decide(ctx context.Context, rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record) (Outcome, error)
}

// Engine dispatches agents to their role behavior over the closed role enum.
type Engine struct {
	behaviors map[agent.Role]Behavior
}

// NewEngine creates an engine from the given behaviors.
func NewEngine(behaviors ...Behavior) (*Engine, error) {
	m := make(map[agent.Role]Behavior, len(behaviors))
	for _, b := range behaviors {
		if _, exists := m[b.Role()]; exists {
			return nil, fmt.Errorf("behavior already registered for role %s", b.Role())
		}
		m[b.Role()] = b
	}
	return &Engine{behaviors: m}, nil
}

// NewDefaultEngine creates an engine with every production role registered.
func NewDefaultEngine() *Engine {
	e, err := NewEngine(
		&Hauler{},
		&Extractor{},
		&Upgrader{},
		&Builder{},
		&MineralExtractor{},
		&Generalist{},
	)
	if err != nil {
		// all roles are distinct constants; duplicate registration here
		// is a programming error
		panic(err)
	}
	return e
}

// Decide runs one agent through its role behavior.
func (e *Engine) Decide(ctx context.Context, rc *TickContext, snap snapshot.AgentSnapshot, rec *agent.Record) (Outcome, error) {
	b, ok := e.behaviors[rec.Role]
	if !ok {
		return Outcome{}, fmt.Errorf("no behavior registered for role %s", rec.Role)
	}
	return b.Decide(ctx, rc, snap, rec)
}
