package flow

import (
	"github.com/andrescamacho/colonycore-go/internal/domain/colony"
	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// SynthesisCoordinator drives the reaction pipeline: two fixed input
// facilities feed every remaining synthesis facility. A full output
// facility is flagged for hauler draw-down rather than retried.
type SynthesisCoordinator struct{}

// NewSynthesisCoordinator creates a synthesis coordinator.
func NewSynthesisCoordinator() *SynthesisCoordinator {
	return &SynthesisCoordinator{}
}

// Run attempts one reaction per off-cooldown output facility and returns
// the ids of full outputs awaiting draw-down. Idempotent per tick.
func (c *SynthesisCoordinator) Run(view *snapshot.View, cfg colony.SynthesisConfig, actions snapshot.Actions) []string {
	labs := view.OfType(snapshot.FacilitySynthesis)
	if len(labs) < 3 {
		// pipeline needs two inputs and at least one output
		return nil
	}

	// the two facilities holding the input compounds are the inputs;
	// fall back to the first two by snapshot order before loading
	inputA := findHolding(labs, cfg, true)
	inputB := findHolding(labs, cfg, false)
	if inputA == nil {
		inputA = labs[0]
	}
	if inputB == nil || inputB == inputA {
		inputB = labs[1]
		if inputB == inputA {
			return nil
		}
	}

	loaded := inputA.Stored(cfg.InputA) > 0 && inputB.Stored(cfg.InputB) > 0

	var drawDown []string
	for _, lab := range labs {
		if lab == inputA || lab == inputB {
			continue
		}
		if lab.FreeCapacity() == 0 {
			drawDown = append(drawDown, lab.ID)
			continue
		}
		if lab.Cooldown > 0 || !loaded {
			continue
		}
		actions.RunReaction(lab.ID, inputA.ID, inputB.ID)
	}
	return drawDown
}

func findHolding(labs []*snapshot.FacilitySnapshot, cfg colony.SynthesisConfig, first bool) *snapshot.FacilitySnapshot {
	res := cfg.InputA
	if !first {
		res = cfg.InputB
	}
	for _, lab := range labs {
		if lab.Stored(res) > 0 {
			return lab
		}
	}
	return nil
}
