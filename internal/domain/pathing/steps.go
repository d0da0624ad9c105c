package pathing

import (
	"fmt"

	"github.com/andrescamacho/colonycore-go/internal/domain/snapshot"
)

// Paths are serialized one byte per step, using the eight compass
// directions. Byte values outside 1..8 fail decoding, which the resolver
// treats as a consumption failure.
const (
	dirTop         byte = 1
	dirTopRight    byte = 2
	dirRight       byte = 3
	dirBottomRight byte = 4
	dirBottom      byte = 5
	dirBottomLeft  byte = 6
	dirLeft        byte = 7
	dirTopLeft     byte = 8
)

var dirOffsets = map[byte][2]int8{
	dirTop:         {0, -1},
	dirTopRight:    {1, -1},
	dirRight:       {1, 0},
	dirBottomRight: {1, 1},
	dirBottom:      {0, 1},
	dirBottomLeft:  {-1, 1},
	dirLeft:        {-1, 0},
	dirTopLeft:     {-1, -1},
}

// EncodeSteps serializes a step sequence to the compact byte form stored on
// the agent record.
func EncodeSteps(steps []snapshot.Step) ([]byte, error) {
	out := make([]byte, len(steps))
	for i, s := range steps {
		dir, err := directionOf(s)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		out[i] = dir
	}
	return out, nil
}

// DecodeSteps deserializes a stored path back into a step sequence.
func DecodeSteps(data []byte) ([]snapshot.Step, error) {
	steps := make([]snapshot.Step, len(data))
	for i, b := range data {
		off, ok := dirOffsets[b]
		if !ok {
			return nil, fmt.Errorf("invalid direction byte %d at step %d", b, i)
		}
		steps[i] = snapshot.Step{DX: off[0], DY: off[1]}
	}
	return steps, nil
}

func directionOf(s snapshot.Step) (byte, error) {
	for dir, off := range dirOffsets {
		if off[0] == s.DX && off[1] == s.DY {
			return dir, nil
		}
	}
	return 0, fmt.Errorf("non-unit step (%d,%d)", s.DX, s.DY)
}
