package shared

import "fmt"

// Position is a tile coordinate inside one world.
type Position struct {
	WorldID string
	X       int
	Y       int
}

// NewPosition creates a position with validation
func NewPosition(worldID string, x, y int) (Position, error) {
	if worldID == "" {
		return Position{}, fmt.Errorf("position world id cannot be empty")
	}
	if x < 0 || y < 0 {
		return Position{}, fmt.Errorf("position coordinates cannot be negative: (%d,%d)", x, y)
	}
	return Position{WorldID: worldID, X: x, Y: y}, nil
}

// RangeTo returns the Chebyshev distance to another position.
// Diagonal movement costs the same as orthogonal movement, so this is the
// metric used by all in-range checks.
func (p Position) RangeTo(other Position) int {
	dx := absInt(p.X - other.X)
	dy := absInt(p.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// IsAdjacent reports whether the other position is within range 1.
func (p Position) IsAdjacent(other Position) bool {
	return p.WorldID == other.WorldID && p.RangeTo(other) <= 1
}

// InRange reports whether the other position is within the given range.
func (p Position) InRange(other Position, r int) bool {
	return p.WorldID == other.WorldID && p.RangeTo(other) <= r
}

func (p Position) String() string {
	return fmt.Sprintf("%s(%d,%d)", p.WorldID, p.X, p.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
