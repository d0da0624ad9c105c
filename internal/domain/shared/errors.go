package shared

import "errors"

// Common domain errors shared across components.
var (
	// ErrNotFound indicates a record does not exist in the state store
	ErrNotFound = errors.New("record not found")

	// ErrNoPath indicates the pathfinding primitive could not produce a
	// step sequence between two positions
	ErrNoPath = errors.New("no path found")
)
