package common

import "github.com/andrescamacho/colonycore-go/internal/domain/shared"

// EphemeralCache is the process-lifetime cache for expensive derived
// values. Entries expire logically: a read returns the value only while
// its tick-based TTL holds; there is no eager eviction. The cache resets
// on process restart and is independent of the persistent state store.
type EphemeralCache interface {
	Get(key string, now shared.Tick) (interface{}, bool)
	Put(key string, value interface{}, now shared.Tick)
	Clear()
}
