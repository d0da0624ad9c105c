package shared

// Tick is one discrete scheduling step of the simulation.
//
// The tick counter is supplied by the world snapshot provider and threaded
// explicitly through every component call. Staleness and cooldown logic is
// expressed in ticks, never in wall-clock time, so it stays deterministic
// under test.
type Tick int64

// Age returns how many ticks have elapsed since an earlier tick.
func (t Tick) Age(since Tick) Tick {
	return t - since
}
