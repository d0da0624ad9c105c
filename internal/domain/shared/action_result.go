package shared

// ActionResult is the small result code returned by every action primitive
// of the world snapshot provider.
type ActionResult string

const (
	ResultOK           ActionResult = "OK"
	ResultNotInRange   ActionResult = "NOT_IN_RANGE"
	ResultNotEnough    ActionResult = "NOT_ENOUGH_RESOURCE"
	ResultFull         ActionResult = "FULL"
	ResultInvalid      ActionResult = "INVALID"
	ResultNotFound     ActionResult = "NOT_FOUND"
	ResultOnCooldown   ActionResult = "ON_COOLDOWN"
)

// OK reports whether the action succeeded.
func (r ActionResult) OK() bool {
	return r == ResultOK
}

// Transient reports whether the failure is expected to resolve on its own
// by next tick (movement, cooldown, fill level). Transient failures are
// handled locally and never surfaced upward.
func (r ActionResult) Transient() bool {
	switch r {
	case ResultNotInRange, ResultOnCooldown, ResultFull, ResultNotEnough:
		return true
	}
	return false
}

// StaleReference reports whether the failure indicates a persisted id that
// no longer resolves to a live object. The caller deletes the reference and
// re-derives on the next evaluation.
func (r ActionResult) StaleReference() bool {
	return r == ResultNotFound || r == ResultInvalid
}
