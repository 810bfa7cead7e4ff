package sysexec

import "math"

// VTime is a virtual simulation timestamp, denominated in whatever unit the
// host chooses (REAL_TIME mode interprets TimeStep as seconds of wall clock).
type VTime = float64

// Infinite is the distinguished sentinel larger than every finite VTime. A
// model that returns Infinite from TimeAdvance is declaring it has no further
// internal event scheduled.
const Infinite VTime = math.MaxFloat64

// IsInfinite reports whether t is the Infinite sentinel.
func IsInfinite(t VTime) bool {
	return t == Infinite
}
