package sysexec

import "sync/atomic"

// RunState represents the executor's coarse lifecycle state (§4.5.2):
// IDLE → RUNNING → TERMINATED, with simulation_stop resetting RUNNING or
// TERMINATED back to an IDLE-equivalent.
type RunState uint32

const (
	// StateIdle indicates the executor has been constructed (or reset via
	// SimulationStop) but Simulate has not yet been called.
	StateIdle RunState = iota
	// StateRunning indicates InitSim has transitioned the executor and
	// Simulate's tick loop is (or may be) advancing.
	StateRunning
	// StateTerminated indicates the terminal condition in §4.5.2 fired, or
	// a fatal error aborted the run.
	StateTerminated
)

func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// fastState is a lock-free atomic wrapper around RunState, following the
// same CAS-transition discipline as the rest of this package's single-writer
// fields: TryTransition for provisional moves, Store for states that are
// never transitioned away from concurrently.
type fastState struct {
	v atomic.Uint32
}

func newFastState() *fastState {
	s := &fastState{}
	s.v.Store(uint32(StateIdle))
	return s
}

func (s *fastState) Load() RunState {
	return RunState(s.v.Load())
}

func (s *fastState) Store(state RunState) {
	s.v.Store(uint32(state))
}

func (s *fastState) TryTransition(from, to RunState) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}
