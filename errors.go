package sysexec

import (
	"errors"
	"fmt"
)

// Standard sentinel errors. Fatal errors unwind out of Simulate with the
// executor left in a consistent but stopped (TERMINATED) state; non-fatal
// errors are reported through the operation that caused them without
// disturbing loop state (§7).
var (
	// ErrExecutorAlreadyRunning is returned when InitSim is called on an
	// executor that is already RUNNING.
	ErrExecutorAlreadyRunning = errors.New("sysexec: executor is already running")

	// ErrExecutorTerminated is returned when operations are attempted on an
	// executor that has reached the TERMINATED state.
	ErrExecutorTerminated = errors.New("sysexec: executor has terminated")

	// ErrUnresolvedCoupling is never returned to a caller: a (src, port)
	// pair with no coupling is recovered locally by routing to the catcher.
	// It exists only to name the condition in documentation.
	ErrUnresolvedCoupling = errors.New("sysexec: no coupling for (src, port), routed to catcher")
)

// ModelContractViolationError reports that a model violated the contract
// required by the executor — most commonly, TimeAdvance returning a negative
// delay. That case is fatal: it aborts Simulate and leaves the executor
// TERMINATED. RegisterEntity also returns it, without affecting executor
// state, for a model that uses a reserved name.
type ModelContractViolationError struct {
	Model  string
	Reason string
}

func (e *ModelContractViolationError) Error() string {
	return fmt.Sprintf("sysexec: model %q violated contract: %s", e.Model, e.Reason)
}

// UnknownPortError reports that InsertExternalEvent named a port the
// executor was not constructed with. Per §7/§9 (Open Question 2), this is
// surfaced to the caller rather than silently dropped, and does not disturb
// the running simulation.
type UnknownPortError struct {
	Port string
}

func (e *UnknownPortError) Error() string {
	return fmt.Sprintf("sysexec: unknown input port %q", e.Port)
}

// DuplicateNameError reports that a model being promoted to active has the
// same name as a model already active. Fatal on promotion.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("sysexec: duplicate active model name %q", e.Name)
}

// RateLimitExceededError reports that InsertExternalEvent was rejected by
// the configured ingress admission limiter for the named port's category.
// Non-fatal: the event is simply not enqueued.
type RateLimitExceededError struct {
	Port string
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("sysexec: external event rate limit exceeded for port %q", e.Port)
}
