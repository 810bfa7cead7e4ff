// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package sysexec

import (
	"time"

	"github.com/joeycumines/logiface"
)

// TimeRegime selects which of the two time semantics (§3) the executor
// advances global time by: VirtualTime steps by the time step with no wall
// clock coupling, RealTime paces each tick to time-step seconds of wall clock.
type TimeRegime int

const (
	// VirtualTime advances global time by the time step each tick, as fast
	// as the carrier can process ticks.
	VirtualTime TimeRegime = iota
	// RealTime paces ticks so that each tick of one time step takes that
	// many seconds of wall-clock time, sleeping out any surplus.
	RealTime
)

// executorOptions holds configuration resolved from ExecutorOption values.
type executorOptions struct {
	inputPorts []string
	timeStep   VTime
	regime     TimeRegime
	logger     *logiface.Logger[logiface.Event]
	metrics    *Metrics
	rateLimits map[time.Duration]int
}

// --- Executor Options ---

// ExecutorOption configures a Executor instance.
type ExecutorOption interface {
	applyExecutor(*executorOptions) error
}

// executorOptionImpl implements ExecutorOption.
type executorOptionImpl struct {
	applyExecutorFunc func(*executorOptions) error
}

func (o *executorOptionImpl) applyExecutor(opts *executorOptions) error {
	return o.applyExecutorFunc(opts)
}

// WithInputPorts declares the set of external input port names the executor
// accepts through InsertExternalEvent. Names not in this set are rejected
// with *UnknownPortError (§7, Open Question 2).
func WithInputPorts(ports ...string) ExecutorOption {
	return &executorOptionImpl{func(opts *executorOptions) error {
		opts.inputPorts = append(opts.inputPorts, ports...)
		return nil
	}}
}

// WithRealTime switches the executor to the RealTime regime (§3), pacing
// each tick so that its wall-clock duration matches time_step seconds,
// sleeping out any surplus. The default regime is VirtualTime.
func WithRealTime() ExecutorOption {
	return &executorOptionImpl{func(opts *executorOptions) error {
		opts.regime = RealTime
		return nil
	}}
}

// WithTimeStep sets the virtual-time advance applied to global time at the
// end of every tick. In the RealTime regime, it also names the wall-clock
// seconds each tick is paced to. Defaults to 1.
func WithTimeStep(step VTime) ExecutorOption {
	return &executorOptionImpl{func(opts *executorOptions) error {
		opts.timeStep = step
		return nil
	}}
}

// WithLogger sets the structured logger used for tick, creation,
// destruction, routing, and error events. The default logger discards all
// output.
func WithLogger(logger *logiface.Logger[logiface.Event]) ExecutorOption {
	return &executorOptionImpl{func(opts *executorOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithMetrics attaches a Metrics instance, enabling Prometheus
// instrumentation of queue depths, tick counts, and rate-limit rejections.
// The default is unmetered.
func WithMetrics(m *Metrics) ExecutorOption {
	return &executorOptionImpl{func(opts *executorOptions) error {
		opts.metrics = m
		return nil
	}}
}

// WithIngressRateLimits configures per-input-port admission rate limiting
// on InsertExternalEvent, keyed by sliding window duration to event count
// within that window (see go-catrate). A port exceeding its limit is
// rejected with *RateLimitExceededError rather than queued.
func WithIngressRateLimits(rates map[time.Duration]int) ExecutorOption {
	return &executorOptionImpl{func(opts *executorOptions) error {
		opts.rateLimits = rates
		return nil
	}}
}

// resolveExecutorOptions applies ExecutorOption instances to executorOptions.
func resolveExecutorOptions(opts []ExecutorOption) (*executorOptions, error) {
	cfg := &executorOptions{
		regime:   VirtualTime,
		timeStep: 1,
		logger:   logiface.New[logiface.Event](),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyExecutor(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
