// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package sysexec

import (
	"sync"
	"time"
)

// Executor is the discrete-event simulation carrier (C8): it owns the
// entity registry, schedule queue, coupling graph, and external I/O queues,
// and advances them tick by tick per the algorithm in this package's design
// notes.
//
// An Executor's tick loop runs on a single carrier goroutine (whichever
// calls Simulate). RegisterEntity, Couple, and the tick loop itself must
// only be called from that carrier, or before Simulate is first called.
// InsertExternalEvent and DrainExternalOutput/GetGeneratedEvent are safe to
// call from any goroutine.
type Executor struct {
	opts       *executorOptions
	inputPorts map[string]struct{}
	timeStep   VTime

	state    *fastState
	registry *EntityRegistry
	schedule *ScheduleQueue
	graph    *CouplingGraph
	input    *externalInputQueue
	output   *externalOutputQueue

	timeMu     sync.RWMutex
	globalTime VTime
	targetTime VTime

	learnMu sync.Mutex
	learn   any
}

// NewExecutor constructs an Executor configured by opts. A Default Message
// Catcher is registered automatically and becomes active at global time 0.
func NewExecutor(opts ...ExecutorOption) (*Executor, error) {
	cfg, err := resolveExecutorOptions(opts)
	if err != nil {
		return nil, err
	}

	inputPorts := make(map[string]struct{}, len(cfg.inputPorts))
	for _, p := range cfg.inputPorts {
		inputPorts[p] = struct{}{}
	}

	ex := &Executor{
		opts:       cfg,
		inputPorts: inputPorts,
		timeStep:   cfg.timeStep,
		state:      newFastState(),
		registry:   NewEntityRegistry(),
		schedule:   NewScheduleQueue(),
		graph:      NewCouplingGraph(),
		input:      newExternalInputQueue(newIngressLimiter(cfg.rateLimits)),
		output:     newExternalOutputQueue(),
	}
	ex.registry.Register(NewDefaultMessageCatcher())
	return ex, nil
}

// RegisterEntity places model in the pending map, to become active once
// global time reaches its CreateTime. Must be called before Simulate, or
// from the carrier during a tick.
func (e *Executor) RegisterEntity(model Model) error {
	switch model.Name() {
	case catcherName, ExternalSource:
		return &ModelContractViolationError{Model: model.Name(), Reason: "reserved model name"}
	}
	e.registry.Register(model)
	return nil
}

// Couple builds the coupling graph: messages model src emits on outPort are
// delivered to dst's inPort. Pass ExternalSink as dst to route to the
// external output queue instead. Pass ExternalSource as src to couple one of
// the executor's declared input ports to a model (see InsertExternalEvent).
func (e *Executor) Couple(src, outPort, dst, inPort string) {
	e.graph.Couple(src, outPort, dst, inPort)
}

// InitSim transitions the executor from IDLE to RUNNING. It is implicit in
// Simulate; calling it directly is only useful to observe the transition, or
// to fail fast on a terminated executor before registering entities.
func (e *Executor) InitSim() error {
	return e.initSim(false)
}

func (e *Executor) initSim(internal bool) error {
	for {
		switch e.state.Load() {
		case StateIdle:
			if e.state.TryTransition(StateIdle, StateRunning) {
				return nil
			}
		case StateRunning:
			if internal {
				return nil
			}
			return ErrExecutorAlreadyRunning
		case StateTerminated:
			return ErrExecutorTerminated
		}
	}
}

// IsTerminated reports whether the executor has reached the TERMINATED
// state, either via the natural termination condition (§4.5.2) or a fatal
// error aborting a prior Simulate call.
func (e *Executor) IsTerminated() bool {
	return e.state.Load() == StateTerminated
}

// SimulationStop resets the executor to its IDLE-equivalent initial
// conditions: global and target time return to zero, the time step reverts
// to its default of 1, every registered model and coupling is discarded, and
// a fresh Default Message Catcher is registered.
func (e *Executor) SimulationStop() {
	e.timeMu.Lock()
	e.globalTime = 0
	e.targetTime = 0
	e.timeMu.Unlock()

	e.timeStep = 1
	e.registry = NewEntityRegistry()
	e.schedule = NewScheduleQueue()
	e.graph = NewCouplingGraph()
	e.registry.Register(NewDefaultMessageCatcher())
	e.state.Store(StateIdle)
}

// InsertExternalEvent enqueues payload for delivery to port once global time
// reaches its current value plus delay. Returns *UnknownPortError if port
// was not declared via WithInputPorts, or *RateLimitExceededError if an
// ingress rate limit configured via WithIngressRateLimits rejected it.
//
// Unlike the single-threaded carrier this design is grounded on,
// InsertExternalEvent only enqueues: it never routes synchronously, even
// while the executor is RUNNING, since doing so from an arbitrary calling
// goroutine would violate the single-carrier ownership of the schedule
// queue and coupling graph (§5). The event is instead ingested on the next
// tick's ingest-external step, at most one tick later than it would be
// under the single-threaded original — comparable to the one-cycle
// reaction latency the routing algorithm already documents for model-to-
// model delivery.
func (e *Executor) InsertExternalEvent(port string, payload any, delay VTime) error {
	if _, ok := e.inputPorts[port]; !ok {
		return &UnknownPortError{Port: port}
	}

	e.timeMu.RLock()
	at := e.globalTime + delay
	e.timeMu.RUnlock()

	msg := NewMessage(ExternalSource, port, payload)
	if err := e.input.push(at, port, msg); err != nil {
		if e.opts.metrics != nil {
			e.opts.metrics.RateLimitedTotal.WithLabelValues(port).Inc()
		}
		return err
	}
	return nil
}

// Catcher returns the executor's Default Message Catcher, for inspecting
// which messages were routed there in the absence of an explicit coupling.
// Returns nil if called before the catcher has been promoted to active
// (i.e. before the first tick, or immediately after SimulationStop).
func (e *Executor) Catcher() *DefaultMessageCatcher {
	model, ok := e.registry.Active(catcherName)
	if !ok {
		return nil
	}
	catcher, _ := model.(*DefaultMessageCatcher)
	return catcher
}

// GetGeneratedEvent returns a snapshot of every (global_time, message) pair
// currently queued for external collection, without removing them. See also
// DrainExternalOutput.
func (e *Executor) GetGeneratedEvent() []GeneratedEvent {
	return e.output.peek()
}

// DrainExternalOutput atomically returns and clears every (global_time,
// message) pair currently queued for external collection.
func (e *Executor) DrainExternalOutput() []GeneratedEvent {
	return e.output.drain()
}

// SetLearningModule stores an opaque value the executor never inspects or
// invokes; it exists purely as a slot the host can use to associate a
// learning component with this executor instance.
func (e *Executor) SetLearningModule(m any) {
	e.learnMu.Lock()
	e.learn = m
	e.learnMu.Unlock()
}

// GetLearningModule returns the value last passed to SetLearningModule, or
// nil if none was set.
func (e *Executor) GetLearningModule() any {
	e.learnMu.Lock()
	defer e.learnMu.Unlock()
	return e.learn
}

// Simulate runs the tick loop until global time reaches its current value
// plus duration, or the termination condition in §4.5.2 fires: no pending
// creations remain, no external input is still queued for delivery, the
// schedule queue's head is due at Infinite, and the executor is in the
// VirtualTime regime.
func (e *Executor) Simulate(duration VTime) error {
	if err := e.initSim(true); err != nil {
		return err
	}

	e.timeMu.Lock()
	if IsInfinite(duration) {
		e.targetTime = Infinite
	} else {
		e.targetTime = e.globalTime + duration
	}
	target := e.targetTime
	e.timeMu.Unlock()

	for {
		gt := e.currentTime()
		if gt >= target {
			return nil
		}

		if !e.registry.HasPending() && e.input.len() == 0 {
			if _, reqTime, ok := e.schedule.PeekMin(); ok && IsInfinite(reqTime) && e.opts.regime == VirtualTime {
				e.state.Store(StateTerminated)
				return nil
			}
		}

		if err := e.tick(); err != nil {
			e.state.Store(StateTerminated)
			if e.opts.logger != nil {
				logFatal(e.opts.logger, err)
			}
			return err
		}
	}
}

func (e *Executor) currentTime() VTime {
	e.timeMu.RLock()
	defer e.timeMu.RUnlock()
	return e.globalTime
}

func (e *Executor) setTime(t VTime) {
	e.timeMu.Lock()
	e.globalTime = t
	e.timeMu.Unlock()
}

// tick runs one iteration of the schedule algorithm (§4.5.3): create,
// ingest external input, fire due models, advance time, pace (RealTime
// only), destroy.
func (e *Executor) tick() error {
	start := time.Now()
	gt := e.currentTime()

	promoted, err := e.registry.PromoteDue(gt, e.schedule)
	if err != nil {
		return err
	}
	for _, name := range promoted {
		if e.opts.metrics != nil {
			e.opts.metrics.ModelsCreatedTotal.Inc()
		}
		if e.opts.logger != nil {
			logCreated(e.opts.logger, name, gt)
		}
	}

	for _, ev := range e.input.drainDue(gt) {
		e.route(ExternalSource, ev.port, ev.message)
	}

	var fired string
	for {
		name, reqTime, ok := e.schedule.PeekMin()
		if !ok || reqTime > gt {
			break
		}
		e.schedule.PopMin()
		fired = name

		model, active := e.registry.Active(name)
		if !active {
			// Promoted-then-destroyed in the same tick is not reachable
			// given the ordering of phases, but a queue entry surviving
			// its model's removal must never be dispatched.
			continue
		}

		if msg, present := model.Output(); present {
			e.route(name, msg.Dst, msg)
		}

		model.IntTrans()

		delta := model.TimeAdvance()
		if delta < 0 {
			return &ModelContractViolationError{Model: name, Reason: "TimeAdvance returned a negative delay"}
		}
		next := gt + delta
		if IsInfinite(delta) {
			next = Infinite
		}
		e.schedule.Insert(name, next)
	}

	next := gt + e.timeStep
	e.setTime(next)

	if e.opts.regime == RealTime {
		budget := time.Duration(float64(e.timeStep) * float64(time.Second))
		if remain := budget - time.Since(start); remain > 0 {
			time.Sleep(remain)
		} else if e.opts.metrics != nil {
			e.opts.metrics.RealTimeOverrunTotal.Inc()
		}
	}

	destroyed := e.registry.DestroyDue(next, e.schedule, e.graph)
	for _, name := range destroyed {
		if e.opts.metrics != nil {
			e.opts.metrics.ModelsDestroyedTotal.Inc()
		}
		if e.opts.logger != nil {
			logDestroyed(e.opts.logger, name, next)
		}
	}

	if e.opts.metrics != nil {
		e.opts.metrics.TicksTotal.Inc()
		e.opts.metrics.ActiveModels.Set(float64(len(e.registry.ActiveModels())))
		e.opts.metrics.ScheduleQueueDepth.Set(float64(e.schedule.Len()))
		e.opts.metrics.ExternalInputDepth.Set(float64(e.input.len()))
		e.opts.metrics.ExternalOutputDepth.Set(float64(e.output.len()))
		e.opts.metrics.TickDuration.Observe(time.Since(start).Seconds())
	}
	if e.opts.logger != nil {
		logTick(e.opts.logger, next, fired, len(e.registry.ActiveModels()), e.schedule.Len())
	}

	return nil
}

// route delivers msg, produced on port outPort by the model named srcKey
// (or ExternalSource, for an externally-injected event), to every
// destination the coupling graph resolves for (srcKey, outPort) (§4.5.4).
func (e *Executor) route(srcKey, outPort string, msg Message) {
	gt := e.currentTime()
	for _, ep := range e.graph.Resolve(srcKey, outPort) {
		if ep.Model == ExternalSink {
			e.output.push(gt, msg)
			if e.opts.logger != nil {
				logRouted(e.opts.logger, srcKey, outPort, "<external>", ep.Port)
			}
			if e.opts.metrics != nil {
				e.opts.metrics.RoutedTotal.WithLabelValues("<external>").Inc()
			}
			continue
		}

		dst, active := e.registry.Active(ep.Model)
		if !active {
			// The destination was destroyed after the coupling was made;
			// the message has nowhere to go and is dropped rather than
			// dispatched to a model no longer under executor ownership.
			continue
		}

		dst.ExtTrans(ep.Port, msg)
		e.schedule.Rekey(ep.Model, gt)

		if e.opts.logger != nil {
			logRouted(e.opts.logger, srcKey, outPort, ep.Model, ep.Port)
		}
		if e.opts.metrics != nil {
			e.opts.metrics.RoutedTotal.WithLabelValues(ep.Model).Inc()
		}
	}
}
