// Package sysexec implements a discrete-event simulation executor: a carrier
// that advances a population of independently-timed behavior models through
// a shared global clock, routing their output through a coupling graph and,
// optionally, to and from the outside world.
//
// # Architecture
//
// Models ([Model]) are plain state machines: TimeAdvance reports how long
// until they next want to fire, Output produces what they emit when they do,
// IntTrans advances their internal state, and ExtTrans absorbs an incoming
// message. The [Executor] owns four supporting structures that never see a
// model's internal state:
//   - [EntityRegistry] (pending models keyed by create time, active models by name)
//   - [ScheduleQueue] (next-firing-time priority queue, by model name)
//   - [CouplingGraph] (output port to destination fan-out)
//   - the external input/output queues (messages crossing the simulation boundary)
//
// # Time Regimes
//
// [VirtualTime] advances global time by the configured time step each tick,
// as fast as the carrier can process ticks. [RealTime] paces each tick so its
// wall-clock duration matches the configured time step, so a host program
// can observe the simulation unfold at a human-legible rate.
//
// # Thread Safety
//
// The executor's tick loop runs on a single carrier; [Executor.RegisterEntity],
// [Executor.Couple], [EntityRegistry], [ScheduleQueue], and [CouplingGraph]
// are not safe for concurrent use and must only be touched from that carrier
// or before [Executor.Simulate] starts it. [Executor.InsertExternalEvent] and
// [Executor.DrainExternalOutput] are the two operations safe to call from any
// goroutine, since they only touch the mutex-guarded external queues.
//
// # Usage
//
//	ex, err := sysexec.NewExecutor(sysexec.WithInputPorts("cmd"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	ex.RegisterEntity(myModel)
//	ex.Couple("producer", "out", "consumer", "in")
//	if err := ex.InitSim(); err != nil {
//		log.Fatal(err)
//	}
//	if err := ex.Simulate(100); err != nil {
//		log.Fatal(err)
//	}
//	for _, evt := range ex.DrainExternalOutput() {
//		fmt.Println(evt.At, evt.Message)
//	}
//
// # Error Types
//
// Non-fatal conditions surface through the operation that caused them:
//   - [UnknownPortError]: InsertExternalEvent named an undeclared port
//   - [RateLimitExceededError]: InsertExternalEvent exceeded a configured admission rate
//   - [ModelContractViolationError] from RegisterEntity: the model used a reserved name
//
// Fatal conditions abort Simulate and leave the executor TERMINATED:
//   - [ModelContractViolationError]: a model's TimeAdvance returned a negative delay
//   - [DuplicateNameError]: two models were promoted to active under the same name
package sysexec
