package sysexec

import (
	"container/heap"
	"sync"
	"time"

	"github.com/joeycumines/go-catrate"
)

// externalEvent is one entry in the external input queue: a message destined
// for a named input port, to be delivered once the executor's global time
// reaches at.
type externalEvent struct {
	at      VTime
	seq     uint64
	port    string
	message Message
}

// externalEventHeap implements container/heap.Interface, ordering by (at,
// seq) ascending, matching ScheduleQueue's tie-break discipline.
type externalEventHeap []*externalEvent

func (h externalEventHeap) Len() int { return len(h) }

func (h externalEventHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h externalEventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *externalEventHeap) Push(x any) { *h = append(*h, x.(*externalEvent)) }

func (h *externalEventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// externalInputQueue is the ingress half of C7: a time-ordered queue of
// messages injected from outside the simulation, awaiting delivery once
// global time reaches their scheduled arrival. Push is the only boundary
// crossed by callers other than the executor's single carrier (§5), so it is
// guarded by a plain mutex rather than anything lock-free — matching the
// teacher's own finding that a simple mutex outperforms a lock-free structure
// once there is real contention, and avoiding that complexity for a queue
// that is pushed to far less often than the carrier drains it.
//
// An optional go-catrate Limiter gates admission per input port, treated as
// the rate category: a caller that exceeds its configured rate is rejected
// with *RateLimitExceededError rather than silently queued, so back-pressure
// is visible at the call site.
type externalInputQueue struct {
	mu      sync.Mutex
	h       externalEventHeap
	nextSeq uint64
	limiter *catrate.Limiter
}

func newExternalInputQueue(limiter *catrate.Limiter) *externalInputQueue {
	return &externalInputQueue{limiter: limiter}
}

// push enqueues message for delivery to port no earlier than at. If a
// limiter is configured and denies admission for port, the event is not
// enqueued and a *RateLimitExceededError is returned.
func (q *externalInputQueue) push(at VTime, port string, message Message) error {
	if q.limiter != nil {
		if _, ok := q.limiter.Allow(port); !ok {
			return &RateLimitExceededError{Port: port}
		}
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	e := &externalEvent{at: at, seq: q.nextSeq, port: port, message: message}
	q.nextSeq++
	heap.Push(&q.h, e)
	return nil
}

// drainDue removes and returns every event scheduled at or before globalTime,
// in (at, seq) order.
func (q *externalInputQueue) drainDue(globalTime VTime) []*externalEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	var due []*externalEvent
	for len(q.h) > 0 && q.h[0].at <= globalTime {
		due = append(due, heap.Pop(&q.h).(*externalEvent))
	}
	return due
}

// len reports the number of events currently queued, awaiting delivery.
func (q *externalInputQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.h)
}

// GeneratedEvent pairs an externally-routed message with the global_time at
// which it was emitted, matching the (global_time, message_payload) pair the
// spec defines for the output queue (§4.4) rather than a bare payload.
type GeneratedEvent struct {
	At      VTime
	Message Message
}

// externalOutputQueue is the egress half of C7: a FIFO of (global_time,
// message) pairs the coupling graph routed to the external sink, awaiting
// collection by the host program. Guarded by the same plain-mutex reasoning
// as the input side.
type externalOutputQueue struct {
	mu     sync.Mutex
	events []GeneratedEvent
}

func newExternalOutputQueue() *externalOutputQueue {
	return &externalOutputQueue{}
}

func (q *externalOutputQueue) push(at VTime, msg Message) {
	q.mu.Lock()
	q.events = append(q.events, GeneratedEvent{At: at, Message: msg})
	q.mu.Unlock()
}

// peek returns a snapshot of every event currently queued, without removing
// them.
func (q *externalOutputQueue) peek() []GeneratedEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := make([]GeneratedEvent, len(q.events))
	copy(out, q.events)
	return out
}

// drain removes and returns every event currently queued, in delivery order.
// Returns nil (not an empty, non-nil slice) if the queue is empty.
func (q *externalOutputQueue) drain() []GeneratedEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// len reports the number of events currently queued for collection.
func (q *externalOutputQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// newIngressLimiter builds a go-catrate Limiter from a set of per-window
// rates, or returns nil if rates is empty (meaning: no admission limiting).
func newIngressLimiter(rates map[time.Duration]int) *catrate.Limiter {
	if len(rates) == 0 {
		return nil
	}
	return catrate.NewLimiter(rates)
}
