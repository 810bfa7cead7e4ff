package sysexec

import "container/heap"

// scheduleEntry is one slot in the ScheduleQueue: a model's stable identity
// (its Name, since the graph and queue never hold a live Model reference
// across ownership boundaries — see design notes on cyclic references) together
// with its next requested firing time and an insertion sequence number used
// to break ties FIFO among equal req-times.
type scheduleEntry struct {
	name    string
	reqTime VTime
	seq     uint64
	index   int // position in the heap, maintained by heap.Interface hooks
}

// scheduleHeap implements container/heap.Interface, ordering by (reqTime,
// seq) ascending so that ties are resolved in insertion order (FIFO among
// equals), as the spec requires.
type scheduleHeap []*scheduleEntry

func (h scheduleHeap) Len() int { return len(h) }

func (h scheduleHeap) Less(i, j int) bool {
	if h[i].reqTime != h[j].reqTime {
		return h[i].reqTime < h[j].reqTime
	}
	return h[i].seq < h[j].seq
}

func (h scheduleHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *scheduleHeap) Push(x any) {
	e := x.(*scheduleEntry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *scheduleHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// ScheduleQueue is an ordered set of active models keyed by next requested
// time (C6). It is an indexed priority queue: a handle-keyed index gives
// O(log n) insert/remove-min/re-key, which the design notes call out as
// preferred over lazy-deletion/tombstoning for the bounded populations this
// engine targets.
//
// ScheduleQueue is not safe for concurrent use; it is owned exclusively by
// the Executor's single carrier, per the concurrency model in §5.
type ScheduleQueue struct {
	h       scheduleHeap
	byName  map[string]*scheduleEntry
	nextSeq uint64
}

// NewScheduleQueue constructs an empty schedule queue.
func NewScheduleQueue() *ScheduleQueue {
	return &ScheduleQueue{
		h:      make(scheduleHeap, 0),
		byName: make(map[string]*scheduleEntry),
	}
}

// Insert adds name to the queue with the given req-time. Re-inserting an
// already-present name is a programmer error; callers should use Rekey.
func (q *ScheduleQueue) Insert(name string, reqTime VTime) {
	e := &scheduleEntry{name: name, reqTime: reqTime, seq: q.nextSeq}
	q.nextSeq++
	q.byName[name] = e
	heap.Push(&q.h, e)
}

// Remove removes name from the queue, if present. Returns false if it was
// not present.
func (q *ScheduleQueue) Remove(name string) bool {
	e, ok := q.byName[name]
	if !ok {
		return false
	}
	heap.Remove(&q.h, e.index)
	delete(q.byName, name)
	return true
}

// Rekey updates name's req-time and re-heapifies its position. Equivalent
// to, but cheaper than, Remove followed by Insert: it preserves O(log n)
// behavior via the index-based heap.Fix rather than a linear rescan.
func (q *ScheduleQueue) Rekey(name string, reqTime VTime) bool {
	e, ok := q.byName[name]
	if !ok {
		return false
	}
	e.reqTime = reqTime
	e.seq = q.nextSeq
	q.nextSeq++
	heap.Fix(&q.h, e.index)
	return true
}

// PeekMin returns the name and req-time of the head of the queue, without
// removing it. Returns false if the queue is empty.
func (q *ScheduleQueue) PeekMin() (name string, reqTime VTime, ok bool) {
	if len(q.h) == 0 {
		return "", 0, false
	}
	return q.h[0].name, q.h[0].reqTime, true
}

// PopMin removes and returns the head of the queue. Returns false if the
// queue is empty.
func (q *ScheduleQueue) PopMin() (name string, reqTime VTime, ok bool) {
	if len(q.h) == 0 {
		return "", 0, false
	}
	e := heap.Pop(&q.h).(*scheduleEntry)
	delete(q.byName, e.name)
	return e.name, e.reqTime, true
}

// Len returns the number of entries currently in the queue.
func (q *ScheduleQueue) Len() int { return len(q.h) }

// Contains reports whether name is currently scheduled.
func (q *ScheduleQueue) Contains(name string) bool {
	_, ok := q.byName[name]
	return ok
}
