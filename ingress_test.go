package sysexec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestExternalInputQueueDrainDueOrdersByTimeThenSeq(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := newExternalInputQueue(nil)
	require.NoError(t, q.push(5, "p", NewMessage(ExternalSource, "p", "c")))
	require.NoError(t, q.push(1, "p", NewMessage(ExternalSource, "p", "a")))
	require.NoError(t, q.push(1, "p", NewMessage(ExternalSource, "p", "b")))

	due := q.drainDue(5)
	require.Len(t, due, 3)
	assert.Equal(t, "a", due[0].message.First())
	assert.Equal(t, "b", due[1].message.First())
	assert.Equal(t, "c", due[2].message.First())
	assert.Equal(t, 0, q.len())
}

func TestExternalInputQueueDrainDueLeavesNotYetDueEntries(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := newExternalInputQueue(nil)
	require.NoError(t, q.push(10, "p", NewMessage(ExternalSource, "p", "late")))
	require.NoError(t, q.push(1, "p", NewMessage(ExternalSource, "p", "early")))

	due := q.drainDue(1)
	require.Len(t, due, 1)
	assert.Equal(t, "early", due[0].message.First())
	assert.Equal(t, 1, q.len())
}

func TestExternalOutputQueueDrainIsAtomicAndClears(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := newExternalOutputQueue()
	q.push(2, NewMessage("model", "out", "first"))
	q.push(4, NewMessage("model", "out", "second"))

	peeked := q.peek()
	require.Len(t, peeked, 2)

	drained := q.drain()
	require.Len(t, drained, 2)
	assert.Equal(t, VTime(2), drained[0].At)
	assert.Equal(t, "first", drained[0].Message.First())
	assert.Equal(t, VTime(4), drained[1].At)
	assert.Equal(t, "second", drained[1].Message.First())
	assert.Empty(t, q.peek())
	assert.Nil(t, q.drain())
}

func TestExternalInputQueueConcurrentPush(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := newExternalInputQueue(nil)
	const n = 50
	done := make(chan struct{})
	for i := 0; i < n; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			_ = q.push(VTime(i), "p", NewMessage(ExternalSource, "p", i))
		}(i)
	}
	for i := 0; i < n; i++ {
		<-done
	}
	assert.Equal(t, n, q.len())
}

// WithIngressRateLimits rejects an external event once the configured
// window's event count is exhausted, returning *RateLimitExceededError
// rather than silently queuing it.
func TestExecutorIngressRateLimitRejectsExcessEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	ex, err := NewExecutor(
		WithInputPorts("cmd"),
		WithIngressRateLimits(map[time.Duration]int{time.Minute: 1}),
	)
	require.NoError(t, err)

	require.NoError(t, ex.InsertExternalEvent("cmd", "first", 0))

	err = ex.InsertExternalEvent("cmd", "second", 0)
	require.Error(t, err)
	var rateErr *RateLimitExceededError
	assert.ErrorAs(t, err, &rateErr)
	assert.Equal(t, "cmd", rateErr.Port)
}

// Without any configured rate limits, InsertExternalEvent never rejects on
// admission grounds, regardless of call volume.
func TestExecutorNoRateLimitByDefault(t *testing.T) {
	defer goleak.VerifyNone(t)

	ex, err := NewExecutor(WithInputPorts("cmd"))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, ex.InsertExternalEvent("cmd", i, 0))
	}
}
