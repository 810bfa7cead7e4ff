package sysexec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCouplingGraphResolveFallsBackToCatcher(t *testing.T) {
	g := NewCouplingGraph()

	eps := g.Resolve("producer", "out")
	assert.Equal(t, []Endpoint{{Model: catcherName, Port: catcherPort}}, eps)
}

func TestCouplingGraphResolveMemoizesFallback(t *testing.T) {
	g := NewCouplingGraph()

	first := g.Resolve("producer", "out")
	second := g.Resolve("producer", "out")
	assert.Equal(t, first, second)
}

func TestCouplingGraphFanOut(t *testing.T) {
	g := NewCouplingGraph()
	g.Couple("producer", "out", "consumerA", "in")
	g.Couple("producer", "out", "consumerB", "in")

	eps := g.Resolve("producer", "out")
	assert.Equal(t, []Endpoint{
		{Model: "consumerA", Port: "in"},
		{Model: "consumerB", Port: "in"},
	}, eps)
}

func TestCouplingGraphDuplicateCouplingsFanOutTwice(t *testing.T) {
	g := NewCouplingGraph()
	g.Couple("producer", "out", "consumer", "in")
	g.Couple("producer", "out", "consumer", "in")

	eps := g.Resolve("producer", "out")
	assert.Len(t, eps, 2)
	assert.Equal(t, eps[0], eps[1])
}

func TestCouplingGraphExternalSink(t *testing.T) {
	g := NewCouplingGraph()
	g.Couple("producer", "out", ExternalSink, "whatever")

	eps := g.Resolve("producer", "out")
	assert.Equal(t, []Endpoint{{Model: externalSink, Port: "whatever"}}, eps)
}

func TestCouplingGraphRemoveOwner(t *testing.T) {
	g := NewCouplingGraph()
	g.Couple("producer", "out", "consumer", "in")
	g.Couple("other", "out", "consumer", "in")

	g.RemoveOwner("producer")

	// producer's coupling is gone, so Resolve falls back to the catcher.
	eps := g.Resolve("producer", "out")
	assert.Equal(t, []Endpoint{{Model: catcherName, Port: catcherPort}}, eps)

	// other's coupling survives.
	eps = g.Resolve("other", "out")
	assert.Equal(t, []Endpoint{{Model: "consumer", Port: "in"}}, eps)
}
