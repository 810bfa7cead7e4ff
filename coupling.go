package sysexec

// Endpoint identifies a destination (model, port) pair in the fan-out list
// of a coupling. A nil-equivalent Model name (externalSink) routes to the
// executor's external output queue instead of a model's ExtTrans.
type Endpoint struct {
	Model string
	Port  string
}

// externalSink is the reserved destination model name that routes a
// coupling's output to the external output queue (C7-out) rather than to a
// model's ExtTrans.
const externalSink = ""

// ExternalSink is the dst value Couple accepts to route a source's output
// straight to the external output queue, bypassing model delivery.
const ExternalSink = externalSink

// portKey identifies a (source model, output port) pair.
type portKey struct {
	model string
	port  string
}

// CouplingGraph maps (src-model, out-port) to an ordered fan-out list of
// (dst-model, in-port) pairs (C4). Resolution is total: a pair with no
// registered coupling resolves to the Default Message Catcher's "uncaught"
// port, and that fallback is memoized so later resolutions of the same pair
// are stable (invariant 6: no message is ever silently dropped).
type CouplingGraph struct {
	edges map[portKey][]Endpoint
}

// NewCouplingGraph constructs an empty graph.
func NewCouplingGraph() *CouplingGraph {
	return &CouplingGraph{edges: make(map[portKey][]Endpoint)}
}

// Couple appends dst/in-port to the fan-out list for (src, out-port). Order
// of appends is delivery order. No uniqueness check is performed: coupling
// the same pair twice fans out two deliveries, by design (see design notes
// on duplicate couplings).
func (g *CouplingGraph) Couple(src, outPort, dst, inPort string) {
	key := portKey{model: src, port: outPort}
	g.edges[key] = append(g.edges[key], Endpoint{Model: dst, Port: inPort})
}

// Resolve returns the fan-out list for (src, out-port), falling back to, and
// memoizing, a single-element list routing to the catcher's "uncaught" port
// if no coupling is registered.
func (g *CouplingGraph) Resolve(src, outPort string) []Endpoint {
	key := portKey{model: src, port: outPort}
	if ep, ok := g.edges[key]; ok {
		return ep
	}
	fallback := []Endpoint{{Model: catcherName, Port: catcherPort}}
	g.edges[key] = fallback
	return fallback
}

// RemoveOwner deletes every coupling entry whose source model is owner. It
// is called during the destruction phase of a tick, alongside removal from
// the registry and schedule queue.
func (g *CouplingGraph) RemoveOwner(owner string) {
	for key := range g.edges {
		if key.model == owner {
			delete(g.edges, key)
		}
	}
}
