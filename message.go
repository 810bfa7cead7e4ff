package sysexec

// ExternalSource is the sentinel source tag used for messages injected by the
// host via InsertExternalEvent rather than produced by a Model.
const ExternalSource = "SRC"

// Message is the value object carried between models (and between the host
// and the executor's input ports). It is immutable once handed to the
// executor: producers append to Payload before constructing it, never after.
type Message struct {
	// Src identifies the model that produced the message, or ExternalSource
	// for messages injected via InsertExternalEvent.
	Src string

	// Dst is the destination port name, as declared on the source model's
	// output ports (or as a recognized executor input port, for external
	// injection).
	Dst string

	// Payload is the ordered list of opaque elements carried by the message,
	// consumed by the receiver in insertion order.
	Payload []any
}

// NewMessage constructs a Message with a single payload element.
func NewMessage(src, dst string, payload any) Message {
	return Message{Src: src, Dst: dst, Payload: []any{payload}}
}

// Append returns a copy of the message with an additional payload element.
// Messages are treated as immutable once published, so this never mutates
// the receiver's Payload slice in place.
func (m Message) Append(v any) Message {
	out := Message{Src: m.Src, Dst: m.Dst, Payload: make([]any, 0, len(m.Payload)+1)}
	out.Payload = append(out.Payload, m.Payload...)
	out.Payload = append(out.Payload, v)
	return out
}

// First returns the first payload element, or nil if the message carries no
// payload.
func (m Message) First() any {
	if len(m.Payload) == 0 {
		return nil
	}
	return m.Payload[0]
}
