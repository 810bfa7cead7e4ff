package sysexec

// Model is the capability set every behavior model must implement. It is the
// systems-language rendering of the spec's "abstract Behavior Model with
// user-extensible int_trans/ext_trans/output/time_advance hooks": rather than
// dynamic dispatch on a base class, each concrete model satisfies this
// interface directly and is stored, owned, by the EntityRegistry; everything
// else (CouplingGraph, ScheduleQueue) refers to it by its Name, never by a
// live pointer captured across a boundary it doesn't own.
type Model interface {
	// Name returns the model's identity, unique across the active set at any
	// given time. The executor does not require global uniqueness across the
	// lifetime of a run, only within the active set.
	Name() string

	// CreateTime is the virtual time at which this model becomes active.
	CreateTime() VTime

	// DestructTime is the virtual time at or after which this model is
	// removed from the active set. Infinite means "never".
	DestructTime() VTime

	// InputPorts is the set of recognized input port names.
	InputPorts() []string

	// OutputPorts is the set of recognized output port names.
	OutputPorts() []string

	// TimeAdvance returns the delay, from the model's current state, until
	// its next internal event. A negative return is a ModelContractViolation.
	TimeAdvance() VTime

	// Output snapshots the message emitted at the imminent internal event.
	// Called immediately before IntTrans, with the model's pre-transition
	// state. A false second return means no output this firing.
	Output() (Message, bool)

	// IntTrans advances internal state after the model's own scheduled event
	// fires (called immediately after Output).
	IntTrans()

	// ExtTrans advances state in reaction to an external input arriving on
	// the named in-port.
	ExtTrans(port string, msg Message)
}

// BaseModel is an embeddable helper that implements the bookkeeping shared by
// essentially every concrete Model: name, lifecycle window, and declared
// ports. Concrete models embed it and only implement the four behavioral
// hooks (TimeAdvance, Output, IntTrans, ExtTrans).
type BaseModel struct {
	name         string
	createTime   VTime
	destructTime VTime
	inputPorts   []string
	outputPorts  []string
}

// NewBaseModel constructs a BaseModel. destructTime may be Infinite.
func NewBaseModel(name string, createTime, destructTime VTime, inputPorts, outputPorts []string) BaseModel {
	return BaseModel{
		name:         name,
		createTime:   createTime,
		destructTime: destructTime,
		inputPorts:   append([]string(nil), inputPorts...),
		outputPorts:  append([]string(nil), outputPorts...),
	}
}

func (b *BaseModel) Name() string         { return b.name }
func (b *BaseModel) CreateTime() VTime    { return b.createTime }
func (b *BaseModel) DestructTime() VTime  { return b.destructTime }
func (b *BaseModel) InputPorts() []string { return b.inputPorts }

func (b *BaseModel) OutputPorts() []string { return b.outputPorts }
