package sysexec

import "sync"

// scriptedModel is a Model whose behavior is entirely driven by a caller-
// supplied script, used across the test suite to exercise the executor
// without depending on any particular domain model.
type scriptedModel struct {
	BaseModel

	mu sync.Mutex

	// advances is consumed one at a time by TimeAdvance; the last value is
	// repeated once exhausted.
	advances []VTime
	advanceI int

	// outputs is consumed one at a time by Output, paired with advances by
	// index; a zero-value entry with ok=false means no output that firing.
	outputs []scriptedOutput

	intTransCount int
	extTransLog   []scriptedExtTrans
}

type scriptedOutput struct {
	msg Message
	ok  bool
}

type scriptedExtTrans struct {
	port string
	msg  Message
}

func newScriptedModel(name string, createTime, destructTime VTime, advances []VTime) *scriptedModel {
	return &scriptedModel{
		BaseModel: NewBaseModel(name, createTime, destructTime, []string{"in"}, []string{"out"}),
		advances:  advances,
	}
}

func (m *scriptedModel) withOutputs(outputs ...scriptedOutput) *scriptedModel {
	m.outputs = outputs
	return m
}

func (m *scriptedModel) TimeAdvance() VTime {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.advances) == 0 {
		return Infinite
	}
	if m.advanceI >= len(m.advances) {
		return m.advances[len(m.advances)-1]
	}
	v := m.advances[m.advanceI]
	return v
}

func (m *scriptedModel) Output() (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.advanceI >= len(m.outputs) {
		return Message{}, false
	}
	o := m.outputs[m.advanceI]
	return o.msg, o.ok
}

func (m *scriptedModel) IntTrans() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intTransCount++
	m.advanceI++
}

func (m *scriptedModel) ExtTrans(port string, msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extTransLog = append(m.extTransLog, scriptedExtTrans{port: port, msg: msg})
}

func (m *scriptedModel) intTransCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.intTransCount
}

func (m *scriptedModel) extTransCalls() []scriptedExtTrans {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]scriptedExtTrans, len(m.extTransLog))
	copy(out, m.extTransLog)
	return out
}
