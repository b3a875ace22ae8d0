// Package fsm implements a pushdown (stack-based) state machine. The active
// behaviour is the top of the stack; pushing suspends it and popping resumes
// whatever lies beneath.
package fsm

// Behavior is invoked once per Tick while its state is active. It may push,
// pop or replace states on the machine; the change applies to the next Tick.
type Behavior[C any] func(ctx C)

// Machine is a stack of resumable states S dispatched through a fixed table.
// The zero value is not usable; build one with New.
type Machine[S comparable, C any] struct {
	stack []S
	idle  S
	table map[S]Behavior[C]
}

// New creates an empty machine. idle is the fallback that becomes active
// when a Pop leaves nothing to resume.
func New[S comparable, C any](idle S, table map[S]Behavior[C]) *Machine[S, C] {
	return &Machine[S, C]{idle: idle, table: table}
}

// Push makes s active, suspending the current top. Pushing the state that is
// already active is a no-op and reports false.
func (m *Machine[S, C]) Push(s S) bool {
	if top, ok := m.Active(); ok && top == s {
		return false
	}
	m.stack = append(m.stack, s)
	return true
}

// Pop discards the active state and resumes the one beneath it. When the
// stack runs empty the idle state becomes active. Returns the new active state.
func (m *Machine[S, C]) Pop() S {
	if n := len(m.stack); n > 0 {
		m.stack = m.stack[:n-1]
	}
	if len(m.stack) == 0 {
		m.stack = append(m.stack, m.idle)
	}
	return m.stack[len(m.stack)-1]
}

// Replace pops the active state and pushes s.
func (m *Machine[S, C]) Replace(s S) {
	m.Pop()
	m.Push(s)
}

// Reset clears the stack and pushes s.
func (m *Machine[S, C]) Reset(s S) {
	m.Clear()
	m.Push(s)
}

// Clear empties the stack. Nothing runs until the next Push.
func (m *Machine[S, C]) Clear() {
	m.stack = m.stack[:0]
}

// Active returns the top of the stack, or false when empty.
func (m *Machine[S, C]) Active() (S, bool) {
	if len(m.stack) == 0 {
		var zero S
		return zero, false
	}
	return m.stack[len(m.stack)-1], true
}

// Current returns the active state, or the idle state when the stack is empty.
func (m *Machine[S, C]) Current() S {
	if s, ok := m.Active(); ok {
		return s
	}
	return m.idle
}

// Depth is the number of states on the stack, active included.
func (m *Machine[S, C]) Depth() int {
	return len(m.stack)
}

// Stack returns a copy of the stack, bottom first.
func (m *Machine[S, C]) Stack() []S {
	out := make([]S, len(m.stack))
	copy(out, m.stack)
	return out
}

// Tick runs the active behaviour once. An empty stack or a state without a
// table entry runs nothing.
func (m *Machine[S, C]) Tick(ctx C) {
	s, ok := m.Active()
	if !ok {
		return
	}
	if fn := m.table[s]; fn != nil {
		fn(ctx)
	}
}
