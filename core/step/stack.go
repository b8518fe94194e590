package step

import (
	"strings"
)

// Stack is the operand stack of a session. Values are only ever added and
// removed at the end.
type Stack struct {
	values []float64
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Len returns the current depth.
func (s *Stack) Len() int {
	return len(s.values)
}

// Push adds a value to the top of the stack.
func (s *Stack) Push(v float64) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top of the stack. Callers must check the
// depth with CheckDepth first; popping an empty stack panics.
func (s *Stack) Pop() float64 {
	last := len(s.values) - 1
	v := s.values[last]
	s.values = s.values[:last]
	return v
}

// Dup pushes a copy of the top value.
func (s *Stack) Dup() {
	tos := s.Pop()
	s.Push(tos)
	s.Push(tos)
}

// Drop discards the top two values.
func (s *Stack) Drop() {
	s.Pop()
	s.Pop()
}

// Swap exchanges the top two values.
func (s *Stack) Swap() {
	tos := s.Pop()
	second := s.Pop()
	s.Push(tos)
	s.Push(second)
}

// Clear discards every value.
func (s *Stack) Clear() {
	s.values = nil
}

// CheckDepth returns a MissingParameters error naming op if fewer than
// required values are on the stack.
func (s *Stack) CheckDepth(required int, op string) error {
	if len(s.values) >= required {
		return nil
	}

	return &Error{
		Kind:      MissingParameters,
		Token:     op,
		Available: len(s.values),
		Required:  required,
	}
}

// Values returns a copy of the stack, bottom first.
func (s *Stack) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// String formats the stack bottom first, e.g. "[1.0, 3.5]".
func (s *Stack) String() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = FormatNumber(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
