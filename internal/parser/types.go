package parser

import "github.com/edwingeng/deque"

// Value types of the language. typeUnknown stands for the type of an
// undeclared or untyped name and never triggers a mismatch.
const (
	typeInt     = "int"
	typeDouble  = "double"
	typeUnknown = "unknown"
)

// typeStack holds operand types while an expression is parsed. Operands
// push their type; conversions and binary operators pop their operands
// and push the result. Popping an empty stack yields typeUnknown.
type typeStack struct {
	d deque.Deque
}

func newTypeStack() *typeStack {
	return &typeStack{d: deque.NewDeque()}
}

func (s *typeStack) push(typ string) {
	s.d.PushBack(typ)
}

func (s *typeStack) pop() string {
	if s.d.Len() == 0 {
		return typeUnknown
	}
	return s.d.PopBack().(string)
}

// top returns the type of the expression parsed so far.
func (s *typeStack) top() string {
	if s.d.Len() == 0 {
		return typeUnknown
	}
	typ := s.pop()
	s.push(typ)
	return typ
}

func (s *typeStack) reset() {
	for s.d.Len() > 0 {
		s.d.PopBack()
	}
}

func (s *typeStack) len() int {
	return s.d.Len()
}

// promote returns the result type of a binary operation: double if either
// side is double, int otherwise. Two unknown operands stay unknown.
func promote(left, right string) string {
	switch {
	case left == typeDouble || right == typeDouble:
		return typeDouble
	case left == typeUnknown && right == typeUnknown:
		return typeUnknown
	}
	return typeInt
}

// known reports whether typ takes part in type checks.
func known(typ string) bool {
	return typ == typeInt || typ == typeDouble
}
