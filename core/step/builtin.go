package step

import (
	"fmt"
	"math"
)

// Builtin is a stack operation supplied by the interpreter.
type Builtin int

const (
	Add Builtin = iota
	Sub
	Mul
	Div
	Pow
	Sqrt
	Sin
	Cos
	Tan
	Exp
	Log
	Clear
	Print
	Println
	Pop
	Dup
	Drop
	Swap

	numBuiltins
)

var builtinInfo = [numBuiltins]struct {
	name  string
	arity int
	short string
}{
	Add:     {"+", 2, "add the top two values"},
	Sub:     {"-", 2, "subtract the second value from the top value"},
	Mul:     {"*", 2, "multiply the top two values"},
	Div:     {"/", 2, "divide the top value by the second value"},
	Pow:     {"pow", 2, "raise the top value to the power of the second value"},
	Sqrt:    {"sqrt", 1, "square root"},
	Sin:     {"sin", 1, "sine (radians)"},
	Cos:     {"cos", 1, "cosine (radians)"},
	Tan:     {"tan", 1, "tangent (radians)"},
	Exp:     {"exp", 1, "e raised to the value"},
	Log:     {"log", 1, "natural logarithm"},
	Clear:   {"clear", 0, "discard the whole stack"},
	Print:   {"print", 1, "pop and write the value"},
	Println: {"println", 1, "pop and write the value and a newline"},
	Pop:     {"pop", 1, "discard the top value"},
	Dup:     {"dup", 1, "duplicate the top value"},
	Drop:    {"drop", 2, "discard the top two values"},
	Swap:    {"swap", 2, "exchange the top two values"},
}

// LookupBuiltin finds the builtin with the exact name.
func LookupBuiltin(name string) (Builtin, bool) {
	for b := Builtin(0); b < numBuiltins; b++ {
		if builtinInfo[b].name == name {
			return b, true
		}
	}
	return 0, false
}

// Builtins lists every builtin in declaration order.
func Builtins() []Builtin {
	out := make([]Builtin, numBuiltins)
	for i := range out {
		out[i] = Builtin(i)
	}
	return out
}

func (b Builtin) valid() bool {
	return b >= 0 && b < numBuiltins
}

// String returns the word that invokes the builtin.
func (b Builtin) String() string {
	if !b.valid() {
		return fmt.Sprintf("Builtin(%d)", int(b))
	}
	return builtinInfo[b].name
}

// Arity is the number of values the builtin needs on the stack.
func (b Builtin) Arity() int {
	if !b.valid() {
		return 0
	}
	return builtinInfo[b].arity
}

// Short is a one line description of the builtin.
func (b Builtin) Short() string {
	if !b.valid() {
		return ""
	}
	return builtinInfo[b].short
}

// Constant is a named value that can be pushed by name.
type Constant int

const (
	Pi Constant = iota
	E

	numConstants
)

// LookupConstant finds the constant with the exact name.
func LookupConstant(name string) (Constant, bool) {
	switch name {
	case "pi":
		return Pi, true
	case "e":
		return E, true
	}
	return 0, false
}

// Constants lists every named constant.
func Constants() []Constant {
	return []Constant{Pi, E}
}

func (c Constant) String() string {
	switch c {
	case Pi:
		return "pi"
	case E:
		return "e"
	}
	return fmt.Sprintf("Constant(%d)", int(c))
}

// Value of the constant.
func (c Constant) Value() float64 {
	switch c {
	case Pi:
		return math.Pi
	case E:
		return math.E
	}
	return math.NaN()
}

// apply runs a builtin against the session's stack after checking that the
// stack is deep enough. Binary operations are applied as
// first-popped OP second-popped.
func (s *Session) apply(b Builtin) error {
	if err := s.stack.CheckDepth(b.Arity(), b.String()); err != nil {
		return err
	}

	st := s.stack
	switch b {
	case Add:
		st.Push(st.Pop() + st.Pop())
	case Sub:
		st.Push(st.Pop() - st.Pop())
	case Mul:
		st.Push(st.Pop() * st.Pop())
	case Div:
		st.Push(st.Pop() / st.Pop())
	case Pow:
		x := st.Pop()
		y := st.Pop()
		st.Push(math.Pow(x, y))
	case Sqrt:
		st.Push(math.Sqrt(st.Pop()))
	case Sin:
		st.Push(math.Sin(st.Pop()))
	case Cos:
		st.Push(math.Cos(st.Pop()))
	case Tan:
		st.Push(math.Tan(st.Pop()))
	case Exp:
		st.Push(math.Exp(st.Pop()))
	case Log:
		st.Push(math.Log(st.Pop()))
	case Clear:
		st.Clear()
	case Print:
		return s.write(FormatNumber(st.Pop()))
	case Println:
		return s.write(FormatNumber(st.Pop()) + "\n")
	case Pop:
		st.Pop()
	case Dup:
		st.Dup()
	case Drop:
		st.Drop()
	case Swap:
		st.Swap()
	default:
		panic(fmt.Sprintf("unhandled builtin %v", b))
	}
	return nil
}
