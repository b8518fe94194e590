package step

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, script string, params ...string) ([]float64, string, error) {
	t.Helper()

	var out bytes.Buffer
	stack, err := Run(script, params, Options{
		Fs:     afero.NewMemMapFs(),
		Stdout: &out,
	})
	return stack, out.String(), err
}

func TestEvaluate(t *testing.T) {
	cases := map[string]struct {
		script   string
		params   []string
		expected []float64
	}{
		"number":            {"42", nil, []float64{42}},
		"negative exponent": {"-1.5e-3", nil, []float64{-1.5e-3}},
		"add":               {"3 4 +", nil, []float64{7}},
		"sub":               {"10 2 -", nil, []float64{-8}},
		"mul":               {"3 4 *", nil, []float64{12}},
		"div":               {"8 2 /", nil, []float64{0.25}},
		"pow":               {"2 3 pow", nil, []float64{9}},
		"sqrt":              {"16 sqrt", nil, []float64{4}},
		"sin":               {"0 sin", nil, []float64{0}},
		"cos":               {"0 cos", nil, []float64{1}},
		"tan":               {"0 tan", nil, []float64{0}},
		"exp":               {"0 exp", nil, []float64{1}},
		"log":               {"1 log", nil, []float64{0}},
		"clear":             {"1 2 3 clear", nil, []float64{}},
		"clear empty":       {"clear", nil, []float64{}},
		"pop":               {"1 2 pop", nil, []float64{1}},
		"dup":               {"1 dup", nil, []float64{1, 1}},
		"drop":              {"1 2 3 drop", nil, []float64{1}},
		"swap":              {"1 2 swap", nil, []float64{2, 1}},
		"swap then sub":     {"10 2 swap -", nil, []float64{8}},
		"pi":                {"pi", nil, []float64{math.Pi}},
		"e":                 {"e", nil, []float64{math.E}},
		"inf literal":       {"inf", nil, []float64{math.Inf(1)}},
		"out of range":      {"1e400", nil, []float64{math.Inf(1)}},
		"divide by zero":    {"0 1 /", nil, []float64{math.Inf(1)}},
		"comment":           {"1 { 2 } 3", nil, []float64{1, 3}},
		"multiline":         {"1\n2\n+", nil, []float64{3}},
		"param":             {"$0", []string{"3.5"}, []float64{3.5}},
		"params":            {"$1 $0 -", []string{"1", "10"}, []float64{-9}},
		"param leading 0":   {"$01", []string{"1", "2"}, []float64{2}},
		"function":          {"(sq dup *) 5 @sq", nil, []float64{25}},
		"function after":    {"5 @sq (sq dup *)", nil, []float64{25}},
		"call ends line":    {"(sq dup *) 5 @sq 1 2 3", nil, []float64{25}},
		"nested call":       {"(inc 1 +) (twice @inc) 5 @twice", nil, []float64{6}},
		"call ends body":    {"(a 1) (b @a 2) @b", nil, []float64{1}},
		"function params":   {"(scale $0 *) 4 @scale", []string{"2.5"}, []float64{10}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			stack, _, err := runScript(t, tc.script, tc.params...)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, stack)
		})
	}
}

func TestEvaluate_nan(t *testing.T) {
	for _, script := range []string{"-1 sqrt", "-1 log", "nan", "0 0 /"} {
		t.Run(script, func(t *testing.T) {
			stack, _, err := runScript(t, script)

			require.NoError(t, err)
			require.Len(t, stack, 1)
			assert.True(t, math.IsNaN(stack[0]))
		})
	}
}

func TestEvaluate_output(t *testing.T) {
	cases := map[string]struct {
		script   string
		expected string
	}{
		"print":           {"7 print", "7.0"},
		"println":         {"3 4 + println", "7.0\n"},
		"print fraction":  {"0.5 println", "0.5\n"},
		"literal":         {"_Hi", "Hi"},
		"literal empty":   {"_ 1", ""},
		"literal escapes": {`"_a\tb\n"`, "a\tb\n"},
		"literal quoted":  {`"_Hello, world"`, "Hello, world"},
		"literal parens":  {`"_(x)"`, "(x)"},
		"interleaved":     {"_a 1 print _b 2 println", "a1.0b2.0\n"},
		"from function":   {"(hi _Hi) @hi", "Hi"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			_, out, err := runScript(t, tc.script)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestEvaluate_errors(t *testing.T) {
	cases := map[string]struct {
		script  string
		params  []string
		err     error
		message string
		stack   []float64
	}{
		"missing parameters": {
			script:  "+",
			err:     ErrMissingParameters,
			message: "Missing parameters: Provided 0 of 2 for function `+'.",
			stack:   []float64{},
		},
		"missing one": {
			script:  "1 swap 2",
			err:     ErrMissingParameters,
			message: "Missing parameters: Provided 1 of 2 for function `swap'.",
			stack:   []float64{1},
		},
		"print empty": {
			script:  "print",
			err:     ErrMissingParameters,
			message: "Missing parameters: Provided 0 of 1 for function `print'.",
			stack:   []float64{},
		},
		"undefined function": {
			script:  "1 foo 2",
			err:     ErrUndefinedFunction,
			message: "Undefined function foo.",
			stack:   []float64{1},
		},
		"hex float": {
			script:  "1 -0X1p4",
			err:     ErrUndefinedFunction,
			message: "Undefined function -0X1p4.",
			stack:   []float64{1},
		},
		"hex float param": {
			script:  "$0",
			params:  []string{"0x1p4"},
			err:     ErrInvalidParam,
			message: "Invalid parameter 0x1p4.",
		},
		"nested comment leak": {
			script:  "1 { a { b } c } 3",
			err:     ErrUndefinedFunction,
			message: "Undefined function c.",
			stack:   []float64{1},
		},
		"undefined user function": {
			script:  "@nope",
			err:     ErrUndefinedUserFunction,
			message: "Undefined user function @nope.",
			stack:   []float64{},
		},
		"param out of range": {
			script:  "$5",
			params:  []string{"1.0"},
			err:     ErrInvalidParamIndex,
			message: "Invalid param index $5.",
			stack:   []float64{},
		},
		"param not digits": {
			script:  "$x",
			err:     ErrInvalidParamIndex,
			message: "Invalid param index $x.",
			stack:   []float64{},
		},
		"param bare": {
			script:  "$",
			err:     ErrInvalidParamIndex,
			message: "Invalid param index $.",
			stack:   []float64{},
		},
		"function without body": {
			script:  "(x) 1",
			err:     ErrFuncTitleBody,
			message: "Function must have title and body.",
			stack:   []float64{},
		},
		"invalid param": {
			script:  "1",
			params:  []string{"1", "two"},
			err:     ErrInvalidParam,
			message: "Invalid parameter two.",
			stack:   nil,
		},
		"body splits on call": {
			script:  `(greet "_Hi there") @greet`,
			err:     ErrUndefinedFunction,
			message: "Undefined function there.",
			stack:   []float64{},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			stack, _, err := runScript(t, tc.script, tc.params...)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.err), "got %v", err)
			assert.Equal(t, tc.message, err.Error())
			assert.Equal(t, tc.stack, stack)
		})
	}
}

func TestEvaluate_callDepth(t *testing.T) {
	session := NewSession(Options{Fs: afero.NewMemMapFs(), MaxCallDepth: 50})

	err := session.Evaluate("(forever 1 @forever) @forever")

	var stepErr *Error
	require.True(t, errors.As(err, &stepErr), "got %v", err)
	assert.Equal(t, CallDepthExceeded, stepErr.Kind)
	assert.Equal(t, 50, stepErr.Required)
	assert.Equal(t, 50, session.Stack().Len())
}

func TestEvaluate_idempotent(t *testing.T) {
	script := `(sq dup *) "_squares: " 2 @sq println 3 @sq`

	firstStack, firstOut, firstErr := runScript(t, script)
	secondStack, secondOut, secondErr := runScript(t, script)

	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.Equal(t, firstStack, secondStack)
	assert.Equal(t, firstOut, secondOut)
}
