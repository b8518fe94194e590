package step

import (
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
)

// Options configure a Session.
type Options struct {
	// Fs is used to open output directive targets and read scripts. Defaults
	// to the OS filesystem.
	Fs afero.Fs

	// Stdout is the console sink. Defaults to discarding output.
	Stdout io.Writer
	// Stderr receives error reports in shell mode.
	Stderr io.Writer

	// Params are the positional parameters available as $0, $1, ...
	Params []float64

	// ShellMode reports errors and keeps going instead of failing.
	ShellMode bool
	// Color reports errors in red.
	Color bool

	// MaxCallDepth limits user function nesting, zero is unlimited.
	MaxCallDepth int
}

// Session holds the state of one evaluation context: the stack, user
// functions, parameters and the output sink.
type Session struct {
	fs        afero.Fs
	stdout    io.Writer
	stderr    io.Writer
	params    []float64
	shellMode bool
	maxDepth  int
	errColor  *color.Color

	stack     *Stack
	functions FunctionTable
	sink      Sink
	depth     int
}

// NewSession creates a session with an empty stack writing to the console.
func NewSession(opts Options) *Session {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	errColor := color.New(color.FgRed, color.Bold)
	if opts.Color {
		errColor.EnableColor()
	} else {
		errColor.DisableColor()
	}

	params := make([]float64, len(opts.Params))
	copy(params, opts.Params)

	return &Session{
		fs:        fs,
		stdout:    opts.Stdout,
		stderr:    stderr,
		params:    params,
		shellMode: opts.ShellMode,
		maxDepth:  opts.MaxCallDepth,
		errColor:  errColor,
		stack:     NewStack(),
		functions: make(FunctionTable),
		sink:      ConsoleSink(opts.Stdout),
	}
}

// ParseParams converts raw parameter strings to numbers.
func ParseParams(raw []string) ([]float64, error) {
	out := make([]float64, 0, len(raw))
	for _, param := range raw {
		v, ok := parseNumber(param)
		if !ok {
			return nil, &Error{Kind: InvalidParam, Token: param}
		}
		out = append(out, v)
	}
	return out, nil
}

// Stack returns the session's operand stack.
func (s *Session) Stack() *Stack {
	return s.stack
}

// Functions returns the user function table.
func (s *Session) Functions() FunctionTable {
	return s.functions
}

// Params returns a copy of the positional parameters.
func (s *Session) Params() []float64 {
	out := make([]float64, len(s.params))
	copy(out, s.params)
	return out
}

// ShellMode reports whether errors are reported rather than returned.
func (s *Session) ShellMode() bool {
	return s.shellMode
}

// Reset empties the stack and forgets user functions.
func (s *Session) Reset() {
	s.stack.Clear()
	s.functions = make(FunctionTable)
}

// Evaluate runs a whole script: the output directive, comments and function
// definitions are extracted before the remaining tokens are evaluated.
func (s *Session) Evaluate(script string) error {
	return s.report(s.evaluateScript(script))
}

// EvaluateLine runs a single line of input against the retained session.
// Output directives don't apply to lines.
func (s *Session) EvaluateLine(line string) error {
	return s.report(s.evaluateText(line))
}

// Load reads a script from the session filesystem and evaluates it.
func (s *Session) Load(path string) error {
	script, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return s.report(&Error{Kind: IO, Token: path, Err: err})
	}
	return s.Evaluate(string(script))
}

// Close releases the output sink, returning to the console.
func (s *Session) Close() error {
	err := s.sink.Close()
	s.sink = ConsoleSink(s.stdout)
	return err
}

// report is the only place errors leave the session. In shell mode the
// error is written to stderr and swallowed, otherwise it's returned.
func (s *Session) report(err error) error {
	if err == nil {
		return nil
	}
	if !s.shellMode {
		return err
	}

	s.errColor.Fprintln(s.stderr, ErrorPrefix+err.Error())
	return nil
}

func (s *Session) evaluateScript(script string) error {
	text, target, ok := ExtractOutput(script)
	if ok {
		sink, err := OpenFileSink(s.fs, target)
		if err != nil {
			return err
		}
		if err := s.setSink(sink); err != nil {
			return err
		}
	}

	return s.evaluateText(text)
}

func (s *Session) evaluateText(text string) error {
	text = StripComments(text)

	text, err := ExtractFunctions(text, s.functions)
	if err != nil {
		return err
	}

	tokens, err := Tokenize(text)
	if err != nil {
		return err
	}

	return s.eval(tokens)
}

func (s *Session) setSink(sink Sink) error {
	prev := s.sink
	s.sink = sink
	if err := prev.Close(); err != nil {
		return &Error{Kind: IO, Token: "previous output", Err: err}
	}
	return nil
}

func (s *Session) write(text string) error {
	if _, err := io.WriteString(s.sink, text); err != nil {
		return &Error{Kind: IO, Token: "output", Err: err}
	}
	return nil
}

func parseNumber(tok string) (float64, bool) {
	// Hexadecimal floats are Go syntax, not Step numbers.
	unsigned := strings.TrimLeft(tok, "+-")
	if len(unsigned) > 1 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		return 0, false
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err == nil {
		return v, true
	}
	// Out of range literals saturate to ±Inf or 0.
	if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
		return v, true
	}
	return 0, false
}
