package step

import (
	"fmt"
)

// ErrorKind classifies interpreter failures.
type ErrorKind int

const (
	// InvalidParam is a session parameter that isn't a number.
	InvalidParam ErrorKind = iota
	// InvalidParamIndex is a $N reference that's malformed or out of range.
	InvalidParamIndex
	// FuncTitleBody is a function definition without a name and a body.
	FuncTitleBody
	// UndefinedUserFunction is an @name call to a function that was never defined.
	UndefinedUserFunction
	// UndefinedFunction is a token that matched no category.
	UndefinedFunction
	// MissingParameters is a failed stack depth check.
	MissingParameters
	// InvalidSyntax is text that couldn't be split into words.
	InvalidSyntax
	// CallDepthExceeded is user function nesting past the session limit.
	CallDepthExceeded
	// IO is a failure reading a script or opening an output target.
	IO
)

var errorKindNames = [...]string{
	InvalidParam:          "InvalidParam",
	InvalidParamIndex:     "InvalidParamIndex",
	FuncTitleBody:         "FuncTitleBody",
	UndefinedUserFunction: "UndefinedUserFunction",
	UndefinedFunction:     "UndefinedFunction",
	MissingParameters:     "MissingParameters",
	InvalidSyntax:         "InvalidSyntax",
	CallDepthExceeded:     "CallDepthExceeded",
	IO:                    "IO",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

// ErrorPrefix is prepended to every reported error.
const ErrorPrefix = "Step error: "

// Error is returned for every failure the interpreter detects.
type Error struct {
	Kind ErrorKind
	// Token is the offending token, parameter, function or path.
	Token string

	// Available and Required hold stack depths for MissingParameters and
	// the depth limit for CallDepthExceeded.
	Available int
	Required  int

	// Err is the underlying cause, if any.
	Err error
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case InvalidParam:
		msg = fmt.Sprintf("Invalid parameter %s", e.Token)
	case InvalidParamIndex:
		msg = fmt.Sprintf("Invalid param index %s", e.Token)
	case FuncTitleBody:
		msg = "Function must have title and body"
	case UndefinedUserFunction:
		msg = fmt.Sprintf("Undefined user function %s", e.Token)
	case UndefinedFunction:
		msg = fmt.Sprintf("Undefined function %s", e.Token)
	case MissingParameters:
		msg = fmt.Sprintf("Missing parameters: Provided %d of %d for function `%s'", e.Available, e.Required, e.Token)
	case InvalidSyntax:
		msg = fmt.Sprintf("Invalid syntax: %v", e.Err)
	case CallDepthExceeded:
		msg = fmt.Sprintf("Maximum call depth of %d exceeded calling %s", e.Required, e.Token)
	case IO:
		msg = fmt.Sprintf("Couldn't access %s: %v", e.Token, e.Err)
	default:
		msg = fmt.Sprintf("Unknown error %s", e.Kind)
	}
	return msg + "."
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind so callers can compare against
// the sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Token == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrInvalidParam          = &Error{Kind: InvalidParam}
	ErrInvalidParamIndex     = &Error{Kind: InvalidParamIndex}
	ErrFuncTitleBody         = &Error{Kind: FuncTitleBody}
	ErrUndefinedUserFunction = &Error{Kind: UndefinedUserFunction}
	ErrUndefinedFunction     = &Error{Kind: UndefinedFunction}
	ErrMissingParameters     = &Error{Kind: MissingParameters}
	ErrInvalidSyntax         = &Error{Kind: InvalidSyntax}
	ErrCallDepthExceeded     = &Error{Kind: CallDepthExceeded}
	ErrIO                    = &Error{Kind: IO}
)
