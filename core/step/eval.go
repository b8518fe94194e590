package step

import (
	"strconv"
	"strings"
)

// eval classifies and dispatches each token in order: numbers, builtins,
// constants, @calls, $params and _text. A user function call evaluates the
// function's body and then ends evaluation of the calling sequence, so
// tokens after an @call are never reached.
func (s *Session) eval(tokens []string) error {
	for _, tok := range tokens {
		if v, ok := parseNumber(tok); ok {
			s.stack.Push(v)
			continue
		}

		if b, ok := LookupBuiltin(tok); ok {
			if err := s.apply(b); err != nil {
				return err
			}
			continue
		}

		if c, ok := LookupConstant(tok); ok {
			s.stack.Push(c.Value())
			continue
		}

		switch {
		case strings.HasPrefix(tok, "@"):
			return s.call(tok)

		case strings.HasPrefix(tok, "$"):
			if err := s.pushParam(tok); err != nil {
				return err
			}

		case strings.HasPrefix(tok, "_"):
			if err := s.write(Unescape(tok[1:])); err != nil {
				return err
			}

		default:
			return &Error{Kind: UndefinedFunction, Token: tok}
		}
	}

	return nil
}

// call evaluates the body of the user function named by an @token.
func (s *Session) call(tok string) error {
	body, ok := s.functions[tok[1:]]
	if !ok {
		return &Error{Kind: UndefinedUserFunction, Token: tok}
	}

	if s.maxDepth > 0 && s.depth >= s.maxDepth {
		return &Error{Kind: CallDepthExceeded, Token: tok, Required: s.maxDepth}
	}

	// Bodies are re-split at call time exactly like top level text.
	tokens, err := Tokenize(strings.Join(body, " "))
	if err != nil {
		return err
	}

	s.depth++
	defer func() { s.depth-- }()
	return s.eval(tokens)
}

func (s *Session) pushParam(tok string) error {
	digits := tok[1:]
	if !isDigits(digits) {
		return &Error{Kind: InvalidParamIndex, Token: tok}
	}

	index, err := strconv.Atoi(digits)
	if err != nil || index >= len(s.params) {
		return &Error{Kind: InvalidParamIndex, Token: tok}
	}

	s.stack.Push(s.params[index])
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
