package step

import (
	"github.com/anmitsu/go-shlex"
)

// SplitWords splits text on whitespace the way a POSIX shell does: quoted
// runs stay together as one word and the quotes are removed.
func SplitWords(text string) ([]string, error) {
	words, err := shlex.Split(text, true)
	if err != nil {
		return nil, &Error{Kind: InvalidSyntax, Err: err}
	}
	return words, nil
}

// Tokenize splits preprocessed program text into the tokens the evaluator
// consumes.
func Tokenize(text string) ([]string, error) {
	return SplitWords(text)
}
