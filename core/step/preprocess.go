package step

import (
	"strings"
)

// ExtractOutput looks for an output directive on the first line of a
// script. A first line longer than two characters that starts with ':'
// names the output target and is dropped. The remaining lines are joined
// with single spaces.
func ExtractOutput(script string) (text string, target string, ok bool) {
	lines := strings.Split(script, "\n")

	if first := lines[0]; len(first) > 2 && first[0] == ':' {
		target = strings.TrimSpace(first[1:])
		ok = true
		lines = lines[1:]
	}

	return strings.Join(lines, " "), target, ok
}

// StripComments removes text between '{' and '}'. Comments don't nest: a
// '{' inside a comment changes nothing and the first '}' ends the comment.
// Brace characters are never copied to the output.
func StripComments(text string) string {
	var out strings.Builder
	inComment := false

	for _, r := range text {
		switch {
		case r == '{':
			inComment = true
		case r == '}':
			inComment = false
		case !inComment:
			out.WriteRune(r)
		}
	}

	return out.String()
}

// FunctionTable maps user function names to their body words.
type FunctionTable map[string][]string

// Names returns the defined function names in no particular order.
func (ft FunctionTable) Names() []string {
	var out []string
	for name := range ft {
		out = append(out, name)
	}
	return out
}

// ExtractFunctions removes "(name word...)" definitions from text, storing
// them in functions, and returns the remaining text.
//
// Parentheses inside double quotes are ignored. Definitions don't nest and
// every unquoted ')' ends one, so a definition (or a stray ')') that splits
// into fewer than two words is a FuncTitleBody error.
func ExtractFunctions(text string, functions FunctionTable) (string, error) {
	var out, body strings.Builder
	inString := false
	inFunction := false

	for _, r := range text {
		if r == '"' {
			inString = !inString
		}

		switch {
		case r == '(' && !inString:
			inFunction = true
			continue

		case r == ')' && !inString:
			words, err := SplitWords(body.String())
			if err != nil {
				return "", err
			}
			if len(words) < 2 {
				return "", &Error{Kind: FuncTitleBody}
			}
			functions[words[0]] = words[1:]

			inFunction = false
			body.Reset()
			continue
		}

		if inFunction {
			body.WriteRune(r)
		} else {
			out.WriteRune(r)
		}
	}

	return out.String(), nil
}
