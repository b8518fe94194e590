package step

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unescape decodes backslash escapes in literal text: the single character
// escapes (\n, \t, \\, \", \' ...), one to three digit octal (\0, \101),
// \xHH, \uHHHH and \UHHHHHHHH. Numeric escapes name code points, so \xe9 is
// "é". Named escapes (\N{...}) aren't supported. Unknown or truncated escapes
// are kept as written.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var out strings.Builder
	for len(s) > 0 {
		if s[0] != '\\' {
			_, size := utf8.DecodeRuneInString(s)
			out.WriteString(s[:size])
			s = s[size:]
			continue
		}

		// UnquoteChar only accepts the quote it's told about.
		if len(s) > 1 && (s[1] == '\'' || s[1] == '"') {
			out.WriteByte(s[1])
			s = s[2:]
			continue
		}

		if digits := octalDigits(s[1:]); digits > 0 {
			value, _ := strconv.ParseUint(s[1:1+digits], 8, 32)
			out.WriteRune(rune(value))
			s = s[1+digits:]
			continue
		}

		value, _, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			out.WriteByte('\\')
			s = s[1:]
			continue
		}

		out.WriteRune(value)
		s = tail
	}
	return out.String()
}

// octalDigits counts the leading octal digits of s, up to three.
func octalDigits(s string) int {
	n := 0
	for n < len(s) && n < 3 && '0' <= s[n] && s[n] <= '7' {
		n++
	}
	return n
}
