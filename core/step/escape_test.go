package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnescape(t *testing.T) {
	cases := []struct {
		escaped  string
		expected string
	}{
		{"not escaped", "not escaped"},
		{`newline\n`, "newline\n"},
		{`tab\tstop`, "tab\tstop"},
		{`double-escape\\n`, `double-escape\n`},
		{`quotes \"a\" \'b\'`, `quotes "a" 'b'`},
		// Octal
		{`\101`, "A"},
		{`\011`, "\t"},
		{`a\0b`, "a\x00b"},
		{`\7`, "\a"},
		{`\12`, "\n"},
		{`\1018`, "A8"},
		{`\777`, "\u01ff"},
		// Hex
		{`\x4A`, "J"},
		{`\xe9`, "é"},
		// Unicode
		{`\u00e9t\u00e9`, "été"},
		{`\U0001F600`, "😀"},
		// Left alone
		{`\q`, `\q`},
		{`trailing\`, `trailing\`},
		{`\x4`, `\x4`},
		{`\8`, `\8`},
		{`\N{DIGIT ONE}`, `\N{DIGIT ONE}`},
		{"naïve", "naïve"},
	}

	for _, tc := range cases {
		t.Run(tc.escaped, func(t *testing.T) {
			assert.Equal(t, tc.expected, Unescape(tc.escaped))
		})
	}
}
