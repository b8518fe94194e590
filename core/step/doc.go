// Package step interprets Step, a small reverse-Polish calculator language.
//
// A script is a flat stream of whitespace separated tokens evaluated left to
// right against a single stack of float64 values:
//
//	:out.txt                 optional first line, redirects output to a file
//	{ comment }              removed before evaluation, doesn't nest
//	(sq dup *)               defines the user function sq
//	3 @sq println            pushes 3, calls sq; nothing after @sq runs
//	$0 $1 +                  positional parameters
//	"_Hello, world\n"        writes literal text with escapes decoded
//
// Builtins pop their operands with the most recently pushed value first and
// compute first-popped OP second-popped, so "10 2 -" leaves -8.
package step
