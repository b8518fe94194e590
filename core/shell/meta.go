package shell

import (
	"fmt"
	"sort"
	"strings"

	"github.com/josephlewis42/step/core/step"
	"github.com/pborman/getopt/v2"
)

// MetaCommand is a shell command invoked with a ':' prefix.
type MetaCommand struct {
	Short string
	Main  func(s *Shell, args []string) int
}

// AllMetaCommands holds every registered shell command.
var AllMetaCommands = make(map[string]MetaCommand)

func (s *Shell) runMetaCommand(line string) int {
	args, err := step.SplitWords(line)
	if err != nil {
		fmt.Fprintf(s.out, "shell: %v\n", err)
		return 1
	}
	if len(args) == 0 {
		args = []string{"help"}
	}

	cmd, ok := AllMetaCommands[args[0]]
	if !ok {
		fmt.Fprintf(s.out, "shell: unknown command :%s, try :help\n", args[0])
		return 1
	}
	return cmd.Main(s, args)
}

// parseFlags parses args into opts. It prints usage and returns false if
// parsing failed or help was requested.
func (s *Shell) parseFlags(opts *getopt.Set, args []string, use, short string) bool {
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")
	err := opts.Getopt(args, nil)
	if err == nil && !*helpOpt {
		return true
	}

	if err != nil {
		fmt.Fprintln(s.out, err)
	}
	fmt.Fprintf(s.out, "usage: :%s\n", use)
	fmt.Fprintln(s.out, short)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Options:")
	opts.PrintOptions(s.out)
	return false
}

// Help lists the shell commands.
func Help(s *Shell, args []string) int {
	opts := getopt.New()
	if !s.parseFlags(opts, args, "help", "List shell commands.") {
		return 1
	}

	fmt.Fprintln(s.out, "Lines are evaluated as Step code unless they start with ':'.")
	fmt.Fprintln(s.out, "Shell commands accept -h for help.")
	fmt.Fprintln(s.out)

	var names []string
	for name := range AllMetaCommands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(s.out, "  :%-8s %s\n", name, AllMetaCommands[name].Short)
	}
	return 0
}

// Quit exits the shell.
func Quit(s *Shell, args []string) int {
	opts := getopt.New()
	if !s.parseFlags(opts, args, args[0], "Leave the shell.") {
		return 1
	}

	s.Quit = true
	return 0
}

// Stack prints the stack, top first.
func Stack(s *Shell, args []string) int {
	opts := getopt.New()
	depthOnly := opts.Bool('n', "print the depth only")
	if !s.parseFlags(opts, args, "stack [-n]", "Show the stack, top first.") {
		return 1
	}

	values := s.Session.Stack().Values()
	if *depthOnly {
		fmt.Fprintln(s.out, len(values))
		return 0
	}

	for i := len(values) - 1; i >= 0; i-- {
		fmt.Fprintf(s.out, "% 5d  %s\n", len(values)-1-i, step.FormatNumber(values[i]))
	}
	return 0
}

// Funcs lists user functions.
func Funcs(s *Shell, args []string) int {
	opts := getopt.New()
	verbose := opts.Bool('v', "show function bodies")
	if !s.parseFlags(opts, args, "funcs [-v]", "List user defined functions.") {
		return 1
	}

	functions := s.Session.Functions()
	names := functions.Names()
	sort.Strings(names)

	for _, name := range names {
		if *verbose {
			fmt.Fprintf(s.out, "(%s %s)\n", name, strings.Join(functions[name], " "))
		} else {
			fmt.Fprintln(s.out, name)
		}
	}
	return 0
}

// Params lists the positional parameters.
func Params(s *Shell, args []string) int {
	opts := getopt.New()
	if !s.parseFlags(opts, args, "params", "List positional parameters.") {
		return 1
	}

	for i, v := range s.Session.Params() {
		fmt.Fprintf(s.out, "$%d = %s\n", i, step.FormatNumber(v))
	}
	return 0
}

// Load evaluates script files in the current session.
func Load(s *Shell, args []string) int {
	opts := getopt.New()
	opts.SetParameters("FILE...")
	if !s.parseFlags(opts, args, "load FILE...", "Evaluate script files in this session.") {
		return 1
	}

	files := opts.Args()
	if len(files) == 0 {
		fmt.Fprintln(s.out, "load: missing file operand")
		return 1
	}

	for _, file := range files {
		// Errors are reported by the session in shell mode.
		_ = s.Session.Load(file)
	}
	s.printStack()
	return 0
}

// Reset clears the stack and forgets user functions.
func Reset(s *Shell, args []string) int {
	opts := getopt.New()
	if !s.parseFlags(opts, args, "reset", "Clear the stack and forget user functions.") {
		return 1
	}

	s.Session.Reset()
	s.printStack()
	return 0
}

// History displays or clears the line history.
func History(s *Shell, args []string) int {
	opts := getopt.New()
	clear := opts.Bool('c', "clear the history by deleting all entries")
	if !s.parseFlags(opts, args, "history [-c]", "Display the history list with line numbers.") {
		return 1
	}

	if *clear {
		if s.Readline != nil {
			s.Readline.Operation.ResetHistory()
		}
		s.history = nil
		return 0
	}

	for i, line := range s.history {
		fmt.Fprintf(s.out, "% 5d  %s\n", i, line)
	}
	return 0
}

// Builtins lists builtin words and constants.
func Builtins(s *Shell, args []string) int {
	opts := getopt.New()
	if !s.parseFlags(opts, args, "builtins", "List builtin words and constants.") {
		return 1
	}

	for _, b := range step.Builtins() {
		fmt.Fprintf(s.out, "  %-8s %d  %s\n", b, b.Arity(), b.Short())
	}
	for _, c := range step.Constants() {
		fmt.Fprintf(s.out, "  %-8s %s\n", c, step.FormatNumber(c.Value()))
	}
	return 0
}

func init() {
	AllMetaCommands["help"] = MetaCommand{"list shell commands", Help}
	AllMetaCommands["quit"] = MetaCommand{"leave the shell", Quit}
	AllMetaCommands["exit"] = MetaCommand{"leave the shell", Quit}
	AllMetaCommands["stack"] = MetaCommand{"show the stack, top first", Stack}
	AllMetaCommands["funcs"] = MetaCommand{"list user functions", Funcs}
	AllMetaCommands["params"] = MetaCommand{"list positional parameters", Params}
	AllMetaCommands["load"] = MetaCommand{"evaluate script files", Load}
	AllMetaCommands["reset"] = MetaCommand{"clear the stack and functions", Reset}
	AllMetaCommands["history"] = MetaCommand{"show or clear line history", History}
	AllMetaCommands["builtins"] = MetaCommand{"list builtin words", Builtins}
}
