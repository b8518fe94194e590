// Package shell runs an interactive Step session over a line editor.
package shell

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/step/core/config"
	"github.com/josephlewis42/step/core/step"
	"github.com/spf13/afero"
)

// Terminal describes the streams a shell is attached to.
type Terminal struct {
	Stdin  io.Reader
	Stdout io.Writer

	// IsTerminal is true if the streams belong to a TTY.
	IsTerminal bool
	// Width returns the width of the terminal, may be nil.
	Width func() int
}

type Shell struct {
	Session  *step.Session
	Readline *readline.Instance

	out     io.Writer
	history []string

	// Set to true to quit the shell
	Quit bool
}

// NewShell creates a shell mode session with the given positional
// parameters. fs backs :load and output directives.
func NewShell(term Terminal, cfg *config.Configuration, fs afero.Fs, params []float64) (*Shell, error) {
	rlCfg := &readline.Config{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryPath(),
		Stdin:       readline.NewCancelableStdin(term.Stdin),
		Stdout:      term.Stdout,
		Stderr:      term.Stdout,
		FuncGetWidth: func() int {
			if term.Width == nil {
				return 80
			}
			return term.Width()
		},
		FuncIsTerminal: func() bool {
			return term.IsTerminal
		},
	}

	if err := rlCfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return nil, err
	}

	session := step.NewSession(step.Options{
		Fs:           fs,
		Stdout:       rl,
		Stderr:       rl,
		Params:       params,
		ShellMode:    true,
		Color:        cfg.ShouldColor(term.IsTerminal),
		MaxCallDepth: cfg.MaxCallDepth,
	})

	shell := newShell(session, rl)
	shell.Readline = rl
	return shell, nil
}

func newShell(session *step.Session, out io.Writer) *Shell {
	return &Shell{
		Session: session,
		out:     out,
	}
}

// Run reads and evaluates lines until the input closes or the shell quits.
func (s *Shell) Run() int {
	for !s.Quit {
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return 0 // Input closed, quit.

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			return 1

		case strings.TrimSpace(line) == "":
			continue // empty line

		default:
			s.RunLine(line)
		}
	}
	return 0
}

// RunLine evaluates a single line of input. Lines starting with ':' are
// shell commands rather than Step code. The stack is printed after every
// evaluated line.
func (s *Shell) RunLine(line string) {
	s.history = append(s.history, line)

	if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, ":") {
		s.runMetaCommand(trimmed[1:])
		return
	}

	// Errors are reported by the session in shell mode.
	_ = s.Session.EvaluateLine(line)
	s.printStack()
}

func (s *Shell) printStack() {
	fmt.Fprintln(s.out, s.Session.Stack())
}

// Close releases the session's sink and the line editor.
func (s *Shell) Close() error {
	err := s.Session.Close()
	if s.Readline != nil {
		if rlErr := s.Readline.Close(); err == nil {
			err = rlErr
		}
	}
	return err
}
