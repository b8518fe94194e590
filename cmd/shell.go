package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/josephlewis42/step/core/shell"
	"github.com/josephlewis42/step/core/step"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// shellCmd starts an interactive session on the local terminal
var shellCmd = &cobra.Command{
	Use:   "shell [PARAM]...",
	Short: "Start an interactive Step shell.",
	Long: `Start an interactive shell. Each line is evaluated against a stack that
persists between lines and the stack is printed after every line. Errors are
reported without leaving the shell. Type :help for shell commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd, args)
	},
}

func runShell(cmd *cobra.Command, rawParams []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	params, err := step.ParseParams(rawParams)
	if err != nil {
		return err
	}

	isTerminal := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	sh, err := shell.NewShell(shell.Terminal{
		Stdin:      cmd.InOrStdin(),
		Stdout:     cmd.OutOrStdout(),
		IsTerminal: isTerminal,
		Width: func() int {
			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil {
				return 80
			}
			return width
		},
	}, cfg, afero.NewOsFs(), params)
	if err != nil {
		return err
	}
	defer sh.Close()

	if isTerminal {
		banner := color.New(color.FgCyan, color.Bold)
		banner.Fprintln(cmd.OutOrStdout(), "Step shell. Type :help for commands, :quit to leave.")
	}

	if code := sh.Run(); code != 0 {
		return fmt.Errorf("shell exited with status %d", code)
	}
	return nil
}

func init() {
	shellCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(shellCmd)
}
