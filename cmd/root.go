package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/josephlewis42/step/core/config"
	"github.com/josephlewis42/step/core/step"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	interactive bool
)

// loadConfig loads the configuration, falling back to the built-in default
// if none has been initialized.
func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "step [FILE [PARAM]...]",
	Short: "Step stack calculator",
	Long: `An interpreter for Step, a small reverse-Polish calculator language.

Runs FILE with the given numeric parameters, or starts an interactive shell
with -i.`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case interactive:
			return runShell(cmd, args)
		case len(args) == 0:
			return cmd.Help()
		default:
			return runScript(cmd, args[0], args[1:])
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var stepErr *step.Error
	if errors.As(err, &stepErr) {
		fmt.Fprintln(os.Stderr, step.ErrorPrefix+stepErr.Error())
	} else {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(1)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start an interactive shell")

	// Parameters can be negative numbers, stop parsing flags at FILE.
	rootCmd.Flags().SetInterspersed(false)
}
