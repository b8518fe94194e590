package cmd

import (
	"io"

	"github.com/josephlewis42/step/core/step"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// runCmd evaluates a script in batch mode
var runCmd = &cobra.Command{
	Use:   "run FILE [PARAM]...",
	Short: "Run a script, use - to read it from stdin.",
	Long: `Run a script in batch mode. Any error stops the script and exits with
status 1. Parameters are available to the script as $0, $1, ...`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScript(cmd, args[0], args[1:])
	},
}

func runScript(cmd *cobra.Command, path string, rawParams []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	script, err := readScript(cmd, fs, path)
	if err != nil {
		return &step.Error{Kind: step.IO, Token: path, Err: err}
	}

	_, err = step.Run(string(script), rawParams, step.Options{
		Fs:           fs,
		Stdout:       cmd.OutOrStdout(),
		Stderr:       cmd.ErrOrStderr(),
		MaxCallDepth: cfg.MaxCallDepth,
	})
	return err
}

func readScript(cmd *cobra.Command, fs afero.Fs, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return afero.ReadFile(fs, path)
}

func init() {
	runCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(runCmd)
}
