package cmd

import (
	"time"

	"github.com/josephlewis42/step/core/ttylog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var replayMaxSleep time.Duration

// replayCmd plays back a recorded SSH session
var replayCmd = &cobra.Command{
	Use:   "replay RECORDING",
	Short: "Play back a recorded session.",
	Long: `Play back an asciicast recording made by serve. Pauses are reproduced,
capped by --max-sleep. A negative --max-sleep prints the recording at once.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := afero.NewOsFs().Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		return ttylog.Replay(ttylog.NewAsciicastReader(fd), cmd.OutOrStdout(), replayMaxSleep)
	},
}

func init() {
	replayCmd.Flags().DurationVar(&replayMaxSleep, "max-sleep", time.Second, "longest pause between events")
	rootCmd.AddCommand(replayCmd)
}
