package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/josephlewis42/step/core/shell"
	"github.com/josephlewis42/step/core/step"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the words the interpreter understands
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin words, constants and shell commands.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 8, 8, 2, ' ', 0)
		defer tw.Flush()

		for _, b := range step.Builtins() {
			fmt.Fprintf(tw, "%s\tarity %d\t%s\n", b, b.Arity(), b.Short())
		}

		for _, c := range step.Constants() {
			fmt.Fprintf(tw, "%s\tconstant\t%s\n", c, step.FormatNumber(c.Value()))
		}

		var metaCommands []string
		for name := range shell.AllMetaCommands {
			metaCommands = append(metaCommands, name)
		}
		sort.Strings(metaCommands)

		for _, name := range metaCommands {
			fmt.Fprintf(tw, "shell::%s\t\t%s\n", name, shell.AllMetaCommands[name].Short)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
