package cmd

import (
	"github.com/josephlewis42/step/core/step"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

// tokenReport is the preprocessed form of a script.
type tokenReport struct {
	Output    string             `json:"output,omitempty"`
	Functions step.FunctionTable `json:"functions"`
	Tokens    []string           `json:"tokens"`
}

func preprocess(script string) (*tokenReport, error) {
	text, target, _ := step.ExtractOutput(script)
	text = step.StripComments(text)

	report := &tokenReport{
		Output:    target,
		Functions: make(step.FunctionTable),
	}

	text, err := step.ExtractFunctions(text, report.Functions)
	if err != nil {
		return nil, err
	}

	report.Tokens, err = step.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// tokensCmd shows what the evaluator would see without running anything
var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the output target, functions and tokens of a script.",
	Long: `Preprocess a script without evaluating it and print the result as YAML.
No output file is opened.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		script, err := readScript(cmd, afero.NewOsFs(), args[0])
		if err != nil {
			return &step.Error{Kind: step.IO, Token: args[0], Err: err}
		}

		report, err := preprocess(string(script))
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
