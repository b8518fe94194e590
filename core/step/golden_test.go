package step

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
)

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Params []string
}

// Run evaluates testdata/scripts/<name>.step for each case and compares
// the console output, final stack and error against the golden file.
func (gts goldenTestSuite) Run(t *testing.T) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			script, err := os.ReadFile(filepath.Join("testdata", "scripts", tn+".step"))
			if err != nil {
				t.Fatal(err)
			}

			var out bytes.Buffer
			stack := NewStack()
			values, runErr := Run(string(script), tc.Params, Options{
				Fs:     afero.NewMemMapFs(),
				Stdout: &out,
			})
			for _, v := range values {
				stack.Push(v)
			}

			errText := "none"
			if runErr != nil {
				errText = runErr.Error()
			}
			fmt.Fprintf(&out, "\n--\nstack: %s\nerror: %s\n", stack, errText)

			g.Assert(t, tn, out.Bytes())
		})
	}
}

func TestScripts(t *testing.T) {
	cases := goldenTestSuite{
		"hello":          {},
		"arithmetic":     {},
		"functions":      {},
		"params":         {Params: []string{"2", "0.5"}},
		"nested-comment": {},
		"missing":        {},
	}

	cases.Run(t)
}
