package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symplot"
)

// NewEvalCmd creates the "eval" subcommand.
func NewEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <expr.json>",
		Short: "Simplify a JSON expression, optionally binding variables",
		Args:  cobra.ExactArgs(1),
		RunE:  runEval,
	}

	cmd.Flags().StringToString("set", nil, "Bind variables, e.g. --set x=3,y=1.5")
	cmd.Flags().Bool("latex", false, "Print LaTeX instead of the display form")

	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	set, _ := cmd.Flags().GetStringToString("set")
	latex, _ := cmd.Flags().GetBool("latex")
	out := cmd.OutOrStdout()

	data, err := os.ReadFile(args[0]) // #nosec G304 -- path from user CLI arg
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return exitError(exitFileNotFound, "file not found: %s", args[0])
		}
		return fmt.Errorf("reading file: %w", err)
	}
	e, err := symplot.ParseJSON(data)
	if err != nil {
		return exitError(exitInputParse, "%s", err)
	}

	subs := make(symplot.Substitutions, len(set))
	for name, raw := range set {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return exitError(exitInputParse, "--set %s=%s: not a number", name, raw)
		}
		subs[name] = symplot.C(v)
	}

	for _, cand := range e.Simplify(subs) {
		if latex {
			fmt.Fprintln(out, cand.LaTeX())
		} else {
			fmt.Fprintln(out, cand.String())
		}
	}
	return nil
}
