package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewExportCmd creates the "export" subcommand.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <scene.yaml>",
		Short: "Print a scene's shapes as graphing-calculator statements",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	cmd.Flags().String("format", "text", "Output format: text | json")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	sc, err := loadScene(args[0])
	if err != nil {
		return err
	}
	statements := sc.Export()

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(statements)
	case "text":
		for _, st := range statements {
			fmt.Fprintln(out, st.LaTeX)
		}
		return nil
	}
	return exitError(exitValidation, "unknown format %q", format)
}
