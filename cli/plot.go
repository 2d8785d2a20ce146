package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symplot/render"
	"github.com/njchilds90/symplot/scene"
)

// NewPlotCmd creates the "plot" subcommand.
func NewPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot <scene.yaml>",
		Short: "Render a scene to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}

	cmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().Float64("step", 0, "Override the scene's sampling step")
	cmd.Flags().Bool("markers", false, "Draw control points")

	return cmd
}

func runPlot(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)
	outputPath, _ := cmd.Flags().GetString("output")
	step, _ := cmd.Flags().GetFloat64("step")
	markers, _ := cmd.Flags().GetBool("markers")

	sc, err := loadScene(args[0])
	if err != nil {
		return err
	}
	if step > 0 {
		sc.Step = step
	}

	svg := render.NewSVG(sc.Viewport)
	if err := sc.Render(svg); err != nil {
		return exitError(exitRuntime, "plotting: %s", err)
	}
	if markers {
		for _, sh := range sc.Session.Shapes() {
			for _, p := range sh.ControlPoints() {
				svg.Marker(p, 4)
			}
		}
	}
	logger.Debug("scene plotted",
		"shapes", len(sc.Session.Shapes()),
		"elements", svg.Len(),
		"step", sc.Step)

	if outputPath == "" {
		_, err := svg.WriteTo(cmd.OutOrStdout())
		return err
	}
	f, err := os.Create(outputPath) // #nosec G304 -- path from user CLI arg
	if err != nil {
		return exitError(exitRuntime, "creating output: %s", err)
	}
	defer f.Close()
	if _, err := svg.WriteTo(f); err != nil {
		return exitError(exitRuntime, "writing output: %s", err)
	}
	logger.Info("wrote svg", "path", outputPath)
	return nil
}

// loadScene maps scene loading failures onto exit codes.
func loadScene(path string) (*scene.Scene, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, exitError(exitFileNotFound, "file not found: %s", path)
	}
	sc, err := scene.Load(path)
	if err != nil {
		if errors.Is(err, scene.ErrInvalid) {
			return nil, exitError(exitValidation, "%s", err)
		}
		return nil, exitError(exitInputParse, "%s", err)
	}
	return sc, nil
}
