package render

import (
	"fmt"

	"github.com/njchilds90/symplot"
)

// Draw plots each equation across the viewport's visible range of its
// independent variable and strokes the result into r.
func Draw(r symplot.Renderer, v Viewport, step float64, eqs ...symplot.Equation) error {
	if err := v.Validate(); err != nil {
		return err
	}
	for i, eq := range eqs {
		ind := eq.Independent()
		if err := eq.PlotTo(r, v.VisibleRange(ind), step); err != nil {
			return fmt.Errorf("equation %d (%s): %w", i, eq, err)
		}
	}
	return nil
}
