// Package render maps world coordinates onto a drawing surface and strokes
// polylines produced by the sampler.
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/njchilds90/symplot"
)

// ErrViewport is returned for a viewport with an empty world or surface.
var ErrViewport = errors.New("render: invalid viewport")

// Rect is an axis-aligned world rectangle.
type Rect struct {
	X symplot.Range `yaml:"x" json:"x"`
	Y symplot.Range `yaml:"y" json:"y"`
}

// Viewport maps the World rectangle onto a Width x Height surface whose
// origin is the top-left corner, with y growing downward.
type Viewport struct {
	World  Rect
	Width  float64
	Height float64
}

func (v Viewport) Validate() error {
	if v.World.X.Width() <= 0 || v.World.Y.Width() <= 0 || v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: world %s x %s on %gx%g", ErrViewport, v.World.X, v.World.Y, v.Width, v.Height)
	}
	return nil
}

// VisibleRange returns the world interval visible along axis ("x" or "y").
func (v Viewport) VisibleRange(axis string) symplot.Range {
	if axis == "x" {
		return v.World.X
	}
	return v.World.Y
}

// ToScreen maps a world point to surface coordinates.
func (v Viewport) ToScreen(p symplot.Point) symplot.Point {
	sx := (p.X - v.World.X.Min) / v.World.X.Width() * v.Width
	sy := (v.World.Y.Max - p.Y) / v.World.Y.Width() * v.Height
	return symplot.Pt(clamp(sx, v.Width), clamp(sy, v.Height))
}

// ToWorld maps a surface point back to world coordinates.
func (v Viewport) ToWorld(p symplot.Point) symplot.Point {
	return symplot.Pt(
		v.World.X.Min+p.X/v.Width*v.World.X.Width(),
		v.World.Y.Max-p.Y/v.Height*v.World.Y.Width(),
	)
}

// WorldRadius converts a surface distance in pixels to world units along x.
func (v Viewport) WorldRadius(pixels float64) float64 {
	return pixels / v.Width * v.World.X.Width()
}

// clamp keeps far off-surface coordinates finite so strokes stay drawable.
func clamp(v, extent float64) float64 {
	limit := 16 * extent
	switch {
	case math.IsNaN(v):
		return 0
	case v > limit:
		return limit
	case v < -limit:
		return -limit
	}
	return v
}
