// Package shape derives plottable equations from editable geometric shapes.
//
// Shapes are immutable: moving a control point returns a new shape whose
// equations are rebuilt from scratch.
package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/njchilds90/symplot"
)

// Kind names a shape type in scene files and exports.
type Kind string

const (
	KindLine     Kind = "line"
	KindEllipse  Kind = "ellipse"
	KindParabola Kind = "parabola"
)

var (
	// ErrDegenerate is returned when control points do not define a shape,
	// such as a line through one point or an ellipse with a zero radius.
	ErrDegenerate = errors.New("shape: degenerate control points")
	// ErrUnknownKind is returned by New for an unsupported kind.
	ErrUnknownKind = errors.New("shape: unknown kind")
	// ErrAxis is returned for a dependent axis other than "x" or "y".
	ErrAxis = errors.New(`shape: dependent axis must be "x" or "y"`)
)

// ControlPointError reports an out-of-range control point index.
type ControlPointError struct {
	Kind  Kind
	Index int
	Count int
}

func (e ControlPointError) Error() string {
	return fmt.Sprintf("shape: %s has %d control points, index %d out of range", e.Kind, e.Count, e.Index)
}

// Shape is a drawable whose geometry is given by control points.
type Shape interface {
	ID() uuid.UUID
	Kind() Kind
	ControlPoints() []symplot.Point
	// WithControlPoint returns a copy of the shape with control point i moved
	// to p. The receiver is unchanged.
	WithControlPoint(i int, p symplot.Point) (Shape, error)
	// Equations returns the statements that draw the shape.
	Equations() []symplot.Equation
}

// Options carries the kind-specific settings of New.
type Options struct {
	// Dependent is the left-hand side axis of a parabola. Defaults to "y".
	Dependent string
}

// New builds a shape of the given kind from its control points. A zero id
// gets a fresh random one.
func New(kind Kind, id uuid.UUID, points []symplot.Point, opts Options) (Shape, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	need := func(n int) error {
		if len(points) != n {
			return fmt.Errorf("%w: %s needs %d control points, got %d", ErrDegenerate, kind, n, len(points))
		}
		return nil
	}
	switch kind {
	case KindLine:
		if err := need(2); err != nil {
			return nil, err
		}
		return NewLine(id, points[0], points[1])
	case KindEllipse:
		if err := need(2); err != nil {
			return nil, err
		}
		return NewEllipse(id, points[0], points[1])
	case KindParabola:
		if err := need(2); err != nil {
			return nil, err
		}
		return NewParabola(id, points[0], points[1], opts.Dependent)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// HitTest returns the index of the control point of s nearest to p, if it
// lies within radius.
func HitTest(s Shape, p symplot.Point, radius float64) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, cp := range s.ControlPoints() {
		d := math.Hypot(cp.X-p.X, cp.Y-p.Y)
		if d <= radius && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// other returns the axis that is not axis.
func other(axis string) string {
	if axis == "x" {
		return "y"
	}
	return "x"
}

// coord returns p's coordinate along axis.
func coord(p symplot.Point, axis string) float64 {
	if axis == "x" {
		return p.X
	}
	return p.Y
}

func samePoint(a, b symplot.Point) bool { return a.X == b.X && a.Y == b.Y }

func checkIndex(kind Kind, i, count int) error {
	if i < 0 || i >= count {
		return ControlPointError{Kind: kind, Index: i, Count: count}
	}
	return nil
}

func finite(points ...symplot.Point) bool {
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}
