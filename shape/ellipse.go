package shape

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/njchilds90/symplot"
)

// Ellipse is axis-aligned, given by its center and one corner of its
// bounding box.
type Ellipse struct {
	id             uuid.UUID
	center, corner symplot.Point
}

func NewEllipse(id uuid.UUID, center, corner symplot.Point) (*Ellipse, error) {
	if !finite(center, corner) || center.X == corner.X || center.Y == corner.Y {
		return nil, fmt.Errorf("%w: ellipse centered at %v with corner %v", ErrDegenerate, center, corner)
	}
	return &Ellipse{id: id, center: center, corner: corner}, nil
}

func (e *Ellipse) ID() uuid.UUID                  { return e.id }
func (e *Ellipse) Kind() Kind                     { return KindEllipse }
func (e *Ellipse) ControlPoints() []symplot.Point { return []symplot.Point{e.center, e.corner} }

func (e *Ellipse) Radii() (rx, ry float64) {
	return math.Abs(e.corner.X - e.center.X), math.Abs(e.corner.Y - e.center.Y)
}

// WithControlPoint moves the center (index 0), carrying the corner along, or
// the corner (index 1), resizing the ellipse.
func (e *Ellipse) WithControlPoint(i int, p symplot.Point) (Shape, error) {
	if err := checkIndex(KindEllipse, i, 2); err != nil {
		return nil, err
	}
	if i == 0 {
		dx, dy := p.X-e.center.X, p.Y-e.center.Y
		return NewEllipse(e.id, p, symplot.Pt(e.corner.X+dx, e.corner.Y+dy))
	}
	return NewEllipse(e.id, e.center, p)
}

// Equations returns y = cy + ry*±sqrt((1-u)(1+u)) with u = (x-cx)/rx. The
// two-valued root draws the upper and lower halves from one statement.
//
// The product is built as (1-u)(2+u) - (1-u): a zero right operand of
// Multiply is undefined, and 2+u vanishes only outside the ellipse, so both
// vertices stay on the curve.
func (e *Ellipse) Equations() []symplot.Equation {
	rx, ry := e.Radii()
	x := symplot.V("x")
	u := symplot.DivOf(symplot.Subtract(x, symplot.C(e.center.X)), symplot.C(rx))
	w := symplot.Subtract(symplot.C(1), u)
	root := symplot.SqrtOf(symplot.Subtract(
		symplot.Multiply(w, symplot.AddOf(symplot.C(2), u)),
		w,
	))
	rhs := symplot.AddOf(symplot.C(e.center.Y), symplot.DivOf(root, symplot.C(1/ry)))
	return []symplot.Equation{symplot.Eq("y", rhs)}
}
