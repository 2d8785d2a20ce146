package shape

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/njchilds90/symplot"
)

// Line is the segment between two control points.
type Line struct {
	id   uuid.UUID
	a, b symplot.Point
}

func NewLine(id uuid.UUID, a, b symplot.Point) (*Line, error) {
	if !finite(a, b) || samePoint(a, b) {
		return nil, fmt.Errorf("%w: line through %v and %v", ErrDegenerate, a, b)
	}
	return &Line{id: id, a: a, b: b}, nil
}

func (l *Line) ID() uuid.UUID                  { return l.id }
func (l *Line) Kind() Kind                     { return KindLine }
func (l *Line) ControlPoints() []symplot.Point { return []symplot.Point{l.a, l.b} }

func (l *Line) WithControlPoint(i int, p symplot.Point) (Shape, error) {
	if err := checkIndex(KindLine, i, 2); err != nil {
		return nil, err
	}
	a, b := l.a, l.b
	if i == 0 {
		a = p
	} else {
		b = p
	}
	return NewLine(l.id, a, b)
}

// Equations writes the segment against whichever axis it spans more of, so
// steep lines stay well sampled: y = y1 + (x - x1)/(dx/dy) with x restricted
// to the segment, or the same with the axes swapped.
func (l *Line) Equations() []symplot.Equation {
	ind := "x"
	if math.Abs(l.b.Y-l.a.Y) > math.Abs(l.b.X-l.a.X) {
		ind = "y"
	}
	dep := other(ind)

	a0, b0 := coord(l.a, ind), coord(l.b, ind)
	a1, b1 := coord(l.a, dep), coord(l.b, dep)
	input := symplot.RestrictToOf(symplot.V(ind), a0, b0)

	var rise symplot.Expr
	if run := b1 - a1; run != 0 {
		rise = symplot.DivOf(symplot.Subtract(input, symplot.C(a0)), symplot.C((b0-a0)/run))
	} else {
		// Flat along ind: zero inside the segment, undefined outside.
		rise = symplot.Subtract(input, symplot.V(ind))
	}
	return []symplot.Equation{symplot.Eq(dep, symplot.AddOf(symplot.C(a1), rise))}
}
