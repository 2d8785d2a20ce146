package shape

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/njchilds90/symplot"
)

// Parabola opens along its dependent axis from a vertex and passes through a
// second point. Only the arc between the vertex and the point's level is drawn,
// mirrored on both sides of the vertex.
type Parabola struct {
	id        uuid.UUID
	vertex    symplot.Point
	through   symplot.Point
	dependent string
}

func NewParabola(id uuid.UUID, vertex, through symplot.Point, dependent string) (*Parabola, error) {
	if dependent == "" {
		dependent = "y"
	}
	if dependent != "x" && dependent != "y" {
		return nil, fmt.Errorf("%w: got %q", ErrAxis, dependent)
	}
	ind := other(dependent)
	if !finite(vertex, through) || coord(vertex, ind) == coord(through, ind) {
		return nil, fmt.Errorf("%w: parabola with vertex %v through %v", ErrDegenerate, vertex, through)
	}
	return &Parabola{id: id, vertex: vertex, through: through, dependent: dependent}, nil
}

func (p *Parabola) ID() uuid.UUID                  { return p.id }
func (p *Parabola) Kind() Kind                     { return KindParabola }
func (p *Parabola) ControlPoints() []symplot.Point { return []symplot.Point{p.vertex, p.through} }
func (p *Parabola) Dependent() string              { return p.dependent }

func (p *Parabola) WithControlPoint(i int, pt symplot.Point) (Shape, error) {
	if err := checkIndex(KindParabola, i, 2); err != nil {
		return nil, err
	}
	if i == 0 {
		return NewParabola(p.id, pt, p.through, p.dependent)
	}
	return NewParabola(p.id, p.vertex, pt, p.dependent)
}

// Coefficient returns a in dep = a*(ind - v_ind)^2 + v_dep.
func (p *Parabola) Coefficient() float64 {
	ind := other(p.dependent)
	run := coord(p.through, ind) - coord(p.vertex, ind)
	return (coord(p.through, p.dependent) - coord(p.vertex, p.dependent)) / (run * run)
}

func (p *Parabola) Equations() []symplot.Equation {
	ind := other(p.dependent)
	vInd, vDep := coord(p.vertex, ind), coord(p.vertex, p.dependent)

	curve := symplot.AddOf(
		symplot.Multiply(symplot.C(p.Coefficient()), symplot.Square(symplot.Subtract(symplot.V(ind), symplot.C(vInd)))),
		symplot.C(vDep),
	)
	rhs := symplot.RestrictToOf(curve, vDep, coord(p.through, p.dependent))
	return []symplot.Equation{symplot.Eq(p.dependent, rhs)}
}
