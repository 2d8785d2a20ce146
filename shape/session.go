package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/njchilds90/symplot"
)

// ErrNotFound is returned when a shape id is not part of the session.
var ErrNotFound = errors.New("shape: not found")

// Selection identifies one control point of one shape.
type Selection struct {
	Shape uuid.UUID
	Index int
}

// Session owns the shapes being edited and the control point currently
// grabbed by the pointer. It is not safe for concurrent use.
type Session struct {
	shapes   []Shape
	selected *Selection
}

func NewSession(shapes ...Shape) *Session {
	return &Session{shapes: append([]Shape(nil), shapes...)}
}

// Shapes returns the shapes in drawing order.
func (s *Session) Shapes() []Shape { return append([]Shape(nil), s.shapes...) }

func (s *Session) Add(sh Shape) { s.shapes = append(s.shapes, sh) }

// Remove drops the shape with the given id, clearing the selection if it
// pointed at that shape.
func (s *Session) Remove(id uuid.UUID) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	if s.selected != nil && s.selected.Shape == id {
		s.selected = nil
	}
	return nil
}

func (s *Session) Get(id uuid.UUID) (Shape, bool) {
	if i := s.index(id); i >= 0 {
		return s.shapes[i], true
	}
	return nil, false
}

func (s *Session) Selection() (Selection, bool) {
	if s.selected == nil {
		return Selection{}, false
	}
	return *s.selected, true
}

// Press selects the control point nearest to p within radius. Shapes drawn
// later win ties, matching what is on top. It reports whether anything was
// selected.
func (s *Session) Press(p symplot.Point, radius float64) bool {
	s.selected = nil
	best := math.Inf(1)
	for i := len(s.shapes) - 1; i >= 0; i-- {
		sh := s.shapes[i]
		idx, ok := HitTest(sh, p, radius)
		if !ok {
			continue
		}
		cp := sh.ControlPoints()[idx]
		if d := math.Hypot(cp.X-p.X, cp.Y-p.Y); d < best {
			best = d
			s.selected = &Selection{Shape: sh.ID(), Index: idx}
		}
	}
	return s.selected != nil
}

// Drag moves the selected control point to p and rebuilds its shape. With
// no selection it does nothing. A move that would make the shape degenerate
// is rejected and the shape keeps its previous geometry.
func (s *Session) Drag(p symplot.Point) error {
	if s.selected == nil {
		return nil
	}
	return s.Move(*s.selected, p)
}

// Move sets control point sel of its shape to p.
func (s *Session) Move(sel Selection, p symplot.Point) error {
	i := s.index(sel.Shape)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, sel.Shape)
	}
	next, err := s.shapes[i].WithControlPoint(sel.Index, p)
	if err != nil {
		return err
	}
	s.shapes[i] = next
	return nil
}

func (s *Session) Release() { s.selected = nil }

// Equations returns every shape's equations in drawing order.
func (s *Session) Equations() []symplot.Equation {
	var out []symplot.Equation
	for _, sh := range s.shapes {
		out = append(out, sh.Equations()...)
	}
	return out
}

func (s *Session) index(id uuid.UUID) int {
	for i, sh := range s.shapes {
		if sh.ID() == id {
			return i
		}
	}
	return -1
}
