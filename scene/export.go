package scene

import (
	"github.com/njchilds90/symplot/shape"
)

// Statement is one exported equation of a shape.
type Statement struct {
	ShapeID string     `json:"shape_id"`
	Kind    shape.Kind `json:"kind"`
	LaTeX   string     `json:"latex"`
	Text    string     `json:"text"`
}

// Export returns the graphing-calculator statements for every shape, in
// drawing order.
func (s *Scene) Export() []Statement {
	var out []Statement
	for _, sh := range s.Session.Shapes() {
		for _, eq := range sh.Equations() {
			out = append(out, Statement{
				ShapeID: sh.ID().String(),
				Kind:    sh.Kind(),
				LaTeX:   eq.LaTeX(),
				Text:    eq.String(),
			})
		}
	}
	return out
}
