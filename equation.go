package symplot

import (
	"fmt"
	"strings"
)

// ============================================================
// Equation — dependent = f(independent)
// ============================================================

// Equation is the export form of a shape: Dependent names the left-hand side
// variable and RHS must have exactly one free variable, the independent one.
type Equation struct {
	Dependent string
	RHS       Expr
}

func Eq(dependent string, rhs Expr) Equation { return Equation{Dependent: dependent, RHS: rhs} }

// Independent returns the single free variable of RHS, or "" when RHS has
// zero or several.
func (e Equation) Independent() string {
	vars := FreeVariables(e.RHS)
	if len(vars) != 1 {
		return ""
	}
	return vars[0]
}

func (e Equation) String() string { return e.Dependent + " = " + e.RHS.String() }

// LaTeX renders the equation for a graphing calculator. Restrictions are
// lifted out of the tree and appended as {min<=expr<=max} conditions, with a
// restriction wrapping the whole right-hand side written against the
// dependent variable.
func (e Equation) LaTeX() string {
	var b strings.Builder
	b.WriteString(e.Dependent)
	b.WriteString("=")
	b.WriteString(e.RHS.LaTeX())

	if top, ok := e.RHS.(*RestrictTo); ok {
		writeCondition(&b, e.Dependent, top.rng)
		collectConditions(&b, top.arg)
		return b.String()
	}
	collectConditions(&b, e.RHS)
	return b.String()
}

func collectConditions(b *strings.Builder, e Expr) {
	switch t := e.(type) {
	case *Add:
		collectConditions(b, t.left)
		collectConditions(b, t.right)
	case *Div:
		collectConditions(b, t.num)
		collectConditions(b, t.den)
	case *PrincipalSqrt:
		collectConditions(b, t.arg)
	case *Sqrt:
		collectConditions(b, t.arg)
	case *RestrictTo:
		writeCondition(b, t.arg.LaTeX(), t.rng)
		collectConditions(b, t.arg)
	}
}

func writeCondition(b *strings.Builder, subject string, r Range) {
	fmt.Fprintf(b, `\left\{%s\le %s\le %s\right\}`, C(r.Min).LaTeX(), subject, C(r.Max).LaTeX())
}

// Plot samples the equation over the independent variable's domain and
// returns polylines in (x, y) world coordinates. When the dependent variable
// is "x", samples are plotted along y.
func (e Equation) Plot(domain Range, step float64) ([]Polyline, error) {
	var c Collector
	if err := e.PlotTo(&c, domain, step); err != nil {
		return nil, err
	}
	return c.Lines, nil
}

func (e Equation) PlotTo(r Renderer, domain Range, step float64) error {
	if e.Dependent != "x" {
		return PlotTo(r, e.RHS, domain, step)
	}
	return PlotTo(RendererFunc(func(line Polyline) {
		swapped := make(Polyline, len(line))
		for i, p := range line {
			swapped[i] = Point{X: p.Y, Y: p.X}
		}
		r.Polyline(swapped)
	}), e.RHS, domain, step)
}
