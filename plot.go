package symplot

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ============================================================
// Sampling errors
// ============================================================

var (
	// ErrVariableCount is returned when a plotted expression does not have
	// exactly one free variable.
	ErrVariableCount = errors.New("symplot: plotted expression needs exactly one free variable")
	// ErrInvalidStep is returned for a non-positive or NaN step, or one too
	// small to advance across the domain.
	ErrInvalidStep = errors.New("symplot: sampling step must be positive")
	// ErrInvalidDomain is returned when the domain bounds are NaN.
	ErrInvalidDomain = errors.New("symplot: invalid sampling domain")
	// ErrInvariant marks a sample that did not collapse to a single constant.
	ErrInvariant = errors.New("symplot: sample did not reduce to one constant")
)

// VariableCountError carries the free variables found in a plotted expression.
type VariableCountError struct {
	Variables []string
}

func (e *VariableCountError) Error() string {
	return fmt.Sprintf("%v: found %d (%s)", ErrVariableCount, len(e.Variables), strings.Join(e.Variables, ", "))
}

func (e *VariableCountError) Unwrap() error { return ErrVariableCount }

// InvariantError describes the sample at which per-sample simplification
// broke its single-constant contract.
type InvariantError struct {
	Variable string
	Sample   float64
	Results  []Expr
}

func (e *InvariantError) Error() string {
	parts := make([]string, len(e.Results))
	for i, r := range e.Results {
		parts[i] = r.String()
	}
	return fmt.Sprintf("%v: %s=%s gave %d result(s) [%s]", ErrInvariant, e.Variable, formatFloat(e.Sample), len(e.Results), strings.Join(parts, "; "))
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

// ============================================================
// Points and polylines
// ============================================================

// Point pairs a sample of the free variable with the expression's value.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Polyline is a maximal run of contiguous defined samples.
type Polyline []Point

// Renderer receives polylines as they are closed. Every polyline passed to
// Polyline has at least one point.
type Renderer interface {
	Polyline(line Polyline)
}

// Collector is a Renderer that keeps every polyline in order.
type Collector struct {
	Lines []Polyline
}

func (c *Collector) Polyline(line Polyline) { c.Lines = append(c.Lines, line) }

// RendererFunc adapts a function to Renderer.
type RendererFunc func(line Polyline)

func (f RendererFunc) Polyline(line Polyline) { f(line) }

// ============================================================
// Plot
// ============================================================

// Plot samples e across domain and returns its polylines.
func Plot(e Expr, domain Range, step float64) ([]Polyline, error) {
	var c Collector
	if err := PlotTo(&c, e, domain, step); err != nil {
		return nil, err
	}
	return c.Lines, nil
}

// PlotTo samples e across domain at a fixed step and emits polylines to r.
//
// e is simplified once without substitutions; each resulting candidate is
// sampled separately, so a two-valued Sqrt produces two curves. Samples start
// at domain.Min and advance by step while they do not exceed domain.Max. An
// undefined sample closes the open polyline, and so does an overflowed one:
// ±Inf has no place on a drawing surface.
func PlotTo(r Renderer, e Expr, domain Range, step float64) error {
	vars := FreeVariables(e)
	if len(vars) != 1 {
		return &VariableCountError{Variables: vars}
	}
	if math.IsNaN(step) || step <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidStep, step)
	}
	if !domain.valid() || math.IsInf(domain.Min, 0) || math.IsInf(domain.Max, 0) {
		return fmt.Errorf("%w: %s", ErrInvalidDomain, domain)
	}
	if domain.Min+step == domain.Min || domain.Max+step == domain.Max {
		return fmt.Errorf("%w: %v vanishes against %s", ErrInvalidStep, step, domain)
	}
	name := vars[0]

	for _, baseline := range e.Simplify(nil) {
		if err := sample(r, baseline, name, domain, step); err != nil {
			return err
		}
	}
	return nil
}

func sample(r Renderer, baseline Expr, name string, domain Range, step float64) error {
	var open Polyline
	flush := func() {
		if len(open) > 0 {
			r.Polyline(open)
		}
		open = nil
	}

	for x := domain.Min; x <= domain.Max; x += step {
		results := baseline.Simplify(Substitutions{name: C(x)})
		if len(results) != 1 {
			return &InvariantError{Variable: name, Sample: x, Results: results}
		}
		c, ok := results[0].(*Const)
		if !ok {
			return &InvariantError{Variable: name, Sample: x, Results: results}
		}
		if c.IsUndefined() || math.IsInf(c.value, 0) {
			flush()
			continue
		}
		open = append(open, Point{X: x, Y: c.value})
	}
	flush()
	return nil
}
