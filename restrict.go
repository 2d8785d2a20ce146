package symplot

import (
	"math"
	"strconv"
)

// ============================================================
// Range — closed numeric interval
// ============================================================

// Range is an inclusive interval with Min <= Max.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// NewRange orders its bounds.
func NewRange(a, b float64) Range {
	if b < a {
		a, b = b, a
	}
	return Range{Min: a, Max: b}
}

// Contains reports whether v lies in [Min, Max]. Comparisons are exact; NaN
// is never contained.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

func (r Range) Width() float64 { return r.Max - r.Min }

func (r Range) String() string {
	return "[" + formatFloat(r.Min) + ", " + formatFloat(r.Max) + "]"
}

func (r Range) valid() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) && r.Min <= r.Max
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// ============================================================
// RestrictTo — domain restriction
// ============================================================

// RestrictTo passes constant values inside its range through and turns the
// rest into undefined.
type RestrictTo struct {
	arg Expr
	rng Range
}

// RestrictToOf restricts arg to the interval between a and b, in either order.
func RestrictToOf(arg Expr, a, b float64) *RestrictTo {
	return &RestrictTo{arg: arg, rng: NewRange(a, b)}
}

func (r *RestrictTo) Arg() Expr                      { return r.arg }
func (r *RestrictTo) Range() Range                   { return r.rng }
func (r *RestrictTo) Variables() map[string]struct{} { return r.arg.Variables() }

func (r *RestrictTo) Simplify(subs Substitutions) []Expr {
	candidates := r.arg.Simplify(subs)
	out := make([]Expr, 0, len(candidates))
	for _, cand := range candidates {
		c, ok := cand.(*Const)
		switch {
		case !ok:
			out = append(out, &RestrictTo{arg: cand, rng: r.rng})
		case r.rng.Contains(c.value):
			out = append(out, c)
		default:
			out = append(out, Undefined())
		}
	}
	return out
}

func (r *RestrictTo) String() string {
	return "restrict(" + r.arg.String() + ", " + r.rng.String() + ")"
}

// LaTeX renders the restricted expression alone; Equation.LaTeX lifts the
// bounds into a trailing condition.
func (r *RestrictTo) LaTeX() string { return r.arg.LaTeX() }

func (r *RestrictTo) Equal(other Expr) bool {
	o, ok := other.(*RestrictTo)
	return ok && r.rng == o.rng && r.arg.Equal(o.arg)
}

func (r *RestrictTo) exprType() string { return "restrict" }
func (r *RestrictTo) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type": "restrict",
		"arg":  r.arg.toJSON(),
		"min":  jsonNumber(r.rng.Min),
		"max":  jsonNumber(r.rng.Max),
	}
}
