// Package symplot provides the symbolic expression engine behind a 2D shape
// plotter.
//
// Design goals:
//   - Immutable expression trees built bottom-up with smart constructors
//   - Multi-valued simplification: every Simplify returns one or more candidates
//   - "Undefined" as a first-class constant, never an error
//   - A sampler that turns expressions into polylines, breaking at undefined points
//   - LaTeX and JSON output for export to graphing calculators and agent tools
package symplot

import (
	"math"
	"sort"
	"strconv"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is a node in an expression tree. The set of implementations is closed:
// *Var, *Const, *Add, *Div, *PrincipalSqrt, *Sqrt and *RestrictTo.
type Expr interface {
	// Variables returns the free variable names reachable in the subtree.
	Variables() map[string]struct{}
	// Simplify substitutes bound variables and folds constants. The result
	// is never empty; every element is an equally valid candidate.
	Simplify(subs Substitutions) []Expr
	String() string
	LaTeX() string
	Equal(other Expr) bool
	exprType() string
	toJSON() map[string]interface{}
}

// Substitutions binds variable names to replacement expressions.
type Substitutions map[string]Expr

// ============================================================
// Var — unbound variable slot
// ============================================================

type Var struct{ name string }

func V(name string) *Var { return &Var{name: name} }

func (v *Var) Name() string { return v.name }

func (v *Var) Variables() map[string]struct{} {
	return map[string]struct{}{v.name: {}}
}

// Simplify yields the bound expression as-is, without simplifying it.
func (v *Var) Simplify(subs Substitutions) []Expr {
	if bound, ok := subs[v.name]; ok {
		return []Expr{bound}
	}
	return []Expr{v}
}

func (v *Var) String() string        { return v.name }
func (v *Var) LaTeX() string         { return v.name }
func (v *Var) Equal(other Expr) bool { o, ok := other.(*Var); return ok && o.name == v.name }
func (v *Var) exprType() string      { return "var" }
func (v *Var) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "var", "name": v.name}
}

// ============================================================
// Const — numeric value or undefined
// ============================================================

// Const holds a float64. NaN is the undefined marker.
type Const struct{ value float64 }

func C(value float64) *Const { return &Const{value: value} }

// Undefined returns the constant that marks an inadmissible result.
func Undefined() *Const { return &Const{value: math.NaN()} }

func (c *Const) Value() float64                 { return c.value }
func (c *Const) IsUndefined() bool              { return math.IsNaN(c.value) }
func (c *Const) Variables() map[string]struct{} { return map[string]struct{}{} }
func (c *Const) Simplify(Substitutions) []Expr  { return []Expr{c} }
func (c *Const) exprType() string               { return "const" }
func (c *Const) isNegative() bool               { return !c.IsUndefined() && c.value < 0 }
func (c *Const) isValue(v float64) bool         { return !c.IsUndefined() && c.value == v }
func (c *Const) negated() *Const                { return C(-c.value) }
func (c *Const) formatted() string              { return strconv.FormatFloat(c.value, 'g', -1, 64) }

func (c *Const) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "const", "value": jsonNumber(c.value)}
}

func (c *Const) Equal(other Expr) bool {
	o, ok := other.(*Const)
	if !ok {
		return false
	}
	if c.IsUndefined() || o.IsUndefined() {
		return c.IsUndefined() && o.IsUndefined()
	}
	return c.value == o.value
}

func (c *Const) String() string {
	if c.IsUndefined() {
		return "undefined"
	}
	return c.formatted()
}

func (c *Const) LaTeX() string {
	switch {
	case c.IsUndefined():
		return `\frac{0}{0}`
	case math.IsInf(c.value, 1):
		return `\infty`
	case math.IsInf(c.value, -1):
		return `-\infty`
	}
	s := c.formatted()
	if mant, exp, ok := splitExponent(s); ok {
		return mant + `\cdot10^{` + exp + `}`
	}
	return s
}

// splitExponent turns "1e-07" into ("1", "-7").
func splitExponent(s string) (mant, exp string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == 'e' {
			e, err := strconv.Atoi(s[i+1:])
			if err != nil {
				return "", "", false
			}
			return s[:i], strconv.Itoa(e), true
		}
	}
	return "", "", false
}

// ============================================================
// Add — binary sum
// ============================================================

type Add struct{ left, right Expr }

func AddOf(left, right Expr) *Add { return &Add{left: left, right: right} }

func (a *Add) Left() Expr  { return a.left }
func (a *Add) Right() Expr { return a.right }

func (a *Add) Variables() map[string]struct{} { return union(a.left, a.right) }

func (a *Add) Simplify(subs Substitutions) []Expr {
	return product(a.left, a.right, subs, func(x, y float64) float64 {
		return x + y
	}, func(l, r Expr) Expr {
		return AddOf(l, r)
	})
}

func (a *Add) String() string {
	if neg, ok := negatedOperand(a.right); ok {
		return "(" + a.left.String() + " - " + neg.String() + ")"
	}
	return "(" + a.left.String() + " + " + a.right.String() + ")"
}

func (a *Add) LaTeX() string {
	if neg, ok := negatedOperand(a.right); ok {
		return `\left(` + a.left.LaTeX() + "-" + neg.LaTeX() + `\right)`
	}
	return `\left(` + a.left.LaTeX() + "+" + a.right.LaTeX() + `\right)`
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	return ok && a.left.Equal(o.left) && a.right.Equal(o.right)
}

func (a *Add) exprType() string { return "add" }
func (a *Add) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "add", "left": a.left.toJSON(), "right": a.right.toJSON()}
}

// ============================================================
// Div — binary quotient
// ============================================================

type Div struct{ num, den Expr }

func DivOf(num, den Expr) *Div { return &Div{num: num, den: den} }

func (d *Div) Numerator() Expr   { return d.num }
func (d *Div) Denominator() Expr { return d.den }

func (d *Div) Variables() map[string]struct{} { return union(d.num, d.den) }

// Simplify folds to undefined when the divisor is the constant zero.
func (d *Div) Simplify(subs Substitutions) []Expr {
	return product(d.num, d.den, subs, func(x, y float64) float64 {
		if y == 0 {
			return math.NaN()
		}
		return x / y
	}, func(n, dd Expr) Expr {
		return DivOf(n, dd)
	})
}

func (d *Div) String() string {
	if l, r, ok := factors(d); ok {
		if r.Equal(l) {
			return powerBase(l, l.String(), false) + "^2"
		}
		return "(" + l.String() + " * " + r.String() + ")"
	}
	return "(" + d.num.String() + " / " + d.den.String() + ")"
}

func (d *Div) LaTeX() string {
	if l, r, ok := factors(d); ok {
		if r.Equal(l) {
			return powerBase(l, l.LaTeX(), true) + "^{2}"
		}
		return l.LaTeX() + `\cdot ` + r.LaTeX()
	}
	return `\frac{` + d.num.LaTeX() + "}{" + d.den.LaTeX() + "}"
}

func (d *Div) Equal(other Expr) bool {
	o, ok := other.(*Div)
	return ok && d.num.Equal(o.num) && d.den.Equal(o.den)
}

func (d *Div) exprType() string { return "div" }
func (d *Div) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "div", "num": d.num.toJSON(), "den": d.den.toJSON()}
}

// ============================================================
// Derived operators
// ============================================================

// Multiply builds a*b as a / (1/b). A zero right operand therefore
// simplifies to undefined.
func Multiply(a, b Expr) *Div { return DivOf(a, DivOf(C(1), b)) }

// Subtract builds a-b as a + b*(-1).
func Subtract(a, b Expr) *Add { return AddOf(a, Multiply(b, C(-1))) }

// Negate builds -e as e*(-1).
func Negate(e Expr) *Div { return Multiply(e, C(-1)) }

// Square builds e*e.
func Square(e Expr) *Div { return Multiply(e, e) }

// factors recognizes the a / (1/b) form built by Multiply.
func factors(d *Div) (a, b Expr, ok bool) {
	inner, ok := d.den.(*Div)
	if !ok {
		return nil, nil, false
	}
	one, ok := inner.num.(*Const)
	if !ok || !one.isValue(1) {
		return nil, nil, false
	}
	return d.num, inner.den, true
}

// powerBase parenthesizes a rendered base unless it is atomic or already
// wrapped.
func powerBase(e Expr, rendered string, latex bool) string {
	switch t := e.(type) {
	case *Var, *Add:
		return rendered
	case *Const:
		if !t.isNegative() && !t.IsUndefined() {
			return rendered
		}
	}
	if latex {
		return `\left(` + rendered + `\right)`
	}
	return "(" + rendered + ")"
}

// negatedOperand recognizes b*(-1) and negative constants on the right of a sum.
func negatedOperand(e Expr) (Expr, bool) {
	switch t := e.(type) {
	case *Const:
		if t.isNegative() {
			return t.negated(), true
		}
	case *Div:
		if l, r, ok := factors(t); ok {
			if c, ok := r.(*Const); ok && c.isValue(-1) {
				return l, true
			}
		}
		// Simplify folds 1/(-1), leaving b / -1.
		if c, ok := t.den.(*Const); ok && c.isValue(-1) {
			return t.num, true
		}
	}
	return nil, false
}

// ============================================================
// PrincipalSqrt — non-negative root
// ============================================================

type PrincipalSqrt struct{ arg Expr }

func PrincipalSqrtOf(arg Expr) *PrincipalSqrt { return &PrincipalSqrt{arg: arg} }

func (p *PrincipalSqrt) Arg() Expr                      { return p.arg }
func (p *PrincipalSqrt) Variables() map[string]struct{} { return p.arg.Variables() }

func (p *PrincipalSqrt) Simplify(subs Substitutions) []Expr {
	candidates := p.arg.Simplify(subs)
	out := make([]Expr, 0, len(candidates))
	for _, cand := range candidates {
		c, ok := cand.(*Const)
		if !ok {
			out = append(out, PrincipalSqrtOf(cand))
			continue
		}
		if c.IsUndefined() || c.value < 0 {
			out = append(out, Undefined())
			continue
		}
		out = append(out, C(math.Sqrt(c.value)))
	}
	return out
}

func (p *PrincipalSqrt) String() string { return "sqrt(" + p.arg.String() + ")" }
func (p *PrincipalSqrt) LaTeX() string  { return `\sqrt{` + p.arg.LaTeX() + "}" }
func (p *PrincipalSqrt) Equal(other Expr) bool {
	o, ok := other.(*PrincipalSqrt)
	return ok && p.arg.Equal(o.arg)
}
func (p *PrincipalSqrt) exprType() string { return "principal_sqrt" }
func (p *PrincipalSqrt) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "principal_sqrt", "arg": p.arg.toJSON()}
}

// ============================================================
// Sqrt — two-valued root
// ============================================================

// Sqrt is the only node that adds branches on its own: every principal
// candidate is followed by its negation.
type Sqrt struct{ arg Expr }

func SqrtOf(arg Expr) *Sqrt { return &Sqrt{arg: arg} }

func (s *Sqrt) Arg() Expr                      { return s.arg }
func (s *Sqrt) Variables() map[string]struct{} { return s.arg.Variables() }

func (s *Sqrt) Simplify(subs Substitutions) []Expr {
	principal := PrincipalSqrtOf(s.arg).Simplify(subs)
	out := make([]Expr, 0, 2*len(principal))
	for _, cand := range principal {
		out = append(out, cand)
		// Candidates are already bound; re-simplify without substitutions.
		out = append(out, Negate(cand).Simplify(nil)...)
	}
	return out
}

func (s *Sqrt) String() string { return "±sqrt(" + s.arg.String() + ")" }
func (s *Sqrt) LaTeX() string  { return `\pm\sqrt{` + s.arg.LaTeX() + "}" }
func (s *Sqrt) Equal(other Expr) bool {
	o, ok := other.(*Sqrt)
	return ok && s.arg.Equal(o.arg)
}
func (s *Sqrt) exprType() string { return "sqrt" }
func (s *Sqrt) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sqrt", "arg": s.arg.toJSON()}
}

// ============================================================
// Shared helpers
// ============================================================

// product simplifies both operands and combines every pair of candidates.
// Pairs of constants are folded; undefined on either side folds to undefined.
func product(left, right Expr, subs Substitutions, fold func(x, y float64) float64, rebuild func(l, r Expr) Expr) []Expr {
	ls := left.Simplify(subs)
	rs := right.Simplify(subs)
	out := make([]Expr, 0, len(ls)*len(rs))
	for _, l := range ls {
		for _, r := range rs {
			lc, lok := l.(*Const)
			rc, rok := r.(*Const)
			switch {
			case lok && rok && (lc.IsUndefined() || rc.IsUndefined()):
				out = append(out, Undefined())
			case lok && rok:
				out = append(out, C(fold(lc.value, rc.value)))
			default:
				out = append(out, rebuild(l, r))
			}
		}
	}
	return out
}

func union(a, b Expr) map[string]struct{} {
	out := a.Variables()
	for name := range b.Variables() {
		out[name] = struct{}{}
	}
	return out
}

// ============================================================
// Top-level convenience functions
// ============================================================

func Simplify(e Expr, subs Substitutions) []Expr { return e.Simplify(subs) }
func String(e Expr) string                        { return e.String() }
func LaTeX(e Expr) string                         { return e.LaTeX() }

// FreeVariables returns the sorted free variable names of e.
func FreeVariables(e Expr) []string {
	vars := e.Variables()
	out := make([]string, 0, len(vars))
	for name := range vars {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Evaluate binds name to value and returns the numeric value of every
// candidate. Candidates that do not reduce to a constant are skipped.
func Evaluate(e Expr, name string, value float64) []float64 {
	var out []float64
	for _, cand := range e.Simplify(Substitutions{name: C(value)}) {
		if c, ok := cand.(*Const); ok {
			out = append(out, c.value)
		}
	}
	return out
}
