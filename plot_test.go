package symplot_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/njchilds90/symplot"
)

// PlotSuite groups sampler tests.
type PlotSuite struct {
	suite.Suite
	x symplot.Expr
}

func (s *PlotSuite) SetupTest() {
	s.x = symplot.V("x")
}

// TestSemicircles: ±sqrt(4 - x²) over [-3,3] => upper and lower arcs.
func (s *PlotSuite) TestSemicircles() {
	e := symplot.SqrtOf(symplot.Subtract(symplot.C(4), symplot.Multiply(s.x, s.x)))
	lines, err := symplot.Plot(e, symplot.NewRange(-3, 3), 0.1)
	require.NoError(s.T(), err)
	require.Len(s.T(), lines, 2, "one polyline per root branch")

	for i, line := range lines {
		require.Len(s.T(), line, 40)
		for _, p := range line {
			require.LessOrEqual(s.T(), math.Abs(p.X), 2.0, "no samples outside the circle")
			require.InDelta(s.T(), 4.0, p.X*p.X+p.Y*p.Y, 1e-9, "points lie on the circle")
			if i == 0 {
				require.GreaterOrEqual(s.T(), p.Y, 0.0, "first branch is the principal root")
			} else {
				require.LessOrEqual(s.T(), p.Y, 0.0)
			}
		}
	}
}

// TestSemicirclesSampledAtZero: x*x is a / (1/b), so a sample landing exactly
// on x=0 is undefined and splits each arc in two.
func (s *PlotSuite) TestSemicirclesSampledAtZero() {
	e := symplot.SqrtOf(symplot.Subtract(symplot.C(4), symplot.Multiply(s.x, s.x)))
	lines, err := symplot.Plot(e, symplot.NewRange(-3, 3), 0.25)
	require.NoError(s.T(), err)
	require.Len(s.T(), lines, 4, "two runs per root branch")

	for i, line := range lines {
		require.Len(s.T(), line, 8)
		if i%2 == 0 {
			require.Equal(s.T(), -2.0, line[0].X)
			require.Equal(s.T(), -0.25, line[len(line)-1].X)
		} else {
			require.Equal(s.T(), 0.25, line[0].X)
			require.Equal(s.T(), 2.0, line[len(line)-1].X)
		}
	}
	require.True(s.T(), math.IsNaN(symplot.Evaluate(symplot.Multiply(s.x, s.x), "x", 0)[0]))
}

// TestOverflowBreaksPolyline: ±Inf samples are not drawn.
func (s *PlotSuite) TestOverflowBreaksPolyline() {
	lines, err := symplot.Plot(symplot.DivOf(symplot.C(1e308), s.x), symplot.NewRange(-1, 1), 0.25)
	require.NoError(s.T(), err)
	require.Len(s.T(), lines, 2)
	require.Equal(s.T(), []float64{-1, -0.75}, []float64{lines[0][0].X, lines[0][1].X})
	require.Equal(s.T(), []float64{0.75, 1}, []float64{lines[1][0].X, lines[1][1].X})
	for _, line := range lines {
		require.Len(s.T(), line, 2)
		for _, p := range line {
			require.False(s.T(), math.IsInf(p.Y, 0), "sample %v", p)
		}
	}
}

// TestReciprocalBreaksAtZero: 1/x sampled exactly at 0 => two runs, no bridge.
func (s *PlotSuite) TestReciprocalBreaksAtZero() {
	lines, err := symplot.Plot(symplot.DivOf(symplot.C(1), s.x), symplot.NewRange(-1, 1), 0.25)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []symplot.Polyline{
		{{X: -1, Y: -1}, {X: -0.75, Y: -1.0 / 0.75}, {X: -0.5, Y: -2}, {X: -0.25, Y: -4}},
		{{X: 0.25, Y: 4}, {X: 0.5, Y: 2}, {X: 0.75, Y: 1.0 / 0.75}, {X: 1, Y: 1}},
	}, lines)
}

// TestRestrictedLine: a restricted identity plots only inside its range.
func (s *PlotSuite) TestRestrictedLine() {
	lines, err := symplot.Plot(symplot.RestrictToOf(s.x, 2, 1), symplot.NewRange(0, 3), 0.5)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []symplot.Polyline{{{X: 1, Y: 1}, {X: 1.5, Y: 1.5}, {X: 2, Y: 2}}}, lines)
}

// TestNothingDefined: an everywhere-undefined curve emits no polylines.
func (s *PlotSuite) TestNothingDefined() {
	e := symplot.PrincipalSqrtOf(symplot.Subtract(symplot.C(-1), symplot.Multiply(s.x, s.x)))
	lines, err := symplot.Plot(e, symplot.NewRange(-1, 1), 0.1)
	require.NoError(s.T(), err)
	require.Empty(s.T(), lines)
}

// TestDegenerateDomain: min == max samples once.
func (s *PlotSuite) TestDegenerateDomain() {
	lines, err := symplot.Plot(symplot.AddOf(s.x, symplot.C(1)), symplot.NewRange(2, 2), 1)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []symplot.Polyline{{{X: 2, Y: 3}}}, lines)
}

// TestVariableCount: zero or two free variables fail fast.
func (s *PlotSuite) TestVariableCount() {
	for _, e := range []symplot.Expr{
		symplot.C(1),
		symplot.AddOf(s.x, symplot.V("y")),
	} {
		_, err := symplot.Plot(e, symplot.NewRange(0, 1), 0.1)
		require.Error(s.T(), err)
		require.True(s.T(), errors.Is(err, symplot.ErrVariableCount))
		var vce *symplot.VariableCountError
		require.True(s.T(), errors.As(err, &vce), "error must be VariableCountError")
		require.Equal(s.T(), symplot.FreeVariables(e), vce.Variables)
	}
}

// TestInvalidStep: step must be positive and able to advance.
func (s *PlotSuite) TestInvalidStep() {
	for _, step := range []float64{0, -1, math.NaN(), 1e-300} {
		_, err := symplot.Plot(s.x, symplot.NewRange(1, 2), step)
		require.True(s.T(), errors.Is(err, symplot.ErrInvalidStep), "step %v", step)
	}
}

func (s *PlotSuite) TestInvalidDomain() {
	_, err := symplot.Plot(s.x, symplot.Range{Min: math.NaN(), Max: 1}, 0.1)
	require.True(s.T(), errors.Is(err, symplot.ErrInvalidDomain))
	_, err = symplot.Plot(s.x, symplot.NewRange(0, math.Inf(1)), 0.1)
	require.True(s.T(), errors.Is(err, symplot.ErrInvalidDomain))

	// Inf+step == Inf must not be reported as a vanishing step.
	_, err = symplot.Plot(s.x, symplot.NewRange(0, math.Inf(1)), 1)
	require.True(s.T(), errors.Is(err, symplot.ErrInvalidDomain))
	require.False(s.T(), errors.Is(err, symplot.ErrInvalidStep))
}

// TestRendererReceivesNonEmpty: rendering callback never sees empty runs.
func (s *PlotSuite) TestRendererReceivesNonEmpty() {
	calls := 0
	r := symplot.RendererFunc(func(line symplot.Polyline) {
		calls++
		require.NotEmpty(s.T(), line)
	})
	e := symplot.DivOf(symplot.C(1), symplot.Subtract(s.x, symplot.C(0.5)))
	require.NoError(s.T(), symplot.PlotTo(r, e, symplot.NewRange(0, 1), 0.25))
	require.Equal(s.T(), 2, calls)
}

func TestPlotSuite(t *testing.T) {
	suite.Run(t, new(PlotSuite))
}
