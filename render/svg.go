package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/njchilds90/symplot"
)

// SVG collects polylines and writes them as an SVG document. It implements
// symplot.Renderer; world points are mapped through the viewport.
type SVG struct {
	Viewport Viewport
	Stroke   string
	Width    float64

	elements []string
}

func NewSVG(v Viewport) *SVG {
	return &SVG{Viewport: v, Stroke: "#2d70b3", Width: 2}
}

// Polyline adds one <polyline> element.
func (s *SVG) Polyline(line symplot.Polyline) {
	pts := make([]string, len(line))
	for i, p := range line {
		sp := s.Viewport.ToScreen(p)
		pts[i] = num(sp.X) + "," + num(sp.Y)
	}
	s.elements = append(s.elements, fmt.Sprintf(
		`<polyline points="%s" fill="none" stroke="%s" stroke-width="%s"/>`,
		strings.Join(pts, " "), s.Stroke, num(s.Width),
	))
}

// Marker adds a circle at a world point, used for control points.
func (s *SVG) Marker(p symplot.Point, radius float64) {
	sp := s.Viewport.ToScreen(p)
	s.elements = append(s.elements, fmt.Sprintf(
		`<circle cx="%s" cy="%s" r="%s" fill="%s"/>`, num(sp.X), num(sp.Y), num(radius), s.Stroke,
	))
}

// Len returns the number of elements drawn so far.
func (s *SVG) Len() int { return len(s.elements) }

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(s.Viewport.Width), num(s.Viewport.Height), num(s.Viewport.Width), num(s.Viewport.Height))
	for _, el := range s.elements {
		b.WriteString("  ")
		b.WriteString(el)
		b.WriteString("\n")
	}
	b.WriteString("</svg>\n")
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
