// Package scene loads YAML scene files describing a viewport and the shapes
// drawn on it.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/symplot"
	"github.com/njchilds90/symplot/render"
	"github.com/njchilds90/symplot/shape"
)

const (
	DefaultStep   = 0.1
	DefaultWidth  = 800
	DefaultHeight = 600
	defaultExtent = 10
)

// ErrInvalid wraps every validation failure of a scene file.
var ErrInvalid = errors.New("scene: invalid")

// File is the on-disk scene shape.
type File struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Step     float64        `yaml:"step,omitempty"`
	Shapes   []ShapeConfig  `yaml:"shapes"`
}

type ViewportConfig struct {
	Width  float64        `yaml:"width,omitempty"`
	Height float64        `yaml:"height,omitempty"`
	X      *symplot.Range `yaml:"x,omitempty"`
	Y      *symplot.Range `yaml:"y,omitempty"`
}

type ShapeConfig struct {
	ID        string          `yaml:"id,omitempty"`
	Kind      shape.Kind      `yaml:"kind"`
	Dependent string          `yaml:"dependent,omitempty"`
	Points    []symplot.Point `yaml:"points"`
}

// Scene is a loaded scene: a viewport, a sampling step and an editing
// session holding the shapes.
type Scene struct {
	Viewport render.Viewport
	Step     float64
	Session  *shape.Session
}

// Load reads and parses the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scene, applies defaults and builds its shapes.
// Unknown fields are rejected.
func Parse(data []byte) (*Scene, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return f.Build()
}

// Build validates f and constructs the scene.
func (f File) Build() (*Scene, error) {
	f.applyDefaults()
	vp := render.Viewport{
		World:  render.Rect{X: *f.Viewport.X, Y: *f.Viewport.Y},
		Width:  f.Viewport.Width,
		Height: f.Viewport.Height,
	}
	if err := vp.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if math.IsNaN(f.Step) || f.Step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %g", ErrInvalid, f.Step)
	}

	sess := shape.NewSession()
	seen := make(map[uuid.UUID]bool, len(f.Shapes))
	for i, sc := range f.Shapes {
		id := uuid.Nil
		if sc.ID != "" {
			parsed, err := uuid.Parse(sc.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: shapes[%d]: id: %v", ErrInvalid, i, err)
			}
			id = parsed
		}
		sh, err := shape.New(sc.Kind, id, sc.Points, shape.Options{Dependent: sc.Dependent})
		if err != nil {
			return nil, fmt.Errorf("%w: shapes[%d]: %v", ErrInvalid, i, err)
		}
		if seen[sh.ID()] {
			return nil, fmt.Errorf("%w: shapes[%d]: duplicate id %s", ErrInvalid, i, sh.ID())
		}
		seen[sh.ID()] = true
		sess.Add(sh)
	}
	return &Scene{Viewport: vp, Step: f.Step, Session: sess}, nil
}

func (f *File) applyDefaults() {
	if f.Step == 0 {
		f.Step = DefaultStep
	}
	if f.Viewport.Width == 0 {
		f.Viewport.Width = DefaultWidth
	}
	if f.Viewport.Height == 0 {
		f.Viewport.Height = DefaultHeight
	}
	f.Viewport.X = normalized(f.Viewport.X)
	f.Viewport.Y = normalized(f.Viewport.Y)
}

// normalized returns a fresh ordered copy of r, or the default extent when r
// is nil. The caller's Range is never written through.
func normalized(r *symplot.Range) *symplot.Range {
	out := symplot.NewRange(-defaultExtent, defaultExtent)
	if r != nil {
		out = symplot.NewRange(r.Min, r.Max)
	}
	return &out
}

// File converts the scene back to its on-disk form, with explicit ids.
func (s *Scene) File() File {
	x, y := s.Viewport.World.X, s.Viewport.World.Y
	f := File{
		Viewport: ViewportConfig{Width: s.Viewport.Width, Height: s.Viewport.Height, X: &x, Y: &y},
		Step:     s.Step,
	}
	for _, sh := range s.Session.Shapes() {
		sc := ShapeConfig{ID: sh.ID().String(), Kind: sh.Kind(), Points: sh.ControlPoints()}
		if p, ok := sh.(*shape.Parabola); ok {
			sc.Dependent = p.Dependent()
		}
		f.Shapes = append(f.Shapes, sc)
	}
	return f
}

// Marshal encodes the scene as YAML.
func (s *Scene) Marshal() ([]byte, error) { return yaml.Marshal(s.File()) }

// Render draws every shape of the scene into r.
func (s *Scene) Render(r symplot.Renderer) error {
	return render.Draw(r, s.Viewport, s.Step, s.Session.Equations()...)
}
