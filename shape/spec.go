package shape

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/matt-g-everett/sketchtx/trace"
)

var _ trace.Drawable = (*Element)(nil)

// TransformSpec places an element on the drawing. Scale applies first, then
// rotation (degrees), then translation.
type TransformSpec struct {
	TranslateX float64 `yaml:"translateX"`
	TranslateY float64 `yaml:"translateY"`
	ScaleX     float64 `yaml:"scaleX"`
	ScaleY     float64 `yaml:"scaleY"`
	Rotate     float64 `yaml:"rotate"`
}

// Matrix returns the affine transform. Zero scales are read as 1.
func (t TransformSpec) Matrix() gg.Matrix {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return gg.Translate(t.TranslateX, t.TranslateY).
		Multiply(gg.Rotate(t.Rotate * math.Pi / 180)).
		Multiply(gg.Scale(sx, sy))
}

// Spec is the configuration form of an Element.
type Spec struct {
	ID    string `yaml:"id"`
	Shape string `yaml:"shape"`

	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`

	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	CX float64 `yaml:"cx"`
	CY float64 `yaml:"cy"`
	R  float64 `yaml:"r"`
	RX float64 `yaml:"rx"`
	RY float64 `yaml:"ry"`

	Points string `yaml:"points"`

	Transform        *TransformSpec    `yaml:"transform"`
	NonScalingStroke bool              `yaml:"nonScalingStroke"`
	Hidden           bool              `yaml:"hidden"`
	Stroke           string            `yaml:"stroke"`
	StrokeWidth      float64           `yaml:"strokeWidth"`
	Data             map[string]string `yaml:"data"`
}

// Element converts the spec. index names elements without an id.
func (s Spec) Element(index int) (*Element, error) {
	kind, err := ParseKind(s.Shape)
	if err != nil {
		return nil, err
	}

	var sh Shape
	switch kind {
	case KindLine:
		sh = Line{X1: s.X1, Y1: s.Y1, X2: s.X2, Y2: s.Y2}
	case KindRect:
		sh = Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
	case KindPolyline, KindPolygon:
		points, err := ParsePoints(s.Points)
		if err != nil {
			return nil, err
		}
		if kind == KindPolygon {
			sh = Polygon{Points: points}
		} else {
			sh = Polyline{Points: points}
		}
	case KindEllipse:
		sh = Ellipse{CX: s.CX, CY: s.CY, RX: s.RX, RY: s.RY}
	case KindCircle:
		sh = Circle{CX: s.CX, CY: s.CY, R: s.R}
	}

	id := s.ID
	if id == "" {
		id = fmt.Sprintf("%s-%d", kind, index)
	}
	e := NewElement(id, sh)
	e.Stroke = s.Stroke
	if s.StrokeWidth > 0 {
		e.Width = s.StrokeWidth
	}
	e.Hidden = s.Hidden
	e.NonScalingStroke = s.NonScalingStroke
	e.Data = s.Data
	if s.Transform != nil {
		e.SetTransform(s.Transform.Matrix())
	}
	return e, nil
}

// ParsePoints reads an SVG style point list ("x,y x,y ..."). Tokens without
// a comma are skipped.
func ParsePoints(raw string) ([]gg.Point, error) {
	var points []gg.Point
	for _, token := range strings.Fields(raw) {
		xs, ys, ok := strings.Cut(token, ",")
		if !ok {
			continue
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("shape: bad point %q: %w", token, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("shape: bad point %q: %w", token, err)
		}
		points = append(points, gg.Pt(x, y))
	}
	return points, nil
}

// Elements converts a list of specs. Ids, given or generated, must be
// unique.
func Elements(specs []Spec) ([]*Element, error) {
	out := make([]*Element, 0, len(specs))
	seen := make(map[string]int, len(specs))
	for i, s := range specs {
		e, err := s.Element(i)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if j, ok := seen[e.ID()]; ok {
			return nil, fmt.Errorf("element %d: id %q already used by element %d", i, e.ID(), j)
		}
		seen[e.ID()] = i
		out = append(out, e)
	}
	return out, nil
}

// Drawables adapts elements for the planner.
func Drawables(elements []*Element) []trace.Drawable {
	out := make([]trace.Drawable, len(elements))
	for i, e := range elements {
		out[i] = e
	}
	return out
}
