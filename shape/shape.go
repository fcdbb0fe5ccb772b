// Package shape turns basic shapes into drawable outlines and measures them.
package shape

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
)

// Kind enumerates the supported shapes.
type Kind int

const (
	KindLine Kind = iota
	KindRect
	KindPolyline
	KindPolygon
	KindEllipse
	KindCircle
)

var kindNames = [...]string{
	KindLine:     "line",
	KindRect:     "rect",
	KindPolyline: "polyline",
	KindPolygon:  "polygon",
	KindEllipse:  "ellipse",
	KindCircle:   "circle",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a tag name to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("shape: unsupported shape %q", name)
}

// A Shape is one of the variants below. Each variant knows how to build its
// own outline.
type Shape interface {
	Kind() Kind
	// Path returns the outline in the shape's own coordinates. The path
	// starts where drawing should start.
	Path() *gg.Path
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
}

func (Line) Kind() Kind { return KindLine }

func (l Line) Path() *gg.Path {
	p := gg.NewPath()
	p.MoveTo(l.X1, l.Y1)
	p.LineTo(l.X2, l.Y2)
	return p
}

// Rect is an axis aligned rectangle drawn clockwise from its top left corner.
type Rect struct {
	X, Y, Width, Height float64
}

func (Rect) Kind() Kind { return KindRect }

func (r Rect) Path() *gg.Path {
	p := gg.NewPath()
	p.MoveTo(r.X, r.Y)
	p.LineTo(r.X+r.Width, r.Y)
	p.LineTo(r.X+r.Width, r.Y+r.Height)
	p.LineTo(r.X, r.Y+r.Height)
	// gg does not count the implicit closing edge in Length.
	p.LineTo(r.X, r.Y)
	p.Close()
	return p
}

// Polyline is an open chain of points.
type Polyline struct {
	Points []gg.Point
}

func (Polyline) Kind() Kind { return KindPolyline }

func (l Polyline) Path() *gg.Path {
	return chain(l.Points, false)
}

// Polygon is a closed chain of points.
type Polygon struct {
	Points []gg.Point
}

func (Polygon) Kind() Kind { return KindPolygon }

func (g Polygon) Path() *gg.Path {
	return chain(g.Points, true)
}

func chain(points []gg.Point, closed bool) *gg.Path {
	p := gg.NewPath()
	if len(points) == 0 {
		return p
	}
	p.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	if closed {
		p.LineTo(points[0].X, points[0].Y)
		p.Close()
	}
	return p
}

// Ellipse is drawn as two half arcs starting from its leftmost point.
type Ellipse struct {
	CX, CY, RX, RY float64
}

func (Ellipse) Kind() Kind { return KindEllipse }

func (e Ellipse) Path() *gg.Path {
	return arcs(e.CX, e.CY, e.RX, e.RY)
}

// Circle is drawn like an Ellipse with equal radii.
type Circle struct {
	CX, CY, R float64
}

func (Circle) Kind() Kind { return KindCircle }

func (c Circle) Path() *gg.Path {
	return arcs(c.CX, c.CY, c.R, c.R)
}

func arcs(cx, cy, rx, ry float64) *gg.Path {
	unit := gg.NewPath()
	unit.Arc(0, 0, 1, math.Pi, 2*math.Pi)
	unit.Arc(0, 0, 1, 2*math.Pi, 3*math.Pi)
	return unit.Transform(gg.Matrix{
		A: rx, B: 0, C: cx,
		D: 0, E: ry, F: cy,
	})
}
