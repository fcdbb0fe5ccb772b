package shape

import (
	"github.com/gogpu/gg"
)

// lengthAccuracy is the tolerance handed to gg when measuring curves.
const lengthAccuracy = 0.01

// Element is a stroked shape placed on the drawing. It implements
// trace.Drawable.
type Element struct {
	Name   string
	Shape  Shape
	Stroke string
	Width  float64
	Hidden bool
	Data   map[string]string

	// NonScalingStroke marks strokes whose dash pattern is measured on
	// screen, so the transform's scale has to be folded into their length.
	NonScalingStroke bool

	transform gg.Matrix
	outline   *gg.Path
}

// NewElement places s on the drawing with an identity transform.
func NewElement(name string, s Shape) *Element {
	e := new(Element)
	e.Name = name
	e.Shape = s
	e.Width = 1
	e.transform = gg.Identity()
	return e
}

// ID implements trace.Drawable.
func (e *Element) ID() string {
	return e.Name
}

// Outline returns the untransformed outline. It is built once.
func (e *Element) Outline() *gg.Path {
	if e.outline == nil {
		e.outline = e.Shape.Path()
	}
	return e.outline
}

// Rendered returns the outline in drawing coordinates.
func (e *Element) Rendered() *gg.Path {
	return e.Outline().Transform(e.transform)
}

// Transform returns the element's placement on the drawing.
func (e *Element) Transform() gg.Matrix {
	return e.transform
}

// SetTransform moves, scales or rotates the element. Scale-sensitive
// elements then need to be remeasured.
func (e *Element) SetTransform(m gg.Matrix) {
	e.transform = m
}

// Length implements trace.Drawable.
func (e *Element) Length() float64 {
	return e.Outline().Length(lengthAccuracy)
}

// Scale implements trace.Drawable. It is the ratio between the rendered and
// the geometric length, 1 for degenerate outlines.
func (e *Element) Scale() float64 {
	geometric := e.Length()
	if geometric == 0 {
		return 1
	}
	return e.Rendered().Length(lengthAccuracy) / geometric
}

// ScaleSensitive implements trace.Drawable.
func (e *Element) ScaleSensitive() bool {
	return e.NonScalingStroke
}

// Visible implements trace.Drawable.
func (e *Element) Visible() bool {
	return !e.Hidden && e.Width > 0
}

// Annotations implements trace.Drawable.
func (e *Element) Annotations() map[string]string {
	return e.Data
}
