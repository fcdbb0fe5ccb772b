package stream

import (
	"image"
	"io"
	"sort"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/sketchtx/shape"
	"github.com/matt-g-everett/sketchtx/trace"
)

// CanvasOptions size and colour a Canvas.
type CanvasOptions struct {
	Width, Height int
	Background    colorful.Color
	// Pen is the stroke colour at the start of a segment. Strokes blend
	// towards their element's colour, or walk Gradient when it is set.
	Pen       colorful.Color
	LineWidth float64
	// DashGap extends the hidden part of the dash beyond the stroke.
	DashGap   float64
	Gradient  GradientTable
	Chroma    float64
	Luminance float64
}

type canvasStroke struct {
	index    int
	element  *shape.Element
	colour   colorful.Color
	length   float64
	progress float64
}

// Canvas is a trace.Sink that rasterises the drawing with gg. Each element
// is stroked with a dash as long as the segment and the dash offset hides
// the part that is not drawn yet.
type Canvas struct {
	opts     CanvasOptions
	elements map[string]*shape.Element
	strokes  map[string]*canvasStroke
	ctx      *gg.Context
	dirty    bool
}

var (
	_ trace.Sink    = (*Canvas)(nil)
	_ trace.Flusher = (*Canvas)(nil)
)

// NewCanvas creates a Canvas for elements.
func NewCanvas(elements []*shape.Element, opts CanvasOptions) *Canvas {
	c := new(Canvas)
	c.opts = opts
	c.elements = make(map[string]*shape.Element, len(elements))
	for _, e := range elements {
		c.elements[e.ID()] = e
	}
	c.strokes = make(map[string]*canvasStroke)
	c.ctx = gg.NewContext(opts.Width, opts.Height)
	c.dirty = true
	return c
}

// Prepare implements trace.Sink.
func (c *Canvas) Prepare(s trace.Segment) {
	e, ok := c.elements[s.ID]
	if !ok {
		trace.Logger().Warn("stream: no element for segment", "id", s.ID)
		return
	}
	colour := c.opts.Pen
	if e.Stroke != "" {
		var err error
		if colour, err = colorful.Hex(e.Stroke); err != nil {
			trace.Logger().Warn("stream: bad stroke colour", "id", s.ID, "stroke", e.Stroke)
			colour = c.opts.Pen
		}
	}
	c.strokes[s.ID] = &canvasStroke{
		index:    s.Index,
		element:  e,
		colour:   colour,
		length:   s.Length,
		progress: s.Progress,
	}
}

// Draw implements trace.Sink.
func (c *Canvas) Draw(s trace.Segment) {
	if st, ok := c.strokes[s.ID]; ok {
		st.progress = s.Progress
	}
}

// Clear implements trace.Sink.
func (c *Canvas) Clear(s trace.Segment) {
	delete(c.strokes, s.ID)
}

// Flush implements trace.Flusher. Rendering waits until the image is asked
// for.
func (c *Canvas) Flush() {
	c.dirty = true
}

// Progress returns the last progress drawn for id.
func (c *Canvas) Progress(id string) (float64, bool) {
	st, ok := c.strokes[id]
	if !ok {
		return 0, false
	}
	return st.progress, true
}

// Image renders the drawing if needed and returns it.
func (c *Canvas) Image() (image.Image, error) {
	if err := c.render(); err != nil {
		return nil, err
	}
	return c.ctx.Image(), nil
}

// EncodePNG renders the drawing if needed and writes it as a PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := c.render(); err != nil {
		return err
	}
	return c.ctx.EncodePNG(w)
}

// StrokeColor is the colour of a stroke at progress p.
func (c *Canvas) StrokeColor(target colorful.Color, p float64) colorful.Color {
	if len(c.opts.Gradient) > 0 {
		return c.opts.Gradient.GetColor(p, c.opts.Chroma, c.opts.Luminance).Clamped()
	}
	return c.opts.Pen.BlendHcl(target, p).Clamped()
}

func (c *Canvas) render() error {
	if !c.dirty {
		return nil
	}
	c.ctx.ClearWithColor(gg.FromColor(c.opts.Background))

	ordered := make([]*canvasStroke, 0, len(c.strokes))
	for _, st := range c.strokes {
		ordered = append(ordered, st)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].index < ordered[j].index
	})

	for _, st := range ordered {
		if st.progress <= 0 || !st.element.Visible() {
			continue
		}
		if err := c.stroke(st); err != nil {
			return err
		}
	}
	c.dirty = false
	return nil
}

// dash returns the dash pattern [length, length+gap] and the offset that
// hides all but progress of it, in drawing units.
func (c *Canvas) dash(st *canvasStroke) (on, off, offset float64) {
	// Dashes of scale-sensitive segments are already measured on screen;
	// the others follow the element's transform.
	unit := 1.0
	if !st.element.ScaleSensitive() {
		unit = st.element.Scale()
	}
	length := st.length * unit
	return length, length + c.opts.DashGap*unit, length * (1 - st.progress)
}

func (c *Canvas) stroke(st *canvasStroke) error {
	e := st.element
	c.ctx.SetColor(c.StrokeColor(st.colour, st.progress))
	c.ctx.SetLineWidth(e.Width * c.opts.LineWidth)

	if st.progress >= 1 {
		c.ctx.ClearDash()
	} else {
		on, off, offset := c.dash(st)
		c.ctx.SetDash(on, off)
		c.ctx.SetDashOffset(offset)
	}

	for _, el := range e.Rendered().Elements() {
		switch v := el.(type) {
		case gg.MoveTo:
			c.ctx.MoveTo(v.Point.X, v.Point.Y)
		case gg.LineTo:
			c.ctx.LineTo(v.Point.X, v.Point.Y)
		case gg.QuadTo:
			c.ctx.QuadraticTo(v.Control.X, v.Control.Y, v.Point.X, v.Point.Y)
		case gg.CubicTo:
			c.ctx.CubicTo(v.Control1.X, v.Control1.Y, v.Control2.X, v.Control2.Y, v.Point.X, v.Point.Y)
		case gg.Close:
			c.ctx.ClosePath()
		}
	}
	return c.ctx.Stroke()
}
