package trace

import "fmt"

type stroke struct {
	id        string
	length    float64
	scale     float64
	sensitive bool
	hidden    bool
	attrs     map[string]string
}

func (s *stroke) ID() string                     { return s.id }
func (s *stroke) Length() float64                { return s.length }
func (s *stroke) Scale() float64                 { return s.scale }
func (s *stroke) ScaleSensitive() bool           { return s.sensitive }
func (s *stroke) Visible() bool                  { return !s.hidden }
func (s *stroke) Annotations() map[string]string { return s.attrs }

func strokes(lengths ...float64) []Drawable {
	out := make([]Drawable, len(lengths))
	for i, l := range lengths {
		out[i] = &stroke{id: fmt.Sprintf("path-%d", i), length: l, scale: 1}
	}
	return out
}

// logoLengths are the outline lengths of the six-path test drawing.
var logoLengths = []float64{229, 250, 97, 97, 97, 97}

type drawCall struct {
	ID       string
	Progress float64
}

type recordingSink struct {
	prepared []string
	draws    []drawCall
	cleared  []string
	flushes  int
}

func (r *recordingSink) Prepare(s Segment) { r.prepared = append(r.prepared, s.ID) }
func (r *recordingSink) Draw(s Segment)    { r.draws = append(r.draws, drawCall{s.ID, s.Progress}) }
func (r *recordingSink) Clear(s Segment)   { r.cleared = append(r.cleared, s.ID) }
func (r *recordingSink) Flush()            { r.flushes++ }

func delay(v float64) *float64 { return &v }
