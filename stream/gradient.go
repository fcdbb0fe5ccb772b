package stream

import (
	"github.com/lucasb-eyer/go-colorful"
)

// GradientStop pins a hue to a position between 0 and 1.
type GradientStop struct {
	Hue float64 `yaml:"hue"`
	Pos float64 `yaml:"pos"`
}

// GradientTable stores a look-up table of colours interpolated by hue.
type GradientTable []GradientStop

// GetColor gets a colour at the specified point on the look-up table.
func (g GradientTable) GetColor(t, c, l float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Hcl(0, 0, l)
	}
	if t <= g[0].Pos {
		return colorful.Hcl(g[0].Hue, c, l)
	}
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			if c2.Pos == c1.Pos {
				return colorful.Hcl(c2.Hue, c, l)
			}
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return colorful.Hcl(h, c, l)
		}
	}

	// Past the last stop.
	return colorful.Hcl(g[len(g)-1].Hue, c, l)
}
