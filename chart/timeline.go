// Package chart plots a timeline and its timing functions.
package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/matt-g-everett/sketchtx/trace"
	"github.com/matt-g-everett/sketchtx/util"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// curveSamples is the resolution of the easing curves.
const curveSamples = 100

// Timeline plots the window of every segment as a bar from its first to its
// last frame.
func Timeline(t *trace.Timeline) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s timeline (%g frames)", t.Policy, t.FrameLength)
	p.X.Label.Text = "Frame"
	p.X.Min = 0
	p.X.Max = t.FrameLength

	names := make([]string, len(t.Segments))
	for i, s := range t.Segments {
		names[i] = s.ID
		bar, err := plotter.NewLine(plotter.XYs{
			{X: s.StartAt, Y: float64(i)},
			{X: s.StartAt + s.Duration, Y: float64(i)},
		})
		if err != nil {
			return nil, err
		}
		bar.Color = plotutil.Color(i)
		bar.Width = vg.Points(6)
		p.Add(bar)
	}
	if len(names) > 0 {
		p.NominalY(names...)
	}
	return p, nil
}

// Easing plots the timing functions of a player over normalised time.
func Easing(anim, path trace.Easing) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Timing functions"
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Progress"

	for i, curve := range []struct {
		name string
		fn   trace.Easing
	}{{"anim", anim}, {"path", path}} {
		lut := util.Sample(curve.fn, curveSamples)
		pts := make(plotter.XYs, len(lut))
		for j, v := range lut {
			pts[j] = plotter.XY{X: float64(j) / curveSamples, Y: v}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(curve.name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// WritePNG draws the timeline above the easing curves and writes the image.
func WritePNG(w io.Writer, t *trace.Timeline, anim, path trace.Easing) error {
	timeline, err := Timeline(t)
	if err != nil {
		return err
	}
	easing, err := Easing(anim, path)
	if err != nil {
		return err
	}

	plots := [][]*plot.Plot{{timeline}, {easing}}
	img := vgimg.New(10*vg.Inch, 10*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Points(10)}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		plots[j][0].Draw(canvases[j][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	_, err = png.WriteTo(w)
	return err
}

// SavePNG writes the chart of t to file.
func SavePNG(file string, t *trace.Timeline, anim, path trace.Easing) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := WritePNG(f, t, anim, path); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
