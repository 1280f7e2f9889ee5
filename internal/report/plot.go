package report

import (
	"fmt"
	"image/color"

	"github.com/banshee-data/flatland/internal/fsutil"
	"github.com/banshee-data/flatland/internal/shadow"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// MaxPlottedShadows caps the individual shadows drawn in a plot. The merged
// spans are always drawn in full.
const MaxPlottedShadows = 2000

var (
	shadowColor = color.RGBA{R: 0x31, G: 0x68, B: 0x8e, A: 0xff}
	unionColor  = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// WritePlot renders a PNG with one horizontal bar per shadow (y = 1..n, in
// input order) and the merged spans along y = 0.
func WritePlot(fsys fsutil.FileSystem, path string, shadows, merged []shadow.Interval) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Shadow coverage (%d shadows, %d spans)", len(shadows), len(merged))
	p.X.Label.Text = "ground position"
	p.Y.Label.Text = "obstacle"

	drawn := shadows
	if len(drawn) > MaxPlottedShadows {
		drawn = drawn[:MaxPlottedShadows]
		p.Title.Text += fmt.Sprintf(" - first %d shown", MaxPlottedShadows)
	}

	for i, iv := range drawn {
		line, err := spanLine(iv, float64(i+1), shadowColor, 1)
		if err != nil {
			return err
		}
		p.Add(line)
		if i == 0 {
			p.Legend.Add("shadow", line)
		}
	}

	for i, iv := range merged {
		line, err := spanLine(iv, 0, unionColor, 3)
		if err != nil {
			return err
		}
		p.Add(line)
		if i == 0 {
			p.Legend.Add("union", line)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	wt, err := p.WriterTo(14*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}

	w, err := fsutil.CreateAll(fsys, path)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("failed to write plot %s: %w", path, err)
	}
	return w.Close()
}

func spanLine(iv shadow.Interval, y float64, c color.Color, width float64) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: iv.Left, Y: y}, {X: iv.Right, Y: y}})
	if err != nil {
		return nil, fmt.Errorf("failed to build line for %v: %w", iv, err)
	}
	line.Color = c
	line.Width = vg.Points(width)
	return line, nil
}
