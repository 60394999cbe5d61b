// Package render turns percolation results into pictures: a PNG histogram of
// threshold samples (gonum/plot) and a live terminal view of a grid (tcell).
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	// ErrNoSamples indicates an empty sample set.
	ErrNoSamples = errors.New("render: no samples to plot")
	// ErrInvalidBins indicates a negative bin count.
	ErrInvalidBins = errors.New("render: bin count cannot be negative")
)

// HistogramSpec describes a threshold histogram.
type HistogramSpec struct {
	Title   string
	Samples []float64
	// Bins is the number of bins; 0 picks ⌈√len(Samples)⌉.
	Bins int
	// Mean draws a dashed vertical marker when not NaN.
	Mean float64
}

// NewHistogram builds a histogram plot of hs.Samples.
func NewHistogram(hs HistogramSpec) (*plot.Plot, error) {
	if len(hs.Samples) == 0 {
		return nil, ErrNoSamples
	}
	if hs.Bins < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBins, hs.Bins)
	}
	bins := hs.Bins
	if bins == 0 {
		bins = int(math.Ceil(math.Sqrt(float64(len(hs.Samples)))))
	}

	p := plot.New()
	p.Title.Text = hs.Title
	p.X.Label.Text = "open-site fraction at percolation"
	p.Y.Label.Text = "trials"

	h, err := plotter.NewHist(plotter.Values(hs.Samples), bins)
	if err != nil {
		return nil, fmt.Errorf("build histogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 64, G: 128, B: 255, A: 255}
	p.Add(h)

	if !math.IsNaN(hs.Mean) {
		top := 0.0
		for _, b := range h.Bins {
			top = math.Max(top, b.Weight)
		}
		line, err := plotter.NewLine(plotter.XYs{{X: hs.Mean, Y: 0}, {X: hs.Mean, Y: top}})
		if err != nil {
			return nil, fmt.Errorf("build mean marker: %w", err)
		}
		line.Color = color.RGBA{R: 200, A: 255}
		line.Width = vg.Points(1.5)
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("mean %.4f", hs.Mean), line)
	}

	return p, nil
}

// SaveHistogram renders hs to path. The image format follows the file
// extension (.png, .svg, .pdf, ...). Parent directories are created.
func SaveHistogram(path string, hs HistogramSpec) error {
	p, err := NewHistogram(hs)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save histogram %s: %w", path, err)
	}

	return nil
}
