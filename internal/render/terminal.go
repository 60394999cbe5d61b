package render

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/percolate/internal/logging"
	"github.com/katalvlaran/percolate/percolation"
)

// Palette holds the cell styles for each site state.
type Palette struct {
	Blocked tcell.Style
	Open    tcell.Style
	Full    tcell.Style
	Status  tcell.Style
}

// DefaultPalette draws blocked sites black, open sites white and full sites blue.
func DefaultPalette() Palette {
	return Palette{
		Blocked: tcell.StyleDefault.Background(tcell.ColorBlack),
		Open:    tcell.StyleDefault.Background(tcell.ColorWhite),
		Full:    tcell.StyleDefault.Background(tcell.NewRGBColor(64, 128, 255)),
		Status:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
	}
}

// Terminal draws percolation grids onto a tcell screen.
// Each site occupies two columns so cells look roughly square.
type Terminal struct {
	screen  tcell.Screen
	palette Palette
}

// NewTerminal wraps an initialised screen.
func NewTerminal(screen tcell.Screen, palette Palette) *Terminal {
	return &Terminal{screen: screen, palette: palette}
}

// Draw renders g and a status line beneath it, clipped to the screen.
func (t *Terminal) Draw(g *percolation.Grid, status string) error {
	t.screen.Clear()
	w, h := t.screen.Size()
	n := g.Size()

	for r := 1; r <= n && r-1 < h; r++ {
		for c := 1; c <= n && 2*(c-1) < w; c++ {
			style, err := t.siteStyle(g, r, c)
			if err != nil {
				return err
			}
			x := 2 * (c - 1)
			t.screen.SetContent(x, r-1, ' ', nil, style)
			t.screen.SetContent(x+1, r-1, ' ', nil, style)
		}
	}

	if n < h {
		for i, ch := range []rune(status) {
			if i >= w {
				break
			}
			t.screen.SetContent(i, n, ch, nil, t.palette.Status)
		}
	}
	t.screen.Show()

	return nil
}

func (t *Terminal) siteStyle(g *percolation.Grid, row, col int) (tcell.Style, error) {
	full, err := g.IsFull(row, col)
	if err != nil {
		return t.palette.Blocked, err
	}
	if full {
		return t.palette.Full, nil
	}
	open, err := g.IsOpen(row, col)
	if err != nil {
		return t.palette.Blocked, err
	}
	if open {
		return t.palette.Open, nil
	}

	return t.palette.Blocked, nil
}

// Animate opens the sites of order (flat ids, row-major) one by one, redrawing
// after each open, until g percolates or order is exhausted. It waits delay
// between frames and stops early when ctx is cancelled.
// Returns the number of Open calls made.
func (t *Terminal) Animate(ctx context.Context, g *percolation.Grid, order []int, delay time.Duration, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	n := g.Size()
	steps := 0
	for _, idx := range order {
		if g.Percolates() {
			break
		}
		row, col, err := g.Site(idx)
		if err != nil {
			return steps, err
		}
		if err := g.Open(row, col); err != nil {
			return steps, err
		}
		steps++
		logger.Log(ctx, logging.LevelTrace, "open", "row", row, "col", col, "open_sites", g.NumberOfOpenSites())

		if err := t.Draw(g, statusLine(g, n)); err != nil {
			return steps, err
		}
		if delay > 0 {
			select {
			case <-ctx.Done():
				return steps, ctx.Err()
			case <-time.After(delay):
			}
		} else if err := ctx.Err(); err != nil {
			return steps, err
		}
	}

	return steps, nil
}

func statusLine(g *percolation.Grid, n int) string {
	frac := float64(g.NumberOfOpenSites()) / float64(n*n)
	state := "does not percolate"
	if g.Percolates() {
		state = "percolates"
	}

	return fmt.Sprintf("%d×%d  open %d (%.4f)  %s", n, n, g.NumberOfOpenSites(), frac, state)
}
