package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/percolate/internal/config"
	"github.com/katalvlaran/percolate/internal/render"
	"github.com/katalvlaran/percolate/montecarlo"
	"github.com/katalvlaran/percolate/percolation"
)

func newVisualizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visualize [n]",
		Short: "Animate one percolation trial in the terminal",
		Long: `Opens random sites of an n-by-n grid one at a time and redraws the grid
after each open: black = blocked, white = open, blue = full.
Without n the grid size comes from grid.size, shrunk to fit the terminal.
Press q or Esc to quit. Log records are written once the screen closes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			n, seed, err := visualizeParams(cmd, args, cfg)
			if err != nil {
				return err
			}
			delay, _ := cmd.Flags().GetDuration("delay")

			// The screen owns the terminal until Fini; hold log records until then.
			var logBuf bytes.Buffer
			logger := newLogger(cfg, &logBuf)
			defer func() {
				_, _ = logBuf.WriteTo(cmd.ErrOrStderr())
			}()

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}

			g, steps, err := func() (*percolation.Grid, int, error) {
				defer screen.Fini()
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				go watchQuit(screen, cancel)

				if len(args) == 0 {
					n = fitScreen(screen, n)
				}
				g, steps, err := runVisualization(ctx, screen, n, seed, delay, logger)
				if err == nil {
					// Keep the final frame up until the user quits.
					<-ctx.Done()
				}
				return g, steps, err
			}()
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			logger.Info("visualization finished",
				"n", n, "open_sites", g.NumberOfOpenSites(), "percolates", g.Percolates())
			fmt.Fprintf(cmd.OutOrStdout(), "opened %d sites, percolates: %v\n", steps, g.Percolates())
			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "RNG seed (default trials.seed; 0 = default seed)")
	cmd.Flags().Duration("delay", 20*time.Millisecond, "Delay between opens")

	return cmd
}

// visualizeParams resolves grid size and seed: config, then args and flags.
func visualizeParams(cmd *cobra.Command, args []string, cfg *config.Config) (int, int64, error) {
	n, err := positiveArg(args, 0, "n", cfg.Grid.Size)
	if err != nil {
		return 0, 0, err
	}
	seed := cfg.Trials.Seed
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		seed, _ = cmd.Flags().GetInt64("seed")
	}

	return n, seed, nil
}

// fitScreen caps n so that an n×n grid, two columns per site plus the status
// line, fits on screen.
func fitScreen(screen tcell.Screen, n int) int {
	w, h := screen.Size()
	if m := w / 2; m >= 1 && n > m {
		n = m
	}
	if m := h - 1; m >= 1 && n > m {
		n = m
	}

	return n
}

// runVisualization animates one trial on screen. It returns the grid and the
// number of Open calls made. Every open is logged at trace level.
func runVisualization(ctx context.Context, screen tcell.Screen, n int, seed int64, delay time.Duration, logger *slog.Logger) (*percolation.Grid, int, error) {
	g, err := percolation.New(n)
	if err != nil {
		return nil, 0, err
	}
	order := montecarlo.NewRand(seed).Perm(n * n)

	term := render.NewTerminal(screen, render.DefaultPalette())
	if err := term.Draw(g, "starting"); err != nil {
		return g, 0, err
	}
	steps, err := term.Animate(ctx, g, order, delay, logger)

	return g, steps, err
}

// watchQuit cancels when the user presses q, Esc or Ctrl-C.
func watchQuit(screen tcell.Screen, cancel context.CancelFunc) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
				cancel()
				return
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
