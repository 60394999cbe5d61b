package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/percolate/internal/render"
	"github.com/katalvlaran/percolate/internal/store"
	"github.com/katalvlaran/percolate/montecarlo"
)

// statsOutput is the --json shape of a run.
type statsOutput struct {
	RunID        string  `json:"run_id,omitempty"`
	GridSize     int     `json:"grid_size"`
	Trials       int     `json:"trials"`
	Seed         int64   `json:"seed"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"stddev"`
	ConfidenceLo float64 `json:"confidence_lo"`
	ConfidenceHi float64 `json:"confidence_hi"`
	Spanning     float64 `json:"mean_spanning_fraction"`
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [n] [trials]",
		Short: "Estimate the percolation threshold over repeated trials",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Grid.Size, err = positiveArg(args, 0, "n", cfg.Grid.Size); err != nil {
				return err
			}
			if cfg.Trials.Count, err = positiveArg(args, 1, "trials", cfg.Trials.Count); err != nil {
				return err
			}
			if f := cmd.Flags().Lookup("seed"); f.Changed {
				cfg.Trials.Seed, _ = cmd.Flags().GetInt64("seed")
			}
			if f := cmd.Flags().Lookup("workers"); f.Changed {
				cfg.Trials.Workers, _ = cmd.Flags().GetInt("workers")
			}
			if f := cmd.Flags().Lookup("histogram"); f.Changed {
				cfg.Output.Histogram, _ = cmd.Flags().GetString("histogram")
			}
			if f := cmd.Flags().Lookup("bins"); f.Changed {
				cfg.Output.Bins, _ = cmd.Flags().GetInt("bins")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg, cmd.ErrOrStderr())
			s, err := montecarlo.Run(cfg.Grid.Size,
				montecarlo.WithTrials(cfg.Trials.Count),
				montecarlo.WithSeed(cfg.Trials.Seed),
				montecarlo.WithWorkers(cfg.Trials.Workers),
				montecarlo.WithContext(cmd.Context()),
				montecarlo.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			out := statsOutput{
				GridSize:     s.Size(),
				Trials:       s.Trials(),
				Seed:         cfg.Trials.Seed,
				Mean:         s.Mean(),
				StdDev:       s.StdDev(),
				ConfidenceLo: s.ConfidenceLo(),
				ConfidenceHi: s.ConfidenceHi(),
				Spanning:     s.MeanSpanningFraction(),
			}

			if cfg.Store.Path != "" {
				id, err := recordRun(cfg.Store.Path, cfg.Trials.Seed, s)
				if err != nil {
					return err
				}
				out.RunID = id
				logger.Info("run recorded", "run_id", id, "db", cfg.Store.Path)
			}

			if cfg.Output.Histogram != "" {
				err := render.SaveHistogram(cfg.Output.Histogram, render.HistogramSpec{
					Title:   fmt.Sprintf("Percolation threshold, n=%d, T=%d", s.Size(), s.Trials()),
					Samples: s.Thresholds(),
					Bins:    cfg.Output.Bins,
					Mean:    s.Mean(),
				})
				if err != nil {
					return err
				}
				logger.Info("histogram written", "path", cfg.Output.Histogram)
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printStats(cmd, out)
			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Base RNG seed (0 = default seed)")
	cmd.Flags().Int("workers", 0, "Concurrent trials (0 = GOMAXPROCS)")
	cmd.Flags().String("histogram", "", "Write a threshold histogram (PNG/SVG/PDF by extension)")
	cmd.Flags().Int("bins", 0, "Histogram bins (0 = sqrt(trials))")
	cmd.Flags().Bool("json", false, "Output as JSON")

	return cmd
}

func printStats(cmd *cobra.Command, out statsOutput) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "mean                    = %v\n", out.Mean)
	fmt.Fprintf(w, "stddev                  = %v\n", out.StdDev)
	fmt.Fprintf(w, "95%% confidence interval = [%v, %v]\n", out.ConfidenceLo, out.ConfidenceHi)
	if out.RunID != "" {
		fmt.Fprintf(w, "run id                  = %s\n", out.RunID)
	}
}

// recordRun stores s and returns the new run id.
func recordRun(path string, seed int64, s *montecarlo.Stats) (string, error) {
	st, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer st.Close()

	results := s.Results()
	trials := make([]store.TrialRecord, len(results))
	for i, t := range results {
		trials[i] = store.TrialRecord{Index: i, OpenSites: t.OpenSites, Threshold: t.Threshold}
	}
	run := &store.Run{
		GridSize:     s.Size(),
		Trials:       s.Trials(),
		Seed:         seed,
		Mean:         s.Mean(),
		StdDev:       s.StdDev(),
		ConfidenceLo: s.ConfidenceLo(),
		ConfidenceHi: s.ConfidenceHi(),
	}
	if err := st.InsertRun(run, trials); err != nil {
		return "", err
	}

	return run.RunID, nil
}
