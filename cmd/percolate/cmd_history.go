package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/percolate/internal/store"
	"github.com/katalvlaran/percolate/montecarlo"
)

var errNoDB = errors.New("no database configured: pass --db or set store.path")

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			runs, err := st.ListRuns(limit)
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				if runs == nil {
					runs = []store.Run{}
				}
				return writeJSON(cmd.OutOrStdout(), runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN ID\tN\tTRIALS\tMEAN\tSTDDEV\tCREATED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.6f\t%.6f\t%s\n",
					r.RunID, r.GridSize, r.Trials, r.Mean, r.StdDev,
					time.Unix(0, r.CreatedAtNs).UTC().Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum runs to list (0 = all)")
	cmd.Flags().Bool("json", false, "Output as JSON")

	cmd.AddCommand(newHistoryShowCmd(), newHistoryDeleteCmd())
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a recorded run, recomputed from its stored trials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.GetRun(args[0])
			if err != nil {
				return err
			}
			trials, err := st.Trials(run.RunID)
			if err != nil {
				return err
			}
			thresholds := make([]float64, len(trials))
			for i, t := range trials {
				thresholds[i] = t.Threshold
			}
			s, err := montecarlo.FromThresholds(run.GridSize, thresholds)
			if err != nil {
				return err
			}

			printStats(cmd, statsOutput{
				RunID:        run.RunID,
				GridSize:     run.GridSize,
				Trials:       s.Trials(),
				Seed:         run.Seed,
				Mean:         s.Mean(),
				StdDev:       s.StdDev(),
				ConfidenceLo: s.ConfidenceLo(),
				ConfidenceHi: s.ConfidenceHi(),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "grid                    = %d×%d, %d trials, seed %d\n",
				run.GridSize, run.GridSize, s.Trials(), run.Seed)
			return nil
		},
	}
}

func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteRun(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Store.Path == "" {
		return nil, errNoDB
	}
	return store.Open(cfg.Store.Path)
}
