package montecarlo

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Run performs independent percolation trials on n×n grids and aggregates
// their thresholds.
//
// Steps:
//  1. Apply options; any recorded violation → ErrOptionViolation.
//  2. Validate n (ErrInvalidSize).
//  3. Launch trials under an errgroup limited to Workers; trial i uses the RNG
//     stream derived from (Seed, i) and stores its result in slot i.
//  4. Stop launching on context cancellation and return ctx.Err().
//  5. Aggregate with gonum/stat.
func Run(n int, opts ...Option) (*Stats, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}

	start := time.Now()
	results := make([]Trial, o.Trials)

	eg, ctx := errgroup.WithContext(o.Ctx)
	eg.SetLimit(o.Workers)
	for i := 0; i < o.Trials; i++ {
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := RunTrial(n, trialRNG(o.Seed, i))
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			results[i] = t
			o.Logger.Debug("trial done", "trial", i, "open", t.OpenSites, "threshold", t.Threshold)
			o.OnTrial(i, t)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := o.Ctx.Err(); err != nil {
		return nil, err
	}

	s := newStats(n, results)
	o.Logger.Info("percolation stats",
		"n", n,
		"trials", o.Trials,
		"workers", o.Workers,
		"mean", s.mean,
		"stddev", s.stddev,
		"elapsed", time.Since(start),
	)

	return s, nil
}

// FromThresholds rebuilds Stats from previously recorded threshold samples,
// e.g. loaded from the run store. Per-trial detail other than the threshold is
// reconstructed from n only.
func FromThresholds(n int, thresholds []float64) (*Stats, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	if len(thresholds) == 0 {
		return nil, ErrNoSamples
	}
	trials := make([]Trial, len(thresholds))
	for i, x := range thresholds {
		trials[i] = Trial{
			OpenSites: int(math.Round(x * float64(n*n))),
			Threshold: x,
		}
	}

	return newStats(n, trials), nil
}

func newStats(n int, trials []Trial) *Stats {
	x := make([]float64, len(trials))
	for i, t := range trials {
		x[i] = t.Threshold
	}
	s := &Stats{n: n, trials: trials, thresholds: x}
	if len(x) == 1 {
		// A single sample has no spread; report 0 instead of NaN.
		s.mean = x[0]
		return s
	}
	s.mean, s.stddev = stat.MeanStdDev(x, nil)

	return s
}

// Size returns the grid dimension n.
func (s *Stats) Size() int { return s.n }

// Trials returns the number of trials T.
func (s *Stats) Trials() int { return len(s.thresholds) }

// Mean returns the sample mean of the percolation threshold.
func (s *Stats) Mean() float64 { return s.mean }

// StdDev returns the sample standard deviation (n−1 denominator).
func (s *Stats) StdDev() float64 { return s.stddev }

// ConfidenceLo returns the low endpoint of the 95% confidence interval.
func (s *Stats) ConfidenceLo() float64 {
	return s.mean - s.halfWidth()
}

// ConfidenceHi returns the high endpoint of the 95% confidence interval.
func (s *Stats) ConfidenceHi() float64 {
	return s.mean + s.halfWidth()
}

// Thresholds returns a copy of the per-trial threshold samples, in trial order.
func (s *Stats) Thresholds() []float64 {
	return append([]float64(nil), s.thresholds...)
}

// Results returns a copy of the per-trial outcomes, in trial order.
func (s *Stats) Results() []Trial {
	return append([]Trial(nil), s.trials...)
}

// MeanSpanningFraction returns the average share of sites in the spanning
// cluster at the percolation point.
func (s *Stats) MeanSpanningFraction() float64 {
	x := make([]float64, len(s.trials))
	for i, t := range s.trials {
		x[i] = t.SpanningFraction
	}

	return stat.Mean(x, nil)
}

func (s *Stats) halfWidth() float64 {
	return confidence95 * s.stddev / math.Sqrt(float64(len(s.thresholds)))
}
