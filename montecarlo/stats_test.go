package montecarlo_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/percolate/montecarlo"
	"github.com/katalvlaran/percolate/percolation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRun_SingleSiteGrid: for n=1 every trial opens exactly one site, so the
// mean is 1 and the spread is 0 for any trial count.
func TestRun_SingleSiteGrid(t *testing.T) {
	for _, trials := range []int{1, 2, 10} {
		s, err := montecarlo.Run(1, montecarlo.WithTrials(trials))
		require.NoError(t, err)
		assert.Equal(t, 1.0, s.Mean(), "T=%d", trials)
		assert.Equal(t, 0.0, s.StdDev(), "T=%d", trials)
		assert.Equal(t, 1.0, s.ConfidenceLo(), "T=%d", trials)
		assert.Equal(t, 1.0, s.ConfidenceHi(), "T=%d", trials)
		assert.Equal(t, trials, s.Trials())
		assert.Equal(t, 1, s.Size())
	}
}

// TestRun_DeterministicAcrossWorkers checks that the worker count does not
// change any per-trial result for a fixed seed.
func TestRun_DeterministicAcrossWorkers(t *testing.T) {
	serial, err := montecarlo.Run(20, montecarlo.WithTrials(16), montecarlo.WithSeed(7), montecarlo.WithWorkers(1))
	require.NoError(t, err)
	parallel, err := montecarlo.Run(20, montecarlo.WithTrials(16), montecarlo.WithSeed(7), montecarlo.WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, serial.Results(), parallel.Results())
	assert.Equal(t, serial.Mean(), parallel.Mean())

	other, err := montecarlo.Run(20, montecarlo.WithTrials(16), montecarlo.WithSeed(8))
	require.NoError(t, err)
	assert.NotEqual(t, serial.Thresholds(), other.Thresholds(), "different seeds should give different samples")
}

// TestRun_ThresholdEstimate checks the estimate lands near the known site
// percolation threshold p* ≈ 0.5927 and the CI brackets the mean.
func TestRun_ThresholdEstimate(t *testing.T) {
	s, err := montecarlo.Run(50, montecarlo.WithTrials(60), montecarlo.WithSeed(11))
	require.NoError(t, err)

	assert.InDelta(t, 0.5927, s.Mean(), 0.03)
	assert.Greater(t, s.StdDev(), 0.0)
	assert.Less(t, s.ConfidenceLo(), s.Mean())
	assert.Greater(t, s.ConfidenceHi(), s.Mean())

	half := 1.96 * s.StdDev() / math.Sqrt(60)
	assert.InDelta(t, s.Mean()-half, s.ConfidenceLo(), 1e-12)
	assert.InDelta(t, s.Mean()+half, s.ConfidenceHi(), 1e-12)

	for _, tr := range s.Results() {
		assert.Equal(t, float64(tr.OpenSites)/2500, tr.Threshold)
		assert.Greater(t, tr.SpanningFraction, 0.0)
		assert.LessOrEqual(t, tr.SpanningFraction, tr.Threshold)
	}
	assert.Greater(t, s.MeanSpanningFraction(), 0.0)
}

// TestRun_InvalidInputs covers size, trial count and worker validation.
func TestRun_InvalidInputs(t *testing.T) {
	_, err := montecarlo.Run(0)
	assert.ErrorIs(t, err, montecarlo.ErrInvalidSize)
	assert.ErrorIs(t, err, percolation.ErrInvalidSize)

	_, err = montecarlo.Run(5, montecarlo.WithTrials(0))
	assert.ErrorIs(t, err, montecarlo.ErrInvalidTrials)
	assert.ErrorIs(t, err, montecarlo.ErrOptionViolation)

	_, err = montecarlo.Run(5, montecarlo.WithWorkers(-2))
	assert.ErrorIs(t, err, montecarlo.ErrOptionViolation)
}

// TestRun_Cancelled ensures a cancelled context aborts the run.
func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := montecarlo.Run(10, montecarlo.WithTrials(50), montecarlo.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, s)
}

// TestRun_HooksAndLogging checks OnTrial fires once per trial and the summary is logged.
func TestRun_HooksAndLogging(t *testing.T) {
	var calls atomic.Int64
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := montecarlo.Run(8,
		montecarlo.WithTrials(12),
		montecarlo.WithWorkers(3),
		montecarlo.WithLogger(logger),
		montecarlo.WithOnTrial(func(int, montecarlo.Trial) { calls.Add(1) }),
	)
	require.NoError(t, err)
	assert.EqualValues(t, 12, calls.Load())
	assert.Contains(t, buf.String(), "percolation stats")
	assert.Contains(t, buf.String(), "trial done")
}

// TestRunTrial covers the single-trial entry point.
func TestRunTrial(t *testing.T) {
	tr, err := montecarlo.RunTrial(1, nil)
	require.NoError(t, err)
	assert.Equal(t, montecarlo.Trial{OpenSites: 1, Threshold: 1, SpanningFraction: 1}, tr)

	a, err := montecarlo.RunTrial(30, montecarlo.NewRand(5))
	require.NoError(t, err)
	b, err := montecarlo.RunTrial(30, montecarlo.NewRand(5))
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed, same trial")
	assert.GreaterOrEqual(t, a.OpenSites, 30, "a spanning path needs at least n open sites")

	_, err = montecarlo.RunTrial(-1, nil)
	assert.ErrorIs(t, err, montecarlo.ErrInvalidSize)
}

// TestFromThresholds rebuilds statistics from raw samples.
func TestFromThresholds(t *testing.T) {
	s, err := montecarlo.FromThresholds(10, []float64{0.5, 0.7})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, s.Mean(), 1e-12)
	assert.InDelta(t, math.Sqrt(0.02), s.StdDev(), 1e-12)
	assert.Equal(t, []float64{0.5, 0.7}, s.Thresholds())
	assert.Equal(t, 50, s.Results()[0].OpenSites)

	_, err = montecarlo.FromThresholds(10, nil)
	assert.ErrorIs(t, err, montecarlo.ErrNoSamples)
	_, err = montecarlo.FromThresholds(0, []float64{1})
	assert.ErrorIs(t, err, montecarlo.ErrInvalidSize)
}

// TestStats_CopiesAreIsolated ensures accessors hand out copies.
func TestStats_CopiesAreIsolated(t *testing.T) {
	s, err := montecarlo.FromThresholds(4, []float64{0.25, 0.75})
	require.NoError(t, err)
	x := s.Thresholds()
	x[0] = 99
	assert.Equal(t, 0.25, s.Thresholds()[0])
}
