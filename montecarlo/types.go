package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/katalvlaran/percolate/percolation"
)

// DefaultTrials is the trial count used when WithTrials is not supplied.
const DefaultTrials = 100

// confidence95 is the two-sided 95% normal quantile.
const confidence95 = 1.96

// Sentinel errors for Monte Carlo runs.
var (
	// ErrInvalidSize is returned when the grid size n ≤ 0. It is the same value as
	// percolation.ErrInvalidSize so callers can match either.
	ErrInvalidSize = percolation.ErrInvalidSize

	// ErrInvalidTrials is returned when the trial count is not positive.
	ErrInvalidTrials = errors.New("montecarlo: trial count must be positive")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("montecarlo: invalid option supplied")

	// ErrNoSamples is returned by FromThresholds when given no samples.
	ErrNoSamples = errors.New("montecarlo: no samples")
)

// Option configures Run via functional arguments.
// Invalid values are recorded and surfaced by Run as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and hooks for a Monte Carlo run.
type Options struct {
	// Trials is the number of independent trials T.
	Trials int

	// Seed selects the base RNG seed; 0 means the package default seed.
	Seed int64

	// Workers bounds the number of trials running concurrently.
	Workers int

	// Ctx allows cancellation between trials.
	Ctx context.Context

	// Logger receives a debug record per trial and an info summary.
	Logger *slog.Logger

	// OnTrial is called after each trial completes. It may be invoked
	// concurrently from several workers.
	OnTrial func(index int, t Trial)

	err error
}

// DefaultOptions returns Options with:
//   - Trials = DefaultTrials
//   - Seed = 0 (package default seed)
//   - Workers = GOMAXPROCS
//   - context.Background(), a discarding logger and a no-op OnTrial.
func DefaultOptions() Options {
	return Options{
		Trials:  DefaultTrials,
		Workers: runtime.GOMAXPROCS(0),
		Ctx:     context.Background(),
		Logger:  slog.New(slog.DiscardHandler),
		OnTrial: func(int, Trial) {},
	}
}

// WithTrials sets the number of trials. t ≤ 0 is a violation that also
// matches ErrInvalidTrials.
func WithTrials(t int) Option {
	return func(o *Options) {
		if t <= 0 {
			o.err = fmt.Errorf("%w: %w (%d)", ErrOptionViolation, ErrInvalidTrials, t)
			return
		}
		o.Trials = t
	}
}

// WithSeed sets the base seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithWorkers bounds concurrency.
//
//	w > 0:  at most w trials in flight
//	w == 0: GOMAXPROCS
//	w < 0:  invalid option → ErrOptionViolation
func WithWorkers(w int) Option {
	return func(o *Options) {
		switch {
		case w < 0:
			o.err = fmt.Errorf("%w: Workers cannot be negative (%d)", ErrOptionViolation, w)
		case w == 0:
			o.Workers = runtime.GOMAXPROCS(0)
		default:
			o.Workers = w
		}
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger routes run logging to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnTrial registers a callback run after every trial.
func WithOnTrial(fn func(index int, t Trial)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnTrial = fn
		}
	}
}

// Trial is the outcome of a single percolation experiment.
type Trial struct {
	// OpenSites is NumberOfOpenSites() at the moment the grid first percolated.
	OpenSites int
	// Threshold is OpenSites / n².
	Threshold float64
	// SpanningFraction is the share of all n² sites that belong to a
	// top-to-bottom spanning cluster at that moment.
	SpanningFraction float64
}

// Stats aggregates T trials on an n×n grid.
type Stats struct {
	n          int
	trials     []Trial
	thresholds []float64
	mean       float64
	stddev     float64
}
