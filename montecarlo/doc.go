// Package montecarlo estimates the site-percolation threshold of an n×n grid
// by repeated independent trials.
//
// What:
//
//   - A trial creates a fresh percolation.Grid and opens uniformly random
//     blocked sites until the grid percolates. Its sample is the fraction of
//     open sites at that moment: NumberOfOpenSites()/n².
//   - Run performs T trials and reports the sample mean, the sample standard
//     deviation and the 95% confidence interval mean ± 1.96·s/√T.
//
// How:
//
//   - Sites are drawn without replacement: each trial shuffles the n² site
//     identities (Fisher–Yates) and opens them in that order, so no draw is
//     wasted on an already-open site.
//   - The driver talks to the grid only through New, Open, IsOpen,
//     NumberOfOpenSites and Percolates.
//   - Every trial gets its own deterministic RNG stream derived from the base
//     seed and the trial index (SplitMix64 mixing). Results are therefore
//     identical for a given seed regardless of the number of workers.
//   - Trials are sharded across worker goroutines; each trial writes only its
//     own slot of the result slice, so no locking is needed.
//
// Options (functional):
//
//	WithTrials(T), WithSeed(s), WithWorkers(w), WithContext(ctx),
//	WithLogger(l), WithOnTrial(fn)
//
// Errors:
//
//   - ErrInvalidSize:     n ≤ 0.
//   - ErrInvalidTrials:   T ≤ 0.
//   - ErrOptionViolation: an option received an invalid value.
//   - ctx.Err():          the context was cancelled before all trials finished.
//
// Complexity: O(T·n²·α(n²)) time; O(T + w·n²) memory for w workers.
package montecarlo
