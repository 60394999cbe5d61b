// Package percolate estimates the site percolation threshold of an n-by-n
// grid by Monte Carlo simulation.
//
// What is in the box?
//
//	unionfind/     weighted quick-union disjoint set (union by size, path halving)
//	percolation/   the incremental Grid: Open, IsOpen, IsFull, Percolates
//	cluster/       component labelling of an open-site mask, spanning clusters
//	montecarlo/    seeded parallel trials, mean / stddev / 95% confidence interval
//	cmd/percolate  CLI: stats, visualize, history, version
//
// A Grid starts fully blocked. Sites open one at a time; the system
// percolates once an open path joins the top row to the bottom row. Two
// union-find forests back the Grid: one with a virtual bottom answers
// Percolates, one without answers IsFull, so a bottom-connected cluster
// never makes unrelated bottom sites look full.
//
// Quick ASCII example (n = 3, '~' full, '.' open, '#' blocked):
//
//	~##
//	~#.
//	~#.
//
// The left column percolates. Site (3,3) touches the bottom row but is
// not full.
//
// Typical use:
//
//	s, err := montecarlo.Run(200, montecarlo.WithTrials(100), montecarlo.WithSeed(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(s.Mean(), s.StdDev(), s.ConfidenceLo(), s.ConfidenceHi())
//
// For large n the mean approaches p* ≈ 0.5927.
package percolate
