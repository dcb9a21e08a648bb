package simplex

import (
	"log/slog"
)

// trace collects the iteration records of one solve call.
type trace struct {
	records []IterationRecord
}

func (tr *trace) record(phase, iter, entering, leaving int, tab *tableau) {
	tr.records = append(tr.records, IterationRecord{
		Phase:      phase,
		Iteration:  iter,
		Entering:   entering,
		LeavingRow: leaving,
		Basis:      append([]int(nil), tab.basis...),
		Tableau:    tab.snapshot(),
		Objective:  tab.objective(),
	})
}

// run prices tab with cost and pivots until the tableau is optimal, an
// unbounded direction shows up or the iteration cap is hit. Optimality is
// tested before each pivot only, so the cap-th pivot ends in MAX_ITER even
// when it reaches the optimum. tab must be in canonical form for its basis;
// it is modified in place.
func (s *Solver) run(tab *tableau, cost []float64, phase int, tr *trace) (Status, error) {
	log := s.logger.With(slog.Int("phase", phase))
	if err := tab.price(cost); err != nil {
		return StatusError, err
	}
	tr.record(phase, 0, -1, -1, tab)

	for iter := 1; iter <= s.maxIter; iter++ {
		col := tab.entering(s.eps)
		if col < 0 {
			return StatusOptimal, nil
		}
		row := tab.leaving(col, s.eps)
		if row < 0 {
			log.Debug("unbounded direction", slog.Int("entering", col))
			return StatusUnbounded, nil
		}

		leavingVar := tab.basis[row]
		if err := tab.pivot(row, col, s.eps); err != nil {
			return StatusError, err
		}
		tr.record(phase, iter, col, row, tab)
		log.Debug("pivot",
			slog.Int("iter", iter),
			slog.Int("entering", col),
			slog.Int("leaving", leavingVar),
			slog.Int("leaving_row", row),
			slog.Float64("objective", tab.objective()))
	}

	log.Warn("iteration limit reached", slog.Int("max_iterations", s.maxIter))
	return StatusMaxIter, nil
}
