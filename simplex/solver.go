// Package simplex solves linear programs in the form built by
// model.Standardize with the two-phase tableau simplex method.
//
// Phase 1 minimizes the sum of the artificial columns to find a feasible
// basis and is skipped when the model has none. Phase 2 minimizes the real
// cost from that basis. Pivoting follows Dantzig's rule: the most negative
// reduced cost enters, the minimum ratio row leaves, ties go to the lowest
// index.
package simplex

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"q.log/lpsolve/model"
)

const (
	// DefaultMaxIterations caps the pivots of each phase.
	DefaultMaxIterations = 100
	// DefaultEpsilon is the tolerance of the optimality, unboundedness and
	// ratio tests.
	DefaultEpsilon = 1e-9
	// DefaultFeasibilityTolerance is the largest phase 1 objective accepted
	// as feasible.
	DefaultFeasibilityTolerance = 1e-9
)

// Solver holds the numeric settings of a solve. It keeps no state between
// calls and may be shared by concurrent goroutines.
type Solver struct {
	maxIter int
	eps     float64
	feasTol float64
	logger  *slog.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithMaxIterations sets the pivot cap per phase. n must be positive.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic("simplex: WithMaxIterations: n must be positive")
	}
	return func(s *Solver) { s.maxIter = n }
}

// WithEpsilon sets the pivoting tolerance. eps must be finite and
// non-negative.
func WithEpsilon(eps float64) Option {
	if eps < 0 || !finite(eps) {
		panic("simplex: WithEpsilon: eps must be finite, non-negative")
	}
	return func(s *Solver) { s.eps = eps }
}

// WithFeasibilityTolerance sets the largest phase 1 objective accepted as
// feasible.
func WithFeasibilityTolerance(tol float64) Option {
	if tol < 0 || !finite(tol) {
		panic("simplex: WithFeasibilityTolerance: tol must be finite, non-negative")
	}
	return func(s *Solver) { s.feasTol = tol }
}

// WithLogger sets the logger pivots and phase transitions are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Solver with the defaults overridden by opts.
func New(opts ...Option) *Solver {
	s := &Solver{
		maxIter: DefaultMaxIterations,
		eps:     DefaultEpsilon,
		feasTol: DefaultFeasibilityTolerance,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve solves p with the default settings.
func Solve(p *model.Problem) (*Result, error) {
	return New().Solve(p)
}

// Solve validates and standardizes p, then solves it. The error is non-nil
// only when p is malformed, in which case it wraps model.ErrInvalidProblem;
// every other outcome, failures included, is reported by the Result status.
func (s *Solver) Solve(p *model.Problem) (*Result, error) {
	mod, err := model.Standardize(p)
	if err != nil {
		return nil, err
	}
	return s.SolveModel(mod), nil
}

// SolveModel runs phase 1 when mod has artificial columns and phase 2, then
// extracts the solution.
func (s *Solver) SolveModel(mod *model.Model) *Result {
	tr := &trace{}
	tab := newTableau(mod)
	cost := mod.C.RawVector().Data

	if !mod.HasArtificial() {
		s.logger.Debug("no artificial columns, skipping phase 1")
		status, err := s.run(tab, cost, 2, tr)
		return s.finish(mod, tab, status, err, tr)
	}

	status, err := s.run(tab, mod.W.RawVector().Data, 1, tr)
	if err != nil {
		return s.failure(StatusError, fmt.Sprintf("phase 1 failed: %v", err), tr)
	}
	if status != StatusOptimal {
		return s.failure(status, fmt.Sprintf("phase 1 failed: solver finished with status: %v", status), tr)
	}
	if w := tab.objective(); w > s.feasTol {
		s.logger.Info("problem is infeasible", slog.Float64("phase1_objective", w))
		return s.failure(StatusInfeasible, "problem is infeasible (phase 1 objective > 0)", tr)
	}

	tab, err = s.driveOutArtificials(tab, mod, tr)
	if err != nil {
		return s.failure(StatusError, fmt.Sprintf("phase 1 failed: %v", err), tr)
	}
	tab = tab.dropColumns(mod.ArtificialIndexes)
	s.logger.Debug("phase 1 complete",
		slog.Int("rows", tab.m),
		slog.Int("columns", tab.n),
		slog.Any("basis", tab.basis))

	status, err = s.run(tab, without(cost, mod.ArtificialIndexes), 2, tr)
	return s.finish(mod, tab, status, err, tr)
}

// driveOutArtificials removes artificial columns from the basis of a
// feasible phase 1 tableau. Such a column sits in its row at value zero, so
// it is pivoted out onto the lowest surviving column with a non-zero entry
// in that row. A row with no such entry is a combination of the other rows
// and is dropped.
func (s *Solver) driveOutArtificials(tab *tableau, mod *model.Model, tr *trace) (*tableau, error) {
	iter := 0
	if len(tr.records) > 0 {
		iter = tr.records[len(tr.records)-1].Iteration
	}
	var redundant []int
	for r := 0; r < tab.m; r++ {
		if !mod.V[tab.basis[r]].IsArtificial() {
			continue
		}
		col := -1
		for j := 0; j < tab.n; j++ {
			if !mod.V[j].IsArtificial() && math.Abs(tab.t.At(r, j)) > s.eps {
				col = j
				break
			}
		}
		if col < 0 {
			redundant = append(redundant, r)
			continue
		}
		leaving := tab.basis[r]
		if err := tab.pivot(r, col, s.eps); err != nil {
			return nil, err
		}
		iter++
		tr.record(1, iter, col, r, tab)
		s.logger.Debug("artificial driven out of basis",
			slog.Int("row", r),
			slog.Int("leaving", leaving),
			slog.Int("entering", col))
	}
	for i := len(redundant) - 1; i >= 0; i-- {
		s.logger.Debug("dropping redundant row", slog.Int("row", redundant[i]))
		tab = tab.dropRow(redundant[i])
	}
	return tab, nil
}

func (s *Solver) finish(mod *model.Model, tab *tableau, status Status, err error, tr *trace) *Result {
	if err != nil {
		return s.failure(StatusError, err.Error(), tr)
	}
	if status != StatusOptimal {
		return s.failure(status, fmt.Sprintf("solver finished with status: %v", status), tr)
	}

	z, x := extract(tab, mod.NumOriginal, mod.Maximize)
	vars := make([]float64, len(x))
	for j, v := range x {
		vars[j] = round(v)
	}
	s.logger.Info("optimal solution found", slog.Float64("objective", z), slog.Int("records", len(tr.records)))
	return &Result{
		Status:         StatusOptimal,
		ObjectiveValue: round(z),
		Variables:      vars,
		Message:        "optimal solution found",
		Iterations:     tr.records,
	}
}

func (s *Solver) failure(status Status, msg string, tr *trace) *Result {
	s.logger.Info("solve finished", slog.String("status", status.String()), slog.String("message", msg))
	return &Result{
		Status:     status,
		Variables:  []float64{},
		Message:    msg,
		Iterations: tr.records,
	}
}

// without returns v minus the entries at the sorted indexes drop.
func without(v []float64, drop []int) []float64 {
	out := make([]float64, 0, len(v)-len(drop))
	k := 0
	for j, x := range v {
		if k < len(drop) && drop[k] == j {
			k++
			continue
		}
		out = append(out, x)
	}
	return out
}
