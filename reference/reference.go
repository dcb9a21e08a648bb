// Package reference solves a model.Problem with gonum's simplex
// implementation. It shares no code with package simplex and is used to
// cross-check its answers.
package reference

import (
	"context"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
	"q.log/lpsolve/model"
)

var (
	// ErrInfeasible is returned when the problem has no feasible point.
	ErrInfeasible = lp.ErrInfeasible
	// ErrUnbounded is returned when the objective is unbounded.
	ErrUnbounded = lp.ErrUnbounded
	// ErrUnsupported is returned for problems gonum cannot take, such as
	// more equality rows than columns.
	ErrUnsupported = errors.New("reference: problem shape not supported")
)

// Solution is the optimum found by the reference solver.
type Solution struct {
	Objective float64
	Variables []float64
}

type outcome struct {
	sol *Solution
	err error
}

// SolveContext is Solve bounded by ctx. gonum's simplex has no
// cancellation and can cycle on degenerate problems, so on expiry the
// solve is abandoned in its goroutine and ctx.Err() is returned.
func SolveContext(ctx context.Context, p *model.Problem) (*Solution, error) {
	done := make(chan outcome, 1)
	go func() {
		sol, err := Solve(p)
		done <- outcome{sol, err}
	}()
	select {
	case out := <-done:
		return out.sol, out.err
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "reference")
	}
}

// Solve converts p to the equality form gonum expects, one slack or
// surplus column per inequality row, and solves it. The objective is
// reported in the sense of p.
//
// gonum rejects all-zero rows and columns, and reports a zero column with
// an improving cost as unbounded before looking at feasibility. Both are
// settled here instead: a zero row is checked against its right-hand side,
// and a zero column is fixed at 0 unless the rest of the problem is
// feasible and its cost improves the objective.
func Solve(p *model.Problem) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := p.NumCols()

	var rows, cols []int
	used := make([]bool, n)
	for i, row := range p.Constraints {
		zero := true
		for j, v := range row {
			if v != 0 {
				used[j] = true
				zero = false
			}
		}
		if !zero {
			rows = append(rows, i)
			continue
		}
		if !holds(0, p.Signs[i], p.RHS[i]) {
			return nil, errors.Wrapf(ErrInfeasible, "reference: row %d", i)
		}
	}
	for j, u := range used {
		if u {
			cols = append(cols, j)
		}
	}

	x := make([]float64, n)
	if len(rows) > 0 {
		sub, err := solveReduced(p, rows, cols)
		if err != nil {
			return nil, err
		}
		for k, j := range cols {
			x[j] = sub[k]
		}
	}

	for j, u := range used {
		if c := p.Objective[j]; !u && ((p.Maximize && c > 0) || (!p.Maximize && c < 0)) {
			return nil, errors.Wrapf(ErrUnbounded, "reference: column %d", j)
		}
	}
	return &Solution{Objective: floats.Dot(p.Objective, x), Variables: x}, nil
}

// solveReduced solves p restricted to the given rows and columns, every one
// of which has a non-zero entry.
func solveReduced(p *model.Problem, rows, cols []int) ([]float64, error) {
	m, n := len(rows), len(cols)
	extra := 0
	for _, i := range rows {
		if p.Signs[i] != model.Equal {
			extra++
		}
	}
	if m > n+extra {
		return nil, errors.Wrapf(ErrUnsupported, "%d equality rows exceed %d columns", m, n+extra)
	}

	c := make([]float64, n+extra)
	for k, j := range cols {
		v := p.Objective[j]
		if p.Maximize {
			v = -v
		}
		c[k] = v
	}
	A := mat.NewDense(m, n+extra, nil)
	b := make([]float64, m)
	col := n
	for r, i := range rows {
		sign := 1.0
		if p.RHS[i] < 0 {
			sign = -1
		}
		for k, j := range cols {
			A.Set(r, k, sign*p.Constraints[i][j])
		}
		b[r] = sign * p.RHS[i]
		switch p.Signs[i] {
		case model.LessEqual:
			A.Set(r, col, sign)
			col++
		case model.GreaterEqual:
			A.Set(r, col, -sign)
			col++
		}
	}

	_, x, err := lp.Simplex(c, A, b, 0, nil)
	if errors.Is(err, lp.ErrUnbounded) {
		// gonum can report unbounded while looking for a feasible basis,
		// so confirm there is one with a zero cost.
		if _, _, ferr := lp.Simplex(make([]float64, len(c)), A, b, 0, nil); ferr != nil {
			return nil, errors.Wrap(ferr, "reference: feasibility check")
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "reference")
	}
	return x[:n], nil
}

func holds(lhs float64, sign model.Sign, rhs float64) bool {
	switch sign {
	case model.LessEqual:
		return lhs <= rhs
	case model.GreaterEqual:
		return lhs >= rhs
	}
	return lhs == rhs
}
