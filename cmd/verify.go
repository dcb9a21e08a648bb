package cmd

import (
	"context"
	"errors"
	"fmt"
	"math"

	"q.log/lpsolve/model"
	"q.log/lpsolve/reference"
	"q.log/lpsolve/simplex"
)

// verifyTolerance is the largest objective gap accepted by verify.
const verifyTolerance = 1e-3

// errInconclusive marks a verification the reference solver could not
// decide: it timed out, or failed for a reason that says nothing about the
// problem (singular basis, unsupported shape).
var errInconclusive = errors.New("reference inconclusive")

// verify checks res against the reference solver. Only optimal, infeasible
// and unbounded outcomes are compared. An error wrapping errInconclusive is
// not a mismatch.
func verify(ctx context.Context, p *model.Problem, res *simplex.Result) error {
	switch res.Status {
	case simplex.StatusOptimal, simplex.StatusInfeasible, simplex.StatusUnbounded:
	default:
		return nil
	}

	want, err := reference.SolveContext(ctx, p)
	refStatus := simplex.StatusOptimal
	switch {
	case err == nil:
	case errors.Is(err, reference.ErrInfeasible):
		refStatus = simplex.StatusInfeasible
	case errors.Is(err, reference.ErrUnbounded):
		refStatus = simplex.StatusUnbounded
	default:
		return fmt.Errorf("%w: %v", errInconclusive, err)
	}

	if refStatus != res.Status {
		return fmt.Errorf("reference solver reports %v, result is %v", refStatus, res.Status)
	}
	if res.Status == simplex.StatusOptimal {
		if gap := math.Abs(want.Objective - res.ObjectiveValue); gap > verifyTolerance {
			return fmt.Errorf("objective %v differs from reference %v by %g", res.ObjectiveValue, want.Objective, gap)
		}
	}
	return nil
}
