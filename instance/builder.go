package instance

import (
	"math"

	"q.log/lpsolve/model"
)

// builder collects rows given as bounds lb <= a'x <= ub, where
// -math.MaxFloat64 and math.MaxFloat64 stand for a missing bound.
type builder struct {
	p *model.Problem
}

func newBuilder(numCols int) *builder {
	return &builder{p: &model.Problem{Objective: make([]float64, numCols)}}
}

func (b *builder) add(row []float64, sign model.Sign, rhs float64) {
	b.p.Constraints = append(b.p.Constraints, row)
	b.p.Signs = append(b.p.Signs, sign)
	b.p.RHS = append(b.p.RHS, rhs)
}

// addBounded turns a bounded row into sign rows. A row without bounds adds
// nothing; a ranged row adds a >= row and a <= row.
func (b *builder) addBounded(row []float64, lb, ub float64) {
	lower, upper := lb != -math.MaxFloat64, ub != math.MaxFloat64
	switch {
	case lower && upper && lb == ub:
		b.add(row, model.Equal, lb)
	case lower && upper:
		b.add(row, model.GreaterEqual, lb)
		b.add(append([]float64(nil), row...), model.LessEqual, ub)
	case lower:
		b.add(row, model.GreaterEqual, lb)
	case upper:
		b.add(row, model.LessEqual, ub)
	}
}
