package model_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"q.log/lpsolve/model"
)

func mixedProblem() *model.Problem {
	return &model.Problem{
		Objective: []float64{1, 2},
		Constraints: [][]float64{
			{1, 1},
			{2, 1},
			{1, -1},
		},
		RHS:      []float64{4, 3, 1},
		Signs:    []model.Sign{model.LessEqual, model.GreaterEqual, model.Equal},
		Maximize: true,
	}
}

func TestStandardizeColumnLayout(t *testing.T) {
	m, err := model.Standardize(mixedProblem())
	require.NoError(t, err)

	// x1 x2 | s1 | e2 a2 | a3
	assert.Equal(t, 3, m.NumRows)
	assert.Equal(t, 6, m.NumCols)
	assert.Equal(t, 2, m.NumOriginal)
	assert.Equal(t, []int{2, 3}, m.SlackIndexes)
	assert.Equal(t, []int{4, 5}, m.ArtificialIndexes)
	assert.Equal(t, []int{2, 4, 5}, m.Basis)
	assert.True(t, m.HasArtificial())
	assert.Equal(t, []string{"x1", "x2", "s1", "e2", "a2", "a3"}, m.Names())

	want := mat.NewDense(3, 6, []float64{
		1, 1, 1, 0, 0, 0,
		2, 1, 0, -1, 1, 0,
		1, -1, 0, 0, 0, 1,
	})
	assert.True(t, mat.Equal(want, m.A), "A = %v", mat.Formatted(m.A))
	assert.Equal(t, []float64{4, 3, 1}, m.B.RawVector().Data)
	assert.Equal(t, []float64{-1, -2, 0, 0, 0, 0}, m.C.RawVector().Data)
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 1}, m.W.RawVector().Data)
}

func TestStandardizeBasisIsIdentity(t *testing.T) {
	m, err := model.Standardize(mixedProblem())
	require.NoError(t, err)

	for r, b := range m.Basis {
		for i := 0; i < m.NumRows; i++ {
			want := 0.0
			if i == r {
				want = 1
			}
			assert.Equal(t, want, m.A.At(i, b), "row %d basis column %d", i, b)
		}
	}
}

func TestStandardizeAllLessEqual(t *testing.T) {
	m, err := model.Standardize(&model.Problem{
		Objective:   []float64{3, 5},
		Constraints: [][]float64{{1, 0}, {0, 2}, {3, 2}},
		RHS:         []float64{4, 12, 18},
		Signs:       []model.Sign{model.LessEqual, model.LessEqual, model.LessEqual},
	})
	require.NoError(t, err)

	assert.False(t, m.HasArtificial())
	assert.Empty(t, m.ArtificialIndexes)
	assert.Equal(t, []int{2, 3, 4}, m.Basis)
	assert.Equal(t, 5, m.NumCols)
	assert.Equal(t, []float64{3, 5, 0, 0, 0}, m.C.RawVector().Data)
}

func TestStandardizeNegativeRHS(t *testing.T) {
	m, err := model.Standardize(&model.Problem{
		Objective:   []float64{1, 1},
		Constraints: [][]float64{{1, -2}, {-1, -1}},
		RHS:         []float64{-2, -3},
		Signs:       []model.Sign{model.LessEqual, model.Equal},
	})
	require.NoError(t, err)

	// row 0 becomes -x1+2x2 >= 2, row 1 becomes x1+x2 = 3
	assert.Equal(t, []int{0, 1}, m.Negated)
	assert.Equal(t, []float64{2, 3}, m.B.RawVector().Data)
	assert.Equal(t, []float64{-1, 2, -1, 1, 0}, m.A.RawRowView(0))
	assert.Equal(t, []float64{1, 1, 0, 0, 1}, m.A.RawRowView(1))
	assert.Equal(t, []int{2}, m.SlackIndexes)
	assert.Equal(t, []int{3, 4}, m.ArtificialIndexes)
}

func TestStandardizeWithoutConstraints(t *testing.T) {
	m, err := model.Standardize(&model.Problem{Objective: []float64{1, -1}})
	require.NoError(t, err)

	assert.Equal(t, 0, m.NumRows)
	assert.Equal(t, 2, m.NumCols)
	assert.Nil(t, m.A)
	assert.Empty(t, m.Basis)

	var buf bytes.Buffer
	m.Fprint(&buf)
	assert.Contains(t, buf.String(), "columns = [x1 x2]")
}

func TestStandardizeDoesNotModifyProblem(t *testing.T) {
	p := mixedProblem()
	p.RHS[0] = -4
	_, err := model.Standardize(p)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 1}, p.Constraints[0])
	assert.Equal(t, -4.0, p.RHS[0])
	assert.Equal(t, model.LessEqual, p.Signs[0])
	assert.Equal(t, []float64{1, 2}, p.Objective)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		p     *model.Problem
		field string
	}{
		{"nil", nil, "problem"},
		{"no variables", &model.Problem{}, "objective_coefficients"},
		{
			"rhs mismatch",
			&model.Problem{
				Objective:   []float64{1},
				Constraints: [][]float64{{1}, {1}},
				RHS:         []float64{1},
				Signs:       []model.Sign{model.LessEqual, model.LessEqual},
			},
			"constraint_matrix",
		},
		{
			"signs mismatch",
			&model.Problem{
				Objective:   []float64{1},
				Constraints: [][]float64{{1}},
				RHS:         []float64{1},
			},
			"constraint_matrix",
		},
		{
			"column mismatch",
			&model.Problem{
				Objective:   []float64{1, 2},
				Constraints: [][]float64{{1}},
				RHS:         []float64{1},
				Signs:       []model.Sign{model.LessEqual},
			},
			"constraint_matrix",
		},
		{
			"unknown sign",
			&model.Problem{
				Objective:   []float64{1},
				Constraints: [][]float64{{1}},
				RHS:         []float64{1},
				Signs:       []model.Sign{"<"},
			},
			"constraint_signs",
		},
		{
			"nan coefficient",
			&model.Problem{Objective: []float64{math.NaN()}},
			"objective_coefficients",
		},
		{
			"infinite rhs",
			&model.Problem{
				Objective:   []float64{1},
				Constraints: [][]float64{{1}},
				RHS:         []float64{math.Inf(1)},
				Signs:       []model.Sign{model.LessEqual},
			},
			"rhs_values",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidProblem))

			var verr *model.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)

			_, err = model.Standardize(tt.p)
			assert.True(t, errors.Is(err, model.ErrInvalidProblem))
		})
	}

	assert.NoError(t, mixedProblem().Validate())
}

func TestSignValid(t *testing.T) {
	assert.True(t, model.LessEqual.Valid())
	assert.True(t, model.GreaterEqual.Valid())
	assert.True(t, model.Equal.Valid())
	assert.False(t, model.Sign("=>").Valid())
}

func TestFprint(t *testing.T) {
	m, err := model.Standardize(mixedProblem())
	require.NoError(t, err)

	var buf bytes.Buffer
	m.Fprint(&buf)
	out := buf.String()
	assert.Contains(t, out, "A = ")
	assert.Contains(t, out, "w = ")
	assert.Contains(t, out, "basis = [2 4 5]")
}
