package model

import (
	"errors"
	"fmt"
	"math"
)

// Sign is the relation between a constraint row and its right hand side.
type Sign string

const (
	LessEqual    Sign = "<="
	GreaterEqual Sign = ">="
	Equal        Sign = "="
)

// Valid reports whether s is one of the supported relations.
func (s Sign) Valid() bool {
	switch s {
	case LessEqual, GreaterEqual, Equal:
		return true
	}
	return false
}

// flip returns the relation obtained by multiplying the row by -1.
func (s Sign) flip() Sign {
	switch s {
	case LessEqual:
		return GreaterEqual
	case GreaterEqual:
		return LessEqual
	}
	return s
}

// Problem is a linear program over non-negative variables:
//
//	min|max  c'x
//	s.t.     A_i x (<=|>=|=) b_i   for every row i
//	         x >= 0
type Problem struct {
	//Objective coefficients c, one per decision variable
	Objective []float64 `json:"objective_coefficients" yaml:"objective_coefficients"`

	//Constraints matrix A, one row per constraint
	Constraints [][]float64 `json:"constraint_matrix" yaml:"constraint_matrix"`

	//RHS constraints right hand side b
	RHS []float64 `json:"rhs_values" yaml:"rhs_values"`

	//Signs relation of each constraint row
	Signs []Sign `json:"constraint_signs" yaml:"constraint_signs"`

	Maximize bool `json:"maximize" yaml:"maximize"`
}

// NumRows returns the number of constraints.
func (p *Problem) NumRows() int { return len(p.RHS) }

// NumCols returns the number of decision variables.
func (p *Problem) NumCols() int { return len(p.Objective) }

// ErrInvalidProblem is matched by every ValidationError.
var ErrInvalidProblem = errors.New("invalid problem")

// ValidationError reports a malformed problem. It is raised before any
// solving starts and is distinct from the statuses a solve can end in.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid problem: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidProblem }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the shape of the problem: matrix rows, RHS and signs must
// agree on m, every matrix row must have one entry per objective
// coefficient, signs must be known and all numbers finite.
func (p *Problem) Validate() error {
	if p == nil {
		return invalid("problem", "missing")
	}
	if len(p.Objective) == 0 {
		return invalid("objective_coefficients", "at least one variable is required")
	}
	if len(p.Constraints) != len(p.RHS) || len(p.Constraints) != len(p.Signs) {
		return invalid("constraint_matrix", "constraint dimensions mismatch: %d rows, %d rhs values, %d signs",
			len(p.Constraints), len(p.RHS), len(p.Signs))
	}
	for j, c := range p.Objective {
		if !finite(c) {
			return invalid("objective_coefficients", "coefficient %d is not finite", j)
		}
	}
	for i, row := range p.Constraints {
		if len(row) != len(p.Objective) {
			return invalid("constraint_matrix", "row %d has %d columns, objective has %d", i, len(row), len(p.Objective))
		}
		for j, a := range row {
			if !finite(a) {
				return invalid("constraint_matrix", "entry (%d,%d) is not finite", i, j)
			}
		}
		if !finite(p.RHS[i]) {
			return invalid("rhs_values", "value %d is not finite", i)
		}
		if !p.Signs[i].Valid() {
			return invalid("constraint_signs", "row %d has unknown sign %q", i, p.Signs[i])
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
