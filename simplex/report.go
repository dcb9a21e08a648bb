package simplex

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// WriteText writes r in a human readable layout. With trace set, every
// iteration record is printed with its tableau.
func (r *Result) WriteText(w io.Writer, trace bool) error {
	if _, err := fmt.Fprintf(w, "status = %v\n", r.Status); err != nil {
		return err
	}
	fmt.Fprintf(w, "message = %s\n", r.Message)
	if r.Status == StatusOptimal {
		fmt.Fprintf(w, "Z = %v\n", r.ObjectiveValue)
		for j, v := range r.Variables {
			fmt.Fprintf(w, "x%d = %v\n", j+1, v)
		}
	}
	if !trace {
		return nil
	}
	for _, rec := range r.Iterations {
		fmt.Fprintf(w, "-------------------- PHASE %d ITERATION %d ----------------------\n", rec.Phase, rec.Iteration)
		if rec.Entering >= 0 {
			fmt.Fprintf(w, "entering = %d, leaving row = %d\n", rec.Entering, rec.LeavingRow)
		}
		fmt.Fprintf(w, "basis = %v\n", rec.Basis)
		if t := rec.Dense(); t != nil {
			fmt.Fprintf(w, "T = %v\n", mat.Formatted(t, mat.Prefix("    "), mat.Squeeze()))
		}
		fmt.Fprintf(w, "obj = %v\n", rec.Objective)
	}
	return nil
}

// Dense returns the tableau of the record as a matrix, nil if it is empty.
func (rec *IterationRecord) Dense() *mat.Dense {
	if len(rec.Tableau) == 0 || len(rec.Tableau[0]) == 0 {
		return nil
	}
	rows, cols := len(rec.Tableau), len(rec.Tableau[0])
	t := mat.NewDense(rows, cols, nil)
	for i, row := range rec.Tableau {
		t.SetRow(i, row)
	}
	return t
}
