//go:build glpk

package instance

import (
	"fmt"
	"math"
	"runtime"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"
	"q.log/lpsolve/model"
)

// readMPS reads a free MPS file with GLPK. Row bounds become signs, ranged
// rows a >= and a <= row; finite column bounds other than x >= 0 become
// extra rows. Free or negatively bounded columns are rejected.
func readMPS(filename string) (*model.Problem, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	if err := lp.ReadMPS(glpk.MPS_FILE, nil, filename); err != nil {
		return nil, errors.Wrapf(err, "reading mps %s", filename)
	}

	numCols := lp.NumCols()
	b := newBuilder(numCols)
	b.p.Maximize = lp.ObjDir() == glpk.MAX

	//populate obj function
	for c := 0; c < numCols; c++ {
		b.p.Objective[c] = lp.ObjCoef(c + 1)
	}

	//populate constraints
	for r := 1; r <= lp.NumRows(); r++ {
		rowVec := make([]float64, numCols)
		idxs, row := lp.MatRow(r)
		for i, v := range idxs {
			if v == 0 {
				continue
			}
			rowVec[v-1] = row[i]
		}
		b.addBounded(rowVec, lp.RowLB(r), lp.RowUB(r))
	}

	//column bounds
	for c := 0; c < numCols; c++ {
		lb, ub := lp.ColLB(c+1), lp.ColUB(c+1)
		if lb < 0 {
			return nil, &model.ValidationError{
				Field:  "bounds",
				Reason: fmt.Sprintf("column %d: free or negative variables are not supported", c+1),
			}
		}
		if lb == 0 {
			lb = -math.MaxFloat64
		}
		rowVec := make([]float64, numCols)
		rowVec[c] = 1
		b.addBounded(rowVec, lb, ub)
	}

	if err := b.p.Validate(); err != nil {
		return nil, err
	}
	return b.p, nil
}
