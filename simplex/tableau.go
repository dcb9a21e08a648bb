package simplex

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"q.log/lpsolve/model"
)

// tableau is the canonical form of the current basis:
//
//	rows 0..m-1  B^-1 A | B^-1 b
//	row m        reduced costs | -objective
//
// For every row r the column basis[r] is the r-th unit column, objective
// row included.
type tableau struct {
	t     *mat.Dense
	basis []int
	m, n  int
}

// newTableau lays out A and b of the model with its starting basis. The
// basis columns of the model are unit columns already, so no elimination is
// needed before pricing.
func newTableau(mod *model.Model) *tableau {
	m, n := mod.NumRows, mod.NumCols
	tab := &tableau{
		t:     mat.NewDense(m+1, n+1, nil),
		basis: append([]int(nil), mod.Basis...),
		m:     m,
		n:     n,
	}
	for r := 0; r < m; r++ {
		row := tab.t.RawRowView(r)
		mat.Row(row[:n], r, mod.A)
		row[n] = mod.B.AtVec(r)
	}
	return tab
}

// price fills the objective row for cost:
//
//	d_j = c_j - sum_r c_basis[r] * t[r][j]
//	t[m][n] = -sum_r c_basis[r] * t[r][n]
//
// Huge finite inputs can overflow the row; the first entry that did is
// reported as a NumericError.
func (tab *tableau) price(cost []float64) error {
	obj := tab.t.RawRowView(tab.m)
	copy(obj[:tab.n], cost)
	obj[tab.n] = 0
	for r, b := range tab.basis {
		if cb := cost[b]; cb != 0 {
			floats.AddScaled(obj, -cb, tab.t.RawRowView(r))
		}
	}
	if allFinite(obj) {
		return nil
	}
	for j, v := range obj {
		if !finite(v) {
			return &NumericError{Op: "price", Row: tab.m, Col: j, Value: v}
		}
	}
	return nil
}

// entering returns the column with the most negative reduced cost, lowest
// index first on ties, or -1 when every reduced cost is >= -eps.
func (tab *tableau) entering(eps float64) int {
	obj := tab.t.RawRowView(tab.m)[:tab.n]
	col := -1
	least := -eps
	for j, d := range obj {
		if d < least {
			least, col = d, j
		}
	}
	return col
}

// leaving runs the ratio test on col and returns the row with the smallest
// rhs/entry among entries > eps, lowest row first on ties. It returns -1
// when no entry blocks, i.e. the direction is unbounded.
func (tab *tableau) leaving(col int, eps float64) int {
	row := -1
	best := math.Inf(1)
	for r := 0; r < tab.m; r++ {
		a := tab.t.At(r, col)
		if a <= eps {
			continue
		}
		if ratio := tab.t.At(r, tab.n) / a; ratio < best {
			best, row = ratio, r
		}
	}
	return row
}

// pivot makes col basic in row: the pivot row is divided by the pivot entry
// and eliminated from every other row, objective row included.
func (tab *tableau) pivot(row, col int, eps float64) error {
	p := tab.t.At(row, col)
	if math.Abs(p) <= eps || !finite(p) {
		return &NumericError{Op: "pivot", Row: row, Col: col, Value: p}
	}
	pr := tab.t.RawRowView(row)
	floats.Scale(1/p, pr)
	pr[col] = 1
	for r := 0; r <= tab.m; r++ {
		if r == row {
			continue
		}
		other := tab.t.RawRowView(r)
		if f := other[col]; f != 0 {
			floats.AddScaled(other, -f, pr)
			other[col] = 0
		}
	}
	tab.basis[row] = col
	if !allFinite(tab.t.RawMatrix().Data) {
		return &NumericError{Op: "pivot", Row: row, Col: col, Value: p}
	}
	return nil
}

// objective returns the value of the cost the tableau was priced with.
func (tab *tableau) objective() float64 {
	return -tab.t.At(tab.m, tab.n)
}

func (tab *tableau) rhs(r int) float64 { return tab.t.At(r, tab.n) }

// dropColumns returns a tableau without the given columns. Row values are
// carried over as they are and the basis is remapped to the new indices;
// a dropped column must not be basic.
func (tab *tableau) dropColumns(drop []int) *tableau {
	gone := make(map[int]bool, len(drop))
	for _, j := range drop {
		gone[j] = true
	}
	remap := make([]int, tab.n+1)
	kept := 0
	for j := 0; j <= tab.n; j++ {
		if j < tab.n && gone[j] {
			remap[j] = -1
			continue
		}
		remap[j] = kept
		kept++
	}

	out := &tableau{
		t:     mat.NewDense(tab.m+1, kept, nil),
		basis: make([]int, tab.m),
		m:     tab.m,
		n:     kept - 1,
	}
	for r := 0; r <= tab.m; r++ {
		src, dst := tab.t.RawRowView(r), out.t.RawRowView(r)
		for j, v := range src {
			if k := remap[j]; k >= 0 {
				dst[k] = v
			}
		}
	}
	for r, b := range tab.basis {
		out.basis[r] = remap[b]
	}
	return out
}

// dropRow returns a tableau without constraint row r.
func (tab *tableau) dropRow(r int) *tableau {
	out := &tableau{
		t:     mat.NewDense(tab.m, tab.n+1, nil),
		basis: make([]int, 0, tab.m-1),
		m:     tab.m - 1,
		n:     tab.n,
	}
	k := 0
	for i := 0; i <= tab.m; i++ {
		if i == r {
			continue
		}
		copy(out.t.RawRowView(k), tab.t.RawRowView(i))
		k++
	}
	for i, b := range tab.basis {
		if i != r {
			out.basis = append(out.basis, b)
		}
	}
	return out
}

// snapshot copies the tableau into plain rows.
func (tab *tableau) snapshot() [][]float64 {
	rows := make([][]float64, tab.m+1)
	for r := range rows {
		rows[r] = append([]float64(nil), tab.t.RawRowView(r)...)
	}
	return rows
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(s []float64) bool {
	for _, v := range s {
		if !finite(v) {
			return false
		}
	}
	return true
}
