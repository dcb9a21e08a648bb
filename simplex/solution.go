package simplex

// extract reads the basic solution of a terminal phase 2 tableau. Non-basic
// columns are zero; only the first numOriginal columns are returned. The
// objective is flipped back when the problem was a maximization.
func extract(tab *tableau, numOriginal int, maximize bool) (float64, []float64) {
	x := make([]float64, tab.n)
	for r, b := range tab.basis {
		x[b] = tab.rhs(r)
	}
	z := tab.objective()
	if maximize {
		z = -z
	}
	return z, x[:numOriginal]
}
