package model

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// Kind tells what a column of the augmented matrix stands for.
type Kind int

const (
	Original Kind = iota
	Slack
	Surplus
	Artificial
)

func (k Kind) String() string {
	switch k {
	case Original:
		return "x"
	case Slack:
		return "s"
	case Surplus:
		return "e"
	case Artificial:
		return "a"
	}
	return "?"
}

// Variable describes one column of the augmented matrix.
type Variable struct {
	Kind Kind
	// Row is the constraint that introduced the column, -1 for originals.
	Row int
}

func (v Variable) IsArtificial() bool { return v.Kind == Artificial }

// Model is a problem in augmented form: every constraint is an equality over
// the original, slack, surplus and artificial columns, and Basis is a
// feasible starting basis in canonical form.
type Model struct {
	//V variables, one per column of A
	V []Variable

	//A augmented constraints matrix, NumRows x NumCols, nil without rows
	A *mat.Dense

	//B constraints rhs, non-negative, nil without rows
	B *mat.VecDense

	//C phase 2 costs: objective (negated when maximizing) then zeros
	C *mat.VecDense

	//W phase 1 costs: one per artificial column, zero elsewhere
	W *mat.VecDense

	//Basis initial basic column of each row
	Basis []int

	//SlackIndexes slack and surplus columns
	SlackIndexes []int

	//ArtificialIndexes artificial columns
	ArtificialIndexes []int

	//Negated rows multiplied by -1 to make their rhs non-negative
	Negated []int

	NumRows     int
	NumCols     int
	NumOriginal int
	Maximize    bool
}

// HasArtificial reports whether the model needs a feasibility phase.
func (m *Model) HasArtificial() bool { return len(m.ArtificialIndexes) > 0 }

// Standardize builds the augmented model of p. Rows with a negative rhs are
// multiplied by -1 first, then each row gets
//
//	<=  one slack column (basic)
//	>=  one surplus column and one artificial column (basic)
//	=   one artificial column (basic)
//
// The matrix is allocated once with its final width.
func Standardize(p *Problem) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	numRows, n := p.NumRows(), p.NumCols()
	signs := make([]Sign, numRows)
	rhs := make([]float64, numRows)
	mul := make([]float64, numRows)
	var negated []int
	added := 0
	for r := 0; r < numRows; r++ {
		signs[r], rhs[r], mul[r] = p.Signs[r], p.RHS[r], 1
		if rhs[r] < 0 {
			signs[r], rhs[r], mul[r] = signs[r].flip(), -rhs[r], -1
			negated = append(negated, r)
		}
		if signs[r] == GreaterEqual {
			added += 2
		} else {
			added++
		}
	}

	m := &Model{
		V:           make([]Variable, n+added),
		C:           mat.NewVecDense(n+added, nil),
		W:           mat.NewVecDense(n+added, nil),
		Basis:       make([]int, numRows),
		Negated:     negated,
		NumRows:     numRows,
		NumCols:     n + added,
		NumOriginal: n,
		Maximize:    p.Maximize,
	}
	// gonum has no empty matrices: a model without constraints keeps A and
	// B nil.
	if numRows > 0 {
		m.A = mat.NewDense(numRows, n+added, nil)
		m.B = mat.NewVecDense(numRows, rhs)
	}

	for j, c := range p.Objective {
		if p.Maximize {
			c = -c
		}
		m.C.SetVec(j, c)
		m.V[j] = Variable{Kind: Original, Row: -1}
	}
	for r, row := range p.Constraints {
		for j, a := range row {
			m.A.Set(r, j, a*mul[r])
		}
	}

	col := n
	for r := 0; r < numRows; r++ {
		switch signs[r] {
		case LessEqual:
			m.A.Set(r, col, 1)
			m.V[col] = Variable{Kind: Slack, Row: r}
			m.SlackIndexes = append(m.SlackIndexes, col)
			m.Basis[r] = col
			col++
		case GreaterEqual:
			m.A.Set(r, col, -1)
			m.V[col] = Variable{Kind: Surplus, Row: r}
			m.SlackIndexes = append(m.SlackIndexes, col)
			col++
			m.addArtificial(r, col)
			col++
		case Equal:
			m.addArtificial(r, col)
			col++
		}
	}

	return m, nil
}

func (m *Model) addArtificial(r, col int) {
	m.A.Set(r, col, 1)
	m.W.SetVec(col, 1)
	m.V[col] = Variable{Kind: Artificial, Row: r}
	m.ArtificialIndexes = append(m.ArtificialIndexes, col)
	m.Basis[r] = col
}

// Names returns a label per column, e.g. x1, s1, e2, a2.
func (m *Model) Names() []string {
	names := make([]string, m.NumCols)
	for j, v := range m.V {
		if v.Kind == Original {
			names[j] = fmt.Sprintf("x%d", j+1)
			continue
		}
		names[j] = fmt.Sprintf("%v%d", v.Kind, v.Row+1)
	}
	return names
}

// Fprint writes the augmented model in a human readable layout.
func (m *Model) Fprint(w io.Writer) {
	fmt.Fprintf(w, "columns = %v\n", m.Names())
	fmt.Fprintf(w, "c = %v\n", mat.Formatted(m.C.T(), mat.Prefix("    "), mat.Squeeze()))
	if m.HasArtificial() {
		fmt.Fprintf(w, "w = %v\n", mat.Formatted(m.W.T(), mat.Prefix("    "), mat.Squeeze()))
	}
	if m.NumRows == 0 {
		return
	}
	fmt.Fprintf(w, "A = %v\n", mat.Formatted(m.A, mat.Prefix("    "), mat.Squeeze()))
	fmt.Fprintf(w, "b = %v\n", mat.Formatted(m.B.T(), mat.Prefix("    "), mat.Squeeze()))
	fmt.Fprintf(w, "basis = %v\n", m.Basis)
}
