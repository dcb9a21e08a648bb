package simplex

import (
	"fmt"
	"math"
)

// Status is the terminal state of a solve.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusUnbounded
	StatusMaxIter
	StatusError
)

var statusNames = [...]string{
	StatusOptimal:    "optimal",
	StatusInfeasible: "infeasible",
	StatusUnbounded:  "unbounded",
	StatusMaxIter:    "max_iter_reached",
	StatusError:      "error",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("simplex: unknown status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("simplex: unknown status %q", text)
}

// IterationRecord is a snapshot of the tableau taken once when a phase
// starts and after every pivot. Entering and LeavingRow are -1 on the
// starting record.
type IterationRecord struct {
	Phase      int         `json:"phase" yaml:"phase"`
	Iteration  int         `json:"iter" yaml:"iter"`
	Entering   int         `json:"entering" yaml:"entering"`
	LeavingRow int         `json:"leaving_row" yaml:"leaving_row"`
	Basis      []int       `json:"basis" yaml:"basis"`
	Tableau    [][]float64 `json:"tableau" yaml:"tableau"`
	Objective  float64     `json:"obj" yaml:"obj"`
}

// Result is the outcome of one solve. Variables is empty unless Status is
// StatusOptimal. ObjectiveValue and Variables are rounded to 4 decimals.
type Result struct {
	Status         Status            `json:"status" yaml:"status"`
	ObjectiveValue float64           `json:"objective_value" yaml:"objective_value"`
	Variables      []float64         `json:"variables" yaml:"variables"`
	Message        string            `json:"message" yaml:"message"`
	Iterations     []IterationRecord `json:"iterations" yaml:"iterations"`
}

// NumericError is an arithmetic fault detected while pricing or pivoting.
type NumericError struct {
	Op       string
	Row, Col int
	Value    float64
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("simplex: numeric failure in %s at (%d,%d): value %g", e.Op, e.Row, e.Col, e.Value)
}

// decimals used when reporting values.
const decimals = 4

func round(v float64) float64 {
	p := math.Pow10(decimals)
	r := math.Round(v*p) / p
	if r == 0 {
		// drop the sign of -0
		return 0
	}
	return r
}
