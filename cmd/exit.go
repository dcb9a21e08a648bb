package cmd

import (
	"errors"

	"q.log/lpsolve/simplex"
)

// Process exit codes.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitInfeasible   = 3
	ExitUnbounded    = 4
	ExitMaxIter      = 5
	ExitNumeric      = 6
	ExitMismatch     = 7
)

// ExitError carries the exit code of a command. Err is nil when the
// outcome was already printed and only the code matters.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for an error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

func statusExitCode(s simplex.Status) int {
	switch s {
	case simplex.StatusOptimal:
		return ExitOK
	case simplex.StatusInfeasible:
		return ExitInfeasible
	case simplex.StatusUnbounded:
		return ExitUnbounded
	case simplex.StatusMaxIter:
		return ExitMaxIter
	}
	return ExitNumeric
}
