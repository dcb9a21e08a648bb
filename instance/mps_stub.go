//go:build !glpk

package instance

import (
	"github.com/pkg/errors"
	"q.log/lpsolve/model"
)

func readMPS(filename string) (*model.Problem, error) {
	return nil, errors.Wrapf(ErrUnsupportedFormat, "%s: mps support needs a build with -tags glpk", filename)
}
