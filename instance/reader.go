// Package instance reads problem files into a model.Problem.
//
// JSON and YAML documents use the fields of the solver's input descriptor:
//
//	objective_coefficients: [3, 5]
//	constraint_matrix: [[1, 0], [0, 2], [3, 2]]
//	rhs_values: [4, 12, 18]
//	constraint_signs: ["<=", "<=", "<="]
//	maximize: true
//
// maximize defaults to true when absent. MPS files are read through GLPK
// and need the glpk build tag.
package instance

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"q.log/lpsolve/model"
)

// Format is the encoding of a problem file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatMPS  Format = "mps"
)

// ErrUnsupportedFormat is returned for files whose format is not known.
var ErrUnsupportedFormat = errors.New("unsupported problem format")

// FormatOf guesses the format of filename from its extension. Anything that
// is not YAML or MPS is read as JSON.
func FormatOf(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".mps":
		return FormatMPS
	}
	return FormatJSON
}

// Reader reads a problem file. The filename "-" reads standard input.
type Reader struct {
	filename string
	format   Format
	stdin    io.Reader
}

func NewReader(filename string) *Reader {
	return &Reader{
		filename: filename,
		format:   FormatOf(filename),
		stdin:    os.Stdin,
	}
}

// WithFormat overrides the format guessed from the file name.
func (r *Reader) WithFormat(f Format) *Reader {
	if f != "" {
		r.format = f
	}
	return r
}

// Read returns the problem in the file. Malformed documents yield errors
// matching model.ErrInvalidProblem.
func (r *Reader) Read() (*model.Problem, error) {
	if r.format == FormatMPS {
		if r.filename == "-" {
			return nil, errors.Wrap(ErrUnsupportedFormat, "mps from standard input")
		}
		return readMPS(r.filename)
	}

	var data []byte
	var err error
	if r.filename == "-" {
		data, err = io.ReadAll(r.stdin)
	} else {
		data, err = os.ReadFile(r.filename)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", r.filename)
	}
	return Decode(data, r.format)
}

// descriptor is the wire shape of a problem; nil slices mark missing fields.
type descriptor struct {
	Objective   []float64    `json:"objective_coefficients" yaml:"objective_coefficients"`
	Constraints [][]float64  `json:"constraint_matrix" yaml:"constraint_matrix"`
	RHS         []float64    `json:"rhs_values" yaml:"rhs_values"`
	Signs       []model.Sign `json:"constraint_signs" yaml:"constraint_signs"`
	Maximize    *bool        `json:"maximize" yaml:"maximize"`
}

// Decode parses a JSON or YAML problem document and validates it.
func Decode(data []byte, format Format) (*model.Problem, error) {
	var d descriptor
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&d)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&d)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	if err != nil {
		return nil, &model.ValidationError{Field: "document", Reason: err.Error()}
	}

	required := []struct {
		name    string
		missing bool
	}{
		{"objective_coefficients", d.Objective == nil},
		{"constraint_matrix", d.Constraints == nil},
		{"rhs_values", d.RHS == nil},
		{"constraint_signs", d.Signs == nil},
	}
	for _, f := range required {
		if f.missing {
			return nil, &model.ValidationError{Field: f.name, Reason: "missing required field"}
		}
	}

	p := &model.Problem{
		Objective:   d.Objective,
		Constraints: d.Constraints,
		RHS:         d.RHS,
		Signs:       d.Signs,
		Maximize:    true,
	}
	if d.Maximize != nil {
		p.Maximize = *d.Maximize
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
