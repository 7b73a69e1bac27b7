// Package dimacs loads CNF formulas and reference models from files in the
// DIMACS CNF text format, per spec.md §6 (parsing is explicitly out of the
// core engine's scope but required as an external collaborator of the
// command-line driver).
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	extdimacs "github.com/rhartert/dimacs"

	"github.com/hartley-labs/cdclsat/internal/sat"
)

// SATSolver is the narrow interface LoadDIMACS populates. *sat.Solver
// satisfies it directly.
type SATSolver interface {
	AddVariable() sat.Var
	AddClause(raw []int)
}

func open(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS parses the named DIMACS CNF file and loads its formula into
// solver. It wraps github.com/rhartert/dimacs's streaming reader rather
// than hand-parsing, since the formula's variable count and clause bodies
// are exactly what that package already exposes through its Builder
// callback.
func LoadDIMACS(filename string, gzipped bool, solver SATSolver) error {
	r, err := open(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer r.Close()
	return LoadDIMACSReader(r, solver)
}

// LoadDIMACSReader is LoadDIMACS over an already-open reader, used for
// stdin ("-") input.
func LoadDIMACSReader(r io.Reader, solver SATSolver) error {
	b := &builder{solver: solver}
	return extdimacs.ReadBuilder(r, b)
}

// builder adapts a SATSolver to extdimacs.Builder.
type builder struct {
	solver SATSolver
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("instance of type %q is not supported", problem)
	}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	b.solver.AddClause(tmpClause)
	return nil
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}

// ReadModels parses a file of one-line-per-model DIMACS-style clause
// records (as produced by test fixtures) into a list of complete
// assignments, one []bool per model, where entry i is the sign of the
// record's i-th literal.
func ReadModels(filename string) ([][]bool, error) {
	r, err := open(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := extdimacs.ReadBuilder(r, b); err != nil {
		return nil, err
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have a problem line")
}

func (b *modelBuilder) Comment(_ string) error { return nil }

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
