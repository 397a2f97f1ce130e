package factory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/operator-framework/ferryman/internal/counter"
	"github.com/operator-framework/ferryman/internal/solver"
	pkgsolver "github.com/operator-framework/ferryman/pkg/ferry/solver"
)

const (
	Gini      = "gini"
	Gophersat = "gophersat"
)

var backends = map[string]func() (pkgsolver.Solver, error){
	Gini: func() (pkgsolver.Solver, error) {
		return solver.New(solver.WithVerification())
	},
	Gophersat: func() (pkgsolver.Solver, error) {
		return counter.New(), nil
	},
}

// Backends returns the names accepted by NewSolver.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSolver returns the decision backend registered under name.
func NewSolver(name string) (pkgsolver.Solver, error) {
	newSolver, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver backend %q (valid: %s)", name, strings.Join(Backends(), ", "))
	}
	return newSolver()
}

// NewCounter returns the model counting backend. Models are
// enumerated with gini, which keeps its learnt clauses between models.
func NewCounter() pkgsolver.Counter {
	return &solver.Solver{}
}
