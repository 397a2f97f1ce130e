package solver

import (
	"context"
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// SolveCNF decides a raw CNF problem over variables 1..numVariables,
// given as DIMACS integers. It returns the model indexed by variable
// number, or false when the problem is unsatisfiable.
func (s *Solver) SolveCNF(ctx context.Context, numVariables int, clauses [][]int) ([]bool, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	g := gini.NewVc(numVariables, len(clauses))
	for i, clause := range clauses {
		for _, lit := range clause {
			v := lit
			if v < 0 {
				v = -v
			}
			if v == 0 || v > numVariables {
				return nil, false, fmt.Errorf("clause %d: %d is not a valid variable", i, lit)
			}
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(z.LitNull)
	}

	switch g.Solve() {
	case satisfiable:
		model := make([]bool, numVariables+1)
		for v := 1; v <= numVariables; v++ {
			model[v] = g.Value(z.Var(v).Pos())
		}
		return model, true, nil
	case unsatisfiable:
		return nil, false, nil
	}
	return nil, false, ErrIncomplete
}
