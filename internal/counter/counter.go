// Package counter adapts the gophersat CDCL solver to Encodings. It
// is the alternate decision backend and a second model counter.
package counter

import (
	"context"

	gsolver "github.com/crillab/gophersat/solver"

	"github.com/operator-framework/ferryman/pkg/ferry/encoding"
	pkgsolver "github.com/operator-framework/ferryman/pkg/ferry/solver"
)

var (
	_ pkgsolver.Solver  = &Gophersat{}
	_ pkgsolver.Counter = &Gophersat{}
)

// Gophersat decides and counts Encodings with gophersat.
type Gophersat struct{}

func New() *Gophersat {
	return &Gophersat{}
}

func problem(clauses [][]int) *gsolver.Problem {
	return gsolver.ParseSlice(clauses)
}

// Solve returns one model of enc, or pkgsolver.NotSatisfiable.
func (g *Gophersat) Solve(ctx context.Context, enc *encoding.Encoding) (encoding.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := gsolver.New(problem(enc.CNF()))
	if s.Solve() != gsolver.Sat {
		return nil, pkgsolver.NotSatisfiable{Moves: enc.Moves()}
	}

	// gophersat numbers variables from 0
	model := s.Model()
	a := encoding.NewAssignment(enc)
	for i, val := range model {
		if i+1 < len(a) {
			a[i+1] = val
		}
	}
	return a, nil
}

// CountModels returns the number of models of enc. Models are
// enumerated one by one: each one found is excluded by a clause over
// every variable before gophersat is asked again.
func (g *Gophersat) CountModels(ctx context.Context, enc *encoding.Encoding) (int, error) {
	clauses := enc.CNF()
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		pb := problem(clauses)
		if pb.Status == gsolver.Unsat {
			return n, nil
		}
		s := gsolver.New(pb)
		if s.Solve() != gsolver.Sat {
			return n, nil
		}
		n++

		model := s.Model()
		blocking := make([]int, enc.NumVariables())
		for v := range blocking {
			if v < len(model) && model[v] {
				blocking[v] = -(v + 1)
			} else {
				blocking[v] = v + 1
			}
		}
		clauses = append(clauses, blocking)
	}
}
