package solver

import (
	"context"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/operator-framework/ferryman/pkg/ferry/encoding"
	pkgsolver "github.com/operator-framework/ferryman/pkg/ferry/solver"
)

var _ pkgsolver.Counter = &Solver{}

// EachModel calls fn with every model of enc, one at a time. After
// each model a clause blocking it over all variables is added and
// gini is asked again, until no model is left. Enumeration stops
// early with the first error returned by fn or found on ctx.
func (s *Solver) EachModel(ctx context.Context, enc *encoding.Encoding, fn func(encoding.Assignment) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g := gini.NewVc(enc.NumVariables(), len(enc.Clauses()))
	litMap := newLitMapping(enc)
	litMap.AddClauses(g)
	if err := litMap.Error(); err != nil {
		return err
	}

	for {
		switch g.Solve() {
		case satisfiable:
		case unsatisfiable:
			return nil
		default:
			return ErrIncomplete
		}

		a := litMap.Assignment(g)
		if s.verify {
			if c, ok := enc.Satisfies(a); !ok {
				return &ModelViolation{Clause: enc.String(c)}
			}
		}
		if err := fn(a); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		// at least one variable must differ from a
		for v := 1; v < len(a); v++ {
			if a[v] {
				g.Add(z.Var(v).Neg())
			} else {
				g.Add(z.Var(v).Pos())
			}
		}
		g.Add(z.LitNull)
	}
}

// CountModels returns the number of models of enc by enumerating them.
func (s *Solver) CountModels(ctx context.Context, enc *encoding.Encoding) (int, error) {
	n := 0
	err := s.EachModel(ctx, enc, func(encoding.Assignment) error {
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
