package solver

import (
	"context"
	"errors"

	"github.com/go-air/gini"

	"github.com/operator-framework/ferryman/pkg/ferry/encoding"
	pkgsolver "github.com/operator-framework/ferryman/pkg/ferry/solver"
)

var ErrIncomplete = errors.New("cancelled before a solution could be found")

var _ pkgsolver.Solver = &Solver{}

const (
	satisfiable   = 1
	unsatisfiable = -1
	unknown       = 0
)

// Solver decides Encodings with gini. A Solver holds no state
// between calls; every call gets a fresh gini instance.
type Solver struct {
	verify bool
}

// Solve returns one model of enc, or pkgsolver.NotSatisfiable. The
// call blocks until gini reaches a verdict; ctx is only checked
// before the search starts.
func (s *Solver) Solve(ctx context.Context, enc *encoding.Encoding) (encoding.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := gini.NewVc(enc.NumVariables(), len(enc.Clauses()))
	litMap := newLitMapping(enc)

	// teach all clauses to the solver
	litMap.AddClauses(g)

	// This likely indicates a bug, so discard whatever
	// return values were produced.
	if err := litMap.Error(); err != nil {
		return nil, err
	}

	switch g.Solve() {
	case satisfiable:
		a := litMap.Assignment(g)
		if s.verify {
			if c, ok := enc.Satisfies(a); !ok {
				return nil, &ModelViolation{Clause: enc.String(c)}
			}
		}
		return a, nil
	case unsatisfiable:
		return nil, pkgsolver.NotSatisfiable{Moves: enc.Moves()}
	}

	return nil, ErrIncomplete
}

// ModelViolation is returned when a model reported by gini does not
// satisfy the Encoding it was computed for.
type ModelViolation struct {
	Clause string
}

func (e *ModelViolation) Error() string {
	return "solver returned a model violating " + e.Clause
}

func New(options ...Option) (*Solver, error) {
	s := Solver{}
	for _, option := range options {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *Solver) error

// WithVerification makes the Solver check every model against the
// Encoding before returning it.
func WithVerification() Option {
	return func(s *Solver) error {
		s.verify = true
		return nil
	}
}
