package solver

import (
	"context"
	"fmt"

	"github.com/operator-framework/ferryman/pkg/ferry/encoding"
)

// NotSatisfiable is returned by a Solver when an Encoding has no
// model, i.e. the puzzle cannot be solved in exactly Moves moves.
type NotSatisfiable struct {
	Moves int
}

func (e NotSatisfiable) Error() string {
	return fmt.Sprintf("constraints not satisfiable within %d moves", e.Moves)
}

// Solver decides Encodings. A satisfiable Encoding yields one
// representative model; an unsatisfiable one yields NotSatisfiable.
// Any other error is a solver malfunction.
type Solver interface {
	Solve(ctx context.Context, enc *encoding.Encoding) (encoding.Assignment, error)
}

// Counter returns the number of models of an Encoding.
type Counter interface {
	CountModels(ctx context.Context, enc *encoding.Encoding) (int, error)
}
