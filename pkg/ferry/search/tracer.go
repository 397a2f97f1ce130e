package search

import (
	"fmt"
	"io"
)

// Attempt describes one move budget tried by a Search.
type Attempt struct {
	RunID       string
	Moves       int
	Variables   int
	Clauses     int
	Satisfiable bool
}

func (a Attempt) Outcome() string {
	if a.Satisfiable {
		return "satisfiable"
	}
	return "unsatisfiable"
}

type Tracer interface {
	Trace(a Attempt)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ Attempt) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(a Attempt) {
	fmt.Fprintf(t.Writer, "---\nMoves: %d\n", a.Moves)
	fmt.Fprintf(t.Writer, "Variables: %d\nClauses: %d\n", a.Variables, a.Clauses)
	fmt.Fprintf(t.Writer, "Outcome: %s\n", a.Outcome())
}
