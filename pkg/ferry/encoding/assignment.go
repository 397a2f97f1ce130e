package encoding

import (
	"github.com/operator-framework/ferryman/pkg/ferry"
)

// Assignment is a valuation of the variables of an Encoding, indexed
// by variable number. Index 0 is unused.
type Assignment []bool

// NewAssignment returns an all-false Assignment sized for e.
func NewAssignment(e *Encoding) Assignment {
	return make(Assignment, e.NumVariables()+1)
}

// Value reports whether l holds. Literals outside of the Assignment
// are treated as unassigned variables set to false.
func (a Assignment) Value(l Literal) bool {
	v := l.Var()
	val := v < len(a) && a[v]
	if l.IsPositive() {
		return val
	}
	return !val
}

// Side returns the side of entity at step t under a.
func (e *Encoding) Side(a Assignment, entity, t int) ferry.Side {
	return ferry.Side(a.Value(e.Variable(entity, t)))
}

// Satisfies reports whether a satisfies every clause of e, and
// returns the first violated clause otherwise.
func (e *Encoding) Satisfies(a Assignment) (Clause, bool) {
	for _, c := range e.clauses {
		sat := false
		for _, l := range c.Literals {
			if a.Value(l) {
				sat = true
				break
			}
		}
		if !sat {
			return c, false
		}
	}
	return Clause{}, true
}
