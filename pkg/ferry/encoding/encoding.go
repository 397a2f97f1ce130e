package encoding

import (
	"fmt"
	"strings"

	"github.com/operator-framework/ferryman/pkg/ferry"
)

// Literal is a signed, DIMACS style reference to a variable of an
// Encoding. A positive Literal holds when its entity is on the far
// side, a negative one when it is on the shore.
type Literal int

// Var returns the variable number referenced by l.
func (l Literal) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// Not returns the negation of l.
func (l Literal) Not() Literal {
	return -l
}

func (l Literal) IsPositive() bool {
	return l > 0
}

// Rule names the invariant a Clause was generated for.
type Rule int

const (
	Initial Rule = iota
	Goal
	GroupSafety
	Escort
	SingleMover
	CarrierMoves
)

var ruleNames = [...]string{
	Initial:      "initial",
	Goal:         "goal",
	GroupSafety:  "group-safety",
	Escort:       "escort",
	SingleMover:  "single-mover",
	CarrierMoves: "carrier-moves",
}

func (r Rule) String() string {
	if r < 0 || int(r) >= len(ruleNames) {
		return fmt.Sprintf("rule(%d)", int(r))
	}
	return ruleNames[r]
}

// Rules lists every Rule in declaration order.
func Rules() []Rule {
	return []Rule{Initial, Goal, GroupSafety, Escort, SingleMover, CarrierMoves}
}

// Clause is a disjunction of Literals, tagged with the Rule and the
// time step it was generated for.
type Clause struct {
	Rule     Rule
	Time     int
	Literals []Literal
}

// Encoding is the conjunction of every clause describing the valid
// solutions of a Puzzle in exactly Moves() moves. Encodings are
// never modified after Build returns them.
type Encoding struct {
	moves    int
	entities []ferry.Identifier
	clauses  []Clause
}

// Moves returns the move budget T the Encoding was built for.
func (e *Encoding) Moves() int {
	return e.moves
}

// Entities returns the identifiers of every entity: the items in
// input order followed by the carrier.
func (e *Encoding) Entities() []ferry.Identifier {
	out := make([]ferry.Identifier, len(e.entities))
	copy(out, e.entities)
	return out
}

// Carrier returns the entity index of the carrier.
func (e *Encoding) Carrier() int {
	return len(e.entities) - 1
}

// NumVariables returns the number of variables, (entities)*(T+1).
func (e *Encoding) NumVariables() int {
	return len(e.entities) * (e.moves + 1)
}

// Clauses returns the clauses of the Encoding. Callers must not
// modify the result.
func (e *Encoding) Clauses() []Clause {
	return e.clauses
}

// Variable returns the positive literal meaning "entity is on the
// far side at step t". It panics if either index is out of range.
func (e *Encoding) Variable(entity, t int) Literal {
	if entity < 0 || entity >= len(e.entities) {
		panic(fmt.Sprintf("entity index %d out of range [0,%d)", entity, len(e.entities)))
	}
	if t < 0 || t > e.moves {
		panic(fmt.Sprintf("time step %d out of range [0,%d]", t, e.moves))
	}
	return Literal(1 + t*len(e.entities) + entity)
}

// Lookup returns the variable of the entity named id at step t.
func (e *Encoding) Lookup(id ferry.Identifier, t int) (Literal, bool) {
	if t < 0 || t > e.moves {
		return 0, false
	}
	for i, entity := range e.entities {
		if entity == id {
			return e.Variable(i, t), true
		}
	}
	return 0, false
}

// Describe returns the entity and time step of variable v.
func (e *Encoding) Describe(v int) (ferry.Identifier, int, bool) {
	if v < 1 || v > e.NumVariables() {
		return "", 0, false
	}
	v--
	return e.entities[v%len(e.entities)], v / len(e.entities), true
}

// CNF returns the clauses as slices of DIMACS integers.
func (e *Encoding) CNF() [][]int {
	cnf := make([][]int, len(e.clauses))
	for i, c := range e.clauses {
		lits := make([]int, len(c.Literals))
		for j, l := range c.Literals {
			lits[j] = int(l)
		}
		cnf[i] = lits
	}
	return cnf
}

// Stats counts the clauses generated for each Rule.
func (e *Encoding) Stats() map[Rule]int {
	stats := make(map[Rule]int, len(ruleNames))
	for _, c := range e.clauses {
		stats[c.Rule]++
	}
	return stats
}

// String renders a clause with entity names, e.g. "¬goat@1 ∨ farmer@1".
func (e *Encoding) String(c Clause) string {
	s := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		id, t, _ := e.Describe(l.Var())
		s[i] = fmt.Sprintf("%s@%d", id, t)
		if !l.IsPositive() {
			s[i] = "¬" + s[i]
		}
	}
	return fmt.Sprintf("%s: %s", c.Rule, strings.Join(s, " ∨ "))
}
