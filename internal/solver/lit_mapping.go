package solver

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/operator-framework/ferryman/pkg/ferry/encoding"
)

// valuer is the part of inter.S that reads a model.
type valuer interface {
	Value(m z.Lit) bool
}

type inconsistentLitMapping []error

func (inconsistentLitMapping) Error() string {
	return "internal solver failure"
}

// litMapping performs translation between the variables of an
// Encoding and the variables that appear in the SAT formula.
type litMapping struct {
	enc  *encoding.Encoding
	vars []z.Var
	errs inconsistentLitMapping
}

// newLitMapping returns a litMapping with one solver variable for
// every variable of enc.
func newLitMapping(enc *encoding.Encoding) *litMapping {
	d := litMapping{
		enc:  enc,
		vars: make([]z.Var, enc.NumVariables()+1),
	}
	for v := 1; v <= enc.NumVariables(); v++ {
		d.vars[v] = z.Var(v)
	}
	return &d
}

// LitOf returns the solver literal corresponding to l.
func (d *litMapping) LitOf(l encoding.Literal) z.Lit {
	v := l.Var()
	if v < 1 || v >= len(d.vars) {
		d.errs = append(d.errs, fmt.Errorf("literal %d out of range [1,%d]", int(l), len(d.vars)-1))
		return z.LitNull
	}
	if l.IsPositive() {
		return d.vars[v].Pos()
	}
	return d.vars[v].Neg()
}

// AddClauses teaches every clause of the Encoding to g.
func (d *litMapping) AddClauses(g inter.Adder) {
	for _, c := range d.enc.Clauses() {
		for _, l := range c.Literals {
			if m := d.LitOf(l); m != z.LitNull {
				g.Add(m)
			}
		}
		g.Add(z.LitNull)
	}
}

// Assignment reads the value of every Encoding variable from g,
// which must hold a model.
func (d *litMapping) Assignment(g valuer) encoding.Assignment {
	a := encoding.NewAssignment(d.enc)
	for v := 1; v < len(d.vars); v++ {
		a[v] = g.Value(d.vars[v].Pos())
	}
	return a
}

// Error returns a single error value that is an aggregation of all
// errors encountered during a litMapping's lifetime, or nil if there have
// been no errors. A non-nil return value likely indicates a problem
// with the Encoding.
func (d *litMapping) Error() error {
	if len(d.errs) == 0 {
		return nil
	}
	s := make([]string, len(d.errs))
	for i, err := range d.errs {
		s[i] = err.Error()
	}
	return fmt.Errorf("%d errors encountered: %s", len(s), strings.Join(s, ", "))
}
