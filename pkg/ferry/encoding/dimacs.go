package encoding

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDimacs writes e in DIMACS CNF format. Comment lines map every
// variable number back to its entity and time step, e.g. "c 7 goat@1".
// see: https://logic.pdmi.ras.ru/~basolver/dimacs.html
func (e *Encoding) WriteDimacs(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "c river crossing, %d moves\n", e.moves)
	for v := 1; v <= e.NumVariables(); v++ {
		id, t, _ := e.Describe(v)
		fmt.Fprintf(bw, "c %d %s@%d\n", v, id, t)
	}
	fmt.Fprintf(bw, "p cnf %d %d\n", e.NumVariables(), len(e.clauses))
	for _, c := range e.clauses {
		for _, l := range c.Literals {
			fmt.Fprintf(bw, "%d ", int(l))
		}
		bw.WriteString("0\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing dimacs data: %w", err)
	}
	return nil
}
