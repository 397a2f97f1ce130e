package printer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/operator-framework/ferryman/pkg/ferry"
	"github.com/operator-framework/ferryman/pkg/ferry/search"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan, color.Bold)
)

// Solution prints the verdict, the minimal number of moves, the
// model count when known, and the game state table.
func Solution(w io.Writer, sol *search.Solution) {
	green.Fprintf(w, "Satisfiable: true\n")
	fmt.Fprintf(w, "Solved in %d moves\n", sol.Moves())
	if n, ok := sol.Models(); ok {
		fmt.Fprintf(w, "Solutions (within %d moves): %d\n", sol.Moves(), n)
	}
	fmt.Fprintf(w, "\nExample solution gamestates (things on the other side indicated by full caps):\n")
	States(w, sol.States())
}

// NotFound prints the outcome of a search that exhausted its range.
func NotFound(w io.Writer, maxMoves int) {
	yellow.Fprintf(w, "Satisfiable: false\n")
	fmt.Fprintf(w, "No solutions found within %d moves.\n", maxMoves)
}

// States prints one row per step. Entities on the far side are
// upper-cased; the last column names what crossed.
func States(w io.Writer, states []search.State) {
	if len(states) == 0 {
		return
	}
	widths := make([]int, len(states[0].Entities))
	for i, entity := range states[0].Entities {
		widths[i] = max(width(entity, ferry.Shore), width(entity, ferry.Far))
	}
	timeWidth := len(fmt.Sprintf("t=%d", len(states)-1))

	crossings := search.Crossings(states)
	for _, state := range states {
		var b strings.Builder
		fmt.Fprintf(&b, "%-*s", timeWidth, fmt.Sprintf("t=%d", state.Time))
		for i, entity := range state.Entities {
			b.WriteString("  ")
			b.WriteString(pad(entity, state.Sides[i], widths[i]))
		}
		if state.Time > 0 {
			b.WriteString("  ")
			b.WriteString(describe(crossings[state.Time-1]))
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

// pad renders an entity left aligned in a column of the given width.
// Padding stays outside the color escape codes.
func pad(id ferry.Identifier, side ferry.Side, columns int) string {
	padding := strings.Repeat(" ", columns-width(id, side))
	return Entity(id, side) + padding
}

// Entity renders an entity name for the side it is on.
func Entity(id ferry.Identifier, side ferry.Side) string {
	if side == ferry.Far {
		return cyan.Sprint(name(id, side))
	}
	return name(id, side)
}

func name(id ferry.Identifier, side ferry.Side) string {
	if side == ferry.Far {
		return strings.ToUpper(string(id))
	}
	return string(id)
}

// width counts the runes of the uncolored name.
func width(id ferry.Identifier, side ferry.Side) int {
	return utf8.RuneCountInString(name(id, side))
}

func describe(c search.Crossing) string {
	who := "alone"
	if !c.Alone() {
		who = "with " + string(c.Passenger)
	}
	return fmt.Sprintf("-> %s (%s)", c.To, who)
}
