package search

import (
	"github.com/operator-framework/ferryman/pkg/ferry"
	"github.com/operator-framework/ferryman/pkg/ferry/encoding"
)

// Solution is returned by a Search once the minimal move budget has
// been found.
type Solution struct {
	encoding   *encoding.Encoding
	assignment encoding.Assignment
	models     int
}

// Moves returns the minimal move budget.
func (s *Solution) Moves() int {
	return s.encoding.Moves()
}

// Encoding returns the Encoding built for the minimal budget.
func (s *Solution) Encoding() *encoding.Encoding {
	return s.encoding
}

// Assignment returns the model the Solution was reconstructed from.
func (s *Solution) Assignment() encoding.Assignment {
	return s.assignment
}

// Models returns the number of distinct solutions of minimal length.
// It reports false when the Search had no Counter.
func (s *Solution) Models() (int, bool) {
	return s.models, s.models >= 0
}

// States returns the game state at every step of the Solution.
func (s *Solution) States() []State {
	return States(s.encoding, s.assignment)
}

// Crossings returns what crossed on every move of the Solution.
func (s *Solution) Crossings() []Crossing {
	return Crossings(States(s.encoding, s.assignment))
}

// State is the side of every entity at one step. Entities are listed
// as in the Encoding: items in input order, then the carrier.
type State struct {
	Time     int
	Entities []ferry.Identifier
	Sides    []ferry.Side
}

// SideOf returns the side of the entity named id.
func (s State) SideOf(id ferry.Identifier) (ferry.Side, bool) {
	for i, entity := range s.Entities {
		if entity == id {
			return s.Sides[i], true
		}
	}
	return ferry.Shore, false
}

// Carrier returns the carrier's side.
func (s State) Carrier() ferry.Side {
	return s.Sides[len(s.Sides)-1]
}

// States reads every StateVariable of enc from a, one State per time
// step from 0 to enc.Moves(). Every State owns its slices.
func States(enc *encoding.Encoding, a encoding.Assignment) []State {
	states := make([]State, enc.Moves()+1)
	for t := range states {
		entities := enc.Entities()
		sides := make([]ferry.Side, len(entities))
		for i := range entities {
			sides[i] = enc.Side(a, i, t)
		}
		states[t] = State{
			Time:     t,
			Entities: entities,
			Sides:    sides,
		}
	}
	return states
}

// Crossing is one move: the carrier reaching To, alone when
// Passenger is empty.
type Crossing struct {
	Time      int
	To        ferry.Side
	Passenger ferry.Identifier
}

// Alone reports whether the carrier crossed without an item.
func (c Crossing) Alone() bool {
	return c.Passenger == ""
}

// Crossings derives the moves between consecutive states.
func Crossings(states []State) []Crossing {
	if len(states) < 2 {
		return nil
	}
	crossings := make([]Crossing, 0, len(states)-1)
	for t := 1; t < len(states); t++ {
		prev, cur := states[t-1], states[t]
		c := Crossing{Time: t, To: cur.Carrier()}
		for i := 0; i < len(cur.Sides)-1; i++ {
			if cur.Sides[i] != prev.Sides[i] {
				c.Passenger = cur.Entities[i]
			}
		}
		crossings = append(crossings, c)
	}
	return crossings
}
