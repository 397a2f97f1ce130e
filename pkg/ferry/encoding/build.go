package encoding

import (
	"github.com/operator-framework/ferryman/pkg/ferry"
)

// Build returns the Encoding of every valid solution of p that uses
// exactly moves moves. The Encoding is satisfiable if and only if
// such a solution exists. Build keeps no state between calls.
//
// The returned error is an *ferry.InvalidConfiguration when p is
// malformed or moves is lower than 1; no Encoding is built then.
func Build(moves int, p ferry.Puzzle) (*Encoding, error) {
	if moves < 1 {
		return nil, ferry.Invalid("move budget must be at least 1, got %d", moves)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	entities := make([]ferry.Identifier, 0, len(p.Items)+1)
	entities = append(entities, p.Items...)
	entities = append(entities, p.Carrier)

	b := builder{
		Encoding: &Encoding{
			moves:    moves,
			entities: entities,
		},
		items:  len(p.Items),
		groups: groupIndexes(p),
	}
	b.clauses = make([]Clause, 0, b.estimate())

	b.initial()
	for t := 1; t <= moves; t++ {
		b.groupSafety(t)
		b.escort(t)
		b.singleMover(t)
		b.carrierMoves(t)
	}
	b.goal()

	return b.Encoding, nil
}

// groupIndexes resolves group members to item indexes. p must be valid.
func groupIndexes(p ferry.Puzzle) [][]int {
	out := make([][]int, len(p.Groups))
	for i, group := range p.Groups {
		out[i] = make([]int, len(group))
		for j, member := range group {
			out[i][j], _ = p.IndexOf(member)
		}
	}
	return out
}

type builder struct {
	*Encoding
	items  int
	groups [][]int
}

func (b *builder) add(rule Rule, t int, lits ...Literal) {
	b.clauses = append(b.clauses, Clause{Rule: rule, Time: t, Literals: lits})
}

func (b *builder) estimate() int {
	pairs := 0
	for _, g := range b.groups {
		pairs += len(g) * (len(g) - 1) / 2
	}
	perStep := 2*pairs + 4*b.items + 2*b.items*(b.items-1) + 2
	return 2*len(b.entities) + b.moves*perStep
}

// x is the variable of entity i at step t.
func (b *builder) x(i, t int) Literal {
	return b.Variable(i, t)
}

// initial asserts that every entity starts on the shore.
func (b *builder) initial() {
	for i := range b.entities {
		b.add(Initial, 0, b.x(i, 0).Not())
	}
}

// goal asserts that every entity ends on the far side.
func (b *builder) goal() {
	for i := range b.entities {
		b.add(Goal, b.moves, b.x(i, b.moves))
	}
}

// groupSafety forbids two members of a group from sharing a side
// that the carrier is not on, in both directions.
func (b *builder) groupSafety(t int) {
	c := b.x(b.Carrier(), t)
	for _, g := range b.groups {
		for i := 0; i < len(g); i++ {
			for j := i + 1; j < len(g); j++ {
				m, o := b.x(g[i], t), b.x(g[j], t)
				// not (both far and carrier on shore)
				b.add(GroupSafety, t, m.Not(), o.Not(), c)
				// not (both on shore and carrier far)
				b.add(GroupSafety, t, m, o, c.Not())
			}
		}
	}
}

// escort makes every item crossing imply an identical carrier
// crossing. The carrier may still cross alone.
func (b *builder) escort(t int) {
	c, cp := b.x(b.Carrier(), t), b.x(b.Carrier(), t-1)
	for i := 0; i < b.items; i++ {
		m, mp := b.x(i, t), b.x(i, t-1)
		// (m ∧ ¬mp) → (c ∧ ¬cp)
		b.add(Escort, t, m.Not(), mp, c)
		b.add(Escort, t, m.Not(), mp, cp.Not())
		// (¬m ∧ mp) → (¬c ∧ cp)
		b.add(Escort, t, m, mp.Not(), c.Not())
		b.add(Escort, t, m, mp.Not(), cp)
	}
}

// singleMover forbids any two items from changing side on the same
// step. It is pairwise, so quadratic in the number of items.
func (b *builder) singleMover(t int) {
	for i := 0; i < b.items; i++ {
		m, mp := b.x(i, t), b.x(i, t-1)
		for j := i + 1; j < b.items; j++ {
			o, op := b.x(j, t), b.x(j, t-1)
			b.add(SingleMover, t, m.Not(), mp, o.Not(), op)
			b.add(SingleMover, t, m.Not(), mp, o, op.Not())
			b.add(SingleMover, t, m, mp.Not(), o.Not(), op)
			b.add(SingleMover, t, m, mp.Not(), o, op.Not())
		}
	}
}

// carrierMoves makes the carrier change side on every step.
func (b *builder) carrierMoves(t int) {
	c, cp := b.x(b.Carrier(), t), b.x(b.Carrier(), t-1)
	b.add(CarrierMoves, t, c, cp)
	b.add(CarrierMoves, t, c.Not(), cp.Not())
}
