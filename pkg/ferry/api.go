package ferry

import (
	"fmt"
	"strings"
)

// InvalidConfiguration is returned when a Puzzle (or a request made
// against one) can never be encoded. It is never worth retrying.
type InvalidConfiguration struct {
	Reason string
}

func (e *InvalidConfiguration) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// Invalid returns an InvalidConfiguration with a formatted reason.
func Invalid(format string, args ...interface{}) *InvalidConfiguration {
	return &InvalidConfiguration{Reason: fmt.Sprintf(format, args...)}
}

// Identifier values uniquely identify the carrier and the items of
// a single Puzzle.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Side is one bank of the divide. The zero value is Shore, where
// every entity starts.
type Side bool

const (
	Shore Side = false
	Far   Side = true
)

func (s Side) String() string {
	if s == Far {
		return "far"
	}
	return "shore"
}

// Group is a set of items that must never be left together on a
// side without the carrier.
type Group []Identifier

func (g Group) String() string {
	s := make([]string, len(g))
	for i, id := range g {
		s[i] = string(id)
	}
	return "[" + strings.Join(s, " ") + "]"
}

// Puzzle describes one river-crossing problem.
type Puzzle struct {
	Carrier Identifier
	Items   []Identifier
	Groups  []Group
}

// Classic returns the farmer, wolf, goat and cabbage puzzle.
func Classic() Puzzle {
	return Puzzle{
		Carrier: "farmer",
		Items:   []Identifier{"cabbage", "wolf", "goat"},
		Groups: []Group{
			{"cabbage", "goat"},
			{"wolf", "goat"},
		},
	}
}

// IndexOf returns the position of an item in p.Items.
func (p Puzzle) IndexOf(id Identifier) (int, bool) {
	for i, item := range p.Items {
		if item == id {
			return i, true
		}
	}
	return -1, false
}

// Validate checks that p can be encoded. The returned error, if any,
// is an *InvalidConfiguration.
func (p Puzzle) Validate() error {
	if p.Carrier == "" {
		return Invalid("carrier identifier is empty")
	}

	seen := make(map[Identifier]struct{}, len(p.Items))
	for i, item := range p.Items {
		if item == "" {
			return Invalid("item %d has an empty identifier", i)
		}
		if item == p.Carrier {
			return Invalid("item %q has the same identifier as the carrier", item)
		}
		if _, ok := seen[item]; ok {
			return Invalid("duplicate item identifier %q", item)
		}
		seen[item] = struct{}{}
	}

	for i, group := range p.Groups {
		if len(group) < 2 {
			return Invalid("group %d %s needs at least two members", i, group)
		}
		members := make(map[Identifier]struct{}, len(group))
		for _, member := range group {
			if _, ok := seen[member]; !ok {
				return Invalid("group %d %s references unknown item %q", i, group, member)
			}
			if _, ok := members[member]; ok {
				return Invalid("group %d %s lists %q more than once", i, group, member)
			}
			members[member] = struct{}{}
		}
	}
	return nil
}
