// Package testutil holds helpers shared by the solver tests.
package testutil

import (
	"github.com/operator-framework/ferryman/pkg/ferry"
)

// CountSchedules returns the number of valid schedules of p that take
// exactly moves moves, found by walking the state space directly
// instead of going through a SAT encoding. A state is a bit mask with
// bit i set when item i is on the far side and bit len(p.Items) set
// when the carrier is. p must be valid.
func CountSchedules(p ferry.Puzzle, moves int) int {
	n := len(p.Items)
	carrier := 1 << n
	full := carrier<<1 - 1

	var pairs [][2]int
	for _, group := range p.Groups {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, _ := p.IndexOf(group[i])
				b, _ := p.IndexOf(group[j])
				pairs = append(pairs, [2]int{1 << a, 1 << b})
			}
		}
	}
	safe := func(s int) bool {
		far := s&carrier != 0
		for _, pair := range pairs {
			a, b := s&pair[0] != 0, s&pair[1] != 0
			if a == b && a != far {
				return false
			}
		}
		return true
	}

	counts := map[int]int{0: 1}
	for t := 0; t < moves; t++ {
		next := map[int]int{}
		for s, c := range counts {
			far := s&carrier != 0
			if to := s ^ carrier; safe(to) {
				next[to] += c
			}
			for i := 0; i < n; i++ {
				if (s&(1<<i) != 0) != far {
					continue
				}
				if to := s ^ carrier ^ 1<<i; safe(to) {
					next[to] += c
				}
			}
		}
		counts = next
	}
	return counts[full]
}
