package search_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/ferryman/internal/counter"
	ginisolver "github.com/operator-framework/ferryman/internal/solver"
	"github.com/operator-framework/ferryman/internal/testutil"
	"github.com/operator-framework/ferryman/pkg/ferry"
	"github.com/operator-framework/ferryman/pkg/ferry/encoding"
	"github.com/operator-framework/ferryman/pkg/ferry/search"
	"github.com/operator-framework/ferryman/pkg/ferry/solver"
	"github.com/operator-framework/ferryman/pkg/ferry/solver/factory"
)

type recordingTracer struct {
	attempts []search.Attempt
}

func (r *recordingTracer) Trace(a search.Attempt) {
	r.attempts = append(r.attempts, a)
}

type brokenSolver struct{}

func (brokenSolver) Solve(_ context.Context, _ *encoding.Encoding) (encoding.Assignment, error) {
	return nil, errors.New("solver exploded")
}

// checkStates asserts the invariants every reconstructed solution
// must hold, independently of the clauses that enforce them.
func checkStates(p ferry.Puzzle, states []search.State) {
	first, last := states[0], states[len(states)-1]
	for i := range first.Sides {
		Expect(first.Sides[i]).To(Equal(ferry.Shore), "%s must start on the shore", first.Entities[i])
		Expect(last.Sides[i]).To(Equal(ferry.Far), "%s must end on the far side", last.Entities[i])
	}

	for t := 1; t < len(states); t++ {
		prev, cur := states[t-1], states[t]
		Expect(cur.Carrier()).ToNot(Equal(prev.Carrier()), "carrier must move at %d", t)

		moved := 0
		for i := 0; i < len(cur.Sides)-1; i++ {
			if cur.Sides[i] != prev.Sides[i] {
				moved++
				Expect(cur.Sides[i]).To(Equal(cur.Carrier()), "%s must be escorted at %d", cur.Entities[i], t)
			}
		}
		Expect(moved).To(BeNumerically("<=", 1), "at most one item may move at %d", t)
	}

	for _, state := range states {
		for _, group := range p.Groups {
			for i := 0; i < len(group); i++ {
				for j := i + 1; j < len(group); j++ {
					a, _ := state.SideOf(group[i])
					b, _ := state.SideOf(group[j])
					if a == b {
						Expect(state.Carrier()).To(Equal(a), "%s and %s left alone at %d", group[i], group[j], state.Time)
					}
				}
			}
		}
	}
}

var _ = Describe("FindMinimalSolution", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("should solve the classic puzzle in seven moves", func() {
		s, err := search.New(search.WithCounter(factory.NewCounter()))
		Expect(err).ToNot(HaveOccurred())

		solution, err := s.FindMinimalSolution(ctx, 1, 32, ferry.Classic())
		Expect(err).ToNot(HaveOccurred())
		Expect(solution.Moves()).To(Equal(7))

		models, ok := solution.Models()
		Expect(ok).To(BeTrue())
		Expect(models).To(Equal(2))

		states := solution.States()
		Expect(states).To(HaveLen(8))
		checkStates(ferry.Classic(), states)

		crossings := solution.Crossings()
		Expect(crossings).To(HaveLen(7))
		alone := 0
		for _, c := range crossings {
			if c.Alone() {
				alone++
				Expect(c.To).To(Equal(ferry.Shore))
			}
		}
		Expect(alone).To(Equal(2))
		Expect(crossings[0].Passenger).To(Equal(ferry.Identifier("goat")))
		Expect(crossings[6].Passenger).To(Equal(ferry.Identifier("goat")))
	})

	DescribeTable("should count every model of the minimal budget",
		func(p ferry.Puzzle, backend solver.Counter, moves, expected int) {
			s, err := search.New(search.WithCounter(backend))
			Expect(err).ToNot(HaveOccurred())

			solution, err := s.FindMinimalSolution(ctx, 1, 20, p)
			Expect(err).ToNot(HaveOccurred())
			Expect(solution.Moves()).To(Equal(moves))
			models, ok := solution.Models()
			Expect(ok).To(BeTrue())
			Expect(models).To(Equal(expected))
		},
		Entry("four free items", ferry.Puzzle{Carrier: "c", Items: []ferry.Identifier{"a", "b", "d", "e"}}, factory.NewCounter(), 7, 24),
		Entry("classic", ferry.Classic(), factory.NewCounter(), 7, 2),
		Entry("three free items", ferry.Puzzle{Carrier: "farmer", Items: []ferry.Identifier{"a", "b", "c"}}, factory.NewCounter(), 5, 6),
		Entry("four free items with gophersat", ferry.Puzzle{Carrier: "c", Items: []ferry.Identifier{"a", "b", "d", "e"}}, counter.New(), 7, 24),
	)

	DescribeTable("every model should describe a valid schedule",
		func(p ferry.Puzzle, moves int) {
			enc, err := encoding.Build(moves, p)
			Expect(err).ToNot(HaveOccurred())
			so, err := ginisolver.New()
			Expect(err).ToNot(HaveOccurred())

			n := 0
			Expect(so.EachModel(ctx, enc, func(a encoding.Assignment) error {
				n++
				checkStates(p, search.States(enc, a))
				return nil
			})).To(Succeed())
			Expect(n).To(BeNumerically(">", 0))
			Expect(n).To(Equal(testutil.CountSchedules(p, moves)))
		},
		Entry("classic", ferry.Classic(), 7),
		Entry("classic with two spare moves", ferry.Classic(), 9),
		Entry("three free items with two spare moves", ferry.Puzzle{Carrier: "farmer", Items: []ferry.Identifier{"a", "b", "c"}}, 9),
		Entry("one pair among four items", ferry.Puzzle{
			Carrier: "farmer",
			Items:   []ferry.Identifier{"a", "b", "c", "d"},
			Groups:  []ferry.Group{{"a", "b"}},
		}, 9),
	)

	It("should not count models without a counter", func() {
		s, err := search.New()
		Expect(err).ToNot(HaveOccurred())

		solution, err := s.FindMinimalSolution(ctx, 1, 32, ferry.Classic())
		Expect(err).ToNot(HaveOccurred())
		_, ok := solution.Models()
		Expect(ok).To(BeFalse())
	})

	It("should report NotFound below the optimum", func() {
		s, err := search.New()
		Expect(err).ToNot(HaveOccurred())

		solution, err := s.FindMinimalSolution(ctx, 1, 6, ferry.Classic())
		Expect(solution).To(BeNil())

		var notFound *search.NotFound
		Expect(errors.As(err, &notFound)).To(BeTrue())
		Expect(notFound.MaxMoves).To(Equal(6))
		Expect(err).To(MatchError("no solution within 6 moves (searched 1..6)"))

		var invalid *ferry.InvalidConfiguration
		Expect(errors.As(err, &invalid)).To(BeFalse())
	})

	It("should try every budget in order", func() {
		tracer := &recordingTracer{}
		s, err := search.New(
			search.WithTracer(tracer),
			search.WithRunIDProvider(func() (uuid.UUID, error) { return uuid.Nil, nil }),
		)
		Expect(err).ToNot(HaveOccurred())

		_, err = s.FindMinimalSolution(ctx, 3, 32, ferry.Classic())
		Expect(err).ToNot(HaveOccurred())

		var moves []int
		for _, a := range tracer.attempts {
			moves = append(moves, a.Moves)
			Expect(a.Satisfiable).To(Equal(a.Moves == 7))
			Expect(a.Variables).To(Equal(4 * (a.Moves + 1)))
			Expect(a.RunID).To(Equal(uuid.Nil.String()))
		}
		Expect(moves).To(Equal([]int{3, 4, 5, 6, 7}))
	})

	It("should keep the smallest budget when attempting several at once", func() {
		tracer := &recordingTracer{}
		s, err := search.New(search.WithConcurrency(4), search.WithTracer(tracer))
		Expect(err).ToNot(HaveOccurred())

		solution, err := s.FindMinimalSolution(ctx, 1, 32, ferry.Classic())
		Expect(err).ToNot(HaveOccurred())
		Expect(solution.Moves()).To(Equal(7))
		Expect(tracer.attempts).To(HaveLen(8))
	})

	DescribeTable("should find the minimal budget",
		func(p ferry.Puzzle, backend string, expected int) {
			so, err := factory.NewSolver(backend)
			Expect(err).ToNot(HaveOccurred())
			s, err := search.New(search.WithSolver(so))
			Expect(err).ToNot(HaveOccurred())

			solution, err := s.FindMinimalSolution(ctx, 1, 32, p)
			Expect(err).ToNot(HaveOccurred())
			Expect(solution.Moves()).To(Equal(expected))
			checkStates(p, solution.States())
		},
		Entry("carrier alone", ferry.Puzzle{Carrier: "farmer"}, factory.Gini, 1),
		Entry("carrier alone with gophersat", ferry.Puzzle{Carrier: "farmer"}, factory.Gophersat, 1),
		Entry("one item", ferry.Puzzle{Carrier: "farmer", Items: []ferry.Identifier{"goat"}}, factory.Gini, 1),
		Entry("two compatible items", ferry.Puzzle{Carrier: "farmer", Items: []ferry.Identifier{"a", "b"}}, factory.Gini, 3),
		Entry("classic with gophersat", ferry.Classic(), factory.Gophersat, 7),
		Entry("classic with renamed entities", ferry.Puzzle{
			Carrier: "boatman",
			Items:   []ferry.Identifier{"lion", "lamb", "hay"},
			Groups:  []ferry.Group{{"lion", "lamb"}, {"lamb", "hay"}},
		}, factory.Gini, 7),
	)

	DescribeTable("should only accept odd budgets for the carrier alone",
		func(moves int, satisfiable bool) {
			s, err := search.New()
			Expect(err).ToNot(HaveOccurred())

			_, err = s.FindMinimalSolution(ctx, moves, moves, ferry.Puzzle{Carrier: "farmer"})
			if satisfiable {
				Expect(err).ToNot(HaveOccurred())
				return
			}
			var notFound *search.NotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		},
		Entry("1", 1, true),
		Entry("2", 2, false),
		Entry("3", 3, true),
		Entry("4", 4, false),
		Entry("5", 5, true),
	)

	It("should report NotFound when three items fight each other", func() {
		s, err := search.New()
		Expect(err).ToNot(HaveOccurred())

		_, err = s.FindMinimalSolution(ctx, 1, 12, ferry.Puzzle{
			Carrier: "farmer",
			Items:   []ferry.Identifier{"a", "b", "c"},
			Groups:  []ferry.Group{{"a", "b", "c"}},
		})
		var notFound *search.NotFound
		Expect(errors.As(err, &notFound)).To(BeTrue())
	})

	DescribeTable("should reject invalid configurations",
		func(minMoves, maxMoves int, p ferry.Puzzle) {
			tracer := &recordingTracer{}
			s, err := search.New(search.WithTracer(tracer))
			Expect(err).ToNot(HaveOccurred())

			solution, err := s.FindMinimalSolution(ctx, minMoves, maxMoves, p)
			Expect(solution).To(BeNil())
			var invalid *ferry.InvalidConfiguration
			Expect(errors.As(err, &invalid)).To(BeTrue())
			var notFound *search.NotFound
			Expect(errors.As(err, &notFound)).To(BeFalse())
			Expect(tracer.attempts).To(BeEmpty())
		},
		Entry("unknown group member", 1, 32, ferry.Puzzle{
			Carrier: "farmer",
			Items:   []ferry.Identifier{"goat"},
			Groups:  []ferry.Group{{"goat", "wolf"}},
		}),
		Entry("minimum below one", 0, 32, ferry.Classic()),
		Entry("empty range", 8, 7, ferry.Classic()),
	)

	It("should reject a concurrency lower than one", func() {
		_, err := search.New(search.WithConcurrency(0))
		var invalid *ferry.InvalidConfiguration
		Expect(errors.As(err, &invalid)).To(BeTrue())
	})

	It("should propagate solver errors unchanged", func() {
		s, err := search.New(search.WithSolver(brokenSolver{}))
		Expect(err).ToNot(HaveOccurred())

		_, err = s.FindMinimalSolution(ctx, 1, 32, ferry.Classic())
		Expect(err).To(MatchError(ContainSubstring("solver exploded")))
		Expect(errors.As(err, &solver.NotSatisfiable{})).To(BeFalse())
	})

	It("should stop when the context is cancelled", func() {
		s, err := search.New()
		Expect(err).ToNot(HaveOccurred())

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = s.FindMinimalSolution(cancelled, 1, 32, ferry.Classic())
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})

	It("should log every attempt at debug level", func() {
		var buf bytes.Buffer
		logger := logrus.New()
		logger.SetOutput(&buf)
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})

		s, err := search.New(search.WithLogger(logrus.NewEntry(logger)))
		Expect(err).ToNot(HaveOccurred())
		_, err = s.FindMinimalSolution(ctx, 6, 7, ferry.Classic())
		Expect(err).ToNot(HaveOccurred())

		out := buf.String()
		Expect(out).To(ContainSubstring(`"moves":6`))
		Expect(out).To(ContainSubstring(`"outcome":"unsatisfiable"`))
		Expect(out).To(ContainSubstring(`"outcome":"satisfiable"`))
		Expect(out).To(ContainSubstring(fmt.Sprintf(`"escort":%d`, 3*4*7)))
		Expect(out).To(ContainSubstring("minimal solution found"))
	})
})

var _ = Describe("States", func() {
	It("should not share entity slices between steps", func() {
		enc, err := encoding.Build(7, ferry.Classic())
		Expect(err).ToNot(HaveOccurred())

		states := search.States(enc, encoding.NewAssignment(enc))
		states[0].Entities[0] = "lion"
		states[0].Sides[0] = ferry.Far

		Expect(states[1].Entities[0]).To(Equal(ferry.Identifier("cabbage")))
		Expect(states[1].Sides[0]).To(Equal(ferry.Shore))
		Expect(enc.Entities()[0]).To(Equal(ferry.Identifier("cabbage")))
	})
})

var _ = Describe("LoggingTracer", func() {
	It("should describe the attempt", func() {
		var buf bytes.Buffer
		search.LoggingTracer{Writer: &buf}.Trace(search.Attempt{Moves: 7, Variables: 32, Clauses: 218, Satisfiable: true})
		Expect(buf.String()).To(Equal("---\nMoves: 7\nVariables: 32\nClauses: 218\nOutcome: satisfiable\n"))
	})
})
