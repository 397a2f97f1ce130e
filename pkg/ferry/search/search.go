package search

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/ferryman/pkg/ferry"
	"github.com/operator-framework/ferryman/pkg/ferry/encoding"
	"github.com/operator-framework/ferryman/pkg/ferry/solver"
	"github.com/operator-framework/ferryman/pkg/ferry/solver/factory"
)

// NotFound is returned when no move budget in the searched range
// admits a solution. It is an expected outcome, not a failure.
type NotFound struct {
	MinMoves int
	MaxMoves int
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("no solution within %d moves (searched %d..%d)", e.MaxMoves, e.MinMoves, e.MaxMoves)
}

// Search looks for the smallest move budget for which a Puzzle can
// be solved.
type Search struct {
	solver      solver.Solver
	counter     solver.Counter
	tracer      Tracer
	logger      *logrus.Entry
	concurrency int
	nextRunID   RunIDProviderFn

	traceMu sync.Mutex
}

type attempt struct {
	enc        *encoding.Encoding
	assignment encoding.Assignment
	err        error
}

// FindMinimalSolution tries every budget from minMoves to maxMoves
// and returns the first one that admits a solution together with
// one witnessing model.
//
// An invalid puzzle or range yields an *ferry.InvalidConfiguration, an
// exhausted range yields a *NotFound. Solver errors are returned
// unchanged.
func (s *Search) FindMinimalSolution(ctx context.Context, minMoves, maxMoves int, p ferry.Puzzle) (*Solution, error) {
	if minMoves < 1 {
		return nil, ferry.Invalid("minimum move budget must be at least 1, got %d", minMoves)
	}
	if maxMoves < minMoves {
		return nil, ferry.Invalid("maximum move budget %d is lower than minimum %d", maxMoves, minMoves)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"run":     s.runID(),
		"carrier": p.Carrier,
		"items":   len(p.Items),
		"groups":  len(p.Groups),
	})
	log.Debugf("searching move budgets %d..%d", minMoves, maxMoves)

	for lo := minMoves; lo <= maxMoves; lo += s.concurrency {
		hi := min(lo+s.concurrency-1, maxMoves)
		attempts := s.window(ctx, log, lo, hi, p)

		// results are inspected in budget order so the smallest
		// satisfiable budget wins whatever order they finished in
		for _, a := range attempts {
			if a.err == nil {
				return s.solution(ctx, log, a)
			}
			if !errors.As(a.err, &solver.NotSatisfiable{}) {
				return nil, a.err
			}
		}
	}

	log.Debug("move budgets exhausted")
	return nil, &NotFound{MinMoves: minMoves, MaxMoves: maxMoves}
}

// window attempts every budget in [lo, hi], concurrently when the
// window holds more than one budget.
func (s *Search) window(ctx context.Context, log *logrus.Entry, lo, hi int, p ferry.Puzzle) []attempt {
	attempts := make([]attempt, hi-lo+1)
	if len(attempts) == 1 {
		attempts[0] = s.attempt(ctx, log, lo, p)
		return attempts
	}

	var wg sync.WaitGroup
	for moves := lo; moves <= hi; moves++ {
		wg.Add(1)
		go func(moves int) {
			defer wg.Done()
			attempts[moves-lo] = s.attempt(ctx, log, moves, p)
		}(moves)
	}
	wg.Wait()
	return attempts
}

func (s *Search) attempt(ctx context.Context, log *logrus.Entry, moves int, p ferry.Puzzle) attempt {
	if err := ctx.Err(); err != nil {
		return attempt{err: err}
	}

	enc, err := encoding.Build(moves, p)
	if err != nil {
		return attempt{err: err}
	}

	a, err := s.solver.Solve(ctx, enc)
	if err != nil && !errors.As(err, &solver.NotSatisfiable{}) {
		return attempt{err: fmt.Errorf("error solving %d move encoding: %w", moves, err)}
	}

	trace := Attempt{
		RunID:       fmt.Sprint(log.Data["run"]),
		Moves:       moves,
		Variables:   enc.NumVariables(),
		Clauses:     len(enc.Clauses()),
		Satisfiable: err == nil,
	}
	s.traceMu.Lock()
	s.tracer.Trace(trace)
	s.traceMu.Unlock()

	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		fields := logrus.Fields{
			"moves":     trace.Moves,
			"variables": trace.Variables,
			"clauses":   trace.Clauses,
			"outcome":   trace.Outcome(),
		}
		for rule, n := range enc.Stats() {
			fields[rule.String()] = n
		}
		log.WithFields(fields).Debug("move budget attempted")
	}

	return attempt{enc: enc, assignment: a, err: err}
}

func (s *Search) solution(ctx context.Context, log *logrus.Entry, a attempt) (*Solution, error) {
	sol := &Solution{
		encoding:   a.enc,
		assignment: a.assignment,
		models:     -1,
	}
	if s.counter != nil {
		n, err := s.counter.CountModels(ctx, a.enc)
		if err != nil {
			return nil, fmt.Errorf("error counting models of %d move encoding: %w", a.enc.Moves(), err)
		}
		sol.models = n
	}
	log.WithField("moves", a.enc.Moves()).Info("minimal solution found")
	return sol, nil
}

func (s *Search) runID() string {
	id, err := s.nextRunID()
	if err != nil {
		return fmt.Sprintf("unknown (%s)", err)
	}
	return id.String()
}

// RunIDProviderFn returns the identifier attached to the log entries
// of a single FindMinimalSolution call.
type RunIDProviderFn func() (uuid.UUID, error)

func New(options ...Option) (*Search, error) {
	s := Search{}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *Search) error

// WithSolver sets the decision backend.
func WithSolver(so solver.Solver) Option {
	return func(s *Search) error {
		s.solver = so
		return nil
	}
}

// WithCounter makes the Search count the models of the minimal
// budget once it is found.
func WithCounter(c solver.Counter) Option {
	return func(s *Search) error {
		s.counter = c
		return nil
	}
}

func WithTracer(t Tracer) Option {
	return func(s *Search) error {
		s.tracer = t
		return nil
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(s *Search) error {
		s.logger = l
		return nil
	}
}

// WithConcurrency makes the Search attempt up to n budgets at a
// time. The smallest satisfiable budget is still the one returned.
func WithConcurrency(n int) Option {
	return func(s *Search) error {
		if n < 1 {
			return ferry.Invalid("concurrency must be at least 1, got %d", n)
		}
		s.concurrency = n
		return nil
	}
}

func WithRunIDProvider(fn RunIDProviderFn) Option {
	return func(s *Search) error {
		s.nextRunID = fn
		return nil
	}
}

var defaults = []Option{
	func(s *Search) error {
		if s.solver == nil {
			var err error
			s.solver, err = factory.NewSolver(factory.Gini)
			return err
		}
		return nil
	},
	func(s *Search) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
	func(s *Search) error {
		if s.logger == nil {
			s.logger = logrus.NewEntry(logrus.StandardLogger())
		}
		return nil
	},
	func(s *Search) error {
		if s.concurrency == 0 {
			s.concurrency = 1
		}
		return nil
	},
	func(s *Search) error {
		if s.nextRunID == nil {
			s.nextRunID = uuid.NewRandom
		}
		return nil
	},
}
