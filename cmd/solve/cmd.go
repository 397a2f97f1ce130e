package solve

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/operator-framework/ferryman/internal/config"
	"github.com/operator-framework/ferryman/internal/printer"
	"github.com/operator-framework/ferryman/pkg/ferry/search"
	"github.com/operator-framework/ferryman/pkg/ferry/solver/factory"
)

func NewSolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Finds the shortest solution of a river-crossing puzzle",
		Long: `Finds the shortest solution of a river-crossing puzzle. Without flags the
classic farmer, wolf, goat and cabbage puzzle is solved. For instance:

  ferryman solve --carrier farmer --items cabbage,wolf,goat \
    --group cabbage,goat --group wolf,goat --max-moves 32
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.FromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			count, _ := cmd.Flags().GetBool("count")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			trace, _ := cmd.Flags().GetBool("trace")

			var options []search.Option
			if count {
				options = append(options, search.WithCounter(factory.NewCounter()))
			}
			if trace {
				options = append(options, search.WithTracer(search.LoggingTracer{Writer: cmd.ErrOrStderr()}))
			}
			options = append(options, search.WithConcurrency(concurrency))
			return solve(cmd.Context(), cmd.OutOrStdout(), c, options...)
		},
	}
	config.AddFlags(cmd.Flags())
	cmd.Flags().Bool("count", true, "count the solutions of minimal length")
	cmd.Flags().Int("concurrency", 1, "number of move budgets attempted at once")
	cmd.Flags().Bool("trace", false, "print every attempted move budget to stderr")
	return cmd
}

func solve(ctx context.Context, out io.Writer, c *config.PuzzleConfig, options ...search.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// build solver
	so, err := factory.NewSolver(c.Solver)
	if err != nil {
		return err
	}
	options = append(options,
		search.WithSolver(so),
		search.WithLogger(logrus.WithField("solver", c.Solver)),
	)
	s, err := search.New(options...)
	if err != nil {
		return err
	}

	// get solution
	solution, err := s.FindMinimalSolution(ctx, c.MinMoves, c.MaxMoves, c.Puzzle())
	var notFound *search.NotFound
	switch {
	case errors.As(err, &notFound):
		printer.NotFound(out, notFound.MaxMoves)
		return nil
	case err != nil:
		return err
	}
	printer.Solution(out, solution)
	return nil
}
