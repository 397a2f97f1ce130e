package dimacs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/operator-framework/ferryman/internal/solver"
)

func NewDimacsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dimacs <path>",
		Short: "Solves a sat problem given in dimacs format",
		Long: `Solves a sat problem given in dimacs format, such as the output of
ferryman encode. For instance:
c
c this is a comment
c a comment of the form "c <variable> <name>" names a variable
c 1 goat@0
c header: p cnf <number of variable> <number of clauses>
p cnf 2 2
c clauses end in zero, negative means 'not'
c 0 (zero) is not a valid literal
1 2 0
1 -2 0
c cnf: (1 or 2) and (1 or not 2)
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

func solve(ctx context.Context, out io.Writer, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// open dimacs file
	dimacsFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening dimacs file (%s): %w", path, err)
	}
	defer dimacsFile.Close()

	dimacs, err := NewDimacs(dimacsFile)
	if err != nil {
		return fmt.Errorf("error parsing dimacs file (%s): %w", path, err)
	}

	// build solver
	so, err := solver.New()
	if err != nil {
		return err
	}

	// get solution
	variables := dimacs.Variables()
	model, ok, err := so.SolveCNF(ctx, len(variables), dimacs.Clauses())
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "no solution found")
		return nil
	}
	fmt.Fprintln(out, "solution found:")
	for i, name := range variables {
		fmt.Fprintf(out, "%s = %t\n", name, model[i+1])
	}
	return nil
}
