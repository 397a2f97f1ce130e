package encode

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/operator-framework/ferryman/internal/config"
	"github.com/operator-framework/ferryman/pkg/ferry/encoding"
)

func NewEncodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Writes the CNF encoding of a puzzle for a fixed move budget",
		Long: `Writes the CNF encoding of a puzzle for a fixed move budget in DIMACS
format, so it can be handed to any SAT solver. Comment lines map every
variable to an entity and a time step:

c 7 goat@1

means variable 7 holds when the goat is on the far side after move 1.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.FromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			moves, _ := cmd.Flags().GetInt("moves")
			enc, err := encoding.Build(moves, c.Puzzle())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if path, _ := cmd.Flags().GetString("output"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("error creating dimacs file (%s): %w", path, err)
				}
				defer f.Close()
				out = f
			}
			return enc.WriteDimacs(out)
		},
	}
	config.AddFlags(cmd.Flags())
	cmd.Flags().IntP("moves", "m", 7, "move budget to encode")
	cmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
	return cmd
}
