package root

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/operator-framework/ferryman/cmd/dimacs"
	"github.com/operator-framework/ferryman/cmd/encode"
	"github.com/operator-framework/ferryman/cmd/solve"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ferryman",
		Short: "Ferryman solves river-crossing puzzles with a SAT solver",
		Long: `Ferryman finds the shortest way to move a carrier and its items across
a river without leaving incompatible items alone together. Every move
budget is compiled to CNF and handed to a SAT solver.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
			format, _ := cmd.Flags().GetString("log-format")
			switch format {
			case "text":
				logrus.SetFormatter(&logrus.TextFormatter{})
			case "json":
				logrus.SetFormatter(&logrus.JSONFormatter{})
			default:
				return fmt.Errorf("unknown log format %q (valid: text, json)", format)
			}
			logrus.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	rootCmd.PersistentFlags().Bool("debug", false, "log every move budget attempted")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	// add sub-commands
	rootCmd.AddCommand(solve.NewSolveCommand())
	rootCmd.AddCommand(encode.NewEncodeCommand())
	rootCmd.AddCommand(dimacs.NewDimacsCommand())

	return rootCmd
}
