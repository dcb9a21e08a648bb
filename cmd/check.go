package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"q.log/lpsolve/model"
)

func newCheckCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "check <file|->",
		Short: "Validate a problem and print its augmented form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProblem(cmd, args[0])
			if err != nil {
				return err
			}
			m, err := model.Standardize(p)
			if err != nil {
				return &ExitError{Code: ExitInvalidInput, Err: err}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d constraints, %d variables, maximize = %v\n", m.NumRows, m.NumOriginal, m.Maximize)
			if len(m.Negated) > 0 {
				fmt.Fprintf(out, "rows negated for a non-negative rhs: %v\n", m.Negated)
			}
			if !m.HasArtificial() {
				fmt.Fprintln(out, "phase 1 not needed")
			}
			m.Fprint(out)
			return nil
		},
	}
	c.Flags().String("input-format", "", "input format: json, yaml, mps (default from file extension)")
	return c
}
