package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"q.log/lpsolve/config"
	"q.log/lpsolve/instance"
	"q.log/lpsolve/logging"
	"q.log/lpsolve/model"
	"q.log/lpsolve/simplex"
)

func newSolveCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "solve <file|->",
		Short: "Solve a linear program",
		Long: `Solve reads a problem file ("-" for standard input) and prints the result.

The exit code reports the outcome: 0 optimal, 2 invalid input, 3 infeasible,
4 unbounded, 5 iteration limit reached, 6 numeric error, 7 verification
mismatch.`,
		Args: cobra.ExactArgs(1),
		RunE: runSolve,
	}

	c.Flags().String("input-format", "", "input format: json, yaml, mps (default from file extension)")
	c.Flags().StringP("format", "o", "", "output format: json, yaml, text")
	c.Flags().Bool("trace", false, "include the iteration records in the output")
	c.Flags().Bool("verify", false, "cross-check the result against the reference solver")
	c.Flags().Duration("verify-timeout", 0, "time allowed to the reference solver (default 5s)")
	c.Flags().Int("max-iterations", 0, "pivot limit per phase")
	c.Flags().Float64("epsilon", 0, "pivoting tolerance")
	c.Flags().Bool("maximize", false, "maximize the objective whatever the file says")
	c.Flags().Bool("minimize", false, "minimize the objective whatever the file says")
	c.MarkFlagsMutuallyExclusive("maximize", "minimize")

	_ = viper.BindPFlag("output.format", c.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.trace", c.Flags().Lookup("trace"))
	_ = viper.BindPFlag("output.verify", c.Flags().Lookup("verify"))
	_ = viper.BindPFlag("output.verify_timeout", c.Flags().Lookup("verify-timeout"))
	_ = viper.BindPFlag("solver.max_iterations", c.Flags().Lookup("max-iterations"))
	_ = viper.BindPFlag("solver.epsilon", c.Flags().Lookup("epsilon"))
	return c
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return &ExitError{Code: ExitInvalidInput, Err: err}
	}
	log := logging.New(cmd.ErrOrStderr(), cfg.Logging)

	p, err := readProblem(cmd, args[0])
	if err != nil {
		return err
	}
	if maximize, _ := cmd.Flags().GetBool("maximize"); maximize {
		p.Maximize = true
	}
	if minimize, _ := cmd.Flags().GetBool("minimize"); minimize {
		p.Maximize = false
	}

	solver := simplex.New(append(cfg.SolverOptions(), simplex.WithLogger(log))...)
	res, err := solver.Solve(p)
	if err != nil {
		return &ExitError{Code: ExitInvalidInput, Err: err}
	}
	log.Info("solved",
		slog.String("file", args[0]),
		slog.String("status", res.Status.String()),
		slog.Int("records", len(res.Iterations)))

	if err := writeResult(cmd.OutOrStdout(), res, cfg.Output); err != nil {
		return err
	}

	if cfg.Output.Verify {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Output.VerifyTimeout)
		err := verify(ctx, p, res)
		cancel()
		switch {
		case errors.Is(err, errInconclusive):
			log.Warn("verification skipped", slog.String("reason", err.Error()))
		case err != nil:
			log.Error("verification failed", slog.String("error", err.Error()))
			return &ExitError{Code: ExitMismatch, Err: err}
		default:
			log.Info("verified against reference solver")
		}
	}

	if code := statusExitCode(res.Status); code != ExitOK {
		return &ExitError{Code: code}
	}
	return nil
}

func readProblem(cmd *cobra.Command, filename string) (*model.Problem, error) {
	format, _ := cmd.Flags().GetString("input-format")
	p, err := instance.NewReader(filename).WithFormat(instance.Format(format)).Read()
	if err != nil {
		return nil, &ExitError{Code: ExitInvalidInput, Err: err}
	}
	return p, nil
}

func writeResult(w io.Writer, res *simplex.Result, out config.OutputConfig) error {
	view := *res
	if !out.Trace {
		view.Iterations = []simplex.IterationRecord{}
	}

	switch out.Format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&view); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return enc.Close()
	case "text":
		return view.WriteText(w, out.Trace)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(&view); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return nil
	}
}
