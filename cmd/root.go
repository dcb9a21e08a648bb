package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"q.log/lpsolve/config"
)

// NewRootCmd builds the lpsolve command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lpsolve",
		Short: "Two-phase simplex solver for linear programs",
		Long: `lpsolve solves linear programs with mixed <=, >= and = constraints over
non-negative variables using the two-phase tableau simplex method.

Problems are read from JSON or YAML files with the fields
objective_coefficients, constraint_matrix, rhs_values, constraint_signs and
maximize, or from MPS files when built with -tags glpk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			return nil
		},
	}

	// Global flags
	root.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/lpsolve/config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newSolveCmd(), newCheckCmd())
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME/.config/lpsolve")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("LPSOLVE")
	// e.g., LPSOLVE_SOLVER_MAX_ITERATIONS for solver.max_iterations
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
