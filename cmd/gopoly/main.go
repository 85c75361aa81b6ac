// Command gopoly evaluates polynomial operations from the command line and
// serves them as HTTP tools.
//
// Usage:
//
//	gopoly show --p 3:2 --p 2:1 --p -5:0
//	gopoly mul  --p 3:2 --p 2:1 --p -5:0 --q 1:1 --q -1:0
//	gopoly serve --config gopoly.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/gopoly/internal/config"
	"github.com/njchilds90/gopoly/internal/logging"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool
	strict     bool
	output     string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "gopoly",
		Short: "gopoly - sparse integer polynomials",
		Long: `gopoly builds polynomials from coefficient:exponent term pairs and
applies addition, multiplication, differentiation and evaluation to them.

Terms are given as repeated --p / --q flags, e.g. --p 3:2 for 3x^2.
Zero coefficients and negative exponents are dropped unless --strict is set.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.verbose {
				cfg.Logging.Level = "debug"
			}
			if cmd.Flags().Changed("strict") {
				cfg.Poly.Strict = a.strict
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "gopoly.yaml", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.strict, "strict", false, "Reject zero coefficients and negative exponents")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "text", "Output format: text, latex, json")

	rootCmd.AddCommand(
		a.showCmd(),
		a.addCmd(),
		a.mulCmd(),
		a.diffCmd(),
		a.evalCmd(),
		a.serveCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
