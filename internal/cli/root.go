package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries state resolved once per invocation.
type app struct {
	cfgFile  string
	complex  bool
	verbose  bool
	evalExpr string
	diffExpr string
	diffBy   string
	cfg      Config
	logger   *zap.Logger
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err != nil {
		printError(cmd.ErrOrStderr(), err)
	}
	return exitCode(err)
}

func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "symdiff",
		Short: "symdiff - parse, evaluate and differentiate expressions in x and y",
		Long: `symdiff parses arithmetic expressions over x and y, evaluates them,
differentiates them symbolically and prints the simplified result.

Example) symdiff --eval "x*y+5" x=3 y=2
         symdiff --diff "x*sin(x)" --by x`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			evalSet, diffSet := cmd.Flags().Changed("eval"), cmd.Flags().Changed("diff")
			switch {
			case evalSet && diffSet:
				return usageErrorf("--eval and --diff cannot be combined")
			case evalSet:
				return a.eval(cmd.OutOrStdout(), a.evalExpr, args)
			case diffSet:
				if a.diffBy == "" {
					return usageErrorf("missing variable for differentiation (--by)")
				}
				if len(args) > 0 {
					return usageErrorf("unexpected argument %q", args[0])
				}
				return a.diff(cmd.OutOrStdout(), a.diffExpr, a.diffBy, 1)
			case len(args) > 0:
				return usageErrorf("unknown command: %s", args[0])
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Path to YAML configuration file (default $SYMDIFF_CONFIG or "+DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVar(&a.complex, "complex", false, "Use complex scalars instead of reals")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().StringVar(&a.evalExpr, "eval", "", "Evaluate an expression with var=value bindings")
	rootCmd.Flags().StringVar(&a.diffExpr, "diff", "", "Differentiate an expression")
	rootCmd.Flags().StringVar(&a.diffBy, "by", "", "Variable to differentiate by (with --diff)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Msg: err.Error()}
	})

	rootCmd.AddCommand(newEvalCmd(a))
	rootCmd.AddCommand(newDiffCmd(a))
	rootCmd.AddCommand(newSimplifyCmd(a))
	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newReplCmd(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	if a.complex {
		cfg.Domain = DomainComplex
	}
	if cfg.Color != nil {
		color.NoColor = !*cfg.Color
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, a.verbose)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("domain", cfg.Domain),
		zap.Int("max_depth", cfg.MaxDepth),
		zap.Int("bindings", len(cfg.Bindings)),
	)
	return nil
}

func (a *app) isComplex() bool { return a.cfg.Domain == DomainComplex }
