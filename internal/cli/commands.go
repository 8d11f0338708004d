package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/njchilds90/symdiff"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression> [name=value ...]",
		Short: "Evaluate an expression",
		Long: `Evaluates an expression under the given bindings. Bindings from the
configuration file apply first; command-line bindings override them.
Example) symdiff eval "x^2 + ln(y)" x=3 y=1`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eval(cmd.OutOrStdout(), args[0], args[1:])
		},
	}
}

func newDiffCmd(a *app) *cobra.Command {
	var (
		by    string
		order int
	)
	cmd := &cobra.Command{
		Use:   "diff <expression> --by <variable>",
		Short: "Differentiate an expression",
		Long: `Prints the simplified derivative of an expression.
Example) symdiff diff "x*sin(x)" --by x --order 2`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if by == "" {
				return usageErrorf("missing variable for differentiation (--by)")
			}
			if order < 1 {
				return usageErrorf("--order must be at least 1")
			}
			return a.diff(cmd.OutOrStdout(), args[0], by, order)
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "Variable to differentiate by")
	cmd.Flags().IntVarP(&order, "order", "n", 1, "Order of the derivative")
	return cmd
}

func newSimplifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "simplify <expression>",
		Short: "Apply identity simplifications and print the result",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(cmd.OutOrStdout(), args[0], formatText, true)
		},
	}
}

func newRenderCmd(a *app) *cobra.Command {
	var latex, asJSON bool
	cmd := &cobra.Command{
		Use:   "render <expression>",
		Short: "Print the parsed expression as text, LaTeX or JSON",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if latex && asJSON {
				return usageErrorf("--latex and --json cannot be combined")
			}
			format := formatText
			switch {
			case latex:
				format = formatLaTeX
			case asJSON:
				format = formatJSON
			}
			return a.transform(cmd.OutOrStdout(), args[0], format, false)
		},
	}
	cmd.Flags().BoolVar(&latex, "latex", false, "Render as LaTeX")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render the tree as JSON")
	return cmd
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("expected %d argument(s), got %d", n, len(args))
		}
		return nil
	}
}

func minArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return usageErrorf("expected at least %d argument(s), got %d", n, len(args))
		}
		return nil
	}
}

// ============================================================
// Domain dispatch
// ============================================================

type outputFormat int

const (
	formatText outputFormat = iota
	formatLaTeX
	formatJSON
)

func (a *app) eval(w io.Writer, text string, bindings []string) error {
	if a.isComplex() {
		return runEval[symdiff.Complex](a, w, text, bindings)
	}
	return runEval[symdiff.Real](a, w, text, bindings)
}

func (a *app) diff(w io.Writer, text, by string, order int) error {
	if a.isComplex() {
		return runDiff[symdiff.Complex](a, w, text, by, order)
	}
	return runDiff[symdiff.Real](a, w, text, by, order)
}

func (a *app) transform(w io.Writer, text string, format outputFormat, simplify bool) error {
	if a.isComplex() {
		return runTransform[symdiff.Complex](a, w, text, format, simplify)
	}
	return runTransform[symdiff.Real](a, w, text, format, simplify)
}

func parserFor[T symdiff.Scalar[T]](a *app) symdiff.Parser[T] {
	return symdiff.Parser[T]{MaxDepth: a.cfg.MaxDepth}
}

func runEval[T symdiff.Scalar[T]](a *app, w io.Writer, text string, bindings []string) error {
	expr, err := parserFor[T](a).Parse(text)
	if err != nil {
		return err
	}
	vars, err := parseBindings[T](a.cfg.Bindings, bindings)
	if err != nil {
		return err
	}
	a.logger.Debug("evaluating", zap.String("expr", expr.String()), zap.Int("bindings", len(vars)))

	env := symdiff.NewEnv(vars, a.logger)
	v, err := expr.Eval(env)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, v.String())
	return nil
}

func runDiff[T symdiff.Scalar[T]](a *app, w io.Writer, text, by string, order int) error {
	expr, err := parserFor[T](a).Parse(text)
	if err != nil {
		return err
	}
	a.logger.Debug("differentiating", zap.String("expr", expr.String()), zap.String("by", by), zap.Int("order", order))
	fmt.Fprintln(w, symdiff.DiffN(expr, by, order).String())
	return nil
}

func runTransform[T symdiff.Scalar[T]](a *app, w io.Writer, text string, format outputFormat, simplify bool) error {
	expr, err := parserFor[T](a).Parse(text)
	if err != nil {
		return err
	}
	if simplify {
		expr = expr.Simplify()
	}
	switch format {
	case formatLaTeX:
		fmt.Fprintln(w, expr.LaTeX())
	case formatJSON:
		out, err := symdiff.ToJSON(expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
	default:
		fmt.Fprintln(w, expr.String())
	}
	return nil
}

// parseBindings merges configured bindings with name=value arguments; the
// arguments win.
func parseBindings[T symdiff.Scalar[T]](configured map[string]string, args []string) (map[string]T, error) {
	vars := make(map[string]T, len(configured)+len(args))
	var z T

	names := make([]string, 0, len(configured))
	for name := range configured {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, err := z.Parse(strings.TrimSpace(configured[name]))
		if err != nil {
			return nil, fmt.Errorf("config: binding %s: invalid value %q", name, configured[name])
		}
		vars[name] = v
	}

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, usageErrorf("malformed binding %q (want name=value)", arg)
		}
		v, err := z.Parse(strings.TrimSpace(value))
		if err != nil {
			return nil, usageErrorf("invalid value for %s: %q", name, value)
		}
		vars[name] = v
	}
	return vars, nil
}
