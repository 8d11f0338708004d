package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/njchilds90/symdiff"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	historyFile = ".symdiff_history"
	promptMain  = "symdiff> "
)

const replHelp = `  <expr>              evaluate when every variable is bound, else simplify
  :let name=value     bind a variable
  :unset name         remove a binding
  :vars               list bindings
  :diff name <expr>   differentiate by name
  :simplify <expr>    simplify without evaluating
  :latex <expr>       print as LaTeX
  :quit               leave`

var resultStyle = color.New(color.FgGreen)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.isComplex() {
				return runRepl[symdiff.Complex](a, cmd.OutOrStdout(), cmd.ErrOrStderr())
			}
			return runRepl[symdiff.Real](a, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runRepl[T symdiff.Scalar[T]](a *app, out, errOut io.Writer) error {
	s, err := newSession[T](a)
	if err != nil {
		return err
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintln(out, "symdiff interactive session. Type :help for commands.")
	for {
		line, err := ln.Prompt(promptMain)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		quit, err := s.exec(out, line)
		if err != nil {
			errorStyle.Fprintln(errOut, err.Error())
			continue
		}
		if quit {
			return nil
		}
	}
}

// session holds the bindings of one interactive run.
type session[T symdiff.Scalar[T]] struct {
	parser symdiff.Parser[T]
	vars   map[string]T
	logger *zap.Logger
}

func newSession[T symdiff.Scalar[T]](a *app) (*session[T], error) {
	vars, err := parseBindings[T](a.cfg.Bindings, nil)
	if err != nil {
		return nil, err
	}
	return &session[T]{parser: parserFor[T](a), vars: vars, logger: a.logger}, nil
}

func (s *session[T]) exec(w io.Writer, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		return false, s.evalOrSimplify(w, line)
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true, nil
	case ":help":
		fmt.Fprintln(w, replHelp)
	case ":let":
		bound, err := parseBindings[T](nil, []string{rest})
		if err != nil {
			return false, err
		}
		for name, v := range bound {
			s.vars[name] = v
		}
	case ":unset":
		delete(s.vars, rest)
	case ":vars":
		names := make([]string, 0, len(s.vars))
		for name := range s.vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "%s = %s\n", name, s.vars[name].String())
		}
	case ":diff":
		by, text, ok := strings.Cut(rest, " ")
		if !ok || by == "" {
			return false, fmt.Errorf("usage: :diff name <expr>")
		}
		e, err := s.parser.Parse(text)
		if err != nil {
			return false, err
		}
		resultStyle.Fprintln(w, symdiff.Diff(e, by).String())
	case ":simplify":
		e, err := s.parser.Parse(rest)
		if err != nil {
			return false, err
		}
		resultStyle.Fprintln(w, e.Simplify().String())
	case ":latex":
		e, err := s.parser.Parse(rest)
		if err != nil {
			return false, err
		}
		resultStyle.Fprintln(w, e.LaTeX())
	default:
		return false, fmt.Errorf("unknown command %s. Type :help for commands", cmd)
	}
	return false, nil
}

func (s *session[T]) evalOrSimplify(w io.Writer, text string) error {
	e, err := s.parser.Parse(text)
	if err != nil {
		return err
	}
	for name := range symdiff.FreeSymbols(e) {
		if _, ok := s.vars[name]; !ok {
			resultStyle.Fprintln(w, e.Simplify().String())
			return nil
		}
	}
	v, err := e.Eval(symdiff.NewEnv(s.vars, s.logger))
	if err != nil {
		return err
	}
	resultStyle.Fprintln(w, v.String())
	return nil
}
