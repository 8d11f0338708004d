package symdiff

import (
	"fmt"

	"go.uber.org/zap"
)

// ============================================================
// Evaluation environment
// ============================================================

// DiagnosticKind classifies a soft evaluation condition.
type DiagnosticKind string

const DiagLogDomain DiagnosticKind = "log-domain"

// Diagnostic records a condition that did not stop evaluation, such as the
// logarithm of a non-positive real.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind"`
	Func     FuncName       `json:"func"`
	Arg      string         `json:"arg"`
	Message  string         `json:"message"`
	Sentinel string         `json:"sentinel"`
}

// Env binds variable names to values for one evaluation. Soft conditions are
// collected as Diagnostics and logged at warn level.
type Env[T Scalar[T]] struct {
	vars   map[string]T
	logger *zap.Logger
	diags  []Diagnostic
}

// NewEnv returns an environment over vars. A nil logger discards output.
func NewEnv[T Scalar[T]](vars map[string]T, logger *zap.Logger) *Env[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Env[T]{vars: vars, logger: logger}
}

func (e *Env[T]) Lookup(name string) (T, error) {
	v, ok := e.vars[name]
	if !ok {
		var z T
		return z, &UndefinedVariableError{Name: name}
	}
	return v, nil
}

func (e *Env[T]) Diagnostics() []Diagnostic { return e.diags }

func (e *Env[T]) report(d Diagnostic) {
	e.diags = append(e.diags, d)
	e.logger.Warn(d.Message,
		zap.String("kind", string(d.Kind)),
		zap.String("func", string(d.Func)),
		zap.String("arg", d.Arg),
		zap.String("result", d.Sentinel),
	)
}

// Evaluate computes e under vars with a discarding logger.
func Evaluate[T Scalar[T]](e Expr[T], vars map[string]T) (T, error) {
	return e.Eval(NewEnv(vars, nil))
}

// ============================================================
// Eval
// ============================================================

func (n *Num[T]) Eval(*Env[T]) (T, error) { return n.val, nil }

func (s *Sym[T]) Eval(env *Env[T]) (T, error) { return env.Lookup(s.name) }

func (f *Func[T]) Eval(env *Env[T]) (T, error) {
	v, err := f.arg.Eval(env)
	if err != nil {
		return v, err
	}
	switch f.name {
	case FuncSin:
		return v.Sin(), nil
	case FuncCos:
		return v.Cos(), nil
	case FuncExp:
		return v.Exp(), nil
	case FuncLn:
		r, ok := v.Ln()
		if !ok {
			env.report(Diagnostic{
				Kind:     DiagLogDomain,
				Func:     FuncLn,
				Arg:      v.String(),
				Message:  "logarithm of zero or negative number is undefined",
				Sentinel: r.String(),
			})
		}
		return r, nil
	}
	var z T
	return z, fmt.Errorf("%w: %s", ErrUnknownFunction, f.name)
}

func (b *BinOp[T]) Eval(env *Env[T]) (T, error) {
	l, err := b.left.Eval(env)
	if err != nil {
		return l, err
	}
	r, err := b.right.Eval(env)
	if err != nil {
		return r, err
	}
	switch b.op {
	case OpAdd:
		return l.Add(r), nil
	case OpSub:
		return l.Sub(r), nil
	case OpMul:
		return l.Mul(r), nil
	case OpDiv:
		return l.Quo(r)
	case OpPow:
		return l.Pow(r), nil
	}
	var z T
	return z, fmt.Errorf("%w: %q", ErrUnknownOperation, b.op)
}
