package symdiff

import "fmt"

// ============================================================
// Differentiation
// ============================================================

func (n *Num[T]) Diff(string) Expr[T] { return N(zero[T]()) }

func (s *Sym[T]) Diff(varName string) Expr[T] {
	if s.name == varName {
		return N(one[T]())
	}
	return N(zero[T]())
}

func (f *Func[T]) Diff(varName string) Expr[T] {
	u := f.arg
	du := u.Diff(varName)
	switch f.name {
	case FuncSin:
		return MulOf(CosOf(u), du)
	case FuncCos:
		return MulOf(MulOf(N(negOne[T]()), SinOf(u)), du)
	case FuncLn:
		return MulOf(DivOf(N(one[T]()), u), du)
	case FuncExp:
		return MulOf(ExpOf(u), du)
	}
	panic(fmt.Sprintf("symdiff: %v: %s", ErrUnknownFunction, f.name))
}

func (b *BinOp[T]) Diff(varName string) Expr[T] {
	u, v := b.left, b.right
	switch b.op {
	case OpAdd:
		return AddOf(u.Diff(varName), v.Diff(varName))
	case OpSub:
		return SubOf(u.Diff(varName), v.Diff(varName))
	case OpMul:
		return AddOf(MulOf(u.Diff(varName), v), MulOf(u, v.Diff(varName)))
	case OpDiv:
		num := SubOf(MulOf(u.Diff(varName), v), MulOf(u, v.Diff(varName)))
		return DivOf(num, MulOf(v, v))
	case OpPow:
		if n, ok := v.(*Num[T]); ok {
			// n * u^(n-1) * u'
			lowered := PowOf(u, N(n.val.Sub(one[T]())))
			return MulOf(MulOf(v, lowered), u.Diff(varName))
		}
		// f^g * (g' ln f + g f'/f)
		lnU := LnOf(u)
		chain := AddOf(MulOf(v.Diff(varName), lnU), DivOf(MulOf(v, u.Diff(varName)), u))
		return MulOf(PowOf(u, v), chain)
	}
	panic(fmt.Sprintf("symdiff: %v: %q", ErrUnknownOperation, b.op))
}

// ============================================================
// Derivative helpers
// ============================================================

func Diff[T Scalar[T]](e Expr[T], varName string) Expr[T] { return e.Diff(varName) }

// DiffN returns the n-th derivative of e. n <= 0 returns e unchanged.
func DiffN[T Scalar[T]](e Expr[T], varName string, n int) Expr[T] {
	for i := 0; i < n; i++ {
		e = e.Diff(varName)
	}
	return e
}

// Gradient returns the partial derivative of e with respect to each name.
func Gradient[T Scalar[T]](e Expr[T], varNames []string) []Expr[T] {
	grad := make([]Expr[T], len(varNames))
	for i, v := range varNames {
		grad[i] = e.Diff(v)
	}
	return grad
}
