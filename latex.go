package symdiff

// ============================================================
// LaTeX rendering
// ============================================================

func (n *Num[T]) LaTeX() string { return n.val.String() }
func (s *Sym[T]) LaTeX() string { return s.name }

func (f *Func[T]) LaTeX() string {
	switch f.name {
	case FuncExp:
		return "e^{" + f.arg.LaTeX() + "}"
	case FuncSin, FuncCos, FuncLn:
		return "\\" + string(f.name) + "\\left(" + f.arg.LaTeX() + "\\right)"
	}
	return "\\operatorname{" + string(f.name) + "}\\left(" + f.arg.LaTeX() + "\\right)"
}

func (b *BinOp[T]) LaTeX() string {
	switch b.op {
	case OpAdd:
		return b.left.LaTeX() + " + " + b.right.LaTeX()
	case OpSub:
		return b.left.LaTeX() + " - " + latexGroup(b.right, isSum[T])
	case OpMul:
		return latexGroup(b.left, isSum[T]) + " \\cdot " + latexGroup(b.right, isSum[T])
	case OpDiv:
		return "\\frac{" + b.left.LaTeX() + "}{" + b.right.LaTeX() + "}"
	case OpPow:
		return latexGroup(b.left, isBinOp[T]) + "^{" + b.right.LaTeX() + "}"
	}
	return b.String()
}

func latexGroup[T Scalar[T]](e Expr[T], needs func(Expr[T]) bool) string {
	if needs(e) {
		return "\\left(" + e.LaTeX() + "\\right)"
	}
	return e.LaTeX()
}

func isSum[T Scalar[T]](e Expr[T]) bool {
	b, ok := e.(*BinOp[T])
	return ok && (b.op == OpAdd || b.op == OpSub)
}

func isBinOp[T Scalar[T]](e Expr[T]) bool {
	_, ok := e.(*BinOp[T])
	return ok
}
