package symdiff

// ============================================================
// Simplification
// ============================================================
//
// One bottom-up pass of identity and annihilator rules. Constants are not
// folded and a rewritten node is not revisited.

func (n *Num[T]) Simplify() Expr[T] { return n }
func (s *Sym[T]) Simplify() Expr[T] { return s }

func (f *Func[T]) Simplify() Expr[T] {
	arg := f.arg.Simplify()
	if arg == f.arg {
		return f
	}
	return funcOf(f.name, arg)
}

func (b *BinOp[T]) Simplify() Expr[T] {
	l := b.left.Simplify()
	r := b.right.Simplify()

	switch b.op {
	case OpAdd:
		if isNumZero(l) {
			return r
		}
		if isNumZero(r) {
			return l
		}
	case OpSub:
		if isNumZero(r) {
			return l
		}
	case OpMul:
		if isNumZero(l) || isNumZero(r) {
			return N(zero[T]())
		}
		if isNumOne(l) {
			return r
		}
		if isNumOne(r) {
			return l
		}
	case OpDiv:
		if isNumZero(l) {
			return N(zero[T]())
		}
		if isNumOne(r) {
			return l
		}
	case OpPow:
		if isNumZero(r) {
			return N(one[T]())
		}
		if isNumOne(r) {
			return l
		}
	}
	if l == b.left && r == b.right {
		return b
	}
	return binOf(b.op, l, r)
}

func isNumZero[T Scalar[T]](e Expr[T]) bool {
	n, ok := e.(*Num[T])
	return ok && n.isZero()
}

func isNumOne[T Scalar[T]](e Expr[T]) bool {
	n, ok := e.(*Num[T])
	return ok && n.isOne()
}
