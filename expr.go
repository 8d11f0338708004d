// Package symdiff is a small symbolic differentiation engine.
//
// Expressions over the variables x and y are parsed into immutable trees,
// which can be evaluated under a binding, differentiated, simplified and
// rendered back to text. Every tree is parameterised by its scalar domain:
// Real (float64) or Complex (complex128).
//
//	e, _ := symdiff.Parse[symdiff.Real]("x*sin(x)")
//	d := symdiff.Diff(e, "x")
//	fmt.Println(d) // (sin(x) + x * cos(x))
package symdiff

import "fmt"

// ============================================================
// Core Interface
// ============================================================

// Expr is a node of an immutable expression tree. Every transformation
// returns a new tree; sub-trees are shared, never mutated.
type Expr[T Scalar[T]] interface {
	Simplify() Expr[T]
	String() string
	LaTeX() string
	Sub(varName string, value Expr[T]) Expr[T]
	Diff(varName string) Expr[T]
	Eval(env *Env[T]) (T, error)
	Equal(other Expr[T]) bool
	exprType() string
	toJSON() map[string]interface{}
}

// Op is a binary operator.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
	OpPow Op = '^'
)

func (o Op) String() string { return string(rune(o)) }

func (o Op) valid() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv, OpPow:
		return true
	}
	return false
}

// FuncName names a unary function.
type FuncName string

const (
	FuncSin FuncName = "sin"
	FuncCos FuncName = "cos"
	FuncLn  FuncName = "ln"
	FuncExp FuncName = "exp"
)

func (f FuncName) valid() bool {
	switch f {
	case FuncSin, FuncCos, FuncLn, FuncExp:
		return true
	}
	return false
}

// ============================================================
// Num: constant
// ============================================================

type Num[T Scalar[T]] struct{ val T }

// N returns a constant leaf.
func N[T Scalar[T]](v T) Expr[T] { return &Num[T]{val: v} }

func (n *Num[T]) Value() T                    { return n.val }
func (n *Num[T]) Sub(string, Expr[T]) Expr[T] { return n }
func (n *Num[T]) exprType() string            { return "num" }
func (n *Num[T]) Equal(other Expr[T]) bool {
	o, ok := other.(*Num[T])
	return ok && n.val.Equal(o.val)
}

func (n *Num[T]) isZero() bool { return n.val == zero[T]() }
func (n *Num[T]) isOne() bool  { return n.val == one[T]() }

// ============================================================
// Sym: variable
// ============================================================

type Sym[T Scalar[T]] struct{ name string }

// S returns a variable leaf. The name must not be empty.
func S[T Scalar[T]](name string) Expr[T] {
	if name == "" {
		panic("symdiff: empty variable name")
	}
	return &Sym[T]{name: name}
}

func (s *Sym[T]) Name() string     { return s.name }
func (s *Sym[T]) exprType() string { return "sym" }
func (s *Sym[T]) Equal(other Expr[T]) bool {
	o, ok := other.(*Sym[T])
	return ok && s.name == o.name
}

func (s *Sym[T]) Sub(varName string, value Expr[T]) Expr[T] {
	if s.name == varName {
		return value
	}
	return s
}

// ============================================================
// BinOp: binary operation
// ============================================================

type BinOp[T Scalar[T]] struct {
	op          Op
	left, right Expr[T]
}

// binOf builds a node without simplifying it.
func binOf[T Scalar[T]](op Op, left, right Expr[T]) *BinOp[T] {
	return &BinOp[T]{op: op, left: left, right: right}
}

func AddOf[T Scalar[T]](l, r Expr[T]) Expr[T] { return binOf(OpAdd, l, r).Simplify() }
func SubOf[T Scalar[T]](l, r Expr[T]) Expr[T] { return binOf(OpSub, l, r).Simplify() }
func MulOf[T Scalar[T]](l, r Expr[T]) Expr[T] { return binOf(OpMul, l, r).Simplify() }
func DivOf[T Scalar[T]](l, r Expr[T]) Expr[T] { return binOf(OpDiv, l, r).Simplify() }
func PowOf[T Scalar[T]](l, r Expr[T]) Expr[T] { return binOf(OpPow, l, r).Simplify() }

func (b *BinOp[T]) Op() Op           { return b.op }
func (b *BinOp[T]) Left() Expr[T]    { return b.left }
func (b *BinOp[T]) Right() Expr[T]   { return b.right }
func (b *BinOp[T]) exprType() string { return "binop" }

func (b *BinOp[T]) Sub(varName string, value Expr[T]) Expr[T] {
	return binOf(b.op, b.left.Sub(varName, value), b.right.Sub(varName, value))
}

func (b *BinOp[T]) Equal(other Expr[T]) bool {
	o, ok := other.(*BinOp[T])
	return ok && b.op == o.op && b.left.Equal(o.left) && b.right.Equal(o.right)
}

// ============================================================
// Func: unary function application
// ============================================================

type Func[T Scalar[T]] struct {
	name FuncName
	arg  Expr[T]
}

func funcOf[T Scalar[T]](name FuncName, arg Expr[T]) *Func[T] {
	return &Func[T]{name: name, arg: arg}
}

func SinOf[T Scalar[T]](arg Expr[T]) Expr[T] { return funcOf(FuncSin, arg).Simplify() }
func CosOf[T Scalar[T]](arg Expr[T]) Expr[T] { return funcOf(FuncCos, arg).Simplify() }
func LnOf[T Scalar[T]](arg Expr[T]) Expr[T]  { return funcOf(FuncLn, arg).Simplify() }
func ExpOf[T Scalar[T]](arg Expr[T]) Expr[T] { return funcOf(FuncExp, arg).Simplify() }

// Apply applies a function by name, simplifying like the named combinators.
func Apply[T Scalar[T]](name FuncName, arg Expr[T]) (Expr[T], error) {
	if !name.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	return funcOf(name, arg).Simplify(), nil
}

func (f *Func[T]) Name() FuncName   { return f.name }
func (f *Func[T]) Arg() Expr[T]     { return f.arg }
func (f *Func[T]) exprType() string { return "func" }

func (f *Func[T]) Sub(varName string, value Expr[T]) Expr[T] {
	return funcOf(f.name, f.arg.Sub(varName, value))
}

func (f *Func[T]) Equal(other Expr[T]) bool {
	o, ok := other.(*Func[T])
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

// ============================================================
// Top-level convenience functions
// ============================================================

func Simplify[T Scalar[T]](e Expr[T]) Expr[T] { return e.Simplify() }
func String[T Scalar[T]](e Expr[T]) string    { return e.String() }
func LaTeX[T Scalar[T]](e Expr[T]) string     { return e.LaTeX() }

// Sub replaces every occurrence of varName with value, without simplifying.
func Sub[T Scalar[T]](e Expr[T], varName string, value Expr[T]) Expr[T] {
	return e.Sub(varName, value)
}

// FreeSymbols returns the set of variable names occurring in e.
func FreeSymbols[T Scalar[T]](e Expr[T]) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

func collectSymbols[T Scalar[T]](e Expr[T], out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym[T]:
		out[v.name] = struct{}{}
	case *BinOp[T]:
		collectSymbols(v.left, out)
		collectSymbols(v.right, out)
	case *Func[T]:
		collectSymbols(v.arg, out)
	}
}
