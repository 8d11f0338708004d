package symdiff_test

import (
	"math"
	"testing"

	"github.com/njchilds90/symdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type R = symdiff.Real

func x() symdiff.Expr[R]            { return symdiff.S[R]("x") }
func y() symdiff.Expr[R]            { return symdiff.S[R]("y") }
func num(v float64) symdiff.Expr[R] { return symdiff.N(R(v)) }

// ============================================================
// Construction
// ============================================================

func TestNum_String(t *testing.T) {
	assert.Equal(t, "42", num(42).String())
	assert.Equal(t, "2.5", num(2.5).String())
	assert.Equal(t, "-1", num(-1).String())
}

func TestSym_EmptyNamePanics(t *testing.T) {
	assert.Panics(t, func() { symdiff.S[R]("") })
}

func TestCombinators_Simplify(t *testing.T) {
	assert.Equal(t, "x", symdiff.AddOf(num(0), x()).String())
	assert.Equal(t, "x", symdiff.MulOf(x(), num(1)).String())
	assert.Equal(t, "0", symdiff.MulOf(num(0), x()).String())
	assert.Equal(t, "1", symdiff.PowOf(x(), num(0)).String())
	assert.Equal(t, "((x * y) + 5)", symdiff.AddOf(symdiff.MulOf(x(), y()), num(5)).String())
	assert.Equal(t, "(2 + 3)", symdiff.AddOf(num(2), num(3)).String(), "constants are not folded")
}

func TestFuncCombinators(t *testing.T) {
	assert.Equal(t, "sin(x)", symdiff.SinOf(x()).String())
	assert.Equal(t, "cos(x)", symdiff.CosOf(x()).String())
	assert.Equal(t, "ln(x)", symdiff.LnOf(x()).String())
	assert.Equal(t, "exp(x)", symdiff.ExpOf(x()).String())
	assert.Equal(t, "sin(x)", symdiff.SinOf(symdiff.MustParse[R]("x*1")).String())

	e, err := symdiff.Apply(symdiff.FuncCos, x())
	require.NoError(t, err)
	assert.Equal(t, "cos(x)", e.String())

	_, err = symdiff.Apply(symdiff.FuncName("tan"), x())
	assert.ErrorIs(t, err, symdiff.ErrUnknownFunction)
}

func TestAccessors(t *testing.T) {
	e := symdiff.MustParse[R]("x*sin(y)")
	b, ok := e.(*symdiff.BinOp[R])
	require.True(t, ok)
	assert.Equal(t, symdiff.OpMul, b.Op())
	assert.Equal(t, "x", b.Left().(*symdiff.Sym[R]).Name())

	f, ok := b.Right().(*symdiff.Func[R])
	require.True(t, ok)
	assert.Equal(t, symdiff.FuncSin, f.Name())
	assert.Equal(t, "y", f.Arg().String())

	n, ok := num(7).(*symdiff.Num[R])
	require.True(t, ok)
	assert.Equal(t, R(7), n.Value())
}

// ============================================================
// Equality
// ============================================================

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same constant", "3", "3", true},
		{"different constant", "3", "4", false},
		{"same variable", "x", "x", true},
		{"different variable", "x", "y", false},
		{"same shape", "x*sin(y)", "x * sin(y)", true},
		{"different operator", "x+y", "x-y", false},
		{"operand order", "x+y", "y+x", false},
		{"different function", "sin(x)", "cos(x)", false},
		{"constant vs variable", "1", "x", false},
		{"NaN constant", "x+NaN", "x+NaN", true},
		{"NaN vs number", "NaN", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := symdiff.MustParse[R](tt.a)
			b := symdiff.MustParse[R](tt.b)
			assert.Equal(t, tt.want, a.Equal(b))
		})
	}
}

func TestEqual_NaNComplex(t *testing.T) {
	nan := symdiff.Complex(complex(math.NaN(), 1))
	assert.True(t, symdiff.N(nan).Equal(symdiff.N(nan)))
	assert.False(t, symdiff.N(nan).Equal(symdiff.N(symdiff.Complex(complex(math.NaN(), 2)))))
	assert.True(t, symdiff.Real(math.NaN()).Equal(symdiff.Real(math.NaN())))
	assert.False(t, symdiff.Real(math.NaN()).Equal(0))
}

// ============================================================
// Substitution
// ============================================================

func TestSub_ReplacesVariable(t *testing.T) {
	e := symdiff.Sub(symdiff.MustParse[R]("x+y"), "x", num(2))
	assert.Equal(t, "(2 + y)", e.String())
}

func TestSub_DoesNotSimplify(t *testing.T) {
	e := symdiff.Sub(symdiff.MustParse[R]("x*y"), "y", num(1))
	assert.Equal(t, "(x * 1)", e.String())
}

func TestSub_WholeSubtree(t *testing.T) {
	e := symdiff.Sub(symdiff.MustParse[R]("sin(x)+x"), "x", symdiff.MustParse[R]("y^2"))
	assert.Equal(t, "(sin((y ^ 2)) + (y ^ 2))", e.String())
}

func TestSub_LeavesReturnedAsIs(t *testing.T) {
	c := num(3)
	assert.Same(t, c, c.Sub("x", y()))

	v := y()
	assert.Same(t, v, v.Sub("x", num(1)))
}

func TestSub_InputUnchanged(t *testing.T) {
	e := symdiff.MustParse[R]("x+y")
	_ = symdiff.Sub(e, "x", num(2))
	_ = symdiff.Diff(e, "x")
	_ = e.Simplify()
	assert.Equal(t, "(x + y)", e.String())
}

// ============================================================
// Free symbols
// ============================================================

func TestFreeSymbols(t *testing.T) {
	syms := symdiff.FreeSymbols(symdiff.MustParse[R]("x*sin(y)+2"))
	assert.Equal(t, map[string]struct{}{"x": {}, "y": {}}, syms)
	assert.Empty(t, symdiff.FreeSymbols(num(1)))
}
