package symdiff_test

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/njchilds90/symdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// ============================================================
// Eval tests
// ============================================================

func TestEvaluate(t *testing.T) {
	tests := []struct {
		input string
		vars  map[string]R
		want  R
	}{
		{"x*y+5", map[string]R{"x": 3, "y": 2}, 11},
		{"x*y", map[string]R{"x": 10, "y": 12}, 120},
		{"x^2", map[string]R{"x": 4}, 16},
		{"x-y", map[string]R{"x": 1, "y": 3}, -2},
		{"x/y", map[string]R{"x": 1, "y": 4}, 0.25},
		{"sin(x)", map[string]R{"x": 0}, 0},
		{"cos(x)", map[string]R{"x": 0}, 1},
		{"exp(x)", map[string]R{"x": 0}, 1},
		{"ln(x)", map[string]R{"x": 1}, 0},
		{"2+3", nil, 5},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := symdiff.Evaluate(symdiff.MustParse[R](tt.input), tt.vars)
			require.NoError(t, err)
			assert.InDelta(t, float64(tt.want), float64(got), 1e-12)
		})
	}
}

func TestEvaluate_ExtraBindingsIgnored(t *testing.T) {
	got, err := symdiff.Evaluate(symdiff.MustParse[R]("x+1"), map[string]R{"x": 1, "y": 100})
	require.NoError(t, err)
	assert.Equal(t, R(2), got)
}

func TestEvaluate_UndefinedVariable(t *testing.T) {
	_, err := symdiff.Evaluate(symdiff.MustParse[R]("x*y"), map[string]R{"x": 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, symdiff.ErrUndefinedVariable)

	var uv *symdiff.UndefinedVariableError
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, "y", uv.Name)
	assert.Equal(t, "undefined variable: y", err.Error())
}

func TestEvaluate_RealDivisionByZero(t *testing.T) {
	got, err := symdiff.Evaluate(symdiff.MustParse[R]("1/x"), map[string]R{"x": 0})
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(got), 1))

	got, err = symdiff.Evaluate(symdiff.MustParse[R]("0/x"), map[string]R{"x": 0})
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(got), 1))
}

func TestEvaluate_LogDomainDiagnostic(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	env := symdiff.NewEnv(map[string]R{"x": -1}, zap.New(core))

	got, err := symdiff.MustParse[R]("ln(x)").Eval(env)
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(got), -1))

	diags := env.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, symdiff.DiagLogDomain, diags[0].Kind)
	assert.Equal(t, symdiff.FuncLn, diags[0].Func)
	assert.Equal(t, "-1", diags[0].Arg)
	assert.Equal(t, "-Inf", diags[0].Sentinel)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "logarithm of zero or negative number is undefined", entries[0].Message)
	assert.Equal(t, "ln", entries[0].ContextMap()["func"])
}

func TestEvaluate_LogOfZeroKeepsGoing(t *testing.T) {
	env := symdiff.NewEnv(map[string]R{"x": 0}, nil)
	got, err := symdiff.MustParse[R]("ln(x)+ln(x)").Eval(env)
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(got), -1))
	assert.Len(t, env.Diagnostics(), 2)
}

func TestEnv_Lookup(t *testing.T) {
	env := symdiff.NewEnv(map[string]R{"x": 2}, nil)
	v, err := env.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, R(2), v)

	_, err = env.Lookup("y")
	assert.ErrorIs(t, err, symdiff.ErrUndefinedVariable)
	assert.Empty(t, env.Diagnostics())
}

// ============================================================
// Complex domain
// ============================================================

type C = symdiff.Complex

func TestEvaluate_Complex(t *testing.T) {
	got, err := symdiff.Evaluate(symdiff.MustParse[C]("x*y+5"), map[string]C{"x": 1i, "y": 1i})
	require.NoError(t, err)
	assert.Equal(t, C(4), got)
}

func TestEvaluate_ComplexDivisionByZero(t *testing.T) {
	_, err := symdiff.Evaluate(symdiff.MustParse[C]("x/y"), map[string]C{"x": 1, "y": 0})
	assert.ErrorIs(t, err, symdiff.ErrDivisionByZero)
}

func TestEvaluate_ComplexLogOfNegative(t *testing.T) {
	env := symdiff.NewEnv(map[string]C{"x": -1}, nil)
	got, err := symdiff.MustParse[C]("ln(x)").Eval(env)
	require.NoError(t, err)
	assert.InDelta(t, 0, cmplx.Abs(got.Complex128()-complex(0, math.Pi)), 1e-12)
	assert.Empty(t, env.Diagnostics())
}
