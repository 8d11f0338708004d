package symdiff

import (
	"math"
	"math/cmplx"
	"strconv"
)

// ============================================================
// Scalar: numeric domain capability
// ============================================================

// Scalar is the capability set a constant type must supply. Methods are
// called on values, identities on the zero value (var z T; z.One()).
type Scalar[T any] interface {
	comparable
	Zero() T
	One() T
	Add(T) T
	Sub(T) T
	Mul(T) T
	// Quo divides by d. Each domain decides what division by zero means.
	Quo(d T) (T, error)
	Pow(T) T
	Sin() T
	Cos() T
	Exp() T
	// Ln reports ok=false when the argument is outside the domain; the
	// returned value is then a sentinel.
	Ln() (v T, ok bool)
	Parse(s string) (T, error)
	String() string
	// Equal is value equality under which NaN equals NaN.
	Equal(T) bool
}

func zero[T Scalar[T]]() T { var z T; return z.Zero() }
func one[T Scalar[T]]() T  { var z T; return z.One() }
func negOne[T Scalar[T]]() T {
	var z T
	return z.Zero().Sub(z.One())
}

// ============================================================
// Real (float64)
// ============================================================

type Real float64

func (Real) Zero() Real         { return 0 }
func (Real) One() Real          { return 1 }
func (r Real) Add(o Real) Real  { return r + o }
func (r Real) Sub(o Real) Real  { return r - o }
func (r Real) Mul(o Real) Real  { return r * o }
func (r Real) Pow(o Real) Real  { return Real(math.Pow(float64(r), float64(o))) }
func (r Real) Sin() Real        { return Real(math.Sin(float64(r))) }
func (r Real) Cos() Real        { return Real(math.Cos(float64(r))) }
func (r Real) Exp() Real        { return Real(math.Exp(float64(r))) }
func (r Real) Float64() float64 { return float64(r) }
func (r Real) String() string   { return strconv.FormatFloat(float64(r), 'g', -1, 64) }

// Quo never fails on reals: any division by zero yields +Inf.
func (r Real) Quo(d Real) (Real, error) {
	if d == 0 {
		return Real(math.Inf(1)), nil
	}
	return r / d, nil
}

func (r Real) Equal(o Real) bool {
	return r == o || (math.IsNaN(float64(r)) && math.IsNaN(float64(o)))
}

func (r Real) Ln() (Real, bool) {
	if r <= 0 {
		return Real(math.Inf(-1)), false
	}
	return Real(math.Log(float64(r))), true
}

func (Real) Parse(s string) (Real, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return Real(f), nil
}

// ============================================================
// Complex (complex128)
// ============================================================

type Complex complex128

func (Complex) Zero() Complex            { return 0 }
func (Complex) One() Complex             { return 1 }
func (c Complex) Add(o Complex) Complex  { return c + o }
func (c Complex) Sub(o Complex) Complex  { return c - o }
func (c Complex) Mul(o Complex) Complex  { return c * o }
func (c Complex) Pow(o Complex) Complex  { return Complex(cmplx.Pow(complex128(c), complex128(o))) }
func (c Complex) Sin() Complex           { return Complex(cmplx.Sin(complex128(c))) }
func (c Complex) Cos() Complex           { return Complex(cmplx.Cos(complex128(c))) }
func (c Complex) Exp() Complex           { return Complex(cmplx.Exp(complex128(c))) }
func (c Complex) Complex128() complex128 { return complex128(c) }
func (c Complex) String() string         { return strconv.FormatComplex(complex128(c), 'g', -1, 128) }

// Quo has no infinity to fall back on, so division by zero is an error.
func (c Complex) Quo(d Complex) (Complex, error) {
	if cmplx.Abs(complex128(d)) == 0 {
		return 0, ErrDivisionByZero
	}
	return c / d, nil
}

func (c Complex) Equal(o Complex) bool {
	return Real(real(c)).Equal(Real(real(o))) && Real(imag(c)).Equal(Real(imag(o)))
}

// Ln is the principal complex logarithm; every argument is in its domain.
func (c Complex) Ln() (Complex, bool) { return Complex(cmplx.Log(complex128(c))), true }

func (Complex) Parse(s string) (Complex, error) {
	v, err := strconv.ParseComplex(s, 128)
	if err != nil {
		return 0, err
	}
	return Complex(v), nil
}
