package algebra

import (
	"fmt"
	"math"
	"math/big"
	"math/cmplx"
)

// DefaultTolerance is the zero-test tolerance of Complexes(0).
const DefaultTolerance = 1e-9

// ComplexField is the field of complex128 numbers. Zero and equality tests use
// an absolute tolerance, so primitive roots of unity make the naive
// q-binomial denominator vanish as they do exactly.
type ComplexField struct {
	eps float64
}

// Complexes returns the complex field with tolerance eps (DefaultTolerance
// when eps <= 0).
func Complexes(eps float64) ComplexField {
	if eps <= 0 {
		eps = DefaultTolerance
	}
	return ComplexField{eps: eps}
}

// RootOfUnity returns exp(2*pi*i/m).
func RootOfUnity(m int) complex128 {
	return cmplx.Rect(1, 2*math.Pi/float64(m))
}

var _ Ring[complex128] = ComplexField{}

func (f ComplexField) Name() string {
	return fmt.Sprintf("Complex Field with tolerance %g", f.eps)
}

func (ComplexField) Class() Class               { return ClassOther }
func (ComplexField) Zero() complex128           { return 0 }
func (ComplexField) One() complex128            { return 1 }
func (ComplexField) FromInt(n int64) complex128 { return complex(float64(n), 0) }

func (ComplexField) FromBig(n *big.Int) complex128 {
	f, _ := new(big.Float).SetInt(n).Float64()
	return complex(f, 0)
}

func (ComplexField) Add(a, b complex128) complex128 { return a + b }
func (ComplexField) Sub(a, b complex128) complex128 { return a - b }
func (ComplexField) Mul(a, b complex128) complex128 { return a * b }
func (ComplexField) Neg(a complex128) complex128    { return -a }

func (f ComplexField) Pow(a complex128, n int) (complex128, error) { return fieldPow(f, a, n) }

func (f ComplexField) Div(a, b complex128) (complex128, error) {
	if f.IsZero(b) {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

func (ComplexField) FloorDiv(a, b complex128) (complex128, error) { return 0, ErrUnsupported }

func (f ComplexField) IsZero(a complex128) bool   { return cmplx.Abs(a) <= f.eps }
func (f ComplexField) IsOne(a complex128) bool    { return f.IsZero(a - 1) }
func (f ComplexField) Equal(a, b complex128) bool { return f.IsZero(a - b) }

// Key rounds both parts to the tolerance so that equal values share a key.
func (f ComplexField) Key(a complex128) string {
	digits := max(0, int(math.Ceil(-math.Log10(f.eps))))
	re, im := f.clean(real(a)), f.clean(imag(a))
	return fmt.Sprintf("(%.*f%+.*fi)", digits, re, digits, im)
}

func (f ComplexField) Format(a complex128) string {
	return fmt.Sprintf("%v", complex(f.clean(real(a)), f.clean(imag(a))))
}

func (f ComplexField) clean(x float64) float64 {
	if math.Abs(x) <= f.eps {
		return 0
	}
	return x
}
