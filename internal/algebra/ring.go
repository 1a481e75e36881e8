package algebra

import (
	"errors"
	"math/big"

	"github.com/agbru/qcalc/internal/poly"
)

var (
	// ErrDivisionByZero is returned when dividing by, or inverting, zero.
	ErrDivisionByZero = poly.ErrDivisionByZero
	// ErrNotExact is returned when a quotient does not exist in a ring without fractions.
	ErrNotExact = poly.ErrNotExact
	// ErrNotInvertible is returned for a negative power of a non-unit.
	ErrNotInvertible = poly.ErrNotInvertible
	// ErrUnsupported is returned by operations a ring does not provide.
	ErrUnsupported = errors.New("operation not supported by ring")
)

// Class is the closed set of value families that q-binomial algorithm
// selection distinguishes.
type Class int

const (
	// ClassPolynomial marks univariate integer polynomial rings.
	ClassPolynomial Class = iota
	// ClassSymbolic marks symbolic expression spaces.
	ClassSymbolic
	// ClassOther marks numeric rings (rationals, complexes, ...).
	ClassOther
)

// String returns the lower-case name of the class.
func (c Class) String() string {
	switch c {
	case ClassPolynomial:
		return "polynomial"
	case ClassSymbolic:
		return "symbolic"
	default:
		return "other"
	}
}

// Ring is a commutative ring with the operations the q-analogue formulas
// need. Implementations must be safe for concurrent use; elements are never
// mutated.
type Ring[T any] interface {
	// Name describes the ring, e.g. "Rational Field".
	Name() string
	// Class classifies the ring for algorithm selection.
	Class() Class

	Zero() T
	One() T
	FromInt(n int64) T
	FromBig(n *big.Int) T

	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Neg(a T) T

	// Pow returns a^n. Negative n requires a to be invertible.
	Pow(a T, n int) (T, error)
	// Div returns a/b, possibly fractional.
	Div(a, b T) (T, error)
	// FloorDiv returns the exact integral quotient a//b, or ErrUnsupported.
	FloorDiv(a, b T) (T, error)

	IsZero(a T) bool
	IsOne(a T) bool
	Equal(a, b T) bool

	// Key returns a canonical string that identifies a within the ring.
	Key(a T) string
	// Format renders a for humans.
	Format(a T) string
}

// Generator is implemented by rings with a distinguished indeterminate.
type Generator[T any] interface {
	Gen() T
}

// PolynomialRing is a ring of univariate polynomials in its generator.
type PolynomialRing[T any] interface {
	Ring[T]
	Generator[T]
	// Cyclotomic returns the d-th cyclotomic polynomial as a ring element.
	Cyclotomic(d int) (T, error)
	// Compose returns p(q).
	Compose(p, q T) (T, error)
}

// Classify returns the class of r.
func Classify[T any](r Ring[T]) Class { return r.Class() }

// EvalCoefficients evaluates the integer polynomial with the given ascending
// coefficients at x. Terms are summed from the highest degree down, so
// symbolic values come out expanded in descending powers.
func EvalCoefficients[T any](r Ring[T], coeffs []*big.Int, x T) T {
	powers := make([]T, len(coeffs))
	acc := r.One()
	for i := range coeffs {
		powers[i] = acc
		acc = r.Mul(acc, x)
	}
	sum := r.Zero()
	for i := len(coeffs) - 1; i >= 0; i-- {
		if coeffs[i].Sign() == 0 {
			continue
		}
		sum = r.Add(sum, r.Mul(r.FromBig(coeffs[i]), powers[i]))
	}
	return sum
}

// Cyclotomic returns Phi_d evaluated at x in r.
func Cyclotomic[T any](r Ring[T], d int, x T) (T, error) {
	coeffs, err := poly.CyclotomicCoefficients(d)
	if err != nil {
		var zero T
		return zero, err
	}
	return EvalCoefficients(r, coeffs, x), nil
}

// Quotient divides exactly when the ring supports it and falls back to
// ordinary division otherwise.
func Quotient[T any](r Ring[T], a, b T) (T, error) {
	q, err := r.FloorDiv(a, b)
	if errors.Is(err, ErrUnsupported) {
		return r.Div(a, b)
	}
	return q, err
}

// powBySquaring computes a^n for n >= 0 with binary exponentiation.
func powBySquaring[T any](r Ring[T], a T, n int) T {
	result := r.One()
	base := a
	for n > 0 {
		if n&1 == 1 {
			result = r.Mul(result, base)
		}
		n >>= 1
		if n > 0 {
			base = r.Mul(base, base)
		}
	}
	return result
}

// fieldPow is Pow for rings where every non-zero element is invertible.
func fieldPow[T any](r Ring[T], a T, n int) (T, error) {
	if n < 0 {
		if r.IsZero(a) {
			var zero T
			return zero, ErrDivisionByZero
		}
		inv, err := r.Div(r.One(), a)
		if err != nil {
			var zero T
			return zero, err
		}
		return powBySquaring(r, inv, -n), nil
	}
	return powBySquaring(r, a, n), nil
}
