package qanalog

import (
	"fmt"
	"strings"

	"github.com/agbru/qcalc/internal/algebra"
	apperrors "github.com/agbru/qcalc/internal/errors"
)

// Algorithm identifies a q-binomial evaluation path.
type Algorithm int

const (
	// Auto lets SelectAlgorithm decide.
	Auto Algorithm = iota
	// Naive divides prod (1 - q^i) over the top range by the bottom range.
	Naive
	// CycloGeneric multiplies cyclotomic polynomials evaluated at q.
	CycloGeneric
	// CycloPolynomial multiplies cyclotomic polynomials of q's own ring.
	CycloPolynomial
)

// Selection thresholds for polynomial q. Naive is used when n <= NaiveMaxN
// or k <= n/NaiveKRatio. They were measured, not derived; changing them only
// affects speed.
const (
	NaiveMaxN   = 70
	NaiveKRatio = 4.0
)

var algorithmNames = map[Algorithm]string{
	Auto:            "auto",
	Naive:           "naive",
	CycloGeneric:    "cyclo_generic",
	CycloPolynomial: "cyclo_polynomial",
}

// String returns the canonical algorithm name.
func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Algorithms lists the concrete evaluation paths, without Auto.
func Algorithms() []Algorithm { return []Algorithm{Naive, CycloGeneric, CycloPolynomial} }

// ParseAlgorithm converts a canonical name into an Algorithm. Dashes are
// accepted in place of underscores.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if s == "" {
		return Auto, nil
	}
	for a, name := range algorithmNames {
		if name == s {
			return a, nil
		}
	}
	return Auto, apperrors.NewInvalidArgument("unknown algorithm %q", s)
}

// SelectAlgorithm picks the evaluation path for a ring class and arguments
// n >= 0, 0 <= k <= n/2.
func SelectAlgorithm(class algebra.Class, n, k int) Algorithm {
	switch class {
	case algebra.ClassPolynomial:
		if n <= NaiveMaxN || float64(k) <= float64(n)/NaiveKRatio {
			return Naive
		}
		return CycloPolynomial
	case algebra.ClassSymbolic:
		return CycloGeneric
	default:
		return Naive
	}
}

// QBinomial returns the Gaussian binomial coefficient [n choose k]_q. It is
// zero when k < 0 or k > n, and n must be nonnegative.
func QBinomial[T any](r algebra.Ring[T], n, k int, q ...T) (T, error) {
	v, _, err := QBinomialWith(r, Auto, n, k, q...)
	return v, err
}

// GaussianBinomial is QBinomial.
func GaussianBinomial[T any](r algebra.Ring[T], n, k int, q ...T) (T, error) {
	return QBinomial(r, n, k, q...)
}

// QBinomialWith evaluates [n choose k]_q with a forced algorithm, or with
// the selected one for Auto. It returns the path that produced the value,
// which differs from the requested one when the naive formula is singular
// at q and falls back to CycloGeneric.
func QBinomialWith[T any](r algebra.Ring[T], alg Algorithm, n, k int, q ...T) (T, Algorithm, error) {
	var zero T
	if n < 0 {
		return zero, alg, apperrors.NewInvalidArgument("n must be nonnegative")
	}
	if k < 0 || k > n {
		return r.Zero(), alg, nil
	}
	x, err := resolveQ(r, q)
	if err != nil {
		return zero, alg, err
	}
	k = min(n-k, k)

	if alg == Auto {
		alg = SelectAlgorithm(algebra.Classify(r), n, k)
	}
	switch alg {
	case Naive:
		return binomialNaive(r, n, k, x)
	case CycloGeneric:
		v, err := binomialCycloGeneric(r, n, k, x)
		return v, CycloGeneric, err
	case CycloPolynomial:
		pr, ok := r.(algebra.PolynomialRing[T])
		if !ok {
			return zero, alg, apperrors.NewInvalidArgument("%s requires a polynomial ring, got %s", CycloPolynomial, r.Name())
		}
		v, err := binomialCycloPolynomial(pr, n, k, x)
		return v, CycloPolynomial, err
	default:
		return zero, alg, apperrors.NewInvalidArgument("unknown algorithm %s", alg)
	}
}

// survives reports whether Phi_d divides [n choose k]_q, that is whether
// floor(n/d) differs from floor(k/d) + floor((n-k)/d).
func survives(n, k, d int) bool {
	return n/d != k/d+(n-k)/d
}

func binomialNaive[T any](r algebra.Ring[T], n, k int, q T) (T, Algorithm, error) {
	var zero T
	oneMinusPow := func(i int) (T, error) {
		qi, err := r.Pow(q, i)
		if err != nil {
			return zero, err
		}
		return r.Sub(r.One(), qi), nil
	}

	den := r.One()
	for i := 1; i <= k; i++ {
		f, err := oneMinusPow(i)
		if err != nil {
			return zero, Naive, err
		}
		den = r.Mul(den, f)
	}
	if r.IsZero(den) {
		// q is a root of unity of order <= k.
		v, err := binomialCycloGeneric(r, n, k, q)
		return v, CycloGeneric, err
	}

	num := r.One()
	for i := n - k + 1; i <= n; i++ {
		f, err := oneMinusPow(i)
		if err != nil {
			return zero, Naive, err
		}
		num = r.Mul(num, f)
	}
	v, err := algebra.Quotient(r, num, den)
	if err != nil {
		return zero, Naive, apperrors.WrapError(err, "q_binomial(%d, %d)", n, k)
	}
	return v, Naive, nil
}

func binomialCycloGeneric[T any](r algebra.Ring[T], n, k int, q T) (T, error) {
	prod := r.One()
	for d := 2; d <= n; d++ {
		if !survives(n, k, d) {
			continue
		}
		phi, err := algebra.Cyclotomic(r, d, q)
		if err != nil {
			var zero T
			return zero, err
		}
		prod = r.Mul(prod, phi)
	}
	return prod, nil
}

func binomialCycloPolynomial[T any](r algebra.PolynomialRing[T], n, k int, q T) (T, error) {
	var zero T
	compose := !r.Equal(q, r.Gen())
	prod := r.One()
	for d := 2; d <= n; d++ {
		if !survives(n, k, d) {
			continue
		}
		phi, err := r.Cyclotomic(d)
		if err != nil {
			return zero, err
		}
		if compose {
			if phi, err = r.Compose(phi, q); err != nil {
				return zero, err
			}
		}
		prod = r.Mul(prod, phi)
	}
	return prod, nil
}
