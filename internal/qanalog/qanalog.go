package qanalog

import (
	"github.com/agbru/qcalc/internal/algebra"
	apperrors "github.com/agbru/qcalc/internal/errors"
)

// resolveQ returns the explicit q when given, or the generator of r.
func resolveQ[T any](r algebra.Ring[T], q []T) (T, error) {
	if len(q) > 0 {
		return q[0], nil
	}
	if g, ok := r.(algebra.Generator[T]); ok {
		return g.Gen(), nil
	}
	var zero T
	return zero, apperrors.NewInvalidArgument("%s has no generator; q must be given explicitly", r.Name())
}

// geometricSum returns 1 + q + ... + q^(n-1) for n >= 0.
func geometricSum[T any](r algebra.Ring[T], q T, n int) T {
	sum := r.Zero()
	for range n {
		sum = r.Add(r.Mul(sum, q), r.One())
	}
	return sum
}

// QInt returns the q-analogue of the integer n,
//
//	[n]_q = 1 + q + ... + q^(n-1)          for n >= 0
//	[n]_q = -q^n (1 + q + ... + q^(-n-1))  for n < 0
//
// which equals (q^n - 1)/(q - 1) and stays defined at q = 1. The optional
// p replaces the generator of r.
func QInt[T any](r algebra.Ring[T], n int, p ...T) (T, error) {
	q, err := resolveQ(r, p)
	if err != nil {
		return q, err
	}
	if n >= 0 {
		return geometricSum(r, q, n), nil
	}
	qn, err := r.Pow(q, n)
	if err != nil {
		var zero T
		return zero, apperrors.WrapError(err, "q_int(%d)", n)
	}
	return r.Neg(r.Mul(qn, geometricSum(r, q, -n))), nil
}

// QFactorial returns [1]_q [2]_q ... [n]_q. The empty product [0]_q! is 1.
func QFactorial[T any](r algebra.Ring[T], n int, p ...T) (T, error) {
	if n < 0 {
		var zero T
		return zero, apperrors.NewInvalidArgument("argument (%d) must be a nonnegative integer", n)
	}
	q, err := resolveQ(r, p)
	if err != nil {
		return q, err
	}
	// [i]_q = q*[i-1]_q + 1
	prod, qi := r.One(), r.Zero()
	for range n {
		qi = r.Add(r.Mul(qi, q), r.One())
		prod = r.Mul(prod, qi)
	}
	return prod, nil
}

// QCatalan returns the q-Catalan number
//
//	prod_{j=n+2}^{2n} [j]_q / prod_{j=2}^{n} [j]_q
//
// which at q = 1 is the Catalan number C_n.
func QCatalan[T any](r algebra.Ring[T], n int, p ...T) (T, error) {
	var zero T
	if n < 0 {
		return zero, apperrors.NewInvalidArgument("argument (%d) must be a nonnegative integer", n)
	}
	q, err := resolveQ(r, p)
	if err != nil {
		return zero, err
	}
	num, den := r.One(), r.One()
	for j := n + 2; j <= 2*n; j++ {
		num = r.Mul(num, geometricSum(r, q, j))
	}
	for j := 2; j <= n; j++ {
		den = r.Mul(den, geometricSum(r, q, j))
	}
	res, err := algebra.Quotient(r, num, den)
	if err != nil {
		return zero, apperrors.WrapError(err, "q_catalan_number(%d)", n)
	}
	return res, nil
}
