// Package classical computes the ordinary numbers that the q-analogues
// specialize to at q = 1. The -verify mode compares against them.
//
// The default backend is math/big. Building with -tags gmp switches to
// GNU MP through github.com/ncw/gmp.
package classical

import (
	"math/big"

	apperrors "github.com/agbru/qcalc/internal/errors"
)

// Factorial returns n!.
func Factorial(n int) (*big.Int, error) {
	if n < 0 {
		return nil, apperrors.NewInvalidArgument("argument (%d) must be a nonnegative integer", n)
	}
	return factorial(int64(n)), nil
}

// Binomial returns C(n, k), which is zero outside 0 <= k <= n.
func Binomial(n, k int) (*big.Int, error) {
	if n < 0 {
		return nil, apperrors.NewInvalidArgument("n must be nonnegative")
	}
	if k < 0 || k > n {
		return new(big.Int), nil
	}
	return binomial(int64(n), int64(min(k, n-k))), nil
}

// Catalan returns C(2n, n) / (n + 1).
func Catalan(n int) (*big.Int, error) {
	if n < 0 {
		return nil, apperrors.NewInvalidArgument("argument (%d) must be a nonnegative integer", n)
	}
	c := binomial(int64(2*n), int64(n))
	return c.Quo(c, big.NewInt(int64(n+1))), nil
}

// Integer returns n, the value of [n]_q at q = 1.
func Integer(n int) *big.Int { return big.NewInt(int64(n)) }
