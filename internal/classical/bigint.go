//go:build !gmp

package classical

import "math/big"

// Backend names the arithmetic library in use.
const Backend = "math/big"

func factorial(n int64) *big.Int {
	if n < 2 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, n)
}

func binomial(n, k int64) *big.Int { return new(big.Int).Binomial(n, k) }
