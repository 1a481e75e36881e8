//go:build gmp

package classical

import (
	"math/big"

	"github.com/ncw/gmp"
)

// Backend names the arithmetic library in use.
const Backend = "gmp"

func factorial(n int64) *big.Int {
	acc := gmp.NewInt(1)
	for i := int64(2); i <= n; i++ {
		acc.Mul(acc, gmp.NewInt(i))
	}
	return toBig(acc)
}

// binomial uses the multiplicative formula; each partial product is itself
// a binomial coefficient, so the division is exact.
func binomial(n, k int64) *big.Int {
	acc := gmp.NewInt(1)
	for i := int64(1); i <= k; i++ {
		acc.Mul(acc, gmp.NewInt(n-k+i))
		acc.Quo(acc, gmp.NewInt(i))
	}
	return toBig(acc)
}

func toBig(x *gmp.Int) *big.Int {
	z, _ := new(big.Int).SetString(x.String(), 10)
	return z
}
