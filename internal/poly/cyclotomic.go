package poly

import (
	"fmt"
	"math/big"
	"sync"
)

// cyclotomicCache holds the integer coefficients of Phi_d, ascending from
// degree 0, keyed by d. Entries are never evicted or mutated once stored.
var cyclotomicCache sync.Map // map[int][]*big.Int

// cyclotomicVar is the internal variable used while building coefficients.
const cyclotomicVar = "x"

// CyclotomicCoefficients returns the coefficients of the d-th cyclotomic
// polynomial in ascending degree order. The returned slice is a fresh copy.
func CyclotomicCoefficients(d int) ([]*big.Int, error) {
	if d < 1 {
		return nil, fmt.Errorf("cyclotomic index must be positive, got %d", d)
	}
	c := cyclotomic(d)
	out := make([]*big.Int, len(c))
	for i, x := range c {
		out[i] = new(big.Int).Set(x)
	}
	return out, nil
}

// Cyclotomic returns the d-th cyclotomic polynomial in the variable v.
func Cyclotomic(v string, d int) (Poly, error) {
	if d < 1 {
		return Poly{}, fmt.Errorf("cyclotomic index must be positive, got %d", d)
	}
	return FromBig(v, 0, cyclotomic(d)), nil
}

// cyclotomic computes Phi_d = (x^d - 1) / prod_{e | d, e < d} Phi_e.
func cyclotomic(d int) []*big.Int {
	if c, ok := cyclotomicCache.Load(d); ok {
		return c.([]*big.Int)
	}
	num := Monomial(cyclotomicVar, 1, d).Sub(Constant(cyclotomicVar, 1))
	den := Constant(cyclotomicVar, 1)
	for e := 1; e < d; e++ {
		if d%e == 0 {
			den = den.Mul(FromBig(cyclotomicVar, 0, cyclotomic(e)))
		}
	}
	phi, err := num.DivExact(den)
	if err != nil {
		// x^d - 1 is the product of Phi_e over all divisors e of d.
		panic(fmt.Sprintf("poly: cyclotomic(%d): %v", d, err))
	}
	c := make([]*big.Int, phi.Degree()+1)
	for i := range c {
		c[i] = phi.Coeff(i)
	}
	actual, _ := cyclotomicCache.LoadOrStore(d, c)
	return actual.([]*big.Int)
}
