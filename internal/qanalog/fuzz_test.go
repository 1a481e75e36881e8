package qanalog

import (
	"math/big"
	"testing"

	"github.com/agbru/qcalc/internal/algebra"
)

// FuzzQBinomialAlgorithms checks that every evaluation path produces the same
// polynomial, and that the naive path agrees with cyclo_generic at rational q.
func FuzzQBinomialAlgorithms(f *testing.F) {
	f.Add(uint8(4), uint8(2), int8(-1))
	f.Add(uint8(10), uint8(3), int8(2))
	f.Add(uint8(12), uint8(6), int8(1))
	f.Add(uint8(30), uint8(7), int8(0))
	f.Add(uint8(0), uint8(0), int8(5))

	f.Fuzz(func(t *testing.T, n, k uint8, q int8) {
		if n > 40 {
			return
		}
		ni, ki := int(n), int(k)

		var ref string
		for _, alg := range Algorithms() {
			v, _, err := QBinomialWith(algebra.ZZq, alg, ni, ki)
			if err != nil {
				t.Fatalf("%v(%d, %d): %v", alg, n, k, err)
			}
			if ref == "" {
				ref = v.String()
			} else if v.String() != ref {
				t.Fatalf("%v(%d, %d) = %s, want %s", alg, n, k, v, ref)
			}
		}

		x := big.NewRat(int64(q), 1)
		a, _, err := QBinomialWith(algebra.Rationals(), Naive, ni, ki, x)
		if err != nil {
			t.Fatalf("naive(%d, %d, %d): %v", n, k, q, err)
		}
		b, _, err := QBinomialWith(algebra.Rationals(), CycloGeneric, ni, ki, x)
		if err != nil {
			t.Fatalf("cyclo_generic(%d, %d, %d): %v", n, k, q, err)
		}
		if a.Cmp(b) != 0 {
			t.Fatalf("naive(%d, %d, %d) = %s, cyclo_generic = %s", n, k, q, a.RatString(), b.RatString())
		}
	})
}
