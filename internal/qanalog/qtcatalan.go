package qanalog

import (
	"github.com/agbru/qcalc/internal/combinat"
	apperrors "github.com/agbru/qcalc/internal/errors"
	"github.com/agbru/qcalc/internal/poly"
)

// QTCatalan returns the q,t-Catalan number
//
//	sum over Dyck words w of semilength n of q^area(w) t^bounce(w)
//
// as a bivariate polynomial in q and t. It is symmetric in q and t, and at
// t = 1 it specializes to the Carlitz-Riordan q-Catalan number.
func QTCatalan(n int) (poly.Bivariate, error) {
	if n < 0 {
		return poly.Bivariate{}, apperrors.NewInvalidArgument("argument (%d) must be a nonnegative integer", n)
	}
	counts := make(map[poly.Exponent]int)
	for w := range combinat.DyckWords(n) {
		counts[poly.Exponent{w.Area(), w.Bounce()}]++
	}
	return poly.BivariateFromCounts("q", "t", counts), nil
}
