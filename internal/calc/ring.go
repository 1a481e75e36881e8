package calc

import (
	"math/big"
	"strings"

	"github.com/agbru/qcalc/internal/algebra"
	"github.com/agbru/qcalc/internal/combinat"
	"github.com/agbru/qcalc/internal/poly"
	"github.com/agbru/qcalc/internal/qanalog"
	"github.com/agbru/qcalc/internal/symbolic"
)

// outcome is a formatted value together with its specialization at q = 1,
// when the value admits one.
type outcome struct {
	value       string
	fingerprint string
	algorithm   string
	atOne       *big.Int
}

// evaluator is a ring with q bound, erased to a non-generic interface so a
// ring chosen at run time can be dispatched on.
type evaluator interface {
	ring() string
	qInt(n int) (outcome, error)
	qFactorial(n int) (outcome, error)
	qBinomial(alg qanalog.Algorithm, n, k int) (outcome, error)
	qCatalan(n int) (outcome, error)
	qJordan(t combinat.Partition) (outcome, error)
}

type bound[T any] struct {
	r algebra.Ring[T]
	q []T
	// atOne specializes a value to q = 1; nil when q is a number other than 1.
	atOne func(T) (*big.Int, bool)
	// fingerprint replaces Key when the ring has no canonical form.
	fingerprint func(T) string
}

var _ evaluator = bound[*big.Rat]{}

func (b bound[T]) ring() string { return b.r.Name() }

func (b bound[T]) wrap(v T, err error) (outcome, error) {
	if err != nil {
		return outcome{}, err
	}
	o := outcome{value: b.r.Format(v), fingerprint: b.r.Key(v)}
	if b.fingerprint != nil {
		o.fingerprint = b.fingerprint(v)
	}
	if b.atOne != nil {
		if x, ok := b.atOne(v); ok {
			o.atOne = x
		}
	}
	return o, nil
}

func (b bound[T]) qInt(n int) (outcome, error) { return b.wrap(qanalog.QInt(b.r, n, b.q...)) }

func (b bound[T]) qFactorial(n int) (outcome, error) {
	return b.wrap(qanalog.QFactorial(b.r, n, b.q...))
}

func (b bound[T]) qCatalan(n int) (outcome, error) { return b.wrap(qanalog.QCatalan(b.r, n, b.q...)) }

func (b bound[T]) qJordan(t combinat.Partition) (outcome, error) {
	return b.wrap(qanalog.QJordan(b.r, t, b.q...))
}

func (b bound[T]) qBinomial(alg qanalog.Algorithm, n, k int) (outcome, error) {
	v, used, err := qanalog.QBinomialWith(b.r, alg, n, k, b.q...)
	o, err := b.wrap(v, err)
	o.algorithm = used.String()
	return o, err
}

func polynomialEvaluator(v string) evaluator {
	return bound[poly.Poly]{
		r: algebra.Polynomials(v),
		atOne: func(p poly.Poly) (*big.Int, bool) {
			x, err := p.EvalInt(big.NewInt(1))
			return x, err == nil
		},
	}
}

func symbolicEvaluator(v string) evaluator {
	return bound[symbolic.Expr]{
		r: algebra.Expressions(v),
		atOne: func(e symbolic.Expr) (*big.Int, bool) {
			x, ok := e.Subs(v, symbolic.N(1)).Eval()
			if !ok || !x.IsInt() {
				return nil, false
			}
			return new(big.Int).Set(x.Num()), true
		},
		fingerprint: func(e symbolic.Expr) string { return sampleFingerprint(e, v) },
	}
}

// samplePoints are away from every root of unity, where the q-analogue
// formulas have their poles.
var samplePoints = []int64{2, 3, 5}

// sampleFingerprint identifies a rational function of v by its values at
// samplePoints, so differently arranged but equal expressions compare equal.
func sampleFingerprint(e symbolic.Expr, v string) string {
	parts := make([]string, len(samplePoints))
	for i, x := range samplePoints {
		val, ok := e.Subs(v, symbolic.N(x)).Eval()
		if !ok {
			return e.String()
		}
		parts[i] = val.RatString()
	}
	return v + "@" + strings.Join(parts, ",")
}

func rationalEvaluator(q *big.Rat) evaluator {
	b := bound[*big.Rat]{r: algebra.Rationals(), q: []*big.Rat{q}}
	if q.Cmp(big.NewRat(1, 1)) == 0 {
		b.atOne = func(x *big.Rat) (*big.Int, bool) {
			if !x.IsInt() {
				return nil, false
			}
			return new(big.Int).Set(x.Num()), true
		}
	}
	return b
}

func gaussianEvaluator(q algebra.Gaussian) evaluator {
	return bound[algebra.Gaussian]{r: algebra.GaussianRationals(), q: []algebra.Gaussian{q}}
}

func complexEvaluator(q complex128) evaluator {
	return bound[complex128]{r: algebra.Complexes(algebra.DefaultTolerance), q: []complex128{q}}
}
