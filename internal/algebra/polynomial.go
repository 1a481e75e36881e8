package algebra

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/agbru/qcalc/internal/poly"
)

// DefaultVariable is the name of the canonical indeterminate.
const DefaultVariable = "q"

// ZZq is the canonical ring of Laurent polynomials over the integers in q.
var ZZq = Polynomials(DefaultVariable)

// Laurent is the ring ZZ[v, 1/v] of Laurent polynomials with integer
// coefficients in one named indeterminate.
type Laurent struct {
	v string
}

// Polynomials returns the Laurent polynomial ring in the variable v.
func Polynomials(v string) Laurent { return Laurent{v: v} }

var _ PolynomialRing[poly.Poly] = Laurent{}

// Variable returns the name of the indeterminate.
func (r Laurent) Variable() string { return r.v }

func (r Laurent) Name() string {
	return fmt.Sprintf("Univariate Laurent Polynomial Ring in %s over Integer Ring", r.v)
}

func (r Laurent) Class() Class                 { return ClassPolynomial }
func (r Laurent) Zero() poly.Poly              { return poly.Zero(r.v) }
func (r Laurent) One() poly.Poly               { return poly.Constant(r.v, 1) }
func (r Laurent) Gen() poly.Poly               { return poly.Var(r.v) }
func (r Laurent) FromInt(n int64) poly.Poly    { return poly.Constant(r.v, n) }
func (r Laurent) FromBig(n *big.Int) poly.Poly { return poly.ConstantBig(r.v, n) }

func (r Laurent) Add(a, b poly.Poly) poly.Poly { return a.Add(b) }
func (r Laurent) Sub(a, b poly.Poly) poly.Poly { return a.Sub(b) }
func (r Laurent) Mul(a, b poly.Poly) poly.Poly { return a.Mul(b) }
func (r Laurent) Neg(a poly.Poly) poly.Poly    { return a.Neg() }

func (r Laurent) Pow(a poly.Poly, n int) (poly.Poly, error) {
	p, err := a.Pow(n)
	if errors.Is(err, poly.ErrNotInvertible) && a.IsZero() {
		return poly.Poly{}, ErrDivisionByZero
	}
	return p, err
}

// Div is exact division; the ring has no fractions.
func (r Laurent) Div(a, b poly.Poly) (poly.Poly, error) { return a.DivExact(b) }

func (r Laurent) FloorDiv(a, b poly.Poly) (poly.Poly, error) { return a.DivExact(b) }

func (r Laurent) IsZero(a poly.Poly) bool     { return a.IsZero() }
func (r Laurent) IsOne(a poly.Poly) bool      { return a.IsOne() }
func (r Laurent) Equal(a, b poly.Poly) bool   { return a.Equal(b) }
func (r Laurent) Key(a poly.Poly) string      { return r.v + ":" + a.String() }
func (r Laurent) Format(a poly.Poly) string   { return a.String() }

func (r Laurent) Cyclotomic(d int) (poly.Poly, error) { return poly.Cyclotomic(r.v, d) }

func (r Laurent) Compose(p, q poly.Poly) (poly.Poly, error) { return p.Compose(q) }
