package algebra

import "math/big"

// Rational is the field of rational numbers over *big.Rat. It also serves
// integer arguments.
type Rational struct{}

// Rationals returns the rational field.
func Rationals() Rational { return Rational{} }

var _ Ring[*big.Rat] = Rational{}

func (Rational) Name() string                  { return "Rational Field" }
func (Rational) Class() Class                  { return ClassOther }
func (Rational) Zero() *big.Rat                { return new(big.Rat) }
func (Rational) One() *big.Rat                 { return big.NewRat(1, 1) }
func (Rational) FromInt(n int64) *big.Rat      { return new(big.Rat).SetInt64(n) }
func (Rational) FromBig(n *big.Int) *big.Rat   { return new(big.Rat).SetInt(n) }
func (Rational) Add(a, b *big.Rat) *big.Rat    { return new(big.Rat).Add(a, b) }
func (Rational) Sub(a, b *big.Rat) *big.Rat    { return new(big.Rat).Sub(a, b) }
func (Rational) Mul(a, b *big.Rat) *big.Rat    { return new(big.Rat).Mul(a, b) }
func (Rational) Neg(a *big.Rat) *big.Rat       { return new(big.Rat).Neg(a) }
func (Rational) IsZero(a *big.Rat) bool        { return a.Sign() == 0 }
func (Rational) IsOne(a *big.Rat) bool         { return a.IsInt() && a.Num().IsInt64() && a.Num().Int64() == 1 }
func (Rational) Equal(a, b *big.Rat) bool      { return a.Cmp(b) == 0 }
func (Rational) Key(a *big.Rat) string         { return a.RatString() }
func (Rational) Format(a *big.Rat) string      { return a.RatString() }

func (r Rational) Pow(a *big.Rat, n int) (*big.Rat, error) { return fieldPow(r, a, n) }

func (Rational) Div(a, b *big.Rat) (*big.Rat, error) {
	if b.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return new(big.Rat).Quo(a, b), nil
}

// FloorDiv is exact division in a field.
func (r Rational) FloorDiv(a, b *big.Rat) (*big.Rat, error) { return r.Div(a, b) }
