package poly

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

var (
	// ErrDivisionByZero is returned when dividing by the zero polynomial.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNotExact is returned when a division has a non-zero remainder over ZZ.
	ErrNotExact = errors.New("division is not exact")
	// ErrNotInvertible is returned when a negative power of a non-unit is requested.
	ErrNotInvertible = errors.New("element is not invertible")
)

// Poly is an immutable Laurent polynomial with integer coefficients in a
// single named indeterminate.
//
// The coefficient slice is trimmed: it is either empty (the zero polynomial)
// or both its first and last entries are non-zero. c[i] is the coefficient of
// v^(low+i).
type Poly struct {
	v   string
	low int
	c   []*big.Int
}

// Term is a single monomial coeff*v^Exp of a polynomial.
type Term struct {
	Exp   int
	Coeff *big.Int
}

// New builds a polynomial from coefficients in ascending degree starting at 0.
func New(v string, coeffs ...int64) Poly {
	c := make([]*big.Int, len(coeffs))
	for i, x := range coeffs {
		c[i] = big.NewInt(x)
	}
	return normalize(v, 0, c)
}

// FromBig builds v^low * sum(coeffs[i] * v^i). The coefficients are copied.
func FromBig(v string, low int, coeffs []*big.Int) Poly {
	c := make([]*big.Int, len(coeffs))
	for i, x := range coeffs {
		c[i] = new(big.Int).Set(x)
	}
	return normalize(v, low, c)
}

// Zero returns the zero polynomial in v.
func Zero(v string) Poly { return Poly{v: v} }

// Constant returns the constant polynomial n.
func Constant(v string, n int64) Poly { return New(v, n) }

// ConstantBig returns the constant polynomial n.
func ConstantBig(v string, n *big.Int) Poly { return FromBig(v, 0, []*big.Int{n}) }

// Monomial returns coeff*v^exp.
func Monomial(v string, coeff int64, exp int) Poly {
	return normalize(v, exp, []*big.Int{big.NewInt(coeff)})
}

// Var returns the indeterminate v itself.
func Var(v string) Poly { return Monomial(v, 1, 1) }

func normalize(v string, low int, c []*big.Int) Poly {
	hi := len(c)
	for hi > 0 && c[hi-1].Sign() == 0 {
		hi--
	}
	lo := 0
	for lo < hi && c[lo].Sign() == 0 {
		lo++
	}
	if lo == hi {
		return Poly{v: v}
	}
	return Poly{v: v, low: low + lo, c: c[lo:hi]}
}

// Variable returns the name of the indeterminate.
func (p Poly) Variable() string { return p.v }

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool { return len(p.c) == 0 }

// IsOne reports whether p is the constant 1.
func (p Poly) IsOne() bool {
	return len(p.c) == 1 && p.low == 0 && p.c[0].Cmp(big.NewInt(1)) == 0
}

// IsMonomial reports whether p has exactly one term.
func (p Poly) IsMonomial() bool { return len(p.c) == 1 }

// IsGenerator reports whether p is exactly the indeterminate.
func (p Poly) IsGenerator() bool {
	return len(p.c) == 1 && p.low == 1 && p.c[0].Cmp(big.NewInt(1)) == 0
}

// Degree returns the highest exponent of p. The zero polynomial has degree -1.
func (p Poly) Degree() int {
	if p.IsZero() {
		return -1
	}
	return p.low + len(p.c) - 1
}

// Valuation returns the lowest exponent of p (0 for the zero polynomial).
func (p Poly) Valuation() int { return p.low }

// Coeff returns a copy of the coefficient of v^e.
func (p Poly) Coeff(e int) *big.Int {
	i := e - p.low
	if i < 0 || i >= len(p.c) {
		return new(big.Int)
	}
	return new(big.Int).Set(p.c[i])
}

// Terms returns the non-zero terms in ascending exponent order.
func (p Poly) Terms() []Term {
	terms := make([]Term, 0, len(p.c))
	for i, c := range p.c {
		if c.Sign() != 0 {
			terms = append(terms, Term{Exp: p.low + i, Coeff: new(big.Int).Set(c)})
		}
	}
	return terms
}

// Equal reports whether p and o are the same polynomial in the same variable.
func (p Poly) Equal(o Poly) bool {
	if p.v != o.v || p.low != o.low || len(p.c) != len(o.c) {
		return false
	}
	for i := range p.c {
		if p.c[i].Cmp(o.c[i]) != 0 {
			return false
		}
	}
	return true
}

// Add returns p + o.
func (p Poly) Add(o Poly) Poly {
	if p.IsZero() {
		return o.withVar(p.v)
	}
	if o.IsZero() {
		return p
	}
	low := min(p.low, o.low)
	high := max(p.Degree(), o.Degree())
	c := make([]*big.Int, high-low+1)
	for i := range c {
		c[i] = new(big.Int)
	}
	for i, x := range p.c {
		c[p.low+i-low].Add(c[p.low+i-low], x)
	}
	for i, x := range o.c {
		c[o.low+i-low].Add(c[o.low+i-low], x)
	}
	return normalize(p.v, low, c)
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	c := make([]*big.Int, len(p.c))
	for i, x := range p.c {
		c[i] = new(big.Int).Neg(x)
	}
	return Poly{v: p.v, low: p.low, c: c}
}

// Sub returns p - o.
func (p Poly) Sub(o Poly) Poly { return p.Add(o.Neg()) }

// Mul returns p * o.
func (p Poly) Mul(o Poly) Poly {
	if p.IsZero() || o.IsZero() {
		return Zero(p.v)
	}
	c := make([]*big.Int, len(p.c)+len(o.c)-1)
	for i := range c {
		c[i] = new(big.Int)
	}
	t := new(big.Int)
	for i, x := range p.c {
		for j, y := range o.c {
			c[i+j].Add(c[i+j], t.Mul(x, y))
		}
	}
	return normalize(p.v, p.low+o.low, c)
}

// Scale returns k * p.
func (p Poly) Scale(k *big.Int) Poly {
	c := make([]*big.Int, len(p.c))
	for i, x := range p.c {
		c[i] = new(big.Int).Mul(x, k)
	}
	return normalize(p.v, p.low, c)
}

// Shift returns p * v^e.
func (p Poly) Shift(e int) Poly {
	if p.IsZero() {
		return p
	}
	return Poly{v: p.v, low: p.low + e, c: p.c}
}

// Pow returns p^n. Negative exponents are only defined for the units of
// ZZ[v, 1/v], the monomials with coefficient 1 or -1.
func (p Poly) Pow(n int) (Poly, error) {
	if n < 0 {
		if !p.IsMonomial() || p.c[0].CmpAbs(big.NewInt(1)) != 0 {
			return Poly{}, ErrNotInvertible
		}
		inv := Poly{v: p.v, low: -p.low, c: []*big.Int{new(big.Int).Set(p.c[0])}}
		return inv.Pow(-n)
	}
	result := Constant(p.v, 1)
	base := p
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return result, nil
}

// DivExact returns the quotient p / o in ZZ[v, 1/v]. It returns
// ErrDivisionByZero when o is zero and ErrNotExact when o does not divide p.
func (p Poly) DivExact(o Poly) (Poly, error) {
	if o.IsZero() {
		return Poly{}, ErrDivisionByZero
	}
	if p.IsZero() {
		return Zero(p.v), nil
	}
	degA, degB := len(p.c)-1, len(o.c)-1
	if degA < degB {
		return Poly{}, ErrNotExact
	}
	rem := make([]*big.Int, len(p.c))
	for i, x := range p.c {
		rem[i] = new(big.Int).Set(x)
	}
	lead := o.c[degB]
	quo := make([]*big.Int, degA-degB+1)
	t := new(big.Int)
	m := new(big.Int)
	for i := degA - degB; i >= 0; i-- {
		r := rem[i+degB]
		q := new(big.Int)
		if r.Sign() != 0 {
			q.QuoRem(r, lead, m)
			if m.Sign() != 0 {
				return Poly{}, ErrNotExact
			}
			for j, y := range o.c {
				rem[i+j].Sub(rem[i+j], t.Mul(q, y))
			}
		}
		quo[i] = q
	}
	for _, r := range rem {
		if r.Sign() != 0 {
			return Poly{}, ErrNotExact
		}
	}
	return normalize(p.v, p.low-o.low, quo), nil
}

// Compose returns p(q), substituting q for the indeterminate of p. The result
// lives in the variable of q. Negative exponents of p require q to be a unit.
func (p Poly) Compose(q Poly) (Poly, error) {
	result := Zero(q.v)
	for _, term := range p.Terms() {
		qe, err := q.Pow(term.Exp)
		if err != nil {
			return Poly{}, err
		}
		result = result.Add(qe.Scale(term.Coeff))
	}
	return result, nil
}

// EvalInt evaluates p at an integer point. Negative exponents require x to be
// 1 or -1.
func (p Poly) EvalInt(x *big.Int) (*big.Int, error) {
	if p.low < 0 && x.CmpAbs(big.NewInt(1)) != 0 {
		return nil, ErrNotInvertible
	}
	sum := new(big.Int)
	pw := new(big.Int)
	for _, term := range p.Terms() {
		e := term.Exp
		if e < 0 {
			e = -e
		}
		pw.Exp(x, big.NewInt(int64(e)), nil)
		sum.Add(sum, pw.Mul(pw, term.Coeff))
	}
	return sum, nil
}

func (p Poly) withVar(v string) Poly {
	p.v = v
	return p
}

// String renders p in descending exponent order, e.g. "q^4 + 2*q^2 - 1".
func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i := len(p.c) - 1; i >= 0; i-- {
		c := p.c[i]
		if c.Sign() == 0 {
			continue
		}
		neg := c.Sign() < 0
		abs := new(big.Int).Abs(c)
		switch {
		case sb.Len() == 0 && neg:
			sb.WriteString("-")
		case sb.Len() > 0 && neg:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(formatMonomial(abs, p.v, p.low+i))
	}
	return sb.String()
}

func formatMonomial(abs *big.Int, v string, e int) string {
	if e == 0 {
		return abs.String()
	}
	x := v
	if e != 1 {
		x = v + "^" + strconv.Itoa(e)
	}
	if abs.IsInt64() && abs.Int64() == 1 {
		return x
	}
	return abs.String() + "*" + x
}
