package poly

import (
	"math/big"
	"slices"
	"strconv"
	"strings"
)

// Exponent is the exponent pair (i, j) of a bivariate monomial x^i*y^j.
type Exponent [2]int

// BiTerm is a single monomial coeff*x^i*y^j.
type BiTerm struct {
	Exp   Exponent
	Coeff *big.Int
}

// Bivariate is an immutable polynomial with integer coefficients in two
// named indeterminates.
type Bivariate struct {
	x, y  string
	terms map[Exponent]*big.Int
}

// NewBivariate returns the zero polynomial in x and y.
func NewBivariate(x, y string) Bivariate {
	return Bivariate{x: x, y: y, terms: map[Exponent]*big.Int{}}
}

// BivariateFromCounts builds the polynomial whose coefficient of x^i*y^j is
// counts[(i, j)]. Zero counts are dropped.
func BivariateFromCounts(x, y string, counts map[Exponent]int) Bivariate {
	b := NewBivariate(x, y)
	for e, n := range counts {
		if n != 0 {
			b.terms[e] = big.NewInt(int64(n))
		}
	}
	return b
}

// BivariateConstant returns the constant polynomial n.
func BivariateConstant(x, y string, n int64) Bivariate {
	b := NewBivariate(x, y)
	if n != 0 {
		b.terms[Exponent{0, 0}] = big.NewInt(n)
	}
	return b
}

// Variables returns the names of the two indeterminates.
func (b Bivariate) Variables() (string, string) { return b.x, b.y }

// Len returns the number of non-zero terms.
func (b Bivariate) Len() int { return len(b.terms) }

// IsZero reports whether b is the zero polynomial.
func (b Bivariate) IsZero() bool { return len(b.terms) == 0 }

// Coeff returns a copy of the coefficient of x^i*y^j.
func (b Bivariate) Coeff(i, j int) *big.Int {
	if c, ok := b.terms[Exponent{i, j}]; ok {
		return new(big.Int).Set(c)
	}
	return new(big.Int)
}

// Terms returns the terms in degree-reverse-lexicographic order: by total
// degree descending, then by the exponent of x descending.
func (b Bivariate) Terms() []BiTerm {
	out := make([]BiTerm, 0, len(b.terms))
	for e, c := range b.terms {
		out = append(out, BiTerm{Exp: e, Coeff: new(big.Int).Set(c)})
	}
	slices.SortFunc(out, func(a, c BiTerm) int {
		da, dc := a.Exp[0]+a.Exp[1], c.Exp[0]+c.Exp[1]
		if da != dc {
			return dc - da
		}
		return c.Exp[0] - a.Exp[0]
	})
	return out
}

// Add returns b + o.
func (b Bivariate) Add(o Bivariate) Bivariate {
	out := NewBivariate(b.x, b.y)
	for e, c := range b.terms {
		out.terms[e] = new(big.Int).Set(c)
	}
	for e, c := range o.terms {
		sum := new(big.Int).Add(out.Coeff(e[0], e[1]), c)
		if sum.Sign() == 0 {
			delete(out.terms, e)
			continue
		}
		out.terms[e] = sum
	}
	return out
}

// Mul returns b * o.
func (b Bivariate) Mul(o Bivariate) Bivariate {
	out := NewBivariate(b.x, b.y)
	t := new(big.Int)
	for e1, c1 := range b.terms {
		for e2, c2 := range o.terms {
			e := Exponent{e1[0] + e2[0], e1[1] + e2[1]}
			sum := out.Coeff(e[0], e[1])
			sum.Add(sum, t.Mul(c1, c2))
			if sum.Sign() == 0 {
				delete(out.terms, e)
				continue
			}
			out.terms[e] = sum
		}
	}
	return out
}

// Equal reports whether b and o have the same variables and coefficients.
func (b Bivariate) Equal(o Bivariate) bool {
	if b.x != o.x || b.y != o.y || len(b.terms) != len(o.terms) {
		return false
	}
	for e, c := range b.terms {
		oc, ok := o.terms[e]
		if !ok || c.Cmp(oc) != 0 {
			return false
		}
	}
	return true
}

// Eval evaluates b at (x, y).
func (b Bivariate) Eval(x, y *big.Int) *big.Int {
	sum := new(big.Int)
	px, py := new(big.Int), new(big.Int)
	for e, c := range b.terms {
		px.Exp(x, big.NewInt(int64(e[0])), nil)
		py.Exp(y, big.NewInt(int64(e[1])), nil)
		px.Mul(px, py)
		sum.Add(sum, px.Mul(px, c))
	}
	return sum
}

// SpecializeY substitutes y = value and returns a univariate polynomial in x.
func (b Bivariate) SpecializeY(value int64) Poly {
	out := Zero(b.x)
	yv := big.NewInt(value)
	pw := new(big.Int)
	for e, c := range b.terms {
		pw.Exp(yv, big.NewInt(int64(e[1])), nil)
		out = out.Add(FromBig(b.x, e[0], []*big.Int{new(big.Int).Mul(pw, c)}))
	}
	return out
}

// String renders b as "q^3 + q^2*t + q*t^2 + t^3 + q*t".
func (b Bivariate) String() string {
	if b.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for _, term := range b.Terms() {
		neg := term.Coeff.Sign() < 0
		abs := new(big.Int).Abs(term.Coeff)
		switch {
		case sb.Len() == 0 && neg:
			sb.WriteString("-")
		case sb.Len() > 0 && neg:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(b.formatTerm(abs, term.Exp))
	}
	return sb.String()
}

func (b Bivariate) formatTerm(abs *big.Int, e Exponent) string {
	var factors []string
	if !(abs.IsInt64() && abs.Int64() == 1) || (e[0] == 0 && e[1] == 0) {
		factors = append(factors, abs.String())
	}
	for k, v := range []string{b.x, b.y} {
		switch e[k] {
		case 0:
		case 1:
			factors = append(factors, v)
		default:
			factors = append(factors, v+"^"+strconv.Itoa(e[k]))
		}
	}
	return strings.Join(factors, "*")
}
