// Package symbolic provides a small expression tree over exact rationals:
// numbers, named symbols, sums, products and integer powers. Constructors
// simplify eagerly (flattening, constant folding, collecting like terms) so
// structurally equal values print identically. It is not a computer algebra
// system; it only carries q-analogue formulas whose variable stays symbolic.
package symbolic

import (
	"math/big"
	"strconv"
	"strings"
)

// Expr is an immutable symbolic expression.
type Expr interface {
	String() string
	Equal(other Expr) bool
	// Subs replaces every occurrence of the symbol name with value.
	Subs(name string, value Expr) Expr
	// Eval returns the rational value of a symbol-free expression.
	Eval() (*big.Rat, bool)
}

// ─────────────────────────────────────────────────────────────────────────────
// Num
// ─────────────────────────────────────────────────────────────────────────────

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

// N returns the integer constant n.
func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// R returns a constant holding a copy of r.
func R(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

// Rat returns a copy of the value.
func (n *Num) Rat() *big.Rat          { return new(big.Rat).Set(n.val) }
func (n *Num) IsZero() bool           { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool            { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsNegative() bool       { return n.val.Sign() < 0 }
func (n *Num) Eval() (*big.Rat, bool) { return n.Rat(), true }
func (n *Num) Subs(string, Expr) Expr { return n }

func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }

// ─────────────────────────────────────────────────────────────────────────────
// Sym
// ─────────────────────────────────────────────────────────────────────────────

// Sym is a named symbolic variable.
type Sym struct{ name string }

// S returns the symbol name.
func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Name() string           { return s.name }
func (s *Sym) String() string         { return s.name }
func (s *Sym) Eval() (*big.Rat, bool) { return nil, false }

func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}

func (s *Sym) Subs(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

// ─────────────────────────────────────────────────────────────────────────────
// Add
// ─────────────────────────────────────────────────────────────────────────────

// Add is a sum of terms. The constant term, if any, is last.
type Add struct{ terms []Expr }

// AddOf returns the simplified sum of terms.
func AddOf(terms ...Expr) Expr {
	var flat []Expr
	for _, t := range terms {
		if inner, ok := t.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, t)
		}
	}

	constant := N(0)
	coeffs := map[string]*Num{}
	bases := map[string]Expr{}
	var order []string
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			constant = numAdd(constant, n)
			continue
		}
		c, rest := splitCoefficient(t)
		key := rest.String()
		if _, seen := coeffs[key]; !seen {
			order = append(order, key)
			coeffs[key] = N(0)
			bases[key] = rest
		}
		coeffs[key] = numAdd(coeffs[key], c)
	}

	var result []Expr
	for _, key := range order {
		c := coeffs[key]
		if c.IsZero() {
			continue
		}
		result = append(result, MulOf(c, bases[key]))
	}
	if !constant.IsZero() {
		result = append(result, constant)
	}
	switch len(result) {
	case 0:
		return N(0)
	case 1:
		return result[0]
	}
	return &Add{terms: result}
}

// Terms returns the summands.
func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

func (a *Add) String() string {
	var sb strings.Builder
	for i, t := range a.terms {
		s := t.String()
		neg := strings.HasPrefix(s, "-")
		switch {
		case i == 0:
			sb.WriteString(s)
			continue
		case neg:
			sb.WriteString(" - ")
			s = s[1:]
		default:
			sb.WriteString(" + ")
		}
		sb.WriteString(s)
	}
	return sb.String()
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	return ok && equalSlices(a.terms, o.terms)
}

func (a *Add) Subs(name string, value Expr) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Subs(name, value)
	}
	return AddOf(terms...)
}

func (a *Add) Eval() (*big.Rat, bool) {
	acc := new(big.Rat)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc.Add(acc, v)
	}
	return acc, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Mul
// ─────────────────────────────────────────────────────────────────────────────

// Mul is a product. A non-unit numeric coefficient, if any, comes first.
type Mul struct{ factors []Expr }

// MulOf returns the simplified product of factors. Equal bases are merged
// into a single power.
func MulOf(factors ...Expr) Expr {
	var flat []Expr
	for _, f := range factors {
		if inner, ok := f.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, f)
		}
	}

	coeff := N(1)
	exps := map[string]int{}
	bases := map[string]Expr{}
	var order []string
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		base, e := f, 1
		if p, ok := f.(*Pow); ok {
			base, e = p.base, p.exp
		}
		key := base.String()
		if _, seen := exps[key]; !seen {
			order = append(order, key)
			bases[key] = base
		}
		exps[key] += e
	}
	if coeff.IsZero() {
		return N(0)
	}

	var others []Expr
	for _, key := range order {
		f := PowOf(bases[key], exps[key])
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		others = append(others, f)
	}
	if len(others) == 0 {
		return coeff
	}
	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	// A coefficient times a single sum is expanded, so a sum minus itself
	// collects to zero.
	if sum, ok := others[0].(*Add); ok && len(others) == 1 {
		terms := make([]Expr, len(sum.terms))
		for i, t := range sum.terms {
			terms[i] = MulOf(coeff, t)
		}
		return AddOf(terms...)
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

// Factors returns the factors, coefficient first when present.
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

func (m *Mul) String() string {
	parts := make([]string, 0, len(m.factors))
	prefix := ""
	for i, f := range m.factors {
		if n, ok := f.(*Num); ok && i == 0 {
			switch {
			case n.val.Cmp(big.NewRat(-1, 1)) == 0:
				prefix = "-"
				continue
			case !n.val.IsInt():
				parts = append(parts, "("+n.String()+")")
				continue
			}
		}
		if _, isAdd := f.(*Add); isAdd {
			parts = append(parts, "("+f.String()+")")
		} else {
			parts = append(parts, f.String())
		}
	}
	return prefix + strings.Join(parts, "*")
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	return ok && equalSlices(m.factors, o.factors)
}

func (m *Mul) Subs(name string, value Expr) Expr {
	factors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		factors[i] = f.Subs(name, value)
	}
	return MulOf(factors...)
}

func (m *Mul) Eval() (*big.Rat, bool) {
	acc := big.NewRat(1, 1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc.Mul(acc, v)
	}
	return acc, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Pow
// ─────────────────────────────────────────────────────────────────────────────

// Pow is base^exp for an integer exponent.
type Pow struct {
	base Expr
	exp  int
}

// PowOf returns the simplified power base^exp. A zero base with a negative
// exponent is left unevaluated; Eval reports it as undefined.
func PowOf(base Expr, exp int) Expr {
	switch {
	case exp == 0:
		return N(1)
	case exp == 1:
		return base
	}
	if n, ok := base.(*Num); ok {
		if n.IsZero() {
			if exp < 0 {
				return &Pow{base: base, exp: exp}
			}
			return N(0)
		}
		return &Num{val: ratPow(n.val, exp)}
	}
	if p, ok := base.(*Pow); ok {
		return PowOf(p.base, p.exp*exp)
	}
	return &Pow{base: base, exp: exp}
}

// Base returns the base of the power.
func (p *Pow) Base() Expr { return p.base }

// Exp returns the integer exponent.
func (p *Pow) Exp() int { return p.exp }

func (p *Pow) String() string {
	b := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul:
		b = "(" + b + ")"
	}
	return b + "^" + strconv.Itoa(p.exp)
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.exp == o.exp && p.base.Equal(o.base)
}

func (p *Pow) Subs(name string, value Expr) Expr {
	return PowOf(p.base.Subs(name, value), p.exp)
}

func (p *Pow) Eval() (*big.Rat, bool) {
	b, ok := p.base.Eval()
	if !ok || (b.Sign() == 0 && p.exp < 0) {
		return nil, false
	}
	return ratPow(b, p.exp), true
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// Neg returns -e.
func Neg(e Expr) Expr { return MulOf(N(-1), e) }

// Sub returns a - b.
func Sub(a, b Expr) Expr { return AddOf(a, Neg(b)) }

// Div returns a * b^-1.
func Div(a, b Expr) Expr { return MulOf(a, PowOf(b, -1)) }

// IsZero reports whether e simplified to the constant 0.
func IsZero(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsZero()
}

// splitCoefficient separates a leading numeric coefficient from a product.
func splitCoefficient(e Expr) (*Num, Expr) {
	m, ok := e.(*Mul)
	if !ok {
		return N(1), e
	}
	if n, ok := m.factors[0].(*Num); ok {
		rest := m.factors[1:]
		if len(rest) == 1 {
			return n, rest[0]
		}
		return n, &Mul{factors: rest}
	}
	return N(1), e
}

func ratPow(r *big.Rat, exp int) *big.Rat {
	neg := exp < 0
	if neg {
		exp = -exp
	}
	e := big.NewInt(int64(exp))
	num := new(big.Int).Exp(r.Num(), e, nil)
	den := new(big.Int).Exp(r.Denom(), e, nil)
	if neg {
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den)
}

func equalSlices(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
