package algebra

import (
	"math/big"

	"github.com/agbru/qcalc/internal/symbolic"
)

// ExpressionRing is the space of symbolic expressions. It is classified as
// ClassSymbolic, which routes q-binomial evaluation through cyclotomic
// factors so the result stays factored.
type ExpressionRing struct {
	v string
}

// Expressions returns the symbolic ring whose generator is the symbol v.
func Expressions(v string) ExpressionRing { return ExpressionRing{v: v} }

var _ Ring[symbolic.Expr] = ExpressionRing{}

func (ExpressionRing) Name() string                         { return "Symbolic Ring" }
func (ExpressionRing) Class() Class                         { return ClassSymbolic }
func (ExpressionRing) Zero() symbolic.Expr                  { return symbolic.N(0) }
func (ExpressionRing) One() symbolic.Expr                   { return symbolic.N(1) }
func (r ExpressionRing) Gen() symbolic.Expr                 { return symbolic.S(r.v) }
func (ExpressionRing) FromInt(n int64) symbolic.Expr        { return symbolic.N(n) }
func (ExpressionRing) FromBig(n *big.Int) symbolic.Expr     { return symbolic.R(new(big.Rat).SetInt(n)) }
func (ExpressionRing) Add(a, b symbolic.Expr) symbolic.Expr { return symbolic.AddOf(a, b) }
func (ExpressionRing) Sub(a, b symbolic.Expr) symbolic.Expr { return symbolic.Sub(a, b) }
func (ExpressionRing) Mul(a, b symbolic.Expr) symbolic.Expr { return symbolic.MulOf(a, b) }
func (ExpressionRing) Neg(a symbolic.Expr) symbolic.Expr    { return symbolic.Neg(a) }

func (r ExpressionRing) Pow(a symbolic.Expr, n int) (symbolic.Expr, error) {
	if n < 0 && r.IsZero(a) {
		return nil, ErrDivisionByZero
	}
	return symbolic.PowOf(a, n), nil
}

func (r ExpressionRing) Div(a, b symbolic.Expr) (symbolic.Expr, error) {
	if r.IsZero(b) {
		return nil, ErrDivisionByZero
	}
	return symbolic.Div(a, b), nil
}

func (ExpressionRing) FloorDiv(a, b symbolic.Expr) (symbolic.Expr, error) {
	return nil, ErrUnsupported
}

func (ExpressionRing) IsZero(a symbolic.Expr) bool { return symbolic.IsZero(a) }

func (ExpressionRing) IsOne(a symbolic.Expr) bool {
	n, ok := a.(*symbolic.Num)
	return ok && n.IsOne()
}

func (ExpressionRing) Equal(a, b symbolic.Expr) bool { return a.Equal(b) }
func (ExpressionRing) Key(a symbolic.Expr) string    { return a.String() }
func (ExpressionRing) Format(a symbolic.Expr) string { return a.String() }
