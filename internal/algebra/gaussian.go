package algebra

import (
	"math/big"
	"strings"
)

// Gaussian is the complex number Re + Im*I with rational parts.
type Gaussian struct {
	Re, Im *big.Rat
}

// NewGaussian returns re + im*I. The parts are copied.
func NewGaussian(re, im *big.Rat) Gaussian {
	return Gaussian{Re: new(big.Rat).Set(re), Im: new(big.Rat).Set(im)}
}

// GaussianInt returns re + im*I for integer parts.
func GaussianInt(re, im int64) Gaussian {
	return Gaussian{Re: big.NewRat(re, 1), Im: big.NewRat(im, 1)}
}

// ImaginaryUnit is I.
var ImaginaryUnit = GaussianInt(0, 1)

// String renders g as "1 + I", "2 - 3*I", "-I" or "2/3".
func (g Gaussian) String() string {
	re, im := g.Re.Sign() != 0, g.Im.Sign() != 0
	if !re && !im {
		return "0"
	}
	var sb strings.Builder
	if re {
		sb.WriteString(g.Re.RatString())
	}
	if im {
		abs := new(big.Rat).Abs(g.Im)
		switch {
		case re && g.Im.Sign() < 0:
			sb.WriteString(" - ")
		case re:
			sb.WriteString(" + ")
		case g.Im.Sign() < 0:
			sb.WriteString("-")
		}
		if abs.Cmp(big.NewRat(1, 1)) != 0 {
			sb.WriteString(abs.RatString())
			sb.WriteString("*")
		}
		sb.WriteString("I")
	}
	return sb.String()
}

// GaussianField is QQ[I], exact complex arithmetic with rational parts.
// Roots of unity such as I and -1 are represented exactly, so the naive
// q-binomial formula detects a vanishing denominator reliably.
type GaussianField struct{}

// GaussianRationals returns the field QQ[I].
func GaussianRationals() GaussianField { return GaussianField{} }

var _ Ring[Gaussian] = GaussianField{}

func (GaussianField) Name() string   { return "Number Field in I with defining polynomial x^2 + 1" }
func (GaussianField) Class() Class   { return ClassOther }
func (GaussianField) Zero() Gaussian { return GaussianInt(0, 0) }
func (GaussianField) One() Gaussian  { return GaussianInt(1, 0) }
func (GaussianField) Gen() Gaussian  { return ImaginaryUnit }

func (GaussianField) FromInt(n int64) Gaussian { return GaussianInt(n, 0) }

func (GaussianField) FromBig(n *big.Int) Gaussian {
	return Gaussian{Re: new(big.Rat).SetInt(n), Im: new(big.Rat)}
}

func (GaussianField) Add(a, b Gaussian) Gaussian {
	return Gaussian{Re: new(big.Rat).Add(a.Re, b.Re), Im: new(big.Rat).Add(a.Im, b.Im)}
}

func (GaussianField) Sub(a, b Gaussian) Gaussian {
	return Gaussian{Re: new(big.Rat).Sub(a.Re, b.Re), Im: new(big.Rat).Sub(a.Im, b.Im)}
}

func (GaussianField) Mul(a, b Gaussian) Gaussian {
	re := new(big.Rat).Mul(a.Re, b.Re)
	re.Sub(re, new(big.Rat).Mul(a.Im, b.Im))
	im := new(big.Rat).Mul(a.Re, b.Im)
	im.Add(im, new(big.Rat).Mul(a.Im, b.Re))
	return Gaussian{Re: re, Im: im}
}

func (GaussianField) Neg(a Gaussian) Gaussian {
	return Gaussian{Re: new(big.Rat).Neg(a.Re), Im: new(big.Rat).Neg(a.Im)}
}

func (f GaussianField) Pow(a Gaussian, n int) (Gaussian, error) { return fieldPow(f, a, n) }

// Div multiplies by the conjugate of b over |b|^2.
func (f GaussianField) Div(a, b Gaussian) (Gaussian, error) {
	if f.IsZero(b) {
		return Gaussian{}, ErrDivisionByZero
	}
	norm := new(big.Rat).Mul(b.Re, b.Re)
	norm.Add(norm, new(big.Rat).Mul(b.Im, b.Im))
	p := f.Mul(a, Gaussian{Re: b.Re, Im: new(big.Rat).Neg(b.Im)})
	return Gaussian{Re: p.Re.Quo(p.Re, norm), Im: p.Im.Quo(p.Im, norm)}, nil
}

func (GaussianField) FloorDiv(a, b Gaussian) (Gaussian, error) {
	return Gaussian{}, ErrUnsupported
}

func (GaussianField) IsZero(a Gaussian) bool { return a.Re.Sign() == 0 && a.Im.Sign() == 0 }

func (f GaussianField) IsOne(a Gaussian) bool { return f.Equal(a, f.One()) }

func (GaussianField) Equal(a, b Gaussian) bool {
	return a.Re.Cmp(b.Re) == 0 && a.Im.Cmp(b.Im) == 0
}

func (GaussianField) Key(a Gaussian) string    { return a.String() }
func (GaussianField) Format(a Gaussian) string { return a.String() }
