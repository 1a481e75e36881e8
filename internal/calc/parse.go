package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/agbru/qcalc/internal/algebra"
	apperrors "github.com/agbru/qcalc/internal/errors"
)

const (
	symbolicPrefix = "sym:"
	rootPrefix     = "root:"
)

// parseQ chooses the ring from the textual q and binds q in it.
func parseQ(s string) (evaluator, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return polynomialEvaluator(algebra.DefaultVariable), nil
	case strings.HasPrefix(s, symbolicPrefix):
		name := strings.TrimSpace(strings.TrimPrefix(s, symbolicPrefix))
		if !isIdentifier(name) {
			return nil, apperrors.NewInvalidArgument("invalid symbol name %q", name)
		}
		return symbolicEvaluator(name), nil
	case strings.HasPrefix(s, rootPrefix):
		m, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(s, rootPrefix)))
		if err != nil || m < 1 {
			return nil, apperrors.NewInvalidArgument("root order must be a positive integer, got %q", s)
		}
		return complexEvaluator(algebra.RootOfUnity(m)), nil
	case strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"):
		c, err := strconv.ParseComplex(s, 128)
		if err != nil {
			return nil, apperrors.NewInvalidArgument("cannot parse complex q %q", s)
		}
		return complexEvaluator(c), nil
	case isIdentifier(s) && s != "I":
		return polynomialEvaluator(s), nil
	case strings.ContainsRune(s, 'I'):
		g, err := parseGaussian(s)
		if err != nil {
			return nil, err
		}
		return gaussianEvaluator(g), nil
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, apperrors.NewInvalidArgument("cannot parse q %q", s)
	}
	return rationalEvaluator(r), nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case unicode.IsLetter(c), c == '_':
		case unicode.IsDigit(c) && i > 0:
		default:
			return false
		}
	}
	return true
}

// parseGaussian reads "a+bI", "a-bI", "bI", "b*I" or "I" with rational a, b.
func parseGaussian(s string) (algebra.Gaussian, error) {
	bad := func() (algebra.Gaussian, error) {
		return algebra.Gaussian{}, apperrors.NewInvalidArgument("cannot parse Gaussian q %q", s)
	}
	t := strings.NewReplacer(" ", "", "*", "").Replace(s)
	if !strings.HasSuffix(t, "I") || strings.Count(t, "I") != 1 {
		return bad()
	}
	t = strings.TrimSuffix(t, "I")

	split := -1
	for i := len(t) - 1; i > 0; i-- {
		if (t[i] == '+' || t[i] == '-') && t[i-1] != 'e' && t[i-1] != 'E' {
			split = i
			break
		}
	}
	reText, imText := "0", t
	if split > 0 {
		reText, imText = t[:split], t[split:]
	}

	re, ok := new(big.Rat).SetString(reText)
	if !ok {
		return bad()
	}
	var im *big.Rat
	switch imText {
	case "", "+":
		im = big.NewRat(1, 1)
	case "-":
		im = big.NewRat(-1, 1)
	default:
		if im, ok = new(big.Rat).SetString(imText); !ok {
			return bad()
		}
	}
	return algebra.NewGaussian(re, im), nil
}

// parseInteger reads s as an exact rational. It reports integer == false for
// a well-formed non-integer and an error for text that is not a number.
func parseInteger(s string) (n int, integer bool, err error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return 0, false, apperrors.NewInvalidArgument("%q is not a number", s)
	}
	if !r.IsInt() {
		return 0, false, nil
	}
	x := r.Num()
	if !x.IsInt64() || x.Int64() > math.MaxInt32 || x.Int64() < math.MinInt32 {
		return 0, false, apperrors.NewInvalidArgument("%s is out of range", s)
	}
	return int(x.Int64()), true, nil
}
