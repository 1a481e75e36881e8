package qanalog

import (
	"errors"
	"math/big"
	"testing"

	"github.com/agbru/qcalc/internal/algebra"
	apperrors "github.com/agbru/qcalc/internal/errors"
	"github.com/agbru/qcalc/internal/poly"
)

var (
	zzq = algebra.ZZq
	qq  = algebra.Rationals()
)

func rat(n int64) *big.Rat { return big.NewRat(n, 1) }

func TestQInt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n    int
		want string
	}{
		{"zero is the empty sum", 0, "0"},
		{"one", 1, "1"},
		{"three", 3, "q^2 + q + 1"},
		{"negative", -3, "-q^-1 - q^-2 - q^-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := QInt(zzq, tt.n)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("QInt(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}

	t.Run("at q = 1", func(t *testing.T) {
		t.Parallel()
		for n := -5; n <= 10; n++ {
			got, err := QInt(qq, n, rat(1))
			if err != nil {
				t.Fatal(err)
			}
			if got.Cmp(rat(int64(n))) != 0 {
				t.Errorf("QInt(%d, 1) = %s, want %d", n, got.RatString(), n)
			}
		}
	})

	t.Run("negative at rational q", func(t *testing.T) {
		t.Parallel()
		// (2^-2 - 1)/(2 - 1) = -3/4
		got, err := QInt(qq, -2, rat(2))
		if err != nil {
			t.Fatal(err)
		}
		if got.Cmp(big.NewRat(-3, 4)) != 0 {
			t.Errorf("QInt(-2, 2) = %s, want -3/4", got.RatString())
		}
	})

	t.Run("ring without generator needs q", func(t *testing.T) {
		t.Parallel()
		if _, err := QInt(qq, 3); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("expected invalid argument, got %v", err)
		}
	})
}

func TestQFactorial(t *testing.T) {
	t.Parallel()

	got, err := QFactorial(zzq, 3)
	if err != nil {
		t.Fatal(err)
	}
	if want := "q^3 + 2*q^2 + 2*q + 1"; got.String() != want {
		t.Errorf("QFactorial(3) = %s, want %s", got, want)
	}

	if got, _ := QFactorial(zzq, 0); !got.IsOne() {
		t.Errorf("QFactorial(0) = %s, want 1", got)
	}

	fact := big.NewInt(1)
	for n := 0; n <= 15; n++ {
		if n > 0 {
			fact.Mul(fact, big.NewInt(int64(n)))
		}
		got, err := QFactorial(qq, n, rat(1))
		if err != nil {
			t.Fatal(err)
		}
		if got.Cmp(new(big.Rat).SetInt(fact)) != 0 {
			t.Errorf("QFactorial(%d, 1) = %s, want %s", n, got.RatString(), fact)
		}
	}

	_, err = QFactorial(zzq, -1)
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if err.Error() != "argument (-1) must be a nonnegative integer" {
		t.Errorf("unexpected message %q", err)
	}
}

func TestQCatalan(t *testing.T) {
	t.Parallel()

	got, err := QCatalan(zzq, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := "q^12 + q^10 + q^9 + 2*q^8 + q^7 + 2*q^6 + q^5 + 2*q^4 + q^3 + q^2 + 1"
	if got.String() != want {
		t.Errorf("QCatalan(4) = %s, want %s", got, want)
	}

	catalan := []int64{1, 1, 2, 5, 14, 42, 132, 429, 1430}
	for n, c := range catalan {
		got, err := QCatalan(qq, n, rat(1))
		if err != nil {
			t.Fatal(err)
		}
		if got.Cmp(rat(c)) != 0 {
			t.Errorf("QCatalan(%d, 1) = %s, want %d", n, got.RatString(), c)
		}
	}

	if _, err := QCatalan(zzq, -2); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func TestQTCatalan(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int
		want string
	}{
		{0, "1"},
		{1, "1"},
		{2, "q + t"},
		{3, "q^3 + q^2*t + q*t^2 + t^3 + q*t"},
	}
	for _, tt := range tests {
		got, err := QTCatalan(tt.n)
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != tt.want {
			t.Errorf("QTCatalan(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}

	t.Run("size 4", func(t *testing.T) {
		t.Parallel()
		got, err := QTCatalan(4)
		if err != nil {
			t.Fatal(err)
		}
		if got.Len() != 14 {
			t.Errorf("QTCatalan(4) has %d terms, want 14", got.Len())
		}
		if v := got.Eval(big.NewInt(1), big.NewInt(1)); v.Int64() != 14 {
			t.Errorf("QTCatalan(4)(1,1) = %s, want 14", v)
		}
	})

	t.Run("symmetric in q and t", func(t *testing.T) {
		t.Parallel()
		for n := 0; n <= 7; n++ {
			b, _ := QTCatalan(n)
			for _, term := range b.Terms() {
				if b.Coeff(term.Exp[1], term.Exp[0]).Cmp(term.Coeff) != 0 {
					t.Errorf("QTCatalan(%d) not symmetric at %v", n, term.Exp)
				}
			}
		}
	})

	t.Run("t = 1 gives the area generating function", func(t *testing.T) {
		t.Parallel()
		b, _ := QTCatalan(3)
		want := poly.New("q", 1, 2, 1, 1)
		if got := b.SpecializeY(1); !got.Equal(want) {
			t.Errorf("QTCatalan(3)|t=1 = %s, want %s", got, want)
		}
	})

	if _, err := QTCatalan(-1); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}
