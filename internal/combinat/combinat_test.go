package combinat

import (
	"errors"
	"slices"
	"testing"

	apperrors "github.com/agbru/qcalc/internal/errors"
)

func TestNewPartition(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		parts   []int
		wantErr bool
	}{
		{"empty", nil, false},
		{"single", []int{5}, false},
		{"non-increasing", []int{3, 2, 2, 1}, false},
		{"increasing", []int{1, 2}, true},
		{"zero part", []int{2, 0}, true},
		{"negative part", []int{-1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewPartition(tt.parts...)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidArgument) {
					t.Errorf("expected invalid argument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParsePartition(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"[3,2,1]", "3, 2, 1", "3 2 1", " [3, 2, 1] "} {
		p, err := ParsePartition(s)
		if err != nil {
			t.Fatalf("ParsePartition(%q): %v", s, err)
		}
		if p.String() != "[3, 2, 1]" {
			t.Errorf("ParsePartition(%q) = %s", s, p)
		}
	}
	if p, err := ParsePartition("[]"); err != nil || !p.IsEmpty() {
		t.Errorf("ParsePartition([]) = %s, %v; want empty", p, err)
	}
	if _, err := ParsePartition("[3,x]"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func TestPartitionDecrement(t *testing.T) {
	t.Parallel()
	p := MustPartition(3, 2, 1)

	if got := p.Decrement(0).Parts(); !slices.Equal(got, []int{2, 2, 1}) {
		t.Errorf("Decrement(0) = %v", got)
	}
	if got := p.Decrement(2).Parts(); !slices.Equal(got, []int{3, 2}) {
		t.Errorf("Decrement(2) = %v, zero part should be dropped", got)
	}
	if got := p.Parts(); !slices.Equal(got, []int{3, 2, 1}) {
		t.Errorf("receiver mutated: %v", got)
	}
	if p.Size() != 6 || p.Len() != 3 || p.At(1) != 2 {
		t.Errorf("Size/Len/At = %d/%d/%d", p.Size(), p.Len(), p.At(1))
	}
}

func TestPartitions(t *testing.T) {
	t.Parallel()
	var got []string
	for p := range Partitions(5) {
		got = append(got, p.String())
	}
	want := []string{"[5]", "[4, 1]", "[3, 2]", "[3, 1, 1]", "[2, 2, 1]", "[2, 1, 1, 1]", "[1, 1, 1, 1, 1]"}
	if !slices.Equal(got, want) {
		t.Errorf("Partitions(5) = %v, want %v", got, want)
	}

	counts := map[int]int{0: 1, 1: 1, 4: 5, 6: 11, 10: 42}
	for n, want := range counts {
		c := 0
		for range Partitions(n) {
			c++
		}
		if c != want {
			t.Errorf("p(%d) = %d, want %d", n, c, want)
		}
	}
}

func TestDyckWords(t *testing.T) {
	t.Parallel()
	catalan := []int{1, 1, 2, 5, 14, 42, 132}
	for n, want := range catalan {
		c := 0
		for w := range DyckWords(n) {
			if w.Semilength() != n {
				t.Fatalf("word %s has semilength %d, want %d", w, w.Semilength(), n)
			}
			c++
		}
		if c != want {
			t.Errorf("|D(%d)| = %d, want %d", n, c, want)
		}
	}
}

func TestDyckStatistics(t *testing.T) {
	t.Parallel()
	tests := []struct {
		word   string
		area   int
		bounce int
	}{
		{"", 0, 0},
		{"10", 0, 0},
		{"1100", 1, 0},
		{"1010", 0, 1},
		{"111000", 3, 0},
		{"110100", 2, 1},
		{"110010", 1, 2},
		{"101100", 1, 1},
		{"101010", 0, 3},
	}
	for _, tt := range tests {
		w, ok := NewDyckWord(tt.word)
		if !ok {
			t.Fatalf("NewDyckWord(%q) rejected a valid word", tt.word)
		}
		if got := w.Area(); got != tt.area {
			t.Errorf("Area(%s) = %d, want %d", tt.word, got, tt.area)
		}
		if got := w.Bounce(); got != tt.bounce {
			t.Errorf("Bounce(%s) = %d, want %d", tt.word, got, tt.bounce)
		}
	}

	for _, bad := range []string{"01", "110", "1x"} {
		if _, ok := NewDyckWord(bad); ok {
			t.Errorf("NewDyckWord(%q) accepted an invalid word", bad)
		}
	}
}

func TestDyckWordsEarlyStop(t *testing.T) {
	t.Parallel()
	c := 0
	for range DyckWords(6) {
		c++
		if c == 3 {
			break
		}
	}
	if c != 3 {
		t.Errorf("iteration did not stop: %d", c)
	}
}
