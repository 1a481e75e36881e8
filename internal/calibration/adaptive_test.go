package calibration

import (
	"slices"
	"testing"

	"github.com/agbru/qcalc/internal/qanalog"
)

func TestGenerateSizes(t *testing.T) {
	t.Parallel()
	sizes := GenerateSizes()

	if !slices.IsSorted(sizes) {
		t.Errorf("sizes should be increasing: %v", sizes)
	}
	if len(slices.Compact(slices.Clone(sizes))) != len(sizes) {
		t.Errorf("sizes should be distinct: %v", sizes)
	}
	if sizes[0] > qanalog.NaiveMaxN || sizes[len(sizes)-1] <= qanalog.NaiveMaxN {
		t.Errorf("sizes %v should bracket the naive cutoff %d", sizes, qanalog.NaiveMaxN)
	}
}

func TestGenerateQuickSizes(t *testing.T) {
	t.Parallel()
	quick := GenerateQuickSizes()
	if len(quick) > len(GenerateSizes()) {
		t.Error("quick sizes should not be longer than full sizes")
	}
	if !slices.Contains(quick, qanalog.NaiveMaxN) {
		t.Errorf("quick sizes %v should include the naive cutoff", quick)
	}
}

func TestGenerateGrid(t *testing.T) {
	t.Parallel()
	grid := GenerateGrid([]int{4, 10, 20}, []int{8, 2, 0})

	want := []Point{
		{N: 10, K: 1, Divisor: 8},
		{N: 20, K: 2, Divisor: 8},
		{N: 4, K: 2, Divisor: 2},
		{N: 10, K: 5, Divisor: 2},
		{N: 20, K: 10, Divisor: 2},
	}
	if !slices.Equal(grid, want) {
		t.Errorf("GenerateGrid = %v, want %v", grid, want)
	}
}
