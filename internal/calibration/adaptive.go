// This file builds the (n, k) grid timed by the calibration.

package calibration

import (
	"github.com/agbru/qcalc/internal/qanalog"
)

// ─────────────────────────────────────────────────────────────────────────────
// Grid Generation
// ─────────────────────────────────────────────────────────────────────────────

// Point is one (n, k) pair of the calibration grid.
type Point struct {
	N int `json:"n"`
	K int `json:"k"`
	// Divisor is d in k = n/d; points of one row share it.
	Divisor int `json:"divisor"`
}

// DefaultDivisors are the rows of the grid: k = n/8, n/4 and n/2.
var DefaultDivisors = []int{8, 4, 2}

// GenerateSizes returns the values of n timed by a full calibration. They
// bracket the naive cutoff qanalog.NaiveMaxN on both sides.
func GenerateSizes() []int {
	sizes := []int{10, 20, 30, 40, 50}
	for n := qanalog.NaiveMaxN - 10; n <= 2*qanalog.NaiveMaxN; n += 20 {
		sizes = append(sizes, n)
	}
	return sizes
}

// GenerateQuickSizes returns a smaller set of sizes for a quick run.
func GenerateQuickSizes() []int {
	return []int{20, qanalog.NaiveMaxN / 2, qanalog.NaiveMaxN, 2 * qanalog.NaiveMaxN}
}

// GenerateGrid crosses sizes with divisors, row by row. Points whose k
// would be zero are skipped since both algorithms return 1 immediately.
func GenerateGrid(sizes, divisors []int) []Point {
	grid := make([]Point, 0, len(sizes)*len(divisors))
	for _, d := range divisors {
		if d <= 0 {
			continue
		}
		for _, n := range sizes {
			if k := n / d; k > 0 {
				grid = append(grid, Point{N: n, K: k, Divisor: d})
			}
		}
	}
	return grid
}
