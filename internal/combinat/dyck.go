package combinat

import (
	"iter"
	"strings"
)

// DyckWord is a balanced sequence of up (open) and down (close) steps.
// Steps are stored as true for up.
type DyckWord struct {
	steps []bool
}

// NewDyckWord builds a word from "1" (up) and "0" (down) characters, or
// "(" and ")". It reports false if the word is not balanced.
func NewDyckWord(s string) (DyckWord, bool) {
	steps := make([]bool, 0, len(s))
	height := 0
	for _, r := range s {
		switch r {
		case '1', '(':
			steps = append(steps, true)
			height++
		case '0', ')':
			steps = append(steps, false)
			height--
		default:
			return DyckWord{}, false
		}
		if height < 0 {
			return DyckWord{}, false
		}
	}
	if height != 0 {
		return DyckWord{}, false
	}
	return DyckWord{steps: steps}, true
}

// Semilength returns the number of up steps.
func (w DyckWord) Semilength() int { return len(w.steps) / 2 }

// String renders w with 1 for up and 0 for down.
func (w DyckWord) String() string {
	var sb strings.Builder
	for _, up := range w.steps {
		if up {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Area is the number of full cells between the path and the lowest path
// 1010...10. Each down step contributes the opens minus the closes seen
// before it.
func (w DyckWord) Area() int {
	area, opens, closes := 0, 0, 0
	for _, up := range w.steps {
		if up {
			opens++
			continue
		}
		area += opens - closes
		closes++
	}
	return area - w.Semilength()
}

// Bounce is Haglund's bounce statistic. A ball starts at the top of the path
// and bounces against the diagonal; the bounce sums the columns at which it
// touches down.
func (w DyckWord) Bounce() int {
	n := w.Semilength()
	col := make([]int, n+1) // col[y] is the column of the y-th up step, 1-based
	closes, ups := 0, 0
	for _, up := range w.steps {
		if up {
			ups++
			col[ups] = closes
			continue
		}
		closes++
	}
	bounce := 0
	for y := n; y > 0; {
		c := col[y]
		if c == 0 {
			break
		}
		bounce += c
		y = c
	}
	return bounce
}

// DyckWords yields every Dyck word of semilength n. For n == 0 it yields
// exactly the empty word.
func DyckWords(n int) iter.Seq[DyckWord] {
	return func(yield func(DyckWord) bool) {
		if n < 0 {
			return
		}
		steps := make([]bool, 0, 2*n)
		var rec func(opens, closes int) bool
		rec = func(opens, closes int) bool {
			if opens == n && closes == n {
				return yield(DyckWord{steps: append([]bool(nil), steps...)})
			}
			if opens < n {
				steps = append(steps, true)
				if !rec(opens+1, closes) {
					return false
				}
				steps = steps[:len(steps)-1]
			}
			if closes < opens {
				steps = append(steps, false)
				if !rec(opens, closes+1) {
					return false
				}
				steps = steps[:len(steps)-1]
			}
			return true
		}
		rec(0, 0)
	}
}
