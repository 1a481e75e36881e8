package combinat

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	apperrors "github.com/agbru/qcalc/internal/errors"
)

// Partition is an immutable non-increasing sequence of positive integers.
// The zero value is the empty partition of 0.
type Partition struct {
	parts []int
}

// NewPartition validates parts and returns the partition they describe.
func NewPartition(parts ...int) (Partition, error) {
	for i, p := range parts {
		if p <= 0 {
			return Partition{}, apperrors.NewInvalidArgument("partition parts must be positive, got %v", parts)
		}
		if i > 0 && p > parts[i-1] {
			return Partition{}, apperrors.NewInvalidArgument("partition parts must be non-increasing, got %v", parts)
		}
	}
	return Partition{parts: append([]int(nil), parts...)}, nil
}

// MustPartition is like NewPartition but panics on invalid input.
func MustPartition(parts ...int) Partition {
	p, err := NewPartition(parts...)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePartition parses "[3,2,1]", "3,2,1", "3 2 1" or "[]".
func ParsePartition(s string) (Partition, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	parts := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Partition{}, apperrors.NewInvalidArgument("invalid partition part %q", f)
		}
		parts = append(parts, n)
	}
	return NewPartition(parts...)
}

// Len returns the number of parts.
func (p Partition) Len() int { return len(p.parts) }

// At returns the i-th largest part.
func (p Partition) At(i int) int { return p.parts[i] }

// Parts returns a copy of the parts.
func (p Partition) Parts() []int { return append([]int(nil), p.parts...) }

// Size returns the integer being partitioned.
func (p Partition) Size() int {
	n := 0
	for _, x := range p.parts {
		n += x
	}
	return n
}

// IsEmpty reports whether p is the empty partition.
func (p Partition) IsEmpty() bool { return len(p.parts) == 0 }

// Key returns a canonical string for p, suitable as a map key.
func (p Partition) Key() string { return p.String() }

// String renders p as "[3, 2, 1]".
func (p Partition) String() string {
	s := make([]string, len(p.parts))
	for i, x := range p.parts {
		s[i] = strconv.Itoa(x)
	}
	return "[" + strings.Join(s, ", ") + "]"
}

// Decrement returns the partition obtained by removing one from part i. A
// part that reaches zero is dropped. Decrementing a part that is equal to
// its successor would break the ordering; the caller must pick the last
// occurrence of a value.
func (p Partition) Decrement(i int) Partition {
	if i < 0 || i >= len(p.parts) {
		panic(fmt.Sprintf("combinat: Decrement index %d out of range for %s", i, p))
	}
	parts := p.Parts()
	parts[i]--
	if parts[i] == 0 {
		parts = append(parts[:i], parts[i+1:]...)
	}
	return Partition{parts: parts}
}

// Partitions yields every partition of n in reverse lexicographic order,
// starting with [n] and ending with [1, 1, ..., 1].
func Partitions(n int) iter.Seq[Partition] {
	return func(yield func(Partition) bool) {
		if n < 0 {
			return
		}
		var rec func(rest, maxPart int, prefix []int) bool
		rec = func(rest, maxPart int, prefix []int) bool {
			if rest == 0 {
				return yield(Partition{parts: append([]int(nil), prefix...)})
			}
			for part := min(rest, maxPart); part >= 1; part-- {
				if !rec(rest-part, part, append(prefix, part)) {
					return false
				}
			}
			return true
		}
		rec(n, n, nil)
	}
}
