package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal integer
// string: "-1234567" becomes "-1,234,567". Other text is returned unchanged.
func FormatNumberString(s string) string {
	sign, digits := "", s
	if strings.HasPrefix(s, "-") {
		sign, digits = "-", s[1:]
	}
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return s
	}
	var sb strings.Builder
	sb.WriteString(sign)
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > len(sign) {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

// CountTerms returns the number of top-level summands of a formatted sum.
func CountTerms(value string) int {
	if value == "" {
		return 0
	}
	depth, terms := 0, 1
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '+', '-':
			if depth == 0 && i > 0 && value[i-1] == ' ' {
				terms++
			}
		}
	}
	return terms
}

// TruncateValue shortens a value longer than limit characters to its first
// and last limit/2 characters, counted in runes, with the spaces at the cut
// dropped. A limit of zero or less disables truncation.
func TruncateValue(value string, limit int) string {
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	half := limit / 2
	head := strings.TrimRight(string(runes[:half]), " ")
	tail := strings.TrimLeft(string(runes[len(runes)-half:]), " ")
	return fmt.Sprintf("%s ... %s (%d characters)", head, tail, len(runes))
}
