package calc

import (
	"maps"
	"slices"
	"strings"

	apperrors "github.com/agbru/qcalc/internal/errors"
)

// Function names a q-analogue.
type Function string

const (
	QInt     Function = "q_int"
	QFact    Function = "q_factorial"
	QBinom   Function = "q_binomial"
	QCatalan Function = "q_catalan_number"
	QTCat    Function = "qt_catalan_number"
	QJordan  Function = "q_jordan"
)

// functionAliases maps every accepted spelling to its function.
var functionAliases = map[string]Function{
	"q_int":             QInt,
	"int":               QInt,
	"q_factorial":       QFact,
	"factorial":         QFact,
	"q_binomial":        QBinom,
	"gaussian_binomial": QBinom,
	"binomial":          QBinom,
	"q_catalan_number":  QCatalan,
	"catalan":           QCatalan,
	"qt_catalan_number": QTCat,
	"qtcatalan":         QTCat,
	"q_jordan":          QJordan,
	"jordan":            QJordan,
}

// Functions returns the canonical function names in presentation order.
func Functions() []Function {
	return []Function{QInt, QFact, QBinom, QCatalan, QTCat, QJordan}
}

// Names returns every accepted spelling, canonical names first.
func Names() []string {
	out := make([]string, 0, len(functionAliases))
	for _, f := range Functions() {
		out = append(out, string(f))
	}
	for _, alias := range slices.Sorted(maps.Keys(functionAliases)) {
		if alias != string(functionAliases[alias]) {
			out = append(out, alias)
		}
	}
	return out
}

// ParseFunction resolves a function name or alias. Dashes are accepted in
// place of underscores.
func ParseFunction(s string) (Function, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if f, ok := functionAliases[key]; ok {
		return f, nil
	}
	return "", apperrors.NewInvalidArgument("unknown function %q", s)
}

// Usage returns the argument synopsis of f.
func (f Function) Usage() string {
	switch f {
	case QBinom:
		return string(f) + " N K"
	case QJordan:
		return string(f) + " PARTITION"
	default:
		return string(f) + " N"
	}
}

// TakesQ reports whether f is evaluated at a q argument.
func (f Function) TakesQ() bool { return f != QTCat }
