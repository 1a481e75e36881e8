// Package apperrors defines the structured error types of qcalc. They keep
// domain errors (an argument outside a function's domain) apart from
// configuration, timeout and calculation failures, carry the underlying
// cause, and map onto process exit codes.
//
// All wrapping uses fmt.Errorf with %w, and every type supports errors.Is
// and errors.As.
package apperrors
