// Package algebra defines the ring abstraction that q-analogue formulas are
// evaluated in, together with the concrete rings the application supports:
// Laurent polynomials over the integers, rationals, Gaussian rationals,
// floating-point complexes and symbolic expressions.
//
// Values are immutable. Every operation goes through a Ring value, so the
// same formula code runs unchanged over polynomial, numeric and symbolic
// arguments. Each ring reports a Class that drives algorithm selection for
// the q-binomial coefficient.
package algebra
