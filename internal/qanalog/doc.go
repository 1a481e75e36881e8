// Package qanalog computes q-analogues of classical combinatorial numbers:
// q-integers, q-factorials, Gaussian binomial coefficients, q-Catalan and
// q,t-Catalan numbers, and q-Jordan counts.
//
// Every function is generic over an algebra.Ring, so the same call works for
// a formal indeterminate (the default, q in ZZ[q, 1/q]), a rational or
// complex number, or a symbolic expression. Setting q = 1 recovers the
// ordinary numbers: [n]_1 = n, [n]_1! = n!, and the q-binomial becomes the
// binomial coefficient.
//
// # Algorithm selection
//
// The Gaussian binomial has three evaluation paths. The naive path divides
// two products of (1 - q^i). The cyclotomic paths multiply the cyclotomic
// polynomials Phi_d that survive cancellation, either evaluated at q
// (cyclo_generic) or as polynomials composed with q (cyclo_polynomial).
// SelectAlgorithm picks one from the ring class and the size of n and k;
// every path yields the same value.
package qanalog
