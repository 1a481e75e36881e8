// Package poly implements the integer-coefficient polynomials that carry
// q-analogue values: univariate Laurent polynomials in a named indeterminate,
// cyclotomic polynomials, and bivariate polynomials for q,t-statistics.
package poly
