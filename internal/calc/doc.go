// Package calc is the dynamic entry point to the q-analogue library. It turns
// string arguments, as typed on a command line, sent in a query string or
// entered in the REPL, into typed calls on internal/qanalog over the ring
// implied by the q argument.
//
// # q syntax
//
//	""             polynomial ring in q, q is the generator
//	p, x, ...      polynomial ring in that variable
//	sym:z          symbolic expression in z
//	3, -1, 2/3     rational numbers
//	I, 1+I, 2-3I   Gaussian rationals
//	(0.5+0.866i)   complex floating point
//	root:m         complex primitive m-th root of unity
//
// Arguments are parsed as exact rationals so that a non-integer such as 3/2
// is reported as such instead of being truncated.
package calc
