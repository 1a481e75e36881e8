// Package logging provides the logging interface used across qcalc. It hides
// the backend (zerolog by default, the standard library log package as a
// fallback) so components log structured fields the same way.
package logging
