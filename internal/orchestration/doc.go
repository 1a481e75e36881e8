// Package orchestration runs one or more q-binomial evaluation paths
// concurrently on the same request and compares their results. It decouples
// the computation from presentation via the ProgressReporter, ResultPresenter
// and ErrorHandler interfaces.
package orchestration
