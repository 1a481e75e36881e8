//go:generate mockgen -source=calculator.go -destination=mocks/mock_calculator.go -package=mocks

package orchestration

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/agbru/qcalc/internal/calc"
	"github.com/agbru/qcalc/internal/qanalog"
)

// Calculator evaluates a request along one fixed path.
type Calculator interface {
	// Name identifies the calculator in comparison tables.
	Name() string
	// Calculate evaluates req and reports its progress on progressChan
	// without blocking.
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, req calc.Request) (calc.Result, error)
}

// CalculatorFactory looks calculators up by name.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// List returns the registered names in sorted order.
	List() []string
}

// algorithmCalculator pins the q-binomial algorithm of every request.
type algorithmCalculator struct {
	alg qanalog.Algorithm
}

// NewAlgorithmCalculator returns a Calculator that forces alg.
func NewAlgorithmCalculator(alg qanalog.Algorithm) Calculator {
	return algorithmCalculator{alg: alg}
}

func (c algorithmCalculator) Name() string { return c.alg.String() }

func (c algorithmCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, req calc.Request) (calc.Result, error) {
	req.Algorithm = c.alg.String()
	sendProgress(progressChan, calcIndex, 0)
	res, err := calc.Evaluate(ctx, req)
	if err == nil {
		sendProgress(progressChan, calcIndex, 1)
	}
	return res, err
}

// sendProgress drops the update when the channel is full; the reporter
// only needs the latest value.
func sendProgress(ch chan<- ProgressUpdate, idx int, value float64) {
	if ch == nil {
		return
	}
	select {
	case ch <- ProgressUpdate{CalculatorIndex: idx, Value: value}:
	default:
	}
}

// DefaultFactory is a concurrency-safe CalculatorFactory.
type DefaultFactory struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
}

// NewDefaultFactory returns a factory holding "auto" and one calculator per
// concrete q-binomial algorithm.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{calculators: make(map[string]Calculator)}
	f.Register(NewAlgorithmCalculator(qanalog.Auto))
	for _, alg := range qanalog.Algorithms() {
		f.Register(NewAlgorithmCalculator(alg))
	}
	return f
}

// Register adds c under its name, replacing any previous entry.
func (f *DefaultFactory) Register(c Calculator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calculators[normalizeName(c.Name())] = c
}

// Get returns the calculator registered under name.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if c, ok := f.calculators[normalizeName(name)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown calculator %q", name)
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.calculators))
	for name := range f.calculators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}
