package orchestration

import "github.com/agbru/qcalc/internal/qanalog"

// AllCalculators selects every concrete algorithm for cross-checking.
const AllCalculators = "all"

// GetCalculatorsToRun determines which calculators should be executed for
// the algorithm selection algo. "all" returns every registered calculator
// except auto, in sorted order, so that each evaluation path runs once.
// An unknown name yields nil.
func GetCalculatorsToRun(algo string, factory CalculatorFactory) []Calculator {
	if normalizeName(algo) == AllCalculators {
		keys := factory.List()
		calculators := make([]Calculator, 0, len(keys))
		for _, k := range keys {
			if k == qanalog.Auto.String() {
				continue
			}
			if c, err := factory.Get(k); err == nil {
				calculators = append(calculators, c)
			}
		}
		return calculators
	}
	if algo == "" {
		algo = qanalog.Auto.String()
	}
	if c, err := factory.Get(algo); err == nil {
		return []Calculator{c}
	}
	return nil
}
