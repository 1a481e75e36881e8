package config

import "runtime"

// Server concurrency resolution chain (highest priority first):
//   1. CLI flag (-workers)
//   2. Environment variable (QCALC_WORKERS)
//   3. Config file ([server] workers)
//   4. Hardware estimation (this file)

// ApplyAdaptiveDefaults fills configuration values left at zero with
// estimates derived from the hardware.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateWorkers()
	}
	return cfg
}

// EstimateWorkers returns the number of computations the server runs at
// once. A computation is single-threaded; one or two cores are left to the
// runtime.
func EstimateWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return 1
	case numCPU <= 8:
		return numCPU - 1
	default:
		return numCPU - 2
	}
}
