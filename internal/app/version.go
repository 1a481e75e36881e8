package app

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/agbru/qcalc/internal/classical"
)

// Build information, set with -ldflags "-X github.com/agbru/qcalc/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args ask for the version, so that it can
// be printed before any configuration is parsed.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "-version", "--version", "-V":
			return true
		case "--":
			return false
		}
	}
	return false
}

// PrintVersion writes the build information and the runtime environment.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "qcalc %s (commit %s, built %s)\n", Version, Commit, BuildDate)
	fmt.Fprintf(out, "Go %s %s/%s, %d CPUs\n", runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	fmt.Fprintf(out, "Integer backend: %s\n", classical.Backend)
	if features := cpuFeatures(); len(features) > 0 {
		fmt.Fprintf(out, "CPU features: %s\n", strings.Join(features, " "))
	}
}

// cpuFeatures lists the arithmetic extensions relevant to big-integer
// multiplication that the processor reports.
func cpuFeatures() []string {
	var out []string
	add := func(name string, ok bool) {
		if ok {
			out = append(out, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add("avx2", cpu.X86.HasAVX2)
		add("avx512f", cpu.X86.HasAVX512F)
		add("bmi2", cpu.X86.HasBMI2)
		add("adx", cpu.X86.HasADX)
	case "arm64":
		add("asimd", cpu.ARM64.HasASIMD)
		add("sve", cpu.ARM64.HasSVE)
	}
	return out
}
