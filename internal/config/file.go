package config

import (
	"flag"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/qcalc/internal/errors"
)

// FileConfig is the TOML configuration file. Absent keys leave the
// configuration unchanged.
//
//	q = "p"
//	algo = "auto"
//	timeout = "30s"
//	format = "json"
//	verify = true
//
//	[server]
//	port = 9090
//	max_n = 120
//	workers = 4
type FileConfig struct {
	Q         *string `toml:"q"`
	Algo      *string `toml:"algo"`
	Timeout   *string `toml:"timeout"`
	Format    *string `toml:"format"`
	Output    *string `toml:"output"`
	Verbose   *bool   `toml:"verbose"`
	Quiet     *bool   `toml:"quiet"`
	Verify    *bool   `toml:"verify"`
	MaxLength *int    `toml:"max_length"`
	LogLevel  *string `toml:"log_level"`

	Server ServerFileConfig `toml:"server"`
}

// ServerFileConfig is the [server] table.
type ServerFileConfig struct {
	Port    *int `toml:"port"`
	MaxN    *int `toml:"max_n"`
	Workers *int `toml:"workers"`
}

// LoadFile decodes the TOML file at path. Unknown keys are rejected.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fc, apperrors.NewConfigError("failed to parse config %s: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fc, apperrors.NewConfigError("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	return fc, nil
}

// apply copies the file values into cfg for every flag not set on the
// command line.
func (fc FileConfig) apply(cfg *AppConfig, fs *flag.FlagSet) error {
	setString(fs, fc.Q, &cfg.Q, "q")
	setString(fs, fc.Algo, &cfg.Algo, "algo")
	setString(fs, fc.Format, &cfg.Format, "format")
	setString(fs, fc.Output, &cfg.OutputFile, "output", "o")
	setString(fs, fc.LogLevel, &cfg.LogLevel, "log-level")
	setValue(fs, fc.Verbose, &cfg.Verbose, "verbose", "v")
	setValue(fs, fc.Quiet, &cfg.Quiet, "quiet")
	setValue(fs, fc.Verify, &cfg.Verify, "verify")
	setValue(fs, fc.MaxLength, &cfg.MaxValueLength, "max-length")
	setValue(fs, fc.Server.Port, &cfg.Port, "port")
	setValue(fs, fc.Server.MaxN, &cfg.ServerMaxN, "max-n")
	setValue(fs, fc.Server.Workers, &cfg.Workers, "workers")

	if fc.Timeout != nil && !isFlagSet(fs, "timeout") {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return apperrors.NewConfigError("invalid timeout %q in config: %v", *fc.Timeout, err)
		}
		cfg.Timeout = d
	}
	return nil
}

func setString(fs *flag.FlagSet, src *string, dst *string, flags ...string) {
	if src != nil && !isFlagSetAny(fs, flags...) {
		*dst = strings.TrimSpace(*src)
	}
}

func setValue[T any](fs *flag.FlagSet, src *T, dst *T, flags ...string) {
	if src != nil && !isFlagSetAny(fs, flags...) {
		*dst = *src
	}
}
