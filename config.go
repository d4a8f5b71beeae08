package qtermsim

import (
	"os"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Algorithm selects the 1-qubit gate routine.
type Algorithm string

const (
	// AlgorithmInsertion enumerates the 2^(N-1) spectator states and
	// inserts the target bit. This is the default.
	AlgorithmInsertion Algorithm = "insertion"
	// AlgorithmDense scans all 2^N states and filters on the target bit.
	AlgorithmDense Algorithm = "dense"
)

const (
	// DefaultPrintThreshold is the smallest amplitude magnitude listed by
	// the diagnostic dump.
	DefaultPrintThreshold = 1e-6
	// DefaultParallelQubits is the register size from which gate
	// application is split across workers.
	DefaultParallelQubits = 16
	// MaxQubits bounds the register size accepted by NewQuantumComputer.
	MaxQubits = 30
	// MaxWorkers bounds Config.Workers.
	MaxWorkers = 1024
)

// Config holds the tunables of a QuantumComputer.
type Config struct {
	PrintThreshold float64   `yaml:"print_threshold" validate:"gte=0"`
	Algorithm      Algorithm `yaml:"algorithm" validate:"oneof=insertion dense"`
	Workers        int       `yaml:"workers" validate:"gte=1,lte=1024"`
	ParallelQubits int       `yaml:"parallel_qubits" validate:"gte=0,lte=30"`
}

var configValidate = validator.New()

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		PrintThreshold: DefaultPrintThreshold,
		Algorithm:      AlgorithmInsertion,
		Workers:        min(runtime.GOMAXPROCS(0), MaxWorkers),
		ParallelQubits: DefaultParallelQubits,
	}
}

// Validate reports the first field that is out of range.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid simulator config")
	}
	return nil
}

// LoadConfig reads a YAML file on top of DefaultConfig. A missing file is
// not an error; the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config %s", path)
	}
	return cfg, cfg.Validate()
}
