package qtermsim

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qtermsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, AlgorithmInsertion, cfg.Algorithm)
	assert.Equal(t, DefaultPrintThreshold, cfg.PrintThreshold)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
print_threshold: 0.01
algorithm: dense
workers: 3
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.PrintThreshold)
	assert.Equal(t, AlgorithmDense, cfg.Algorithm)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, DefaultParallelQubits, cfg.ParallelQubits, "unset keys keep their defaults")
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative threshold", "print_threshold: -1\n"},
		{"unknown algorithm", "algorithm: sparse\n"},
		{"no workers", "workers: 0\n"},
		{"parallel cutoff too large", "parallel_qubits: 64\n"},
		{"malformed yaml", "algorithm: [dense\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestSetPrintThreshold(t *testing.T) {
	qc, err := NewQuantumComputer(1, WithConfig(DefaultConfig()))
	require.NoError(t, err)
	require.NoError(t, qc.ApplyGate(H(0)))
	assert.Len(t, qc.Terms(), 2)

	qc.SetPrintThreshold(0.8)
	assert.Empty(t, qc.Terms())
	assert.Equal(t, 0.8, qc.Config().PrintThreshold)
}

func TestDefaultWorkersWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	assert.LessOrEqual(t, cfg.Workers, MaxWorkers)
	assert.Equal(t, min(runtime.GOMAXPROCS(0), MaxWorkers), cfg.Workers)

	prev := runtime.GOMAXPROCS(MaxWorkers + 1)
	defer runtime.GOMAXPROCS(prev)
	cfg = DefaultConfig()
	assert.Equal(t, MaxWorkers, cfg.Workers)
	assert.NoError(t, cfg.Validate())
}
