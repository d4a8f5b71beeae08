package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/HershLalwani/qtermsim"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunCommand(t *testing.T) {
	path := writeFile(t, "flip.qasm", "OPENQASM 2.0;\nqreg q[2];\nx q[1];\n")

	for _, algo := range []string{"insertion", "dense"} {
		t.Run(algo, func(t *testing.T) {
			out, err := execute(t, "run", path, "--algorithm", algo)
			require.NoError(t, err)
			assert.Equal(t, "(1.000000 +0.000000 i) |10>\n", out)
		})
	}
}

func TestRunCommandThreshold(t *testing.T) {
	path := writeFile(t, "ry.qasm", "qreg q[1];\nry(0.2) q[0];\n")

	out, err := execute(t, "run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "|0>")
	assert.Contains(t, out, "|1>")

	// |amplitude of |1>| = sin(0.1) ≈ 0.0998
	out, err = execute(t, "run", path, "--threshold", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "|0>")
	assert.NotContains(t, out, "|1>")
}

func TestRunCommandMetrics(t *testing.T) {
	path := writeFile(t, "bell.qasm", defaultProgram)

	out, err := execute(t, "run", path, "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, `qtermsim_gates_applied_total{algorithm="insertion",arity="1"} 1`)
	assert.Contains(t, out, `qtermsim_gates_applied_total{algorithm="dense",arity="2"} 1`)
}

func TestRunCommandErrors(t *testing.T) {
	good := writeFile(t, "ok.qasm", "qreg q[1];\nh q[0];\n")
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"run", filepath.Join(t.TempDir(), "nope.qasm")}},
		{"no arguments", []string{"run"}},
		{"bad algorithm", []string{"run", good, "--algorithm", "sparse"}},
		{"negative threshold", []string{"run", good, "--threshold", "-1"}},
		{"unsupported statement", []string{"run", writeFile(t, "m.qasm", "qreg q[1];\nmeasure q[0] -> c[0];\n")}},
		{"qubit out of range", []string{"run", writeFile(t, "r.qasm", "qreg q[1];\ncx q[0], q[1];\n")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestConfigCommand(t *testing.T) {
	cfgPath := writeFile(t, "qtermsim.yaml", "algorithm: dense\nworkers: 2\n")

	out, err := execute(t, "config", "--config", cfgPath, "--threshold", "0.25")
	require.NoError(t, err)

	var cfg qtermsim.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, qtermsim.AlgorithmDense, cfg.Algorithm)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 0.25, cfg.PrintThreshold)
	assert.Equal(t, qtermsim.DefaultParallelQubits, cfg.ParallelQubits)
}
