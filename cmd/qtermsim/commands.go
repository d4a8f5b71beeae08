package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/HershLalwani/qtermsim"
)

// cliOptions holds the flags shared by every subcommand.
type cliOptions struct {
	configPath string
	threshold  float64
	algorithm  string
	verbose    bool
	metrics    bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "qtermsim",
		Short:         "A state-vector quantum circuit simulator for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "qtermsim.yaml", "simulator config file")
	rootCmd.PersistentFlags().Float64Var(&opts.threshold, "threshold", qtermsim.DefaultPrintThreshold, "smallest amplitude magnitude to print")
	rootCmd.PersistentFlags().StringVar(&opts.algorithm, "algorithm", string(qtermsim.AlgorithmInsertion), "1-qubit gate routine (insertion|dense)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every gate application")

	runCmd := &cobra.Command{
		Use:   "run FILE.qasm",
		Short: "Simulate an OpenQASM program and print the final state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCircuit(cmd, opts, args[0])
		},
	}
	runCmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print gate metrics after the run")

	viewCmd := &cobra.Command{
		Use:   "view [FILE.qasm]",
		Short: "Step through a circuit in the interactive viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return viewCircuit(cmd, opts, path)
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective simulator configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}

	rootCmd.AddCommand(runCmd, viewCmd, configCmd)
	return rootCmd
}

// load reads the config file and applies explicitly set flags on top.
func (o *cliOptions) load(cmd *cobra.Command) (qtermsim.Config, error) {
	cfg, err := qtermsim.LoadConfig(o.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.PrintThreshold = o.threshold
	}
	if flags.Changed("algorithm") {
		cfg.Algorithm = qtermsim.Algorithm(o.algorithm)
	}
	return cfg, cfg.Validate()
}

func (o *cliOptions) logger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "qtermsim",
		ReportTimestamp: true,
	})
	if o.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func readProgram(path string) (*qtermsim.QuantumCircuit, int, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to read %s", path)
	}
	circuit, nqubit, err := qtermsim.ParseQASM(string(src))
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to parse %s", path)
	}
	return circuit, nqubit, nil
}

func runCircuit(cmd *cobra.Command, opts *cliOptions, path string) error {
	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}
	logger := opts.logger(cmd.ErrOrStderr())

	circuit, nqubit, err := readProgram(path)
	if err != nil {
		return err
	}
	logger.Info("loaded circuit", "file", path, "qubits", nqubit, "gates", circuit.Len())

	reg := prometheus.NewRegistry()
	qc, err := qtermsim.NewQuantumComputer(nqubit,
		qtermsim.WithConfig(cfg),
		qtermsim.WithLogger(logger),
		qtermsim.WithMetrics(qtermsim.NewMetrics(reg)),
	)
	if err != nil {
		return err
	}
	if err := qc.ApplyCircuitContext(cmd.Context(), circuit); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, term := range qc.Terms() {
		fmt.Fprintln(out, term)
	}

	if opts.metrics {
		families, err := reg.Gather()
		if err != nil {
			return errors.Wrap(err, "failed to gather metrics")
		}
		fmt.Fprintln(out)
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
				return errors.Wrap(err, "failed to write metrics")
			}
		}
	}
	return nil
}

func viewCircuit(cmd *cobra.Command, opts *cliOptions, path string) error {
	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}
	src := defaultProgram
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to read %s", path)
		}
		if err == nil {
			src = string(data)
		}
	}

	p := tea.NewProgram(newModel(path, src, cfg), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}
