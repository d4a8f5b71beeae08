package qtermsim

import (
	"context"
	"fmt"
	"io"
	"math/cmplx"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// BasisAmplitude pairs a basis state with the amplitude to assign to it.
type BasisAmplitude struct {
	Basis     Basis
	Amplitude complex128
}

// QuantumComputer holds the dense state of an N-qubit register.
//
// Gates are applied through a double buffer: every read of a gate
// application comes from coeff, every write goes to newCoeff, and the two are
// swapped once the gate has been fully applied. A QuantumComputer is not safe
// for concurrent use.
type QuantumComputer struct {
	nqubit   int
	nbasis   int
	basis    []Basis
	coeff    []complex128
	newCoeff []complex128

	cfg     Config
	logger  *log.Logger
	metrics *Metrics
}

// Option configures a QuantumComputer.
type Option func(*QuantumComputer)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(qc *QuantumComputer) {
		qc.cfg = cfg
	}
}

// WithLogger routes debug output to logger.
func WithLogger(logger *log.Logger) Option {
	return func(qc *QuantumComputer) {
		qc.logger = logger
	}
}

// WithMetrics records gate applications in m.
func WithMetrics(m *Metrics) Option {
	return func(qc *QuantumComputer) {
		qc.metrics = m
	}
}

// NewQuantumComputer returns an nqubit register in the all-zero state.
func NewQuantumComputer(nqubit int, opts ...Option) (*QuantumComputer, error) {
	if nqubit < 1 || nqubit > MaxQubits {
		return nil, errors.Wrapf(ErrInvalidQubitCount, "%d qubits (allowed 1..%d)", nqubit, MaxQubits)
	}

	qc := &QuantumComputer{
		nqubit: nqubit,
		nbasis: 1 << nqubit,
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(qc)
	}
	if err := qc.cfg.Validate(); err != nil {
		return nil, err
	}
	if qc.logger == nil {
		qc.logger = log.New(io.Discard)
	}

	qc.basis = make([]Basis, qc.nbasis)
	qc.coeff = make([]complex128, qc.nbasis)
	qc.newCoeff = make([]complex128, qc.nbasis)
	for i := range qc.nbasis {
		qc.basis[i] = Basis(i)
	}
	qc.coeff[0] = 1

	qc.logger.Debug("register allocated", "qubits", nqubit, "basis", qc.nbasis)
	return qc, nil
}

// NQubits returns the register size.
func (qc *QuantumComputer) NQubits() int { return qc.nqubit }

// NBasis returns 2^NQubits, the length of the amplitude vector.
func (qc *QuantumComputer) NBasis() int { return qc.nbasis }

// Config returns the active configuration.
func (qc *QuantumComputer) Config() Config { return qc.cfg }

// SetPrintThreshold changes the magnitude cutoff used by Terms and String.
func (qc *QuantumComputer) SetPrintThreshold(threshold float64) {
	qc.cfg.PrintThreshold = threshold
}

// Coeff returns the amplitude of basis. The basis must fit the register.
func (qc *QuantumComputer) Coeff(basis Basis) complex128 {
	return qc.coeff[basis.Index()]
}

// Coeffs returns a copy of the amplitude vector.
func (qc *QuantumComputer) Coeffs() []complex128 {
	out := make([]complex128, len(qc.coeff))
	copy(out, qc.coeff)
	return out
}

// Basis returns a copy of the enumerated basis states.
func (qc *QuantumComputer) Basis() []Basis {
	out := make([]Basis, len(qc.basis))
	copy(out, qc.basis)
	return out
}

// SetState clears the register and writes each amplitude in order, so a
// later entry for the same basis wins. Nothing is normalized. If any entry
// does not fit the register the state is left unchanged.
func (qc *QuantumComputer) SetState(entries []BasisAmplitude) error {
	for _, e := range entries {
		if e.Basis.Index() < 0 || e.Basis.Index() >= qc.nbasis {
			return errors.Wrapf(ErrBasisOutOfRange, "basis %d for %d-qubit register", uint64(e.Basis), qc.nqubit)
		}
	}
	clear(qc.coeff)
	for _, e := range entries {
		qc.coeff[e.Basis.Index()] = e.Amplitude
	}
	return nil
}

// Norm returns the total probability Σ|c|².
func (qc *QuantumComputer) Norm() float64 {
	total := 0.0
	for _, c := range qc.coeff {
		total += real(c * cmplx.Conj(c))
	}
	return total
}

// QubitProbability is the marginal distribution of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal probability of each qubit being 0
// or 1, indexed by qubit.
func (qc *QuantumComputer) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, qc.nqubit)
	for i, c := range qc.coeff {
		prob := real(c * cmplx.Conj(c))
		for q := range qc.nqubit {
			if qc.basis[i].GetBit(q) == 1 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}
	return probs
}

// ApplyGate applies op to the register. The gate is validated first; a
// rejected gate leaves the state untouched.
func (qc *QuantumComputer) ApplyGate(op Operator) error {
	return qc.applyGate(context.Background(), op)
}

func (qc *QuantumComputer) applyGate(ctx context.Context, op Operator) error {
	start := time.Now()
	if err := qc.validate(op); err != nil {
		qc.metrics.recordError(err)
		return err
	}

	var (
		err  error
		algo = qc.cfg.Algorithm
	)
	switch op.NQubits() {
	case 1:
		if algo == AlgorithmDense {
			err = qc.apply1QubitGate(ctx, op)
		} else {
			err = qc.apply1QubitGateInsertion(ctx, op)
		}
	case 2:
		algo = AlgorithmDense
		err = qc.apply2QubitGate(ctx, op)
	}
	if err != nil {
		clear(qc.newCoeff)
		return err
	}

	qc.coeff, qc.newCoeff = qc.newCoeff, qc.coeff
	clear(qc.newCoeff)

	qc.metrics.recordGate(op.NQubits(), algo, start)
	qc.logger.Debug("gate applied", "gate", op.String(), "algorithm", algo, "took", time.Since(start))
	return nil
}

func (qc *QuantumComputer) validate(op Operator) error {
	arity := op.NQubits()
	if arity != 1 && arity != 2 {
		return errors.Wrapf(ErrUnsupportedArity, "%s declares %d qubits", op.String(), arity)
	}
	if t := op.Target(); t < 0 || t >= qc.nqubit {
		return errors.Wrapf(ErrQubitOutOfRange, "%s: target %d for %d-qubit register", op.String(), t, qc.nqubit)
	}
	if arity == 2 {
		c := op.Control()
		if c < 0 || c >= qc.nqubit {
			return errors.Wrapf(ErrQubitOutOfRange, "%s: control %d for %d-qubit register", op.String(), c, qc.nqubit)
		}
		if c == op.Target() {
			return errors.Wrapf(ErrQubitOutOfRange, "%s: control and target are both %d", op.String(), c)
		}
	}

	dim := 1 << arity
	m := op.Matrix()
	if len(m) != dim {
		return errors.Wrapf(ErrMatrixShape, "%s: %d rows, want %d", op.String(), len(m), dim)
	}
	for i, row := range m {
		if len(row) != dim {
			return errors.Wrapf(ErrMatrixShape, "%s: row %d has %d columns, want %d", op.String(), i, len(row), dim)
		}
	}
	return nil
}

// ApplyCircuit applies the gates of c in order. It stops at the first
// rejected gate; the gates before it stay applied.
func (qc *QuantumComputer) ApplyCircuit(c *QuantumCircuit) error {
	return qc.ApplyCircuitContext(context.Background(), c)
}

// ApplyCircuitContext is ApplyCircuit with cancellation checked between
// gates and between parallel blocks.
func (qc *QuantumComputer) ApplyCircuitContext(ctx context.Context, c *QuantumCircuit) error {
	for i, op := range c.Gates() {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "circuit stopped before gate %d", i)
		}
		if err := qc.applyGate(ctx, op); err != nil {
			return errors.Wrapf(err, "gate %d", i)
		}
	}
	qc.logger.Debug("circuit applied", "gates", c.Len())
	return nil
}

// Terms lists every basis state whose amplitude magnitude reaches the print
// threshold, in ascending basis order.
func (qc *QuantumComputer) Terms() []string {
	var terms []string
	for i, c := range qc.coeff {
		if cmplx.Abs(c) >= qc.cfg.PrintThreshold {
			terms = append(terms, fmt.Sprintf("(%f %+f i) %s", real(c), imag(c), qc.basis[i].Ket(qc.nqubit)))
		}
	}
	return terms
}

func (qc *QuantumComputer) String() string {
	return strings.Join(qc.Terms(), "\n")
}
